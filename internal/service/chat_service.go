package service

import (
	"context"
	"time"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/logger"
	"case-governance-be/internal/repository/memory"
	"case-governance-be/pkg/llm"
	"case-governance-be/pkg/risk"
	"case-governance-be/pkg/store"

	"github.com/google/uuid"
)

const chatSystemPrompt = "You are a supportive intake assistant for a mental health service. " +
	"Listen, reflect, and encourage the person to share. Never diagnose, never give " +
	"medical advice, never promise outcomes. Keep replies short and warm."

const chatFallbackReply = "Thank you for sharing that with me. I'm here to listen. " +
	"Could you tell me a little more about how you've been feeling?"

// IChatService is the public-tier conversational surface. Every message is
// screened before a reply goes out; elevated tiers answer with the safety
// resources instead of generated text.
type IChatService interface {
	Chat(ctx context.Context, req *dto.PublicChatRequest) (*dto.PublicChatResponse, error)
}

type chatService struct {
	sessions          *memory.SessionRepository
	governanceService IGovernanceService
	llmProvider       llm.Provider
	logger            logger.ILogger
}

func NewChatService(
	sessions *memory.SessionRepository,
	governanceService IGovernanceService,
	llmProvider llm.Provider,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		sessions:          sessions,
		governanceService: governanceService,
		llmProvider:       llmProvider,
		logger:            logger,
	}
}

func (s *chatService) Chat(ctx context.Context, req *dto.PublicChatRequest) (*dto.PublicChatResponse, error) {
	session := s.resolveSession(req.SessionId)

	assessment, escalated, err := s.governanceService.AssessAndEscalate(ctx, req.Message, req.SeverityScore, session.ID, nil)
	if err != nil {
		// Screening ran; only the escalation bookkeeping failed. The person
		// on the other end still gets the safety resources.
		s.logger.Error("CHAT", "Escalation pipeline failed", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
	}

	session.Messages = append(session.Messages, store.SessionMessage{
		Role:     "user",
		Content:  req.Message,
		RiskTier: string(assessment.Tier),
		SentAt:   time.Now(),
	})
	session.HighestTier = string(risk.MaxTier(risk.Tier(session.HighestTier), assessment.Tier))

	reply := s.buildReply(ctx, session, assessment)

	session.Messages = append(session.Messages, store.SessionMessage{
		Role:    "assistant",
		Content: reply,
		SentAt:  time.Now(),
	})
	s.sessions.Save(session)

	return &dto.PublicChatResponse{
		SessionId:         session.ID,
		Reply:             reply,
		RiskTier:          assessment.Tier,
		RecommendedAction: assessment.RecommendedAction,
		Escalated:         escalated,
	}, nil
}

func (s *chatService) resolveSession(sessionId string) *store.Session {
	if sessionId != "" {
		if session, found := s.sessions.Get(sessionId); found {
			return session
		}
	}
	return &store.Session{
		ID:          uuid.NewString(),
		HighestTier: string(risk.TierLow),
		CreatedAt:   time.Now(),
	}
}

// buildReply answers elevated-risk messages with the recommended safety
// resources verbatim. Generated text is only used on low and medium tiers,
// and a generation failure degrades to a canned supportive line rather than
// an error; the chat surface stays available.
func (s *chatService) buildReply(ctx context.Context, session *store.Session, assessment risk.RiskAssessment) string {
	if assessment.Elevated() {
		return assessment.RecommendedAction
	}

	history := make([]llm.Message, 0, len(session.Messages)+1)
	history = append(history, llm.Message{Role: "system", Content: chatSystemPrompt})
	for _, msg := range session.Messages {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		s.logger.Warn("CHAT", "Generation backend unavailable, using fallback reply", map[string]interface{}{
			"session_id": session.ID,
			"error":      err.Error(),
		})
		return chatFallbackReply
	}
	return reply
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"case-governance-be/internal/constant"
	"case-governance-be/internal/dto"
	"case-governance-be/internal/entity"
	"case-governance-be/internal/pkg/logger"
	"case-governance-be/internal/repository/specification"
	"case-governance-be/internal/repository/unitofwork"
	"case-governance-be/pkg/llm"
	"case-governance-be/pkg/workflow"

	"github.com/google/uuid"
)

// DraftLocker serializes transitions per draft. Satisfied by lock.DraftLocker.
type DraftLocker interface {
	Acquire(ctx context.Context, draftId uuid.UUID) (func(), error)
}

const (
	generateTimeout   = 2 * time.Minute
	generateTopK      = 5
	generateMaxTokens = 1200
)

// IDraftService owns the clinician draft lifecycle. Every status change is
// validated by the workflow machine, serialized by a per-draft lock and
// committed with a version compare-and-set.
type IDraftService interface {
	Create(ctx context.Context, req *dto.CreateDraftRequest) (*dto.CreateDraftResponse, error)
	Show(ctx context.Context, draftId uuid.UUID) (*dto.ShowDraftResponse, error)
	// Generate retrieves evidence for the request query, prompts the
	// generation backend and stores the produced content. The draft stays in
	// its current status; content changes never bypass the policy check.
	Generate(ctx context.Context, draftId uuid.UUID, req *dto.GenerateDraftRequest) (*dto.GenerateDraftResponse, error)
	// CheckPolicy moves the draft through check_policy, running the citation
	// gate against freshly retrieved evidence. Outcome lands the draft in
	// editing (pass) or blocked (fail) and stores the verdict.
	CheckPolicy(ctx context.Context, draftId uuid.UUID) (*dto.DraftVerdictResponse, error)
	// Sign moves editing -> signed, gated on the stored policy verdict.
	Sign(ctx context.Context, draftId uuid.UUID, signedBy string) (*dto.DraftVerdictResponse, error)
	// WriteBack moves signed -> written_back, gated on both a signature and
	// a passing policy verdict.
	WriteBack(ctx context.Context, draftId uuid.UUID) (*dto.DraftVerdictResponse, error)
	// Archive moves written_back -> archived. Terminal.
	Archive(ctx context.Context, draftId uuid.UUID) (*dto.DraftVerdictResponse, error)
}

type draftService struct {
	uowFactory        unitofwork.RepositoryFactory
	retrievalService  IRetrievalService
	governanceService IGovernanceService
	auditService      IAuditService
	llmProvider       llm.Provider
	locker            DraftLocker
	logger            logger.ILogger
}

func NewDraftService(
	uowFactory unitofwork.RepositoryFactory,
	retrievalService IRetrievalService,
	governanceService IGovernanceService,
	auditService IAuditService,
	llmProvider llm.Provider,
	locker DraftLocker,
	logger logger.ILogger,
) IDraftService {
	return &draftService{
		uowFactory:        uowFactory,
		retrievalService:  retrievalService,
		governanceService: governanceService,
		auditService:      auditService,
		llmProvider:       llmProvider,
		locker:            locker,
		logger:            logger,
	}
}

func (s *draftService) Create(ctx context.Context, req *dto.CreateDraftRequest) (*dto.CreateDraftResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	c, err := uow.CaseRepository().FindOne(ctx, specification.ByID{ID: req.CaseId})
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("case %s: %w", req.CaseId, ErrNotFound)
	}

	draft := entity.Draft{
		Id:        uuid.New(),
		CaseId:    req.CaseId,
		Content:   req.Content,
		Status:    workflow.StatusDraft,
		Version:   1,
		CreatedAt: time.Now(),
	}
	if err := uow.DraftRepository().Create(ctx, &draft); err != nil {
		return nil, err
	}

	return &dto.CreateDraftResponse{Id: draft.Id, Status: draft.Status}, nil
}

func (s *draftService) Show(ctx context.Context, draftId uuid.UUID) (*dto.ShowDraftResponse, error) {
	draft, err := s.findDraft(ctx, draftId)
	if err != nil {
		return nil, err
	}
	return &dto.ShowDraftResponse{
		Id:        draft.Id,
		CaseId:    draft.CaseId,
		Content:   draft.Content,
		Status:    draft.Status,
		SignedBy:  draft.SignedBy,
		Version:   draft.Version,
		CreatedAt: draft.CreatedAt,
	}, nil
}

func (s *draftService) Generate(ctx context.Context, draftId uuid.UUID, req *dto.GenerateDraftRequest) (*dto.GenerateDraftResponse, error) {
	release, err := s.locker.Acquire(ctx, draftId)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := s.findDraft(ctx, draftId)
	if err != nil {
		return nil, err
	}
	if draft.Status != workflow.StatusDraft && draft.Status != workflow.StatusEditing {
		return nil, fmt.Errorf("draft %s is %s, content is frozen", draftId, draft.Status)
	}

	evidence, err := s.retrievalService.Retrieve(ctx, req.Query, topKOrDefault(req.TopK), req.Category)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(constant.DraftGenerationPrompt, formatEvidence(evidence), req.Query)

	genCtx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()
	content, err := s.llmProvider.Generate(genCtx, prompt,
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(generateMaxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("draft generation: %w", err)
	}

	draft.Content = content
	// A regenerated draft loses any earlier verdict; it must pass the gate
	// again before signing.
	draft.PolicyCheckResult = nil

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DraftRepository().UpdateCAS(ctx, draft, draft.Version); err != nil {
		return nil, err
	}

	return &dto.GenerateDraftResponse{
		Id:       draft.Id,
		Content:  draft.Content,
		Evidence: evidence,
	}, nil
}

func (s *draftService) CheckPolicy(ctx context.Context, draftId uuid.UUID) (*dto.DraftVerdictResponse, error) {
	release, err := s.locker.Acquire(ctx, draftId)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := s.findDraft(ctx, draftId)
	if err != nil {
		return nil, err
	}

	// Enter check_policy first so an invalid starting status is reported as
	// a workflow verdict, not a policy one.
	if verdict := workflow.ValidateTransition(draft.Status, workflow.StatusCheckPolicy, nil); !verdict.Allowed {
		return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
	}

	evidence, err := s.retrievalService.Retrieve(ctx, draft.Content, generateTopK, "")
	if err != nil {
		return nil, err
	}

	verdict, err := s.governanceService.EnforceCitationPolicy(ctx, draft.Content, evidence, &draft.CaseId, &draft.Id)
	if err != nil {
		return nil, err
	}

	target := workflow.StatusEditing
	if !verdict.Allowed {
		target = workflow.StatusBlocked
	}

	from := draft.Status
	draft.Status = target
	draft.PolicyCheckResult = verdict
	if err := s.commitTransition(ctx, draft, from); err != nil {
		return nil, err
	}

	return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
}

func (s *draftService) Sign(ctx context.Context, draftId uuid.UUID, signedBy string) (*dto.DraftVerdictResponse, error) {
	release, err := s.locker.Acquire(ctx, draftId)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := s.findDraft(ctx, draftId)
	if err != nil {
		return nil, err
	}

	conditions := map[string]bool{
		"policy_passed": draft.PolicyCheckResult != nil && draft.PolicyCheckResult.Allowed,
	}
	verdict, err := s.governanceService.ValidateWorkflowTransition(ctx, draft.Status, workflow.StatusSigned, conditions)
	if err != nil {
		return nil, err
	}
	if !verdict.Allowed {
		return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
	}

	from := draft.Status
	draft.Status = workflow.StatusSigned
	draft.SignedBy = signedBy
	if err := s.commitTransition(ctx, draft, from); err != nil {
		return nil, err
	}

	return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
}

func (s *draftService) WriteBack(ctx context.Context, draftId uuid.UUID) (*dto.DraftVerdictResponse, error) {
	release, err := s.locker.Acquire(ctx, draftId)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := s.findDraft(ctx, draftId)
	if err != nil {
		return nil, err
	}

	conditions := map[string]bool{
		"signed":        draft.SignedBy != "",
		"policy_passed": draft.PolicyCheckResult != nil && draft.PolicyCheckResult.Allowed,
	}
	verdict, err := s.governanceService.ValidateWorkflowTransition(ctx, draft.Status, workflow.StatusWrittenBack, conditions)
	if err != nil {
		return nil, err
	}
	if !verdict.Allowed {
		return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
	}

	from := draft.Status
	draft.Status = workflow.StatusWrittenBack
	if err := s.commitTransition(ctx, draft, from); err != nil {
		return nil, err
	}

	return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
}

func (s *draftService) Archive(ctx context.Context, draftId uuid.UUID) (*dto.DraftVerdictResponse, error) {
	release, err := s.locker.Acquire(ctx, draftId)
	if err != nil {
		return nil, err
	}
	defer release()

	draft, err := s.findDraft(ctx, draftId)
	if err != nil {
		return nil, err
	}

	verdict, err := s.governanceService.ValidateWorkflowTransition(ctx, draft.Status, workflow.StatusArchived, nil)
	if err != nil {
		return nil, err
	}
	if !verdict.Allowed {
		return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
	}

	from := draft.Status
	draft.Status = workflow.StatusArchived
	if err := s.commitTransition(ctx, draft, from); err != nil {
		return nil, err
	}

	return &dto.DraftVerdictResponse{Id: draft.Id, Status: draft.Status, Verdict: verdict}, nil
}

func (s *draftService) findDraft(ctx context.Context, draftId uuid.UUID) (*entity.Draft, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	draft, err := uow.DraftRepository().FindOne(ctx, specification.ByID{ID: draftId})
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %s: %w", draftId, ErrNotFound)
	}
	return draft, nil
}

// commitTransition persists the already validated status change with a
// version compare-and-set and records it on the audit trail. A version
// conflict surfaces as a retryable error, never as a silent overwrite.
func (s *draftService) commitTransition(ctx context.Context, draft *entity.Draft, from workflow.Status) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DraftRepository().UpdateCAS(ctx, draft, draft.Version); err != nil {
		return err
	}
	draft.Version++

	if _, err := s.auditService.Record(ctx, constant.TrackClinician, entity.EventDraftTransition, "", map[string]interface{}{
		"draft_id": draft.Id.String(),
		"from":     string(from),
		"to":       string(draft.Status),
	}, &draft.CaseId, &draft.Id); err != nil {
		s.logger.Warn("DRAFT", "Transition committed but audit write failed", map[string]interface{}{
			"draft_id": draft.Id.String(),
			"error":    err.Error(),
		})
	}
	return nil
}

func topKOrDefault(topK int) int {
	if topK <= 0 {
		return generateTopK
	}
	return topK
}

func formatEvidence(refs []*entity.EvidenceReference) string {
	if len(refs) == 0 {
		return "(no evidence retrieved)"
	}
	var b strings.Builder
	for _, ref := range refs {
		fmt.Fprintf(&b, "[DOC:%s] %s (%s)\n%s\n\n", ref.DocId, ref.Title, ref.Category, ref.Snippet)
	}
	return strings.TrimRight(b.String(), "\n")
}

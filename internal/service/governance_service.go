package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"case-governance-be/internal/constant"
	"case-governance-be/internal/entity"
	"case-governance-be/internal/pkg/logger"
	"case-governance-be/internal/pkg/mailer"
	"case-governance-be/internal/repository/unitofwork"
	"case-governance-be/pkg/citation"
	"case-governance-be/pkg/policy"
	"case-governance-be/pkg/risk"
	"case-governance-be/pkg/workflow"

	"github.com/google/uuid"
)

// IGovernanceService composes the pure policy components into the three
// named governance policies. Every verdict is recorded to the audit trail
// before it is returned.
type IGovernanceService interface {
	// AssessAndEscalate classifies text and, for high/critical tiers,
	// creates an escalation record plus notifications. The assessment is
	// always returned; escalation never blocks the conversation.
	AssessAndEscalate(ctx context.Context, text string, severityScore *int, sessionId string, caseId *uuid.UUID) (risk.RiskAssessment, bool, error)
	// EnforceCitationPolicy gates generated content on retrieved evidence
	// and citation markers. Empty evidence always blocks.
	EnforceCitationPolicy(ctx context.Context, content string, evidenceRefs []*entity.EvidenceReference, caseId, draftId *uuid.UUID) (*policy.Verdict, error)
	CheckTransferEligibility(ctx context.Context, consentConfirmed, capsuleValid bool, caseStatus string, caseId *uuid.UUID) (*policy.Verdict, error)
	// ValidateWorkflowTransition exposes the pure state machine check with
	// audit recording. It does not commit any status change.
	ValidateWorkflowTransition(ctx context.Context, current, target workflow.Status, conditions map[string]bool) (*policy.Verdict, error)
}

type governanceService struct {
	uowFactory   unitofwork.RepositoryFactory
	auditService IAuditService
	emailService mailer.IEmailService
	onCallEmail  string
	logger       logger.ILogger
}

func NewGovernanceService(
	uowFactory unitofwork.RepositoryFactory,
	auditService IAuditService,
	emailService mailer.IEmailService,
	onCallEmail string,
	logger logger.ILogger,
) IGovernanceService {
	return &governanceService{
		uowFactory:   uowFactory,
		auditService: auditService,
		emailService: emailService,
		onCallEmail:  onCallEmail,
		logger:       logger,
	}
}

func (s *governanceService) AssessAndEscalate(ctx context.Context, text string, severityScore *int, sessionId string, caseId *uuid.UUID) (risk.RiskAssessment, bool, error) {
	assessment := assessGuarded(text, severityScore)

	if !assessment.Elevated() {
		return assessment, false, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	escalation := entity.Escalation{
		Id:         uuid.New(),
		CaseId:     caseId,
		SessionId:  sessionId,
		RiskTier:   string(assessment.Tier),
		Triggers:   assessment.Triggers,
		SourceText: text,
		CreatedAt:  time.Now(),
	}
	if err := uow.EscalationRepository().Create(ctx, &escalation); err != nil {
		return assessment, false, fmt.Errorf("create escalation: %w", err)
	}

	if _, err := s.auditService.Record(ctx, constant.TrackGovernance, entity.EventRiskEscalation, string(assessment.Tier), map[string]interface{}{
		"policy":        constant.PolicySafetyEscalation,
		"escalation_id": escalation.Id.String(),
		"session_id":    sessionId,
		"triggers":      assessment.Triggers,
	}, caseId, nil); err != nil {
		return assessment, false, err
	}

	// Notification is best-effort: the escalation row is already committed.
	if s.emailService != nil && s.onCallEmail != "" {
		if err := s.emailService.SendEscalationAlert(s.onCallEmail, string(assessment.Tier), sessionId, assessment.Triggers); err != nil {
			s.logger.Warn("GOVERNANCE", "Escalation alert email failed", map[string]interface{}{
				"escalation_id": escalation.Id.String(),
				"error":         err.Error(),
			})
		}
	}

	return assessment, true, nil
}

func (s *governanceService) EnforceCitationPolicy(ctx context.Context, content string, evidenceRefs []*entity.EvidenceReference, caseId, draftId *uuid.UUID) (*policy.Verdict, error) {
	// Retrieval failure or empty corpus is a hard gate regardless of what
	// the content claims to cite.
	if len(evidenceRefs) == 0 {
		verdict := &policy.Verdict{
			Allowed: false,
			Reason:  "No evidence retrieved. Retrieval returned empty results. Cannot proceed without evidence base.",
			Validation: &policy.ValidationResult{
				CitedDocs: []string{},
			},
		}
		if err := s.recordCitationVerdict(ctx, verdict, "no_evidence_retrieved", nil, caseId, draftId); err != nil {
			return nil, err
		}
		return verdict, nil
	}

	validation := citation.Validate(content)

	if !validation.Valid {
		available := make([]string, len(evidenceRefs))
		for i, ref := range evidenceRefs {
			available[i] = ref.DocId
		}
		verdict := &policy.Verdict{
			Allowed: false,
			Reason: fmt.Sprintf("Draft missing citation marks. Found evidence: %s, but no [DOC:...] citations in content.",
				strings.Join(available, ", ")),
			Validation: validation,
		}
		if err := s.recordCitationVerdict(ctx, verdict, "missing_citation_marks", available, caseId, draftId); err != nil {
			return nil, err
		}
		return verdict, nil
	}

	verdict := &policy.Verdict{
		Allowed:    true,
		Reason:     "Citation policy satisfied",
		Validation: validation,
	}
	if err := s.recordCitationVerdict(ctx, verdict, "", nil, caseId, draftId); err != nil {
		return nil, err
	}
	return verdict, nil
}

func (s *governanceService) recordCitationVerdict(ctx context.Context, verdict *policy.Verdict, violation string, available []string, caseId, draftId *uuid.UUID) error {
	payload := map[string]interface{}{
		"policy":  constant.PolicyMandatoryCitations,
		"allowed": verdict.Allowed,
		"reason":  verdict.Reason,
	}
	riskTier := string(risk.TierLow)
	if !verdict.Allowed {
		payload["violation"] = violation
		payload["action"] = "block_write_back"
		riskTier = string(risk.TierHigh)
	}
	if available != nil {
		payload["evidence_available"] = available
	}

	_, err := s.auditService.Record(ctx, constant.TrackGovernance, entity.EventPolicyTrigger, riskTier, payload, caseId, draftId)
	return err
}

func (s *governanceService) CheckTransferEligibility(ctx context.Context, consentConfirmed, capsuleValid bool, caseStatus string, caseId *uuid.UUID) (*policy.Verdict, error) {
	blockers := make([]string, 0)

	if !consentConfirmed {
		blockers = append(blockers, "User consent not confirmed")
	}
	if !capsuleValid {
		blockers = append(blockers, "Intake capsule validation failed")
	}
	if caseStatus != entity.CaseStatusActive && caseStatus != entity.CaseStatusTransferred {
		blockers = append(blockers, fmt.Sprintf("Invalid case status: %s", caseStatus))
	}

	verdict := &policy.Verdict{
		Allowed:  len(blockers) == 0,
		Reason:   "Transfer allowed",
		Blockers: blockers,
	}
	if !verdict.Allowed {
		verdict.Reason = "Transfer blocked due to policy violations"
	}

	riskTier := string(risk.TierLow)
	if !verdict.Allowed {
		riskTier = string(risk.TierHigh)
	}
	if _, err := s.auditService.Record(ctx, constant.TrackGovernance, entity.EventPolicyTrigger, riskTier, map[string]interface{}{
		"policy":   constant.PolicyTransferGate,
		"allowed":  verdict.Allowed,
		"blockers": blockers,
	}, caseId, nil); err != nil {
		return nil, err
	}

	return verdict, nil
}

func (s *governanceService) ValidateWorkflowTransition(ctx context.Context, current, target workflow.Status, conditions map[string]bool) (*policy.Verdict, error) {
	verdict := workflow.ValidateTransition(current, target, conditions)

	riskTier := string(risk.TierLow)
	if !verdict.Allowed {
		riskTier = string(risk.TierHigh)
	}
	if _, err := s.auditService.Record(ctx, constant.TrackGovernance, entity.EventPolicyTrigger, riskTier, map[string]interface{}{
		"policy":             constant.PolicyWorkflowState,
		"allowed":            verdict.Allowed,
		"current":            string(current),
		"target":             string(target),
		"missing_conditions": verdict.MissingConditions,
	}, nil, nil); err != nil {
		return nil, err
	}

	return verdict, nil
}

// assessGuarded never lets a classifier panic escape as a low-risk result.
// Any internal failure resolves to the most conservative outcome.
func assessGuarded(text string, severityScore *int) (assessment risk.RiskAssessment) {
	defer func() {
		if r := recover(); r != nil {
			assessment = risk.RiskAssessment{
				Tier:              risk.TierHigh,
				Triggers:          []string{"HIGH: Classifier failure, conservative fallback"},
				Explanation:       "Automated screening failed internally; treating input as elevated risk.",
				RecommendedAction: "URGENT SUPPORT RECOMMENDED: Please consider speaking with a professional soon.",
			}
		}
	}()
	return risk.Assess(text, severityScore)
}

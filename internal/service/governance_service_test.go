package service

import (
	"context"
	"testing"

	"case-governance-be/internal/entity"
	"case-governance-be/pkg/risk"
	"case-governance-be/pkg/workflow"

	"github.com/stretchr/testify/assert"
)

type fakeMailer struct {
	sent int
}

func (m *fakeMailer) SendEscalationAlert(toEmail, riskTier, sessionId string, triggers []string) error {
	m.sent++
	return nil
}

func newTestGovernanceService(factory *fakeFactory, mail *fakeMailer) IGovernanceService {
	audit := NewAuditService(factory, nil, noopLogger{})
	return NewGovernanceService(factory, audit, mail, "oncall@example.org", noopLogger{})
}

func TestEnforceCitationPolicyEmptyEvidenceBlocks(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestGovernanceService(factory, &fakeMailer{})

	// Valid marker syntax cannot save a draft with no evidence behind it.
	verdict, err := svc.EnforceCitationPolicy(context.Background(),
		"Grounded claim [DOC:guideline_phq9].", nil, nil, nil)

	assert.NoError(t, err)
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "No evidence retrieved")
	assert.Len(t, factory.uow.audits.events, 1)
	assert.Equal(t, entity.EventPolicyTrigger, factory.uow.audits.events[0].EventType)
}

func TestEnforceCitationPolicyMissingMarkersBlocks(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestGovernanceService(factory, &fakeMailer{})

	refs := []*entity.EvidenceReference{
		{DocId: "guideline_phq9", Title: "PHQ-9"},
		{DocId: "protocol_crisis", Title: "Crisis"},
	}
	verdict, err := svc.EnforceCitationPolicy(context.Background(),
		"A claim with no citations at all.", refs, nil, nil)

	assert.NoError(t, err)
	assert.False(t, verdict.Allowed)
	assert.Contains(t, verdict.Reason, "guideline_phq9")
	assert.Contains(t, verdict.Reason, "protocol_crisis")
	assert.NotNil(t, verdict.Validation)
	assert.False(t, verdict.Validation.Valid)
}

func TestEnforceCitationPolicyAllows(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestGovernanceService(factory, &fakeMailer{})

	refs := []*entity.EvidenceReference{{DocId: "guideline_phq9"}}
	verdict, err := svc.EnforceCitationPolicy(context.Background(),
		"Administer the PHQ-9 at intake [DOC:guideline_phq9].", refs, nil, nil)

	assert.NoError(t, err)
	assert.True(t, verdict.Allowed)
	assert.Equal(t, []string{"guideline_phq9"}, verdict.Validation.CitedDocs)
	// Allowed verdicts are audited too.
	assert.Len(t, factory.uow.audits.events, 1)
}

func TestAssessAndEscalateHighTier(t *testing.T) {
	factory := newFakeFactory()
	mail := &fakeMailer{}
	svc := newTestGovernanceService(factory, mail)

	assessment, escalated, err := svc.AssessAndEscalate(context.Background(),
		"I want to end my life", nil, "session-1", nil)

	assert.NoError(t, err)
	assert.True(t, escalated)
	assert.Equal(t, risk.TierCritical, assessment.Tier)
	assert.Len(t, factory.uow.escalations.escalations, 1)
	assert.Equal(t, "session-1", factory.uow.escalations.escalations[0].SessionId)
	assert.Equal(t, 1, mail.sent)

	assert.Len(t, factory.uow.audits.events, 1)
	assert.Equal(t, entity.EventRiskEscalation, factory.uow.audits.events[0].EventType)
}

func TestAssessAndEscalateLowTierNoEscalation(t *testing.T) {
	factory := newFakeFactory()
	mail := &fakeMailer{}
	svc := newTestGovernanceService(factory, mail)

	assessment, escalated, err := svc.AssessAndEscalate(context.Background(),
		"I slept well and feel okay today.", nil, "session-2", nil)

	assert.NoError(t, err)
	assert.False(t, escalated)
	assert.Equal(t, risk.TierLow, assessment.Tier)
	assert.Empty(t, factory.uow.escalations.escalations)
	assert.Zero(t, mail.sent)
	assert.Empty(t, factory.uow.audits.events)
}

func TestCheckTransferEligibility(t *testing.T) {
	tests := []struct {
		name         string
		consent      bool
		capsule      bool
		status       string
		wantAllowed  bool
		wantBlockers int
	}{
		{"all conditions met", true, true, entity.CaseStatusActive, true, 0},
		{"transferred case can retry", true, true, entity.CaseStatusTransferred, true, 0},
		{"missing consent", false, true, entity.CaseStatusActive, false, 1},
		{"invalid capsule", true, false, entity.CaseStatusActive, false, 1},
		{"closed case", true, true, entity.CaseStatusClosed, false, 1},
		{"everything wrong", false, false, "bogus", false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := newFakeFactory()
			svc := newTestGovernanceService(factory, &fakeMailer{})

			verdict, err := svc.CheckTransferEligibility(context.Background(),
				tt.consent, tt.capsule, tt.status, nil)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, verdict.Allowed)
			assert.Len(t, verdict.Blockers, tt.wantBlockers)
			assert.Len(t, factory.uow.audits.events, 1)
		})
	}
}

func TestValidateWorkflowTransitionAudited(t *testing.T) {
	factory := newFakeFactory()
	svc := newTestGovernanceService(factory, &fakeMailer{})

	verdict, err := svc.ValidateWorkflowTransition(context.Background(),
		workflow.StatusSigned, workflow.StatusWrittenBack,
		map[string]bool{"signed": true, "policy_passed": false})

	assert.NoError(t, err)
	assert.False(t, verdict.Allowed)
	assert.Equal(t, []string{"policy_passed"}, verdict.MissingConditions)
	assert.Len(t, factory.uow.audits.events, 1)
}

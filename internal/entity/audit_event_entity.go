package entity

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types emitted by the governance services.
const (
	EventPolicyTrigger   = "policy_trigger"
	EventRiskEscalation  = "risk_escalation"
	EventDraftTransition = "draft_transition"
	EventDocumentIndexed = "document_indexed"
)

// AuditEvent is one entry in the governance audit trail. Writes are
// fire-and-verify: a policy verdict that depends on being recorded is not
// returned until the event row is committed.
type AuditEvent struct {
	Id        uuid.UUID
	Track     string
	EventType string
	RiskTier  string
	CaseId    *uuid.UUID
	DraftId   *uuid.UUID
	Payload   map[string]interface{}
	CreatedAt time.Time
}

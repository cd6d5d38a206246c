package entity

import (
	"time"

	"github.com/google/uuid"
)

// Escalation is the record created automatically when public-tier input is
// classified high or critical. It never blocks the underlying conversation.
type Escalation struct {
	Id           uuid.UUID
	CaseId       *uuid.UUID
	SessionId    string
	RiskTier     string
	Triggers     []string
	SourceText   string
	Acknowledged bool
	CreatedAt    time.Time
}

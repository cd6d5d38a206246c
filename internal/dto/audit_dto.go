package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListAuditEventsRequest struct {
	Track     string `query:"track"`
	EventType string `query:"event_type"`
	CaseId    string `query:"case_id"`
	Limit     int    `query:"limit"`
	Offset    int    `query:"offset"`
}

type AuditEventResponse struct {
	Id        uuid.UUID              `json:"id"`
	Track     string                 `json:"track"`
	EventType string                 `json:"event_type"`
	RiskTier  string                 `json:"risk_tier,omitempty"`
	CaseId    *uuid.UUID             `json:"case_id,omitempty"`
	DraftId   *uuid.UUID             `json:"draft_id,omitempty"`
	Payload   map[string]interface{} `json:"payload"`
	CreatedAt time.Time              `json:"created_at"`
}

type ListAuditEventsResponse struct {
	Events []*AuditEventResponse `json:"events"`
	Total  int64                 `json:"total"`
}

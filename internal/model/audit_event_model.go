package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Track     string         `gorm:"not null;index"`
	EventType string         `gorm:"not null;index"`
	RiskTier  string         `gorm:"index"`
	CaseId    *uuid.UUID     `gorm:"type:uuid;index"`
	DraftId   *uuid.UUID     `gorm:"type:uuid;index"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}

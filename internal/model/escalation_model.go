package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Escalation struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaseId       *uuid.UUID     `gorm:"type:uuid;index"`
	SessionId    string         `gorm:"index"`
	RiskTier     string         `gorm:"not null;index"`
	Triggers     datatypes.JSON `gorm:"type:jsonb"`
	SourceText   string         `gorm:"type:text"`
	Acknowledged bool           `gorm:"default:false"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
}

func (Escalation) TableName() string {
	return "escalations"
}

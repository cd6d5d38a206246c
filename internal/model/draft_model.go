package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Draft struct {
	Id                uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CaseId            uuid.UUID      `gorm:"type:uuid;not null;index"`
	Content           string         `gorm:"type:text"`
	Status            string         `gorm:"not null;default:'draft';index"`
	SignedBy          string         `gorm:""`
	PolicyCheckResult datatypes.JSON `gorm:"type:jsonb"`
	Version           int            `gorm:"not null;default:1"` // optimistic concurrency guard
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
}

func (Draft) TableName() string {
	return "drafts"
}

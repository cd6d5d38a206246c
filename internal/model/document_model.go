package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Document struct {
	Id        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocId     string          `gorm:"uniqueIndex;not null"`
	Title     string          `gorm:"not null"`
	Category  string          `gorm:"index"`
	Content   string          `gorm:"type:text"`
	Embedding pgvector.Vector `gorm:"type:vector(768)"` // dimension fixed by the embedding providers
	Active    bool            `gorm:"default:true;index"`
	CreatedAt time.Time       `gorm:"autoCreateTime"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Case struct {
	Id               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Track            string    `gorm:"not null;index"`
	Status           string    `gorm:"not null;default:'active'"`
	ConsentConfirmed bool      `gorm:"default:false"`
	CapsuleValid     bool      `gorm:"default:false"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`
}

func (Case) TableName() string {
	return "cases"
}

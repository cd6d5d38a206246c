package entity

import (
	"time"

	"github.com/google/uuid"
)

type Clinician struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

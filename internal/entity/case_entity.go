package entity

import (
	"time"

	"github.com/google/uuid"
)

// Case statuses accepted by the transfer eligibility policy.
const (
	CaseStatusActive      = "active"
	CaseStatusTransferred = "transferred"
	CaseStatusClosed      = "closed"
)

// Track identifies the trust tier a case belongs to.
const (
	TrackPublic    = "public"
	TrackClinician = "clinician"
)

type Case struct {
	Id               uuid.UUID
	Track            string
	Status           string
	ConsentConfirmed bool
	CapsuleValid     bool
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

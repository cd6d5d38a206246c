package dto

import (
	"time"

	"case-governance-be/pkg/policy"

	"github.com/google/uuid"
)

type CreateCaseRequest struct {
	Track string `json:"track" validate:"required,oneof=public clinician"`
}

type CaseResponse struct {
	Id               uuid.UUID `json:"id"`
	Track            string    `json:"track"`
	Status           string    `json:"status"`
	ConsentConfirmed bool      `json:"consent_confirmed"`
	CapsuleValid     bool      `json:"capsule_valid"`
	CreatedAt        time.Time `json:"created_at"`
}

type UpdateConsentRequest struct {
	ConsentConfirmed bool `json:"consent_confirmed"`
	CapsuleValid     bool `json:"capsule_valid"`
}

type TransferCaseResponse struct {
	Case    *CaseResponse   `json:"case"`
	Verdict *policy.Verdict `json:"verdict"`
}

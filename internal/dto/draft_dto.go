package dto

import (
	"time"

	"case-governance-be/internal/entity"
	"case-governance-be/pkg/policy"
	"case-governance-be/pkg/workflow"

	"github.com/google/uuid"
)

type CreateDraftRequest struct {
	CaseId  uuid.UUID `json:"case_id" validate:"required"`
	Content string    `json:"content"`
}

type CreateDraftResponse struct {
	Id     uuid.UUID       `json:"id"`
	Status workflow.Status `json:"status"`
}

type GenerateDraftRequest struct {
	Query    string `json:"query" validate:"required"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=10"`
	Category string `json:"category,omitempty"`
}

type GenerateDraftResponse struct {
	Id       uuid.UUID                   `json:"id"`
	Content  string                      `json:"content"`
	Evidence []*entity.EvidenceReference `json:"evidence"`
}

type DraftVerdictResponse struct {
	Id      uuid.UUID       `json:"id"`
	Status  workflow.Status `json:"status"`
	Verdict *policy.Verdict `json:"verdict"`
}

type ShowDraftResponse struct {
	Id        uuid.UUID       `json:"id"`
	CaseId    uuid.UUID       `json:"case_id"`
	Content   string          `json:"content"`
	Status    workflow.Status `json:"status"`
	SignedBy  string          `json:"signed_by,omitempty"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
}

package dto

import (
	"case-governance-be/internal/entity"
	"case-governance-be/pkg/risk"

	"github.com/google/uuid"
)

type AssessRiskRequest struct {
	Text          string `json:"text" validate:"required"`
	SeverityScore *int   `json:"severity_score,omitempty"`
}

type AssessRiskResponse struct {
	Assessment risk.RiskAssessment `json:"assessment"`
}

type RetrieveEvidenceRequest struct {
	Query    string `json:"query" validate:"required"`
	TopK     int    `json:"top_k" validate:"omitempty,min=1,max=20"`
	Category string `json:"category,omitempty"`
}

type RetrieveEvidenceResponse struct {
	Results []*entity.EvidenceReference `json:"results"`
}

type EnforceCitationsRequest struct {
	Content      string                      `json:"content" validate:"required"`
	EvidenceRefs []*entity.EvidenceReference `json:"evidence_refs"`
	CaseId       *uuid.UUID                  `json:"case_id,omitempty"`
	DraftId      *uuid.UUID                  `json:"draft_id,omitempty"`
}

type TransferEligibilityRequest struct {
	ConsentConfirmed bool       `json:"consent_confirmed"`
	CapsuleValid     bool       `json:"capsule_valid"`
	CaseStatus       string     `json:"case_status" validate:"required"`
	CaseId           *uuid.UUID `json:"case_id,omitempty"`
}

type ValidateTransitionRequest struct {
	CurrentStatus string          `json:"current_status" validate:"required"`
	TargetStatus  string          `json:"target_status" validate:"required"`
	Conditions    map[string]bool `json:"conditions"`
}

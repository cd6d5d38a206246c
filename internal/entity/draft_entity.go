package entity

import (
	"time"

	"case-governance-be/pkg/policy"
	"case-governance-be/pkg/workflow"

	"github.com/google/uuid"
)

// Draft is the one piece of mutable workflow state in the core. Status only
// ever changes through a validated transition committed with a version
// compare-and-set; Version guards against concurrent transitions on the
// same draft.
type Draft struct {
	Id                uuid.UUID
	CaseId            uuid.UUID
	Content           string
	Status            workflow.Status
	SignedBy          string
	PolicyCheckResult *policy.Verdict
	Version           int
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

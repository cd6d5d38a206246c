package unitofwork

import (
	"context"

	"case-governance-be/internal/repository/contract"
)

// UnitOfWork groups repositories over a shared connection or transaction.
// Begin/Commit/Rollback bracket multi-write operations (document indexing,
// check-then-commit draft transitions).
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DraftRepository() contract.DraftRepository
	CaseRepository() contract.CaseRepository
	EscalationRepository() contract.EscalationRepository
	AuditEventRepository() contract.AuditEventRepository
	ClinicianRepository() contract.ClinicianRepository
}

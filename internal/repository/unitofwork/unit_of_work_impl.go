package unitofwork

import (
	"context"
	"fmt"

	"case-governance-be/internal/repository/contract"
	"case-governance-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) DocumentRepository() contract.DocumentRepository {
	return implementation.NewDocumentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) DraftRepository() contract.DraftRepository {
	return implementation.NewDraftRepository(u.getDB())
}

func (u *UnitOfWorkImpl) CaseRepository() contract.CaseRepository {
	return implementation.NewCaseRepository(u.getDB())
}

func (u *UnitOfWorkImpl) EscalationRepository() contract.EscalationRepository {
	return implementation.NewEscalationRepository(u.getDB())
}

func (u *UnitOfWorkImpl) AuditEventRepository() contract.AuditEventRepository {
	return implementation.NewAuditEventRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ClinicianRepository() contract.ClinicianRepository {
	return implementation.NewClinicianRepository(u.getDB())
}

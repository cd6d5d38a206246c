package implementation

import (
	"context"
	"errors"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/mapper"
	"case-governance-be/internal/model"
	"case-governance-be/internal/repository/contract"
	"case-governance-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ClinicianRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ClinicianMapper
}

func NewClinicianRepository(db *gorm.DB) contract.ClinicianRepository {
	return &ClinicianRepositoryImpl{
		db:     db,
		mapper: mapper.NewClinicianMapper(),
	}
}

func (r *ClinicianRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ClinicianRepositoryImpl) Create(ctx context.Context, clinician *entity.Clinician) error {
	m := r.mapper.ToModel(clinician)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*clinician = *r.mapper.ToEntity(m)
	return nil
}

func (r *ClinicianRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Clinician, error) {
	var m model.Clinician
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

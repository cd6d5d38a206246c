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

type CaseRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CaseMapper
}

func NewCaseRepository(db *gorm.DB) contract.CaseRepository {
	return &CaseRepositoryImpl{
		db:     db,
		mapper: mapper.NewCaseMapper(),
	}
}

func (r *CaseRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CaseRepositoryImpl) Create(ctx context.Context, c *entity.Case) error {
	m := r.mapper.ToModel(c)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*c = *r.mapper.ToEntity(m)
	return nil
}

func (r *CaseRepositoryImpl) Update(ctx context.Context, c *entity.Case) error {
	m := r.mapper.ToModel(c)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*c = *r.mapper.ToEntity(m)
	return nil
}

func (r *CaseRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error) {
	var m model.Case
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CaseRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Case, error) {
	var models []*model.Case
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Case, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

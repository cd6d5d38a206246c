package implementation

import (
	"context"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/mapper"
	"case-governance-be/internal/model"
	"case-governance-be/internal/repository/contract"
	"case-governance-be/internal/repository/specification"

	"gorm.io/gorm"
)

type EscalationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EscalationMapper
}

func NewEscalationRepository(db *gorm.DB) contract.EscalationRepository {
	return &EscalationRepositoryImpl{
		db:     db,
		mapper: mapper.NewEscalationMapper(),
	}
}

func (r *EscalationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *EscalationRepositoryImpl) Create(ctx context.Context, escalation *entity.Escalation) error {
	m := r.mapper.ToModel(escalation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*escalation = *r.mapper.ToEntity(m)
	return nil
}

func (r *EscalationRepositoryImpl) Update(ctx context.Context, escalation *entity.Escalation) error {
	m := r.mapper.ToModel(escalation)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*escalation = *r.mapper.ToEntity(m)
	return nil
}

func (r *EscalationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Escalation, error) {
	var models []*model.Escalation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Escalation, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *EscalationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.Escalation{}).Count(&count).Error
	return count, err
}

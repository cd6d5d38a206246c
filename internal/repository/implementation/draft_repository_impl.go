package implementation

import (
	"context"
	"errors"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/mapper"
	"case-governance-be/internal/model"
	"case-governance-be/internal/repository/contract"
	"case-governance-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DraftRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DraftMapper
}

func NewDraftRepository(db *gorm.DB) contract.DraftRepository {
	return &DraftRepositoryImpl{
		db:     db,
		mapper: mapper.NewDraftMapper(),
	}
}

func (r *DraftRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *DraftRepositoryImpl) Create(ctx context.Context, draft *entity.Draft) error {
	m := r.mapper.ToModel(draft)
	if m.Version == 0 {
		m.Version = 1
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*draft = *r.mapper.ToEntity(m)
	return nil
}

func (r *DraftRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Draft, error) {
	var m model.Draft
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *DraftRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Draft, error) {
	var models []*model.Draft
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Draft, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

// UpdateCAS commits the draft guarded by an optimistic version check. Zero
// rows affected means a concurrent transition won the race.
func (r *DraftRepositoryImpl) UpdateCAS(ctx context.Context, draft *entity.Draft, expectedVersion int) error {
	m := r.mapper.ToModel(draft)

	result := r.db.WithContext(ctx).
		Model(&model.Draft{}).
		Where("id = ? AND version = ?", m.Id, expectedVersion).
		Updates(map[string]interface{}{
			"content":             m.Content,
			"status":              m.Status,
			"signed_by":           m.SignedBy,
			"policy_check_result": m.PolicyCheckResult,
			"version":             expectedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contract.ErrVersionConflict
	}

	draft.Version = expectedVersion + 1
	return nil
}

func (r *DraftRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Draft{}, id).Error
}

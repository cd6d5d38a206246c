package mapper

import (
	"time"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/model"
)

type CaseMapper struct{}

func NewCaseMapper() *CaseMapper {
	return &CaseMapper{}
}

func (m *CaseMapper) ToEntity(c *model.Case) *entity.Case {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Case{
		Id:               c.Id,
		Track:            c.Track,
		Status:           c.Status,
		ConsentConfirmed: c.ConsentConfirmed,
		CapsuleValid:     c.CapsuleValid,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

func (m *CaseMapper) ToModel(e *entity.Case) *model.Case {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Case{
		Id:               e.Id,
		Track:            e.Track,
		Status:           e.Status,
		ConsentConfirmed: e.ConsentConfirmed,
		CapsuleValid:     e.CapsuleValid,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        updatedAt,
	}
}

package mapper

import (
	"time"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/model"
)

type ClinicianMapper struct{}

func NewClinicianMapper() *ClinicianMapper {
	return &ClinicianMapper{}
}

func (m *ClinicianMapper) ToEntity(c *model.Clinician) *entity.Clinician {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Clinician{
		Id:           c.Id,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FullName:     c.FullName,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *ClinicianMapper) ToModel(e *entity.Clinician) *model.Clinician {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.Clinician{
		Id:           e.Id,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
		FullName:     e.FullName,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

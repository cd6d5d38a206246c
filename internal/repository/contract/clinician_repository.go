package contract

import (
	"context"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
)

type ClinicianRepository interface {
	Create(ctx context.Context, clinician *entity.Clinician) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Clinician, error)
}

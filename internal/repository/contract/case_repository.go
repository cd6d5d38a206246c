package contract

import (
	"context"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
)

type CaseRepository interface {
	Create(ctx context.Context, c *entity.Case) error
	Update(ctx context.Context, c *entity.Case) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Case, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Case, error)
}

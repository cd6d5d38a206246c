package contract

import (
	"context"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
)

type EscalationRepository interface {
	Create(ctx context.Context, escalation *entity.Escalation) error
	Update(ctx context.Context, escalation *entity.Escalation) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Escalation, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
)

type AuditEventRepository interface {
	Create(ctx context.Context, event *entity.AuditEvent) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditEvent, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

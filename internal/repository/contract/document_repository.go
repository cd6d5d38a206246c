package contract

import (
	"context"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"
)

type DocumentRepository interface {
	// Upsert writes a document together with its embedding, keyed by DocId.
	// The row is never partially written.
	Upsert(ctx context.Context, document *entity.Document) error
	Update(ctx context.Context, document *entity.Document) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	// FindAll returns documents in insertion order (created_at, id) so
	// ranking tie-breaks stay deterministic.
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

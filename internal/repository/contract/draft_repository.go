package contract

import (
	"context"
	"errors"

	"case-governance-be/internal/entity"
	"case-governance-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ErrVersionConflict means another transition committed between read and
// write. Retryable; distinct from a policy rejection.
var ErrVersionConflict = errors.New("draft version conflict")

type DraftRepository interface {
	Create(ctx context.Context, draft *entity.Draft) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Draft, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Draft, error)
	// UpdateCAS persists the draft only if the stored version still equals
	// expectedVersion, bumping the version on success. Returns
	// ErrVersionConflict otherwise.
	UpdateCAS(ctx context.Context, draft *entity.Draft, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

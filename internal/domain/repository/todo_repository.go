package repository

import (
	"context"

	"github.com/taskvault/taskvault/internal/domain/entity"
)

// TodoPatch carries the mutable fields of a partial todo update, already
// normalized: CompletedAt is non-nil exactly when Completed is true. A nil
// Text leaves the stored text unchanged.
type TodoPatch struct {
	Text        *string
	Completed   bool
	CompletedAt *int64
}

// TodoRepository defines the persistence gateway for todos. Every read and
// mutation is scoped to an owner; lookups for another owner's todo report
// ErrNotFound. Delete and Update are single atomic filter-and-mutate
// operations, never check-then-write.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Todo, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Todo, error)
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Todo, error)
	UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch TodoPatch) (*entity.Todo, error)
}

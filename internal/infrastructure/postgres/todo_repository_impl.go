package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskvault/taskvault/internal/domain/entity"
	"github.com/taskvault/taskvault/internal/domain/repository"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (owner_id, text)
		VALUES ($1, $2)
		RETURNING id, completed, completed_at, created_at
	`, t.OwnerID, t.Text)

	return row.Scan(&t.ID, &t.Completed, &t.CompletedAt, &t.CreatedAt)
}

func (r *TodoRepository) ListByOwner(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, owner_id, text, completed, completed_at, created_at
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at, id
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		var t entity.Todo
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, owner_id, text, completed, completed_at, created_at
		FROM todos
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)

	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// DeleteByIDAndOwner removes the todo in a single statement scoped to both id
// and owner, closing the race between an existence check and the delete.
func (r *TodoRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, text, completed, completed_at, created_at
	`, id, ownerID)

	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// UpdateByIDAndOwner applies an already-normalized patch in a single
// statement. A nil patch.Text keeps the stored text.
func (r *TodoRepository) UpdateByIDAndOwner(ctx context.Context, id, ownerID string, patch repository.TodoPatch) (*entity.Todo, error) {
	t := &entity.Todo{}
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET text = COALESCE($3, text), completed = $4, completed_at = $5
		WHERE id = $1 AND owner_id = $2
		RETURNING id, owner_id, text, completed, completed_at, created_at
	`, id, ownerID, patch.Text, patch.Completed, patch.CompletedAt)

	if err := row.Scan(&t.ID, &t.OwnerID, &t.Text, &t.Completed, &t.CompletedAt, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)

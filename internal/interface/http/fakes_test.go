package handlers_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskvault/taskvault/internal/domain/entity"
	"github.com/taskvault/taskvault/internal/domain/repository"
)

// fakeTodoRepo is an in-memory TodoRepository. idCalls counts id-scoped
// gateway calls so tests can prove malformed ids never reach persistence.
type fakeTodoRepo struct {
	mu      sync.Mutex
	todos   map[string]entity.Todo
	order   []string
	idCalls int
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[string]entity.Todo)}
}

func (r *fakeTodoRepo) Create(_ context.Context, t *entity.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now()
	r.todos[t.ID] = *t
	r.order = append(r.order, t.ID)
	return nil
}

func (r *fakeTodoRepo) ListByOwner(_ context.Context, ownerID string) ([]entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.Todo, 0)
	for _, id := range r.order {
		if t, ok := r.todos[id]; ok && t.OwnerID == ownerID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTodoRepo) GetByIDAndOwner(_ context.Context, id, ownerID string) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idCalls++
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTodoRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID string) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idCalls++
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	delete(r.todos, id)
	return &t, nil
}

func (r *fakeTodoRepo) UpdateByIDAndOwner(_ context.Context, id, ownerID string, patch repository.TodoPatch) (*entity.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idCalls++
	t, ok := r.todos[id]
	if !ok || t.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	if patch.Text != nil {
		t.Text = *patch.Text
	}
	t.Completed = patch.Completed
	t.CompletedAt = patch.CompletedAt
	r.todos[id] = t
	return &t, nil
}

func (r *fakeTodoRepo) idCallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.idCalls
}

// fakeUserRepo is an in-memory UserRepository with per-user token sequences.
type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]entity.User
	byEmail map[string]string
	tokens  map[string][]entity.UserToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   make(map[string]entity.User),
		byEmail: make(map[string]string),
		tokens:  make(map[string][]entity.UserToken),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[u.Email]; exists {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.users[id]
	return &u, nil
}

func (r *fakeUserRepo) GetByToken(_ context.Context, token string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for uid, seq := range r.tokens {
		for _, t := range seq {
			if t.Token == token {
				u := r.users[uid]
				return &u, nil
			}
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) AddToken(_ context.Context, userID, access, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[userID] = append(r.tokens[userID], entity.UserToken{
		UserID:    userID,
		Access:    access,
		Token:     token,
		CreatedAt: time.Now(),
	})
	return nil
}

func (r *fakeUserRepo) RemoveToken(_ context.Context, userID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	seq := r.tokens[userID]
	for i, t := range seq {
		if t.Token == token {
			r.tokens[userID] = append(seq[:i:i], seq[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserRepo) tokenCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens[userID])
}

func (r *fakeUserRepo) tokenValues(userID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.tokens[userID]))
	for _, t := range r.tokens[userID] {
		out = append(out, t.Token)
	}
	return out
}

package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskvault/taskvault/internal/domain/entity"
	"github.com/taskvault/taskvault/internal/domain/repository"
	"github.com/taskvault/taskvault/pkg/events"
)

// TodoService implements the todo operations on top of the persistence
// gateway. Ownership scoping is pushed down into the repository so that
// delete and update stay single atomic statements.
type TodoService struct {
	Repo   repository.TodoRepository
	Logger *logrus.Logger
	Events *events.Publisher
}

func NewTodoService(repo repository.TodoRepository, logger *logrus.Logger, pub *events.Publisher) *TodoService {
	return &TodoService{Repo: repo, Logger: logger, Events: pub}
}

// UpdateInput carries the only two mutable fields of a todo. Anything else a
// client submits is dropped before it reaches this type.
type UpdateInput struct {
	Text      *string
	Completed *bool
}

// normalizePatch derives the stored completion state from the submitted one:
// completed=true stamps CompletedAt with now, anything else forces
// completed=false and clears CompletedAt. The client never controls
// CompletedAt.
func normalizePatch(in UpdateInput, now time.Time) repository.TodoPatch {
	patch := repository.TodoPatch{Text: in.Text}
	if in.Completed != nil && *in.Completed {
		ms := now.UnixMilli()
		patch.Completed = true
		patch.CompletedAt = &ms
	}
	return patch
}

func (s *TodoService) Create(ctx context.Context, ownerID, text string) (*entity.Todo, error) {
	t := &entity.Todo{OwnerID: ownerID, Text: text}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Type: events.TypeTodoCreated, UserID: ownerID, TodoID: t.ID})
	return t, nil
}

func (s *TodoService) List(ctx context.Context, ownerID string) ([]entity.Todo, error) {
	return s.Repo.ListByOwner(ctx, ownerID)
}

func (s *TodoService) Get(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	return s.Repo.GetByIDAndOwner(ctx, id, ownerID)
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID string) (*entity.Todo, error) {
	t, err := s.Repo.DeleteByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.Event{Type: events.TypeTodoDeleted, UserID: ownerID, TodoID: t.ID})
	return t, nil
}

func (s *TodoService) Update(ctx context.Context, id, ownerID string, in UpdateInput) (*entity.Todo, error) {
	patch := normalizePatch(in, time.Now())
	t, err := s.Repo.UpdateByIDAndOwner(ctx, id, ownerID, patch)
	if err != nil {
		return nil, err
	}
	if patch.Completed {
		s.publish(ctx, events.Event{Type: events.TypeTodoCompleted, UserID: ownerID, TodoID: t.ID})
	}
	return t, nil
}

func (s *TodoService) publish(ctx context.Context, ev events.Event) {
	if err := s.Events.Publish(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("type", ev.Type).Warn("event publish failed")
	}
}

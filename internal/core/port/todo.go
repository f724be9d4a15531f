package port

import (
	"context"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/session"
)

// TodoRepository is the on-device local store: the single in-process owner of
// a user's todo set during a session.
type TodoRepository interface {
	GetAll(ctx context.Context, userID int) ([]domain.Todo, error)
	GetByUUID(ctx context.Context, uid string) (domain.Todo, error)
	Create(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	CreateAll(ctx context.Context, todos []domain.Todo) error
	UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error)
	DeleteByUUID(ctx context.Context, uid string) error
	DeleteAllForUser(ctx context.Context, userID int) error
}

type TodoService interface {
	List(ctx context.Context, sess *session.Session) ([]domain.Todo, error)
	Create(ctx context.Context, sess *session.Session, todo domain.Todo) (domain.Todo, error)
	Update(ctx context.Context, sess *session.Session, todo domain.Todo) (domain.Todo, error)
	ToggleDone(ctx context.Context, sess *session.Session, uid string) (domain.Todo, error)
	ToggleUrgent(ctx context.Context, sess *session.Session, uid string) (domain.Todo, error)
	Delete(ctx context.Context, sess *session.Session, uid string) error
}

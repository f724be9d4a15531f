package port

import (
	"context"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/session"
)

// RemoteDocument is one fetched document from a user's remote collection.
// The key is the document ID; Data carries the raw field map, where an
// explicit nil value means "no value" (distinct from a missing key).
type RemoteDocument struct {
	ID   string
	Data map[string]interface{}
}

// RemoteCollection is the per-user cloud document collection. Paths are
// scoped by the owner's identifier so two users never share data.
type RemoteCollection interface {
	Set(ctx context.Context, ownerUID, docID string, data map[string]interface{}) error
	Delete(ctx context.Context, ownerUID, docID string) error
	GetAll(ctx context.Context, ownerUID string) ([]RemoteDocument, error)
}

// SyncService mirrors the local store to and from the remote collection.
// It never holds its own copy of todos; it reads from and writes through
// the local store.
type SyncService interface {
	Push(ctx context.Context, sess *session.Session, todo domain.Todo)
	Delete(ctx context.Context, sess *session.Session, todo domain.Todo)
	PullAll(ctx context.Context, sess *session.Session, onComplete func()) error
	WipeLocal(ctx context.Context, sess *session.Session) error
	PushAllLocal(ctx context.Context, sess *session.Session)
}

package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/model/document"
	"doneapp/internal/core/port"
	"doneapp/internal/core/session"
	tel "doneapp/internal/core/telemetry"
)

// SyncService mirrors the local store to a per-user remote collection.
// Consistency is eventual and push-on-write: every local mutation issues one
// remote call, remote failures are logged and not retried, and the last
// write to land wins.
type SyncService struct {
	repo      port.TodoRepository
	remote    port.RemoteCollection
	telemetry port.Telemetry
}

func NewSyncService(repo port.TodoRepository, remote port.RemoteCollection, telemetry port.Telemetry) *SyncService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &SyncService{
		repo:      repo,
		remote:    remote,
		telemetry: telemetry,
	}
}

// Push upserts the remote document for one todo. Fire-and-forget: failures
// are logged, never retried, never surfaced.
func (ss *SyncService) Push(ctx context.Context, sess *session.Session, todo domain.Todo) {
	if !sess.Authenticated() || todo.UUID == uuid.Nil {
		return
	}

	data := document.Encode(todo)

	if err := ss.remote.Set(ctx, sess.UID, todo.UUID.String(), data); err != nil {
		ss.telemetry.RecordError(ctx, "sync.push", err, map[string]interface{}{"todo": todo.UUID.String()})
		slog.Error("Sync#Push", "error", err, "todo", todo.UUID)
		return
	}

	slog.Info("Sync#Push", "uploaded", todo.Title)
}

// Delete removes the remote document. No-op when unauthenticated or the
// todo has no identifier.
func (ss *SyncService) Delete(ctx context.Context, sess *session.Session, todo domain.Todo) {
	if !sess.Authenticated() || todo.UUID == uuid.Nil {
		return
	}

	if err := ss.remote.Delete(ctx, sess.UID, todo.UUID.String()); err != nil {
		ss.telemetry.RecordError(ctx, "sync.delete", err, map[string]interface{}{"todo": todo.UUID.String()})
		slog.Error("Sync#Delete", "error", err, "todo", todo.UUID)
	}
}

// PullAll wipes the local store, fetches the user's full remote collection,
// reconstructs a local todo per document and commits them. onComplete runs
// after the local commit. A local commit failure is unrecoverable and is
// returned to the caller; a fetch failure is not.
func (ss *SyncService) PullAll(ctx context.Context, sess *session.Session, onComplete func()) error {
	if !sess.Authenticated() {
		return nil
	}

	if err := ss.WipeLocal(ctx, sess); err != nil {
		return err
	}

	docs, err := ss.remote.GetAll(ctx, sess.UID)
	if err != nil {
		slog.Error("Sync#PullAll", "no documents found or error", err)
		if onComplete != nil {
			onComplete()
		}
		return nil
	}

	todos := make([]domain.Todo, 0, len(docs))
	for _, doc := range docs {
		todos = append(todos, document.Decode(doc.ID, doc.Data, sess.UserID))
	}

	if err := ss.repo.CreateAll(ctx, todos); err != nil {
		return err
	}

	ss.telemetry.RecordBusinessEvent(ctx, "pulled", "todo", "", sess.UserID, map[string]interface{}{"count": len(todos)})
	slog.Info("Sync#PullAll", "synced_from_cloud", len(todos))

	if onComplete != nil {
		onComplete()
	}

	return nil
}

// WipeLocal deletes every locally stored todo for the session's user and
// persists the empty state.
func (ss *SyncService) WipeLocal(ctx context.Context, sess *session.Session) error {
	if sess == nil {
		return nil
	}

	if err := ss.repo.DeleteAllForUser(ctx, sess.UserID); err != nil {
		slog.Error("Sync#WipeLocal", "error", err)
		return err
	}

	slog.Info("Sync#WipeLocal", "user", sess.UserID)

	return nil
}

// PushAllLocal uploads the entire local store, one push per todo.
func (ss *SyncService) PushAllLocal(ctx context.Context, sess *session.Session) {
	if !sess.Authenticated() {
		slog.Info("Sync#PushAllLocal", "skipped", "no user signed in")
		return
	}

	todos, err := ss.repo.GetAll(ctx, sess.UserID)
	if err != nil {
		slog.Error("Sync#PushAllLocal", "error", err)
		return
	}

	slog.Info("Sync#PushAllLocal", "starting_upload", len(todos))

	for _, todo := range todos {
		ss.Push(ctx, sess, todo)
	}
}

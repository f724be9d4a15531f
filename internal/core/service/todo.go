package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
	"doneapp/internal/core/session"
	tel "doneapp/internal/core/telemetry"
)

// TodoService owns the write path of the local store. Every create, edit,
// toggle and delete re-derives the todo's device alerts and issues one
// remote sync call, mirroring the add/edit forms and list quick actions.
type TodoService struct {
	repo      port.TodoRepository
	scheduler port.Scheduler
	sync      port.SyncService
	telemetry port.Telemetry
}

func NewTodoService(repo port.TodoRepository, scheduler port.Scheduler, syncSvc port.SyncService, telemetry port.Telemetry) *TodoService {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoService{
		repo:      repo,
		scheduler: scheduler,
		sync:      syncSvc,
		telemetry: telemetry,
	}
}

// List returns the user's todo set in display order: open items before done,
// urgent first, newest first.
func (ts *TodoService) List(ctx context.Context, sess *session.Session) ([]domain.Todo, error) {
	return ts.repo.GetAll(ctx, sess.UserID)
}

// Create persists a new todo with form defaults: not done, not urgent unless
// asked, title truncated at input time, date-only deadlines pinned to end of
// day, location fields only meaningful when a geofence was attached.
func (ts *TodoService) Create(ctx context.Context, sess *session.Session, todo domain.Todo) (domain.Todo, error) {
	now := time.Now()

	newTodo := domain.Todo{
		UUID:        uuid.New(),
		Title:       domain.TruncateTitle(strings.TrimSpace(todo.Title)),
		Description: todo.Description,
		IsUrgent:    todo.IsUrgent,
		IsDone:      false,
		CreatedAt:   now,

		DueDate: todo.DueDate,
		HasTime: todo.HasTime,

		ReminderDate: todo.ReminderDate,

		UserID: sess.UserID,
	}

	newTodo.NormalizeDueDate()

	if todo.HasLocation {
		newTodo.SetLocation(todo.Address, todo.Latitude, todo.Longitude, todo.NotifyOnEntry)
	}

	saved, err := ts.repo.Create(ctx, newTodo)
	if err != nil {
		slog.Error("Todo#Create", "error", err, "title", newTodo.Title)
		return domain.Todo{}, err
	}

	ts.sync.Push(ctx, sess, saved)
	ts.scheduler.Schedule(ctx, saved)

	return saved, nil
}

// Update rewrites an existing todo from edit-form state. Cleared fields
// clear their derived alerts on the reschedule.
func (ts *TodoService) Update(ctx context.Context, sess *session.Session, todo domain.Todo) (domain.Todo, error) {
	current, err := ts.repo.GetByUUID(ctx, todo.UUID.String())
	if err != nil {
		return domain.Todo{}, err
	}

	if !current.BelongsToUser(sess.UserID) {
		return domain.Todo{}, ErrNotOwner
	}

	current.Title = domain.TruncateTitle(strings.TrimSpace(todo.Title))
	current.Description = todo.Description
	current.IsUrgent = todo.IsUrgent
	current.DueDate = todo.DueDate
	current.HasTime = todo.HasTime
	current.ReminderDate = todo.ReminderDate
	current.NormalizeDueDate()

	if todo.HasLocation {
		current.SetLocation(todo.Address, todo.Latitude, todo.Longitude, todo.NotifyOnEntry)
	} else {
		current.ClearLocation()
	}

	updated, err := ts.repo.UpdateByUUID(ctx, current)
	if err != nil {
		slog.Error("Todo#Update", "error", err, "uuid", todo.UUID)
		return domain.Todo{}, err
	}

	ts.sync.Push(ctx, sess, updated)
	ts.scheduler.Schedule(ctx, updated)

	return updated, nil
}

// ToggleDone flips completion, keeping DoneAt in lockstep with IsDone.
func (ts *TodoService) ToggleDone(ctx context.Context, sess *session.Session, uid string) (domain.Todo, error) {
	return ts.toggle(ctx, sess, uid, func(todo *domain.Todo) {
		todo.SetDone(!todo.IsDone, time.Now())
	})
}

// ToggleUrgent flips the urgency flag.
func (ts *TodoService) ToggleUrgent(ctx context.Context, sess *session.Session, uid string) (domain.Todo, error) {
	return ts.toggle(ctx, sess, uid, func(todo *domain.Todo) {
		todo.IsUrgent = !todo.IsUrgent
	})
}

func (ts *TodoService) toggle(ctx context.Context, sess *session.Session, uid string, mutate func(*domain.Todo)) (domain.Todo, error) {
	todo, err := ts.repo.GetByUUID(ctx, uid)
	if err != nil {
		return domain.Todo{}, err
	}

	if !todo.BelongsToUser(sess.UserID) {
		return domain.Todo{}, ErrNotOwner
	}

	mutate(&todo)

	updated, err := ts.repo.UpdateByUUID(ctx, todo)
	if err != nil {
		return domain.Todo{}, err
	}

	ts.sync.Push(ctx, sess, updated)
	ts.scheduler.Schedule(ctx, updated)

	return updated, nil
}

// Delete removes the todo from the local store and the remote collection
// and drops its alerts.
func (ts *TodoService) Delete(ctx context.Context, sess *session.Session, uid string) error {
	todo, err := ts.repo.GetByUUID(ctx, uid)
	if err != nil {
		return err
	}

	if !todo.BelongsToUser(sess.UserID) {
		return ErrNotOwner
	}

	if err := ts.repo.DeleteByUUID(ctx, uid); err != nil {
		return err
	}

	ts.scheduler.Cancel(todo)
	ts.sync.Delete(ctx, sess, todo)

	ts.telemetry.RecordBusinessEvent(ctx, "deleted", "todo", uid, sess.UserID, nil)

	return nil
}

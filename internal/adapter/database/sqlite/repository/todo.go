package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"

	"doneapp/internal/adapter/database/sqlite"
	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
	tel "doneapp/internal/core/telemetry"
)

var todoColumns = []string{
	"uuid", "title", "description", "is_urgent", "is_done", "done_at",
	"created_at", "due_date", "has_time", "reminder_date",
	"has_location", "address", "latitude", "longitude", "radius",
	"notify_on_entry", "notify_on_exit", "user_id",
}

type TodoRepository struct {
	db        *sqlite.DB
	scanner   *sqlite.Scanner
	telemetry port.Telemetry
}

func NewTodoRepository(db *sqlite.DB, telemetry port.Telemetry) port.TodoRepository {
	if telemetry == nil {
		telemetry = tel.NewNoOpProbe()
	}

	return &TodoRepository{
		db:        db,
		scanner:   sqlite.NewScanner(),
		telemetry: telemetry,
	}
}

// GetAll returns the user's todos in display order: open before done,
// urgent first, newest first.
func (tr *TodoRepository) GetAll(ctx context.Context, userID int) ([]domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "GetAll", "todo", map[string]interface{}{
		"db.system": "sqlite",
		"db.table":  "todos",
		"user.id":   userID,
	})
	defer span.End()

	startTime := time.Now()

	query := tr.db.QueryBuilder.Select("*").
		From("todos").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("is_done ASC", "is_urgent DESC", "created_at DESC")

	sql, args, err := query.ToSql()
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		return nil, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "GetAll", "todo", sql, args)

	rows, err := tr.db.QueryContext(ctx, sql, args...)
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "GetAll", "todo", time.Since(startTime), err)
		return nil, err
	}
	defer rows.Close()

	todos := []domain.Todo{}
	if err := tr.scanner.ScanRowsToSlice(rows, &todos); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "GetAll", "todo", time.Since(startTime), err)
		return nil, err
	}

	span.SetAttributes(map[string]interface{}{"db.rows_returned": len(todos)})
	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "GetAll", "todo", time.Since(startTime), nil)

	return todos, nil
}

func (tr *TodoRepository) GetByUUID(ctx context.Context, uid string) (domain.Todo, error) {
	query := tr.db.QueryBuilder.Select("*").
		From("todos").
		Where(sq.Eq{"uuid": uid}).
		Limit(1)

	sql, args, err := query.ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	rows, err := tr.db.QueryContext(ctx, sql, args...)

	if err != nil {
		return domain.Todo{}, err
	}

	defer rows.Close()

	var todo domain.Todo
	if err := tr.scanner.ScanRowToStruct(rows, &todo); err != nil {
		return domain.Todo{}, err
	}

	return todo, nil
}

func (tr *TodoRepository) Create(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	ctx, span := tr.telemetry.StartRepositorySpan(ctx, "Create", "todo", map[string]interface{}{
		"db.system":    "sqlite",
		"db.table":     "todos",
		"db.operation": "INSERT",
		"todo.uuid":    todo.UUID.String(),
		"user.id":      todo.UserID,
	})
	defer span.End()

	startTime := time.Now()

	query, args, err := tr.db.QueryBuilder.Insert("todos").
		Columns(todoColumns...).
		Values(todoValues(todo)...).
		ToSql()

	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		slog.Error("Query build failed", "error", err)
		return domain.Todo{}, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "Create", "todo", query, args)

	if _, err := tr.db.ExecContext(ctx, query, args...); err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), err)
		slog.Error("Insert failed", "error", err, "uuid", todo.UUID)
		return domain.Todo{}, err
	}

	saved, err := tr.GetByUUID(ctx, todo.UUID.String())
	if err != nil {
		span.SetStatus("error", err.Error())
		span.RecordError(err)
		tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), err)
		return domain.Todo{}, err
	}

	tr.telemetry.RecordBusinessEvent(ctx, "created", "todo", saved.UUID.String(), saved.UserID, map[string]interface{}{
		"title":      saved.Title,
		"created_at": saved.CreatedAt,
	})

	span.SetStatus("ok", "")
	tr.telemetry.RecordRepositoryOperation(ctx, "Create", "todo", time.Since(startTime), nil)

	return saved, nil
}

// CreateAll commits a pulled snapshot in one transaction. Either every todo
// lands or none do; there is no compensating action for a partial commit.
func (tr *TodoRepository) CreateAll(ctx context.Context, todos []domain.Todo) error {
	tx, err := tr.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, todo := range todos {
		query, args, err := tr.db.QueryBuilder.Insert("todos").
			Columns(todoColumns...).
			Values(todoValues(todo)...).
			ToSql()

		if err != nil {
			tx.Rollback()
			return err
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (tr *TodoRepository) UpdateByUUID(ctx context.Context, todo domain.Todo) (domain.Todo, error) {
	query, args, err := tr.db.QueryBuilder.Update("todos").
		SetMap(updateMap(todo)).
		Where(sq.Eq{"uuid": todo.UUID.String()}).
		ToSql()

	if err != nil {
		return domain.Todo{}, err
	}

	tr.telemetry.RecordRepositoryQuery(ctx, "UpdateByUUID", "todo", query, args)

	result, err := tr.db.ExecContext(ctx, query, args...)
	if err != nil {
		return domain.Todo{}, err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return domain.Todo{}, fmt.Errorf("no todo updated with uuid %s", todo.UUID)
	}

	return tr.GetByUUID(ctx, todo.UUID.String())
}

func (tr *TodoRepository) DeleteByUUID(ctx context.Context, uid string) error {
	stmt, err := tr.db.PrepareContext(ctx, "DELETE FROM todos WHERE uuid = ?")

	if err != nil {
		return err
	}

	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, uid)

	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()

	if rowsAffected == 0 {
		return fmt.Errorf("todo with uuid %s not found", uid)
	}

	return nil
}

// DeleteAllForUser clears the user's entire local set, used on sign-out and
// ahead of a full pull.
func (tr *TodoRepository) DeleteAllForUser(ctx context.Context, userID int) error {
	query, args, err := tr.db.QueryBuilder.Delete("todos").
		Where(sq.Eq{"user_id": userID}).
		ToSql()

	if err != nil {
		return err
	}

	if _, err := tr.db.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return nil
}

func todoValues(todo domain.Todo) []interface{} {
	return []interface{}{
		todo.UUID.String(), todo.Title, todo.Description, todo.IsUrgent, todo.IsDone, todo.DoneAt,
		todo.CreatedAt, todo.DueDate, todo.HasTime, todo.ReminderDate,
		todo.HasLocation, todo.Address, todo.Latitude, todo.Longitude, todo.Radius,
		todo.NotifyOnEntry, todo.NotifyOnExit, todo.UserID,
	}
}

func updateMap(todo domain.Todo) map[string]interface{} {
	return map[string]interface{}{
		"title":           todo.Title,
		"description":     todo.Description,
		"is_urgent":       todo.IsUrgent,
		"is_done":         todo.IsDone,
		"done_at":         todo.DoneAt,
		"due_date":        todo.DueDate,
		"has_time":        todo.HasTime,
		"reminder_date":   todo.ReminderDate,
		"has_location":    todo.HasLocation,
		"address":         todo.Address,
		"latitude":        todo.Latitude,
		"longitude":       todo.Longitude,
		"radius":          todo.Radius,
		"notify_on_entry": todo.NotifyOnEntry,
		"notify_on_exit":  todo.NotifyOnExit,
	}
}

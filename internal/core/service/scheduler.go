package service

import (
	"context"
	"log/slog"
	"time"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/port"
)

const (
	fallbackAlertTitle = "Todo Reminder"
	fallbackAlertBody  = "You have a task due!"

	locationAlertTitle = "Arrived at Location"
)

// AlertScheduler derives the device alerts for a todo. Every create or edit
// re-invokes Schedule, which replaces whatever was pending for that todo.
type AlertScheduler struct {
	center port.AlertCenter
	now    func() time.Time
}

func NewAlertScheduler(center port.AlertCenter) *AlertScheduler {
	return &AlertScheduler{
		center: center,
		now:    time.Now,
	}
}

// NewAlertSchedulerWithClock pins evaluation time, for tests.
func NewAlertSchedulerWithClock(center port.AlertCenter, now func() time.Time) *AlertScheduler {
	return &AlertScheduler{
		center: center,
		now:    now,
	}
}

// Schedule recomputes the alert set for one todo: cancel both derived alert
// identifiers unconditionally, then re-add whichever alerts the current
// field values call for. Platform errors are logged and do not roll back
// the cancellation.
func (s *AlertScheduler) Schedule(ctx context.Context, todo domain.Todo) {
	timeID := todo.TimeAlertID()
	locID := todo.LocationAlertID()

	s.center.Remove(timeID, locID)

	if r := todo.ReminderDate; r != nil && r.After(s.now()) && !todo.IsDone {
		fireAt := atMinute(*r)

		req := port.AlertRequest{
			ID:     timeID,
			Title:  orFallback(todo.Title, fallbackAlertTitle),
			Body:   orFallback(todo.Description, fallbackAlertBody),
			FireAt: &fireAt,
		}

		if err := s.center.Add(ctx, req); err != nil {
			slog.Error("Scheduler#Schedule", "time_alert", err, "todo", todo.UUID)
		}
	}

	if todo.HasLocation && todo.Address != "" && !todo.IsDone {
		req := port.AlertRequest{
			ID:    locID,
			Title: locationAlertTitle,
			Body:  "Don't forget: " + orFallback(todo.Title, "Task"),
			Region: &port.Region{
				Latitude:      todo.Latitude,
				Longitude:     todo.Longitude,
				Radius:        domain.DefaultGeofenceRadius,
				NotifyOnEntry: todo.NotifyOnEntry,
				NotifyOnExit:  todo.NotifyOnExit,
			},
		}

		if err := s.center.Add(ctx, req); err != nil {
			slog.Error("Scheduler#Schedule", "location_alert", err, "todo", todo.UUID)
		}
	}
}

// Cancel drops both alerts for a todo, for use on deletion.
func (s *AlertScheduler) Cancel(todo domain.Todo) {
	s.center.Remove(todo.TimeAlertID(), todo.LocationAlertID())
}

// atMinute truncates the fire time to calendar minute precision, the
// granularity the reminder picker works at.
func atMinute(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxTitleLength is enforced at input time, matching the add/edit forms.
	MaxTitleLength = 27

	// DefaultGeofenceRadius is the fixed radius for location reminders, in meters.
	DefaultGeofenceRadius = 100.0
)

type Todo struct {
	ID    int
	UUID  uuid.UUID
	Title string `validate:"max=27"`

	Description string `validate:"max=1000"`

	IsUrgent bool
	IsDone   bool
	DoneAt   *time.Time

	CreatedAt time.Time

	// DueDate is normalized to 23:59:59 of the chosen day when HasTime is false.
	DueDate *time.Time
	HasTime bool

	ReminderDate *time.Time

	HasLocation   bool
	Address       string
	Latitude      float64
	Longitude     float64
	Radius        float64
	NotifyOnEntry bool
	NotifyOnExit  bool

	UserID int
}

// TruncateTitle applies the input-time title limit.
func TruncateTitle(title string) string {
	runes := []rune(title)

	if len(runes) > MaxTitleLength {
		return string(runes[:MaxTitleLength])
	}

	return title
}

// EndOfDay pins a date to 23:59:59 of the same calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// NormalizeDueDate re-pins the due date to end of day for date-only deadlines.
func (t *Todo) NormalizeDueDate() {
	if t.DueDate != nil && !t.HasTime {
		normalized := EndOfDay(*t.DueDate)
		t.DueDate = &normalized
	}
}

// SetDone flips the completion flag and keeps DoneAt in lockstep:
// DoneAt is non-nil if and only if IsDone is true.
func (t *Todo) SetDone(done bool, now time.Time) {
	t.IsDone = done

	if done {
		t.DoneAt = &now
	} else {
		t.DoneAt = nil
	}
}

// SetLocation attaches a geofence. Entry and exit triggers are mutually
// exclusive: exactly one is true whenever a geofence exists.
func (t *Todo) SetLocation(address string, lat, long float64, notifyOnEntry bool) {
	t.HasLocation = true
	t.Address = address
	t.Latitude = lat
	t.Longitude = long
	t.Radius = DefaultGeofenceRadius
	t.NotifyOnEntry = notifyOnEntry
	t.NotifyOnExit = !notifyOnEntry
}

// ClearLocation detaches the geofence. Stale coordinate values are ignored by
// the scheduler and the sync layer whenever HasLocation is false.
func (t *Todo) ClearLocation() {
	t.HasLocation = false
	t.Address = ""
	t.Latitude = 0
	t.Longitude = 0
	t.Radius = 0
	t.NotifyOnEntry = false
	t.NotifyOnExit = false
}

func (t *Todo) BelongsToUser(userID int) bool {
	return t.UserID == userID
}

// TimeAlertID and LocationAlertID are the stable device-alert identifiers
// derived from the todo's identity.
func (t *Todo) TimeAlertID() string {
	return t.UUID.String() + "-time"
}

func (t *Todo) LocationAlertID() string {
	return t.UUID.String() + "-location"
}

func (t *Todo) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"uuid":            t.UUID.String(),
		"title":           t.Title,
		"description":     t.Description,
		"is_urgent":       t.IsUrgent,
		"is_done":         t.IsDone,
		"done_at":         t.DoneAt,
		"created_at":      t.CreatedAt,
		"due_date":        t.DueDate,
		"has_time":        t.HasTime,
		"reminder_date":   t.ReminderDate,
		"has_location":    t.HasLocation,
		"address":         t.Address,
		"latitude":        t.Latitude,
		"longitude":       t.Longitude,
		"radius":          t.Radius,
		"notify_on_entry": t.NotifyOnEntry,
		"notify_on_exit":  t.NotifyOnExit,
		"user_id":         t.UserID,
	}
}

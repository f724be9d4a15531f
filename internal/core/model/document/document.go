// Package document defines the wire contract between a local todo and its
// remote document. Optional fields absent locally are written as explicit
// nil values, never omitted, so a field set once and later cleared is
// cleared remotely too.
package document

import (
	"time"

	"github.com/google/uuid"

	"doneapp/internal/core/domain"
)

// Field names in the remote document, shared by encode and decode.
const (
	FieldTitle         = "title"
	FieldDesc          = "desc"
	FieldIsDone        = "isDone"
	FieldIsUrgent      = "isUrgent"
	FieldCreatedAt     = "createdAt"
	FieldDoneAt        = "doneAt"
	FieldDueDate       = "dueDate"
	FieldReminderDate  = "reminderDate"
	FieldHasTime       = "hasTime"
	FieldHasLocation   = "hasLocation"
	FieldAddress       = "address"
	FieldRadius        = "radius"
	FieldLatitude      = "latitude"
	FieldLongitude     = "longitude"
	FieldNotifyOnEntry = "notifyOnEntry"
	FieldNotifyOnExit  = "notifyOnExit"
)

// Encode maps a todo onto its remote document payload. Latitude and
// longitude are written only while HasLocation is true; stale numeric
// values are masked with nil otherwise.
func Encode(todo domain.Todo) map[string]interface{} {
	data := map[string]interface{}{
		FieldTitle:     todo.Title,
		FieldDesc:      todo.Description,
		FieldIsDone:    todo.IsDone,
		FieldIsUrgent:  todo.IsUrgent,
		FieldCreatedAt: todo.CreatedAt,
		FieldDoneAt:    nilable(todo.DoneAt),

		FieldDueDate:      nilable(todo.DueDate),
		FieldReminderDate: nilable(todo.ReminderDate),
		FieldHasTime:      todo.HasTime,

		FieldHasLocation: todo.HasLocation,
		FieldAddress:     todo.Address,
		FieldRadius:      todo.Radius,

		FieldNotifyOnEntry: todo.NotifyOnEntry,
		FieldNotifyOnExit:  todo.NotifyOnExit,
	}

	if todo.HasLocation {
		data[FieldLatitude] = todo.Latitude
		data[FieldLongitude] = todo.Longitude
	} else {
		data[FieldLatitude] = nil
		data[FieldLongitude] = nil
	}

	return data
}

// Decode reconstructs a todo from a fetched document. The identifier is
// parsed from the document key, falling back to a fresh one when the key is
// not a valid UUID. Missing fields take defaults.
func Decode(docID string, data map[string]interface{}, userID int) domain.Todo {
	uid, err := uuid.Parse(docID)
	if err != nil {
		uid = uuid.New()
	}

	todo := domain.Todo{
		UUID:        uid,
		Title:       stringField(data, FieldTitle),
		Description: stringField(data, FieldDesc),
		IsDone:      boolField(data, FieldIsDone),
		IsUrgent:    boolField(data, FieldIsUrgent),
		CreatedAt:   timeOrZero(data, FieldCreatedAt),
		DoneAt:      timeField(data, FieldDoneAt),

		DueDate:      timeField(data, FieldDueDate),
		ReminderDate: timeField(data, FieldReminderDate),
		HasTime:      boolField(data, FieldHasTime),

		HasLocation: boolField(data, FieldHasLocation),
		Address:     stringField(data, FieldAddress),
		Latitude:    floatField(data, FieldLatitude),
		Longitude:   floatField(data, FieldLongitude),
		Radius:      floatField(data, FieldRadius),

		NotifyOnEntry: boolField(data, FieldNotifyOnEntry),
		NotifyOnExit:  boolField(data, FieldNotifyOnExit),

		UserID: userID,
	}

	if todo.HasLocation && todo.Radius == 0 {
		todo.Radius = domain.DefaultGeofenceRadius
	}

	// DoneAt mirrors IsDone, even for documents written by older clients.
	if !todo.IsDone {
		todo.DoneAt = nil
	} else if todo.DoneAt == nil {
		done := todo.CreatedAt
		todo.DoneAt = &done
	}

	return todo
}

func nilable(t *time.Time) interface{} {
	if t == nil {
		return nil
	}

	return *t
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}

	return ""
}

func boolField(data map[string]interface{}, key string) bool {
	if v, ok := data[key].(bool); ok {
		return v
	}

	return false
}

func floatField(data map[string]interface{}, key string) float64 {
	switch v := data[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}

	return 0
}

func timeField(data map[string]interface{}, key string) *time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return &v
	case *time.Time:
		return v
	}

	return nil
}

func timeOrZero(data map[string]interface{}, key string) time.Time {
	if t := timeField(data, key); t != nil {
		return *t
	}

	return time.Time{}
}

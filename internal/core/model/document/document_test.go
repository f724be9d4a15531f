package document

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"doneapp/internal/core/domain"
)

func TestEncode_AbsentFieldsAreExplicitNil(t *testing.T) {
	todo := domain.Todo{
		UUID:      uuid.New(),
		Title:     "Buy milk",
		CreatedAt: time.Now(),
	}

	data := Encode(todo)

	// Cleared optionals must be written as nil, not omitted.
	for _, key := range []string{FieldDoneAt, FieldDueDate, FieldReminderDate, FieldLatitude, FieldLongitude} {
		v, present := data[key]
		assert.True(t, present, "field %s must be present", key)
		assert.Nil(t, v, "field %s must be nil", key)
	}
}

func TestEncode_MasksStaleCoordinates(t *testing.T) {
	todo := domain.Todo{
		UUID:      uuid.New(),
		Title:     "Old geofence",
		Latitude:  43.65,
		Longitude: -79.38,
		// HasLocation false: numbers above are stale.
	}

	data := Encode(todo)

	assert.Nil(t, data[FieldLatitude])
	assert.Nil(t, data[FieldLongitude])
}

func TestEncodeDecode_RoundTripsEveryField(t *testing.T) {
	due := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)
	reminder := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	todo := domain.Todo{
		UUID:        uuid.New(),
		Title:       "Pick up package",
		Description: "At the front desk",
		IsUrgent:    true,
		CreatedAt:   created,
		DueDate:     &due,
		HasTime:     false,
		ReminderDate: &reminder,
	}
	todo.SetLocation("123 Main St", 43.65, -79.38, true)

	decoded := Decode(todo.UUID.String(), Encode(todo), 7)

	assert.Equal(t, todo.UUID, decoded.UUID)
	assert.Equal(t, todo.Title, decoded.Title)
	assert.Equal(t, todo.Description, decoded.Description)
	assert.True(t, decoded.IsUrgent)
	assert.False(t, decoded.IsDone)
	assert.Nil(t, decoded.DoneAt)
	assert.Equal(t, created, decoded.CreatedAt)
	assert.Equal(t, due, *decoded.DueDate)
	assert.Equal(t, reminder, *decoded.ReminderDate)
	assert.False(t, decoded.HasTime)
	assert.True(t, decoded.HasLocation)
	assert.Equal(t, "123 Main St", decoded.Address)
	assert.Equal(t, 43.65, decoded.Latitude)
	assert.Equal(t, -79.38, decoded.Longitude)
	assert.Equal(t, domain.DefaultGeofenceRadius, decoded.Radius)
	assert.True(t, decoded.NotifyOnEntry)
	assert.False(t, decoded.NotifyOnExit)
	assert.Equal(t, 7, decoded.UserID)
}

func TestDecode_UnparsableKeyGetsFreshIdentifier(t *testing.T) {
	decoded := Decode("not-a-uuid", map[string]interface{}{FieldTitle: "x"}, 1)

	assert.NotEqual(t, uuid.Nil, decoded.UUID)
}

func TestDecode_MissingFieldsTakeDefaults(t *testing.T) {
	decoded := Decode(uuid.New().String(), map[string]interface{}{}, 3)

	assert.Empty(t, decoded.Title)
	assert.False(t, decoded.IsDone)
	assert.Nil(t, decoded.DoneAt)
	assert.Nil(t, decoded.DueDate)
	assert.Nil(t, decoded.ReminderDate)
	assert.False(t, decoded.HasLocation)
	assert.Equal(t, 3, decoded.UserID)
}

func TestDecode_DoneAtMirrorsIsDone(t *testing.T) {
	created := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	stale := created.Add(time.Hour)

	t.Run("doneAt dropped when not done", func(t *testing.T) {
		decoded := Decode(uuid.New().String(), map[string]interface{}{
			FieldIsDone: false,
			FieldDoneAt: stale,
		}, 1)

		assert.Nil(t, decoded.DoneAt)
	})

	t.Run("doneAt backfilled when done", func(t *testing.T) {
		decoded := Decode(uuid.New().String(), map[string]interface{}{
			FieldIsDone:    true,
			FieldCreatedAt: created,
		}, 1)

		assert.NotNil(t, decoded.DoneAt)
	})
}

func TestDecode_GeofenceRadiusDefault(t *testing.T) {
	decoded := Decode(uuid.New().String(), map[string]interface{}{
		FieldHasLocation: true,
		FieldAddress:     "123 Main St",
		FieldLatitude:    43.65,
		FieldLongitude:   -79.38,
	}, 1)

	assert.Equal(t, domain.DefaultGeofenceRadius, decoded.Radius)
}

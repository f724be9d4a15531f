package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTruncateTitle(t *testing.T) {
	t.Run("should keep short titles unchanged", func(t *testing.T) {
		assert.Equal(t, "Buy milk", TruncateTitle("Buy milk"))
	})

	t.Run("should truncate to 27 characters", func(t *testing.T) {
		long := strings.Repeat("a", 40)

		truncated := TruncateTitle(long)

		assert.Equal(t, 27, len([]rune(truncated)))
	})

	t.Run("should count runes not bytes", func(t *testing.T) {
		long := strings.Repeat("é", 30)

		truncated := TruncateTitle(long)

		assert.Equal(t, 27, len([]rune(truncated)))
	})
}

func TestTodo_SetDone(t *testing.T) {
	t.Run("should set DoneAt when marking done", func(t *testing.T) {
		todo := Todo{}
		now := time.Now()

		todo.SetDone(true, now)

		assert.True(t, todo.IsDone)
		assert.NotNil(t, todo.DoneAt)
		assert.Equal(t, now, *todo.DoneAt)
	})

	t.Run("should clear DoneAt when marking undone", func(t *testing.T) {
		todo := Todo{}
		todo.SetDone(true, time.Now())

		todo.SetDone(false, time.Now())

		assert.False(t, todo.IsDone)
		assert.Nil(t, todo.DoneAt)
	})
}

func TestTodo_SetLocation(t *testing.T) {
	t.Run("should apply the default radius", func(t *testing.T) {
		todo := Todo{}

		todo.SetLocation("123 Main St", 43.65, -79.38, true)

		assert.True(t, todo.HasLocation)
		assert.Equal(t, DefaultGeofenceRadius, todo.Radius)
	})

	t.Run("entry and exit triggers are mutually exclusive", func(t *testing.T) {
		todo := Todo{}

		todo.SetLocation("123 Main St", 43.65, -79.38, true)
		assert.True(t, todo.NotifyOnEntry)
		assert.False(t, todo.NotifyOnExit)

		todo.SetLocation("123 Main St", 43.65, -79.38, false)
		assert.False(t, todo.NotifyOnEntry)
		assert.True(t, todo.NotifyOnExit)
	})

	t.Run("clearing resets coordinate fields", func(t *testing.T) {
		todo := Todo{}
		todo.SetLocation("123 Main St", 43.65, -79.38, true)

		todo.ClearLocation()

		assert.False(t, todo.HasLocation)
		assert.Empty(t, todo.Address)
		assert.Zero(t, todo.Latitude)
		assert.Zero(t, todo.Longitude)
		assert.False(t, todo.NotifyOnEntry)
		assert.False(t, todo.NotifyOnExit)
	})
}

func TestTodo_NormalizeDueDate(t *testing.T) {
	t.Run("should pin date-only deadlines to end of day", func(t *testing.T) {
		due := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
		todo := Todo{DueDate: &due, HasTime: false}

		todo.NormalizeDueDate()

		assert.Equal(t, time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC), *todo.DueDate)
	})

	t.Run("should keep explicit times untouched", func(t *testing.T) {
		due := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
		todo := Todo{DueDate: &due, HasTime: true}

		todo.NormalizeDueDate()

		assert.Equal(t, due, *todo.DueDate)
	})

	t.Run("should ignore absent deadlines", func(t *testing.T) {
		todo := Todo{}

		todo.NormalizeDueDate()

		assert.Nil(t, todo.DueDate)
	})
}

func TestTodo_AlertIDs(t *testing.T) {
	uid := uuid.New()
	todo := Todo{UUID: uid}

	assert.Equal(t, uid.String()+"-time", todo.TimeAlertID())
	assert.Equal(t, uid.String()+"-location", todo.LocationAlertID())
}

func TestTodo_BelongsToUser(t *testing.T) {
	todo := Todo{UserID: 123}

	assert.True(t, todo.BelongsToUser(123))
	assert.False(t, todo.BelongsToUser(456))
}

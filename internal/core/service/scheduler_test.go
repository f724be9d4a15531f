package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"doneapp/internal/core/domain"
	"doneapp/internal/core/service"
)

var schedulerNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func newScheduler(center *fakeAlertCenter) *service.AlertScheduler {
	return service.NewAlertSchedulerWithClock(center, func() time.Time { return schedulerNow })
}

func TestScheduler_FutureReminderSchedulesTimeAlert(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(2 * time.Hour).Add(30 * time.Second)
	todo := domain.Todo{
		UUID:         uuid.New(),
		Title:        "Call the dentist",
		Description:  "Reschedule the cleaning",
		ReminderDate: &reminder,
	}

	scheduler.Schedule(context.Background(), todo)

	req, found := center.get(todo.TimeAlertID())
	assert.True(t, found)
	assert.Equal(t, "Call the dentist", req.Title)
	assert.Equal(t, "Reschedule the cleaning", req.Body)

	// Seconds are dropped from the fire time.
	assert.Equal(t, schedulerNow.Add(2*time.Hour), *req.FireAt)
}

func TestScheduler_BlankFieldsGetFallbackStrings(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(time.Hour)
	todo := domain.Todo{UUID: uuid.New(), ReminderDate: &reminder}

	scheduler.Schedule(context.Background(), todo)

	req, _ := center.get(todo.TimeAlertID())
	assert.Equal(t, "Todo Reminder", req.Title)
	assert.Equal(t, "You have a task due!", req.Body)
}

func TestScheduler_PastReminderNotScheduled(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(-time.Minute)
	todo := domain.Todo{UUID: uuid.New(), Title: "too late", ReminderDate: &reminder}

	scheduler.Schedule(context.Background(), todo)

	assert.Empty(t, center.Pending())
}

func TestScheduler_ReminderAtExactlyNowNotScheduled(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow
	todo := domain.Todo{UUID: uuid.New(), Title: "boundary", ReminderDate: &reminder}

	scheduler.Schedule(context.Background(), todo)

	assert.Empty(t, center.Pending())
}

func TestScheduler_DoneTodoGetsNoAlerts(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(time.Hour)
	todo := domain.Todo{
		UUID:         uuid.New(),
		Title:        "already finished",
		IsDone:       true,
		ReminderDate: &reminder,
	}
	todo.SetLocation("1 Main St", 1, 2, true)

	scheduler.Schedule(context.Background(), todo)

	assert.Empty(t, center.Pending())
}

func TestScheduler_LocationAlert(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	todo := domain.Todo{UUID: uuid.New(), Title: "Pick up parcel"}
	todo.SetLocation("1 Main St", -23.55, -46.63, false)

	scheduler.Schedule(context.Background(), todo)

	req, found := center.get(todo.LocationAlertID())
	assert.True(t, found)
	assert.Equal(t, "Arrived at Location", req.Title)
	assert.Equal(t, "Don't forget: Pick up parcel", req.Body)
	assert.Nil(t, req.FireAt)
	assert.Equal(t, domain.DefaultGeofenceRadius, req.Region.Radius)
	assert.False(t, req.Region.NotifyOnEntry)
	assert.True(t, req.Region.NotifyOnExit)
}

func TestScheduler_LocationWithoutAddressNotScheduled(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	todo := domain.Todo{UUID: uuid.New(), Title: "nowhere"}
	todo.SetLocation("", 1, 2, true)

	scheduler.Schedule(context.Background(), todo)

	assert.Empty(t, center.Pending())
}

func TestScheduler_RescheduleReplacesPreviousAlerts(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(time.Hour)
	todo := domain.Todo{UUID: uuid.New(), Title: "moving target", ReminderDate: &reminder}
	todo.SetLocation("1 Main St", 1, 2, true)

	scheduler.Schedule(context.Background(), todo)
	assert.Len(t, center.Pending(), 2)

	// Edit clears the reminder and the geofence.
	todo.ReminderDate = nil
	todo.ClearLocation()

	scheduler.Schedule(context.Background(), todo)

	assert.Empty(t, center.Pending())
}

func TestScheduler_CancelRemovesBothAlerts(t *testing.T) {
	center := newFakeAlertCenter()
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(time.Hour)
	todo := domain.Todo{UUID: uuid.New(), Title: "going away", ReminderDate: &reminder}
	todo.SetLocation("1 Main St", 1, 2, true)

	scheduler.Schedule(context.Background(), todo)
	scheduler.Cancel(todo)

	assert.Empty(t, center.Pending())
}

func TestScheduler_AddErrorDoesNotPanic(t *testing.T) {
	center := newFakeAlertCenter()
	center.addErr = assert.AnError
	scheduler := newScheduler(center)

	reminder := schedulerNow.Add(time.Hour)
	todo := domain.Todo{UUID: uuid.New(), Title: "flaky platform", ReminderDate: &reminder}

	scheduler.Schedule(context.Background(), todo)

	assert.Empty(t, center.Pending())
}

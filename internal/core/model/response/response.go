package response

import (
	"time"

	"github.com/google/uuid"

	"doneapp/internal/core/domain"
)

type UserResponse struct {
	UUID      string    `json:"uuid,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

type TodoResponse struct {
	UUID        uuid.UUID `json:"uuid"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	IsUrgent    bool      `json:"is_urgent"`
	IsDone      bool      `json:"is_done"`

	DoneAt    *time.Time `json:"done_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`

	DueDate *time.Time `json:"due_date,omitempty"`
	HasTime bool       `json:"has_time"`

	ReminderDate *time.Time `json:"reminder_date,omitempty"`

	HasLocation   bool    `json:"has_location"`
	Address       string  `json:"address,omitempty"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	Radius        float64 `json:"radius,omitempty"`
	NotifyOnEntry bool    `json:"notify_on_entry,omitempty"`
	NotifyOnExit  bool    `json:"notify_on_exit,omitempty"`
}

func NewTodoResponse(todo domain.Todo) TodoResponse {
	return TodoResponse{
		UUID:        todo.UUID,
		Title:       todo.Title,
		Description: todo.Description,
		IsUrgent:    todo.IsUrgent,
		IsDone:      todo.IsDone,
		DoneAt:      todo.DoneAt,
		CreatedAt:   todo.CreatedAt,

		DueDate: todo.DueDate,
		HasTime: todo.HasTime,

		ReminderDate: todo.ReminderDate,

		HasLocation:   todo.HasLocation,
		Address:       todo.Address,
		Latitude:      todo.Latitude,
		Longitude:     todo.Longitude,
		Radius:        todo.Radius,
		NotifyOnEntry: todo.NotifyOnEntry,
		NotifyOnExit:  todo.NotifyOnExit,
	}
}

type RegionResponse struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Radius        float64 `json:"radius"`
	NotifyOnEntry bool    `json:"notify_on_entry"`
	NotifyOnExit  bool    `json:"notify_on_exit"`
}

type AlertResponse struct {
	ID     string          `json:"id"`
	Title  string          `json:"title"`
	Body   string          `json:"body"`
	FireAt *time.Time      `json:"fire_at,omitempty"`
	Region *RegionResponse `json:"region,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ResponseError struct {
	Code    string            `json:"code"`
	Errors  []ValidationError `json:"errors"`
	Details any               `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error ResponseError `json:"error"`
}

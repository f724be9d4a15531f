package request

import "time"

type SignUpRequest struct {
	Email                string `json:"email,omitempty" validate:"required,email,max=255"`
	Password             string `json:"password,omitempty" validate:"required,min=6,max=100"`
	PasswordConfirmation string `json:"password_confirmation,omitempty" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email,omitempty" validate:"required,email,max=255"`
	Password string `json:"password,omitempty" validate:"required,min=6,max=100"`
}

type TodoRequest struct {
	Title       string `json:"title,omitempty" validate:"required,max=255"`
	Description string `json:"description,omitempty" validate:"max=1000"`
	IsUrgent    bool   `json:"is_urgent,omitempty"`

	DueDate *time.Time `json:"due_date,omitempty"`
	HasTime bool       `json:"has_time,omitempty"`

	ReminderDate *time.Time `json:"reminder_date,omitempty"`

	HasLocation   bool    `json:"has_location,omitempty"`
	Address       string  `json:"address,omitempty" validate:"required_if=HasLocation true"`
	Latitude      float64 `json:"latitude,omitempty"`
	Longitude     float64 `json:"longitude,omitempty"`
	NotifyOnEntry bool    `json:"notify_on_entry,omitempty"`
}

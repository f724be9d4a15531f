package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
)

func NewTodo[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{}

	if !hasKey(customData, "UUID") {
		defaults["UUID"] = uuid.New()
	}

	if !hasKey(customData, "CreatedAt") {
		defaults["CreatedAt"] = time.Now().UTC()
	}

	for _, flag := range []string{"IsDone", "IsUrgent", "HasTime", "HasLocation", "NotifyOnEntry", "NotifyOnExit"} {
		if !hasKey(customData, flag) {
			defaults[flag] = false
		}
	}

	customData = append(customData, defaults)

	return instance.Build(customData...)
}

package factory

import (
	"time"

	fab "github.com/Goldziher/fabricator"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// hasKey reports whether any override map already sets the field.
func hasKey(customData []map[string]any, key string) bool {
	for _, data := range customData {
		if _, exists := data[key]; exists {
			return true
		}
	}

	return false
}

func NewUser[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	defaults := map[string]any{}

	if !hasKey(customData, "UUID") {
		defaults["UUID"] = uuid.New()
	}

	if !hasKey(customData, "CreatedAt") {
		defaults["CreatedAt"] = time.Now().UTC()
	}

	if !hasKey(customData, "UpdatedAt") {
		defaults["UpdatedAt"] = time.Now().UTC()
	}

	if !hasKey(customData, "EncryptedPassword") {
		encryptedPassword, _ := bcrypt.GenerateFromPassword([]byte("12345678"), bcrypt.DefaultCost)
		defaults["EncryptedPassword"] = string(encryptedPassword)
	}

	customData = append(customData, defaults)

	return instance.Build(customData...)
}

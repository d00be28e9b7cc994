package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// nowFunc is replaced in tests that need a fixed clock.
var nowFunc = time.Now

func validatePositiveInt(name string, value *int) error {
	if value != nil && *value <= 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validateNonNegativeFloat(name string, value float64) error {
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

func requireUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	return userID, nil
}

// resolveDate validates a YYYY-MM-DD date, defaulting to today in local time.
func resolveDate(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nowFunc().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
	}
	return raw, nil
}

func validateOptionalDate(name, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("invalid %s %q (expected YYYY-MM-DD)", name, raw)
	}
	return nil
}

func newID() string {
	return uuid.NewString()
}


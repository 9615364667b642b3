package app

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound covers both missing records and records owned by someone else.
	ErrNotFound = errors.New("not found")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// requireCaller is the authentication gate every operation runs first.
func requireCaller(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrUnauthorized
	}
	return nil
}

func checkLength(field string, value *string, max int) error {
	if value != nil && utf8.RuneCountInString(*value) > max {
		return invalidInput("%s must be at most %d characters", field, max)
	}
	return nil
}

// normalizeOptional trims an optional string; blank collapses to nil.
func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

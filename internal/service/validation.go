package service

import "strings"

// ValidationError marks a save blocked by a missing required field. The web
// layer maps it to a 400 instead of a generic failure.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field}
	}
	return nil
}

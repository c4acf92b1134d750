package domain

import "strings"

// ValidationError reports invalid input to a domain operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Message
	}
	return "validation: " + e.Field + ": " + e.Message
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

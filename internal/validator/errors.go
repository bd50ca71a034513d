package validator

import (
	"fmt"
	"strings"
)

// FieldError is one violated rule, attached to the field the user must fix.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError aggregates the first violation of every offending path.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Path == "" {
			parts = append(parts, fe.Message)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s at %q", fe.Message, fe.Path))
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// Fields returns the errors keyed by path.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.Errors))
	for _, fe := range e.Errors {
		out[fe.Path] = fe.Message
	}
	return out
}

// Message returns the message recorded for path, if any.
func (e *ValidationError) Message(path string) (string, bool) {
	for _, fe := range e.Errors {
		if fe.Path == path {
			return fe.Message, true
		}
	}
	return "", false
}

// Package errs defines the application error taxonomy shared by the domain packages and the HTTP edge.
package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials is returned when an email/password pair is not in the credential list.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyRegistered is returned by sign-up for an email that already exists.
	ErrEmailAlreadyRegistered = errors.New("user with this email already exists")
	// ErrNotFound is wrapped by lookups of unknown events, sessions, questions or poll options.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyVoted is returned when a viewer votes twice on the same poll.
	ErrAlreadyVoted = errors.New("already voted on this poll")
	// ErrEmptyContent is returned when a chat message or question is blank.
	ErrEmptyContent = errors.New("content must not be empty")
	// ErrConflict is returned when a resource already exists (e.g. a ticket for the same event).
	ErrConflict = errors.New("already exists")
	// ErrForbidden is returned when the caller's role may not perform an operation.
	ErrForbidden = errors.New("forbidden")
)

// NotFound wraps ErrNotFound with the kind and id of the missing resource.
func NotFound(kind, id string) error {
	return fmt.Errorf("%s %q: %w", kind, id, ErrNotFound)
}

// FieldError is a validation failure attached to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the field-level errors of a rejected form.
type ValidationError struct {
	Fields []FieldError
}

// Invalid builds a ValidationError for a single field.
func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "" when the field is valid.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// AsValidation unwraps err into a *ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package service

import (
	"errors"
	"fmt"
	"strings"
)

// Error classes surfaced by the service. Callers match them with errors.Is.
var (
	// ErrNotFound: the referenced expert or reservation does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict: the slot is already reserved. Retrying cannot succeed.
	ErrConflict = errors.New("conflict")
	// ErrInvalidInput: one or more request fields are malformed. The
	// concrete error is a *ValidationError listing every violation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnavailable: the store could not be reached. Details are logged
	// by the caller and not shown to clients.
	ErrUnavailable = errors.New("service unavailable")
)

var (
	ErrExpertNotFound      = fmt.Errorf("expert %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
	ErrSlotTaken           = fmt.Errorf("slot already booked: %w", ErrConflict)
)

// FieldError is a single violated input constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every violated field of a request. It matches
// ErrInvalidInput.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
}

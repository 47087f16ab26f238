package derive

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("master secret and service name are required")
	ErrHashUnavailable = errors.New("hash function unavailable")
	ErrUnknownScheme   = errors.New("unknown derivation scheme")
)

// Input field names reported by EmptyInputError.
const (
	FieldSecret  = "secret"
	FieldService = "service"
	FieldKey     = "key"
)

// EmptyInputError reports which input was empty after trimming.
// It matches ErrEmptyInput with errors.Is.
type EmptyInputError struct {
	Field string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty %s: %s", e.Field, ErrEmptyInput)
}

func (e *EmptyInputError) Is(target error) bool {
	return target == ErrEmptyInput
}

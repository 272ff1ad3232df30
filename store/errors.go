package store

import (
	"strings"

	"github.com/goliatone/go-errors"
)

// ErrDuplicateUser is returned when a username or email is already taken.
// The API reports this as a validation failure rather than a conflict,
// matching the historic surface.
var ErrDuplicateUser = errors.New("username or email already registered", errors.CategoryConflict).
	WithCode(errors.CodeConflict).
	WithTextCode("DUPLICATE_IDENTITY")

// IsUniqueViolation reports whether err is a unique constraint failure from
// the database. Matched on the driver message, sqlite and postgres phrase
// it differently.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// NewRecordNotFound builds the not found error used across the repositories.
func NewRecordNotFound(kind, id string) *errors.Error {
	return errors.New(kind+" not found", errors.CategoryNotFound).
		WithCode(errors.CodeNotFound).
		WithMetadata(map[string]any{"id": id})
}

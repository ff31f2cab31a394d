// Package repository defines error values that are reused across
// repositories and services. These sentinel values allow higher layers
// such as handlers to distinguish between failure scenarios and map
// them onto HTTP status codes without string matching.
package repository

import (
	"errors"
	"fmt"
)

// ErrValidation is returned when a write operation receives malformed
// or incomplete input, such as a weekly schedule with missing days or
// an invite without a guest email. Handlers should translate this
// into an HTTP 400 response.
var ErrValidation = errors.New("validation failed")

// ErrRequiresAvailability is returned when an artist attempts to open
// their books while their weekly schedule contains no open day.
// Handlers should translate this into an HTTP 422 response and prompt
// the artist to set working hours first.
var ErrRequiresAvailability = errors.New("working hours required before opening books")

// ErrNotFound is returned when a requested record does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as redeeming an invite that has already been
// redeemed. Handlers should translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrTransientFetch classifies a read failure against a backing store
// or upstream calendar. Callers computing availability absorb it by
// degrading to an empty result set rather than aborting, so a flaky
// dependency hides some information instead of blanking the page.
var ErrTransientFetch = errors.New("transient fetch failure")

// ValidationError carries field-level detail for a validation failure.
// It matches ErrValidation under errors.Is so handlers can keep a
// single branch for all 400-class failures.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid builds a field-scoped ValidationError.
func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

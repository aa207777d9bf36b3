/*
errors.go - Centralized error types for the booking engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers (HTTP layer, CLI) map these onto their own status codes.

ERROR CATEGORIES:
  1. Validation errors    - malformed or policy-violating input
  2. Not-found errors     - referenced resource/reservation missing
  3. Conflict errors      - window collides with a block or reservation
  4. State errors         - illegal lifecycle transition
  5. Authorization errors - actor lacks role or ownership
  6. System errors        - lock/persistence failure

USAGE:
  if errors.Is(err, booking.ErrConflict) {
      var ce *booking.ConflictError
      errors.As(err, &ce)
      // ce.Conflicts carries the colliding windows for display
  }

SEE ALSO:
  - engine.go: Produces these errors
  - api/handlers.go: Maps them to HTTP status codes
*/
package booking

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrValidation is returned for malformed or policy-violating input.
	// Always recoverable by resubmitting corrected input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when a referenced resource or reservation
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a requested or re-checked window overlaps
	// an existing block or active reservation.
	ErrConflict = errors.New("window conflict")

	// ErrState is returned when a transition is illegal from the current status.
	ErrState = errors.New("illegal state transition")

	// ErrUnauthorized is returned when the actor is not the reservation owner
	// or lacks the admin role.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrSystem is returned for lock-wait timeouts and persistence failures.
	// Retry policy belongs to the caller, not the engine.
	ErrSystem = errors.New("system error")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ValidationError describes which policy rule the proposed window violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConflictKind distinguishes the two conflict sources. Block conflicts take
// priority and are reported as a distinct failure mode.
type ConflictKind string

const (
	ConflictBlock       ConflictKind = "block"
	ConflictReservation ConflictKind = "reservation"
)

// ConflictError carries the colliding window(s) for caller display.
type ConflictError struct {
	ResourceID ResourceID
	Kind       ConflictKind
	Requested  Window
	Conflicts  []Window
}

func (e *ConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return fmt.Sprintf("resource %s unavailable for [%s, %s)", e.ResourceID,
			e.Requested.Start.Format("2006-01-02 15:04"), e.Requested.End.Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("resource %s: requested [%s, %s) overlaps %s [%s, %s)",
		e.ResourceID,
		e.Requested.Start.Format("2006-01-02 15:04"), e.Requested.End.Format("2006-01-02 15:04"),
		e.Kind,
		e.Conflicts[0].Start.Format("2006-01-02 15:04"), e.Conflicts[0].End.Format("2006-01-02 15:04"))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// StateError names the current and requested states of an illegal transition.
type StateError struct {
	ReservationID ReservationID
	Current       ReservationStatus
	Requested     ReservationStatus
}

func (e *StateError) Error() string {
	return fmt.Sprintf("reservation %s: cannot transition from %s to %s",
		e.ReservationID, e.Current, e.Requested)
}

func (e *StateError) Unwrap() error { return ErrState }

// NotFoundError identifies the missing record.
type NotFoundError struct {
	Kind string // "resource" or "reservation"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// UnauthorizedError names the actor and the operation it may not perform.
type UnauthorizedError struct {
	ActorID   string
	Operation string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("actor %s is not allowed to %s", e.ActorID, e.Operation)
}

func (e *UnauthorizedError) Unwrap() error { return ErrUnauthorized }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input
// or a recoverable condition (HTTP 4xx territory).
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrState) ||
		errors.Is(err, ErrUnauthorized)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict returns true if the error indicates a window collision.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

func systemErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrSystem, err)
}

/*
Package booking provides the core reservation and availability engine.

PURPOSE:
  This package contains the domain types and algorithms for conflict-free
  booking of shared physical resources (rooms, equipment). It enforces the
  reservation lifecycle, detects interval conflicts against blackout blocks
  and active reservations, and serializes check-then-write operations per
  resource so double-booking is impossible under concurrency.

KEY CONCEPTS IN THIS FILE (types.go):
  - Resource:    A bookable facility (read-only to the engine, lock anchor)
  - Block:       An administrator-defined blackout window (hard conflict)
  - Reservation: A requester's claim on a resource for a time window
  - LogEntry:    An immutable audit record of a lifecycle transition

DESIGN PRINCIPLES:
  1. Half-open intervals: every window is [start, end), so back-to-back
     bookings on the same resource never conflict.
  2. No physical deletes: cancellation and rejection are status changes,
     preserving the audit trail and historical occupancy.
  3. Type safety: strong ID types prevent mixing resource/reservation IDs.

SEE ALSO:
  - policy.go:     Window validation rules
  - conflict.go:   Interval-overlap conflict detection
  - transition.go: Legal status transitions
  - engine.go:     Public operations tying it all together
*/
package booking

import "time"

// =============================================================================
// IDENTIFIERS
// =============================================================================

type ResourceID string
type ReservationID string
type BlockID string

// SystemActor is recorded as the approver on auto-approved reservations.
const SystemActor = "SYSTEM"

// =============================================================================
// RESOURCE - Bookable facility
// =============================================================================

// Resource is a bookable facility or piece of equipment. The engine treats
// resources as read-only configuration: they are created by administration
// and only ever serve as the mutual-exclusion anchor for bookings.
type Resource struct {
	ID               ResourceID
	Name             string
	Type             string
	Capacity         int
	IsActive         bool
	RequiresApproval bool
	DefaultEquipment []string
	CreatedAt        time.Time
}

// =============================================================================
// BLOCK - Blackout window
// =============================================================================

// Block is an administrator-defined blackout window (maintenance, cleaning)
// during which a resource cannot be booked. Blocks are immutable once created
// and always count as a hard conflict, regardless of reservation status.
type Block struct {
	ID         BlockID
	ResourceID ResourceID
	Start      time.Time
	End        time.Time
	Reason     string
	CreatedAt  time.Time
}

// =============================================================================
// RESERVATION - Lifecycle-bearing claim on a resource
// =============================================================================

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCompleted ReservationStatus = "completed"
)

// Active reports whether the status still occupies the resource.
// Only Pending and Approved reservations participate in conflict detection.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusApproved
}

// Terminal reports whether the status admits no further transitions.
func (s ReservationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// Valid reports whether s is one of the five known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Reservation is a requester's claim on a resource for a half-open time
// window [StartTime, EndTime). Reservations are only mutated through the
// engine's state machine and are never physically deleted.
type Reservation struct {
	ID                 ReservationID
	ResourceID         ResourceID
	RequesterID        string
	StartTime          time.Time
	EndTime            time.Time
	PartySize          int
	Purpose            string
	RequestedEquipment []string
	Status             ReservationStatus

	// Decision tracking. ApprovedBy/ApprovedAt are set iff the reservation
	// has passed through Approved (SystemActor for auto-approval).
	AdminNote       string
	RejectionReason string
	ApprovedBy      string
	ApprovedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the reservation's half-open interval.
func (r *Reservation) Window() Window {
	return Window{Start: r.StartTime, End: r.EndTime}
}

// =============================================================================
// WINDOW - Half-open time interval
// =============================================================================

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps implements the half-open overlap test: two windows conflict iff
// each starts before the other ends. Exactly abutting windows (w.End ==
// other.Start) do not overlap, which intentionally admits back-to-back
// bookings.
func (w Window) Overlaps(other Window) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// =============================================================================
// AUDIT LOG ENTRY - Immutable transition record
// =============================================================================

type EventType string

const (
	EventCreated      EventType = "created"
	EventAutoApproved EventType = "auto_approved"
	EventApproved     EventType = "approved"
	EventRejected     EventType = "rejected"
	EventCancelled    EventType = "cancelled"
	EventCompleted    EventType = "completed"
)

type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorAdmin  ActorType = "admin"
	ActorSystem ActorType = "system"
)

// LogEntry records who did what to a reservation, with a payload snapshot of
// the reservation at transition time. Append-only; never mutated or deleted.
type LogEntry struct {
	ID            string
	ReservationID ReservationID
	EventType     EventType
	ActorType     ActorType
	ActorID       string
	Payload       map[string]any
	Timestamp     time.Time
}

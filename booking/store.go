/*
store.go - Persistence interfaces for the booking engine

PURPOSE:
  Defines the interface between the engine and the database. The engine only
  requires a store capable of point lookups, interval-overlap range queries,
  and append-only audit writes. Different implementations can use SQLite,
  PostgreSQL, or in-memory storage.

KEY INTERFACES:
  ResourceStore:    Resource records (read-mostly; the lock anchor)
  BlockStore:       Blackout windows (immutable once created)
  ReservationStore: Reservation rows (mutated only by the state machine)
  AuditLog:         Append-only transition records

OVERLAP QUERIES:
  ListBlocksOverlapping and ListActiveOverlapping implement the half-open
  test in the store: rowStart < end AND start < rowEnd. Implementations must
  preserve those strict inequalities or abutting windows will falsely conflict.

CONCURRENCY CONTRACT:
  Reservation rows are only ever mutated by the caller holding the owning
  resource's lock (see lock.go), so the store needs no reservation-level
  locking of its own.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - booking/store/memory.go: In-memory for testing
*/
package booking

import (
	"context"
	"time"
)

// =============================================================================
// RESOURCE STORE
// =============================================================================

type ResourceStore interface {
	// SaveResource inserts or updates a resource record.
	SaveResource(ctx context.Context, r Resource) error

	// GetResource returns nil (no error) when the resource does not exist.
	GetResource(ctx context.Context, id ResourceID) (*Resource, error)

	// ListResources returns all resources ordered by name.
	ListResources(ctx context.Context) ([]Resource, error)
}

// =============================================================================
// BLOCK STORE
// =============================================================================

type BlockStore interface {
	// SaveBlock inserts a blackout window. Blocks are never updated or removed.
	SaveBlock(ctx context.Context, b Block) error

	// ListBlocksOverlapping returns blocks on the resource whose interval
	// intersects [start, end), ordered by start.
	ListBlocksOverlapping(ctx context.Context, id ResourceID, w Window) ([]Block, error)

	// ListBlocks returns all blocks for a resource ordered by start.
	ListBlocks(ctx context.Context, id ResourceID) ([]Block, error)
}

// =============================================================================
// RESERVATION STORE
// =============================================================================

// ReservationFilter narrows ListReservations. Nil/zero fields match everything.
type ReservationFilter struct {
	ResourceID  *ResourceID
	RequesterID *string
	Status      *ReservationStatus
	From        *time.Time
	To          *time.Time
}

type ReservationStore interface {
	// SaveReservation inserts a new reservation or updates the mutable
	// decision fields of an existing one. Rows are never deleted.
	SaveReservation(ctx context.Context, r Reservation) error

	// GetReservation returns nil (no error) when the reservation does not exist.
	GetReservation(ctx context.Context, id ReservationID) (*Reservation, error)

	// ListActiveOverlapping returns Pending/Approved reservations on the
	// resource whose interval intersects [start, end), excluding excludeID
	// when non-empty, ordered by start.
	ListActiveOverlapping(ctx context.Context, id ResourceID, w Window, excludeID ReservationID) ([]Reservation, error)

	// ListReservations returns reservations matching the filter, newest first.
	ListReservations(ctx context.Context, f ReservationFilter) ([]Reservation, error)

	// CountByStatus returns reservation counts grouped by status for
	// reservations intersecting [from, to), optionally scoped to one resource.
	CountByStatus(ctx context.Context, id *ResourceID, w Window) (map[ReservationStatus]int, error)
}

// =============================================================================
// AUDIT LOG - Append-only, never part of the primary transaction
// =============================================================================

// LogFilter narrows QueryLog. Nil fields match everything.
type LogFilter struct {
	ReservationID *ReservationID
	EventTypes    []EventType
	ActorID       *string
	From          *time.Time
	To            *time.Time
}

type AuditLog interface {
	AppendLog(ctx context.Context, e LogEntry) error
	QueryLog(ctx context.Context, f LogFilter) ([]LogEntry, error)
}

// =============================================================================
// COMBINED STORE
// =============================================================================

// Store is the full persistence surface the engine needs.
type Store interface {
	ResourceStore
	BlockStore
	ReservationStore
	AuditLog
}

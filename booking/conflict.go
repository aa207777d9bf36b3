/*
conflict.go - Interval-overlap conflict detection

PURPOSE:
  Decides whether a window on a resource is free, consulting blackout blocks
  first and active (Pending/Approved) reservations second. Block conflicts
  take priority and are reported as a distinct failure mode rather than being
  merged with reservation conflicts.

TOCTOU WARNING:
  CheckAvailability is read-only, but whenever its result will drive a write
  it must be invoked while holding the resource lock (lock.go). The engine
  does this; the public read-only availability endpoint calls it unlocked.
*/
package booking

import "context"

// Availability is the result of a conflict check. When IsAvailable is false,
// Conflicts carries the colliding window(s) and Kind says whether the first
// collision came from a block or a reservation.
type Availability struct {
	IsAvailable bool
	Kind        ConflictKind
	Conflicts   []Window
}

// ConflictDetector runs the half-open overlap algorithm against a store.
type ConflictDetector struct {
	blocks       BlockStore
	reservations ReservationStore
}

func NewConflictDetector(blocks BlockStore, reservations ReservationStore) *ConflictDetector {
	return &ConflictDetector{blocks: blocks, reservations: reservations}
}

// Check reports whether [w.Start, w.End) on the resource is free.
// excludeID, when non-empty, ignores that reservation's own row so a
// reservation can be re-checked against everyone but itself.
func (d *ConflictDetector) Check(ctx context.Context, id ResourceID, w Window, excludeID ReservationID) (Availability, error) {
	// Blocks first: a blackout window is unavailable no matter what
	// reservations exist, and is surfaced on its own.
	blocks, err := d.blocks.ListBlocksOverlapping(ctx, id, w)
	if err != nil {
		return Availability{}, systemErr("list blocks", err)
	}
	if len(blocks) > 0 {
		conflicts := make([]Window, len(blocks))
		for i, b := range blocks {
			conflicts[i] = Window{Start: b.Start, End: b.End}
		}
		return Availability{IsAvailable: false, Kind: ConflictBlock, Conflicts: conflicts}, nil
	}

	active, err := d.reservations.ListActiveOverlapping(ctx, id, w, excludeID)
	if err != nil {
		return Availability{}, systemErr("list active reservations", err)
	}
	if len(active) > 0 {
		conflicts := make([]Window, len(active))
		for i, r := range active {
			conflicts[i] = r.Window()
		}
		return Availability{IsAvailable: false, Kind: ConflictReservation, Conflicts: conflicts}, nil
	}

	return Availability{IsAvailable: true}, nil
}

// conflictError converts a negative availability result into a ConflictError.
func (a Availability) conflictError(id ResourceID, requested Window) *ConflictError {
	return &ConflictError{
		ResourceID: id,
		Kind:       a.Kind,
		Requested:  requested,
		Conflicts:  a.Conflicts,
	}
}

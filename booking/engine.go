/*
engine.go - Public reservation operations

PURPOSE:
  Orchestrates the full lifecycle of a reservation:
  1. Create:   validate policy, lock resource, check conflicts, insert
  2. Approve:  lock resource, re-check conflicts, Pending -> Approved
  3. Reject:   Pending -> Rejected (frees capacity, no conflict check)
  4. Cancel:   Pending/Approved -> Cancelled (owner only)
  5. Complete: Approved -> Completed

CONTROL FLOW (create):
  ┌────────────────────────────────────────────────────────────────┐
  │                                                                │
  │  Policy      Resource     Conflict check     Insert + audit    │
  │  validate ─▶ lock     ─▶  (inside lock)  ─▶  (inside lock)     │
  │                                                                │
  └────────────────────────────────────────────────────────────────┘

LOCKING:
  Every mutation is funneled through the resource lock so transactions on
  the same resource serialize in lock-acquisition order. Approve re-runs
  conflict detection excluding the reservation's own id: this defends
  against reservations that slipped into an overlapping active state
  across separate lock epochs (e.g. created, policy changed, approved much
  later). The re-check is the documented safety net; do not remove it.

AUDIT & NOTIFICATION:
  Every transition appends an audit entry (best-effort) and fires a
  notification (fire-and-forget). Neither can fail a booking.

SEE ALSO:
  - conflict.go: The overlap algorithm
  - lock.go:     The per-resource critical section
  - stats.go:    Read-only aggregation on top of these operations
*/
package booking

import (
	"context"
	"fmt"
	"time"
)

// =============================================================================
// ACTORS
// =============================================================================

// Role is supplied by the upstream identity component; the engine only
// checks it, never derives it.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is a verified caller identity.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) actorType() ActorType {
	if a.Role == RoleAdmin {
		return ActorAdmin
	}
	return ActorUser
}

// =============================================================================
// NOTIFIER - Fire-and-forget collaborator
// =============================================================================

// Notifier is invoked after state transitions commit. Implementations must
// not block; failures never affect booking state.
type Notifier interface {
	Notify(event EventType, r Reservation)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) Notify(EventType, Reservation) {}

// =============================================================================
// ENGINE
// =============================================================================

// CreateRequest carries the requester's proposed booking.
type CreateRequest struct {
	RequesterID string
	ResourceID  ResourceID
	Start       time.Time
	End         time.Time
	PartySize   int
	Purpose     string
	Equipment   []string
}

// Engine is the reservation and availability engine. All public operations
// run synchronously; the only blocking point is resource lock acquisition.
type Engine struct {
	store    Store
	detector *ConflictDetector
	locker   *ResourceLocker
	audit    *AuditWriter
	policy   Policy
	notifier Notifier
	now      func() time.Time
}

func NewEngine(store Store, policy Policy, notifier Notifier) *Engine {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Engine{
		store:    store,
		detector: NewConflictDetector(store, store),
		locker:   NewResourceLocker(),
		audit:    NewAuditWriter(store),
		policy:   policy.Normalize(),
		notifier: notifier,
		now:      time.Now,
	}
}

// =============================================================================
// CREATE
// =============================================================================

// CreateReservation validates the proposed window, then atomically checks
// availability and inserts the reservation while holding the resource lock.
// Initial status is Pending, or Approved (by SYSTEM) when the resource does
// not require approval.
func (e *Engine) CreateReservation(ctx context.Context, req CreateRequest) (*Reservation, error) {
	now := e.now()
	w := Window{Start: req.Start, End: req.End}

	// Policy runs before any lock is taken.
	if err := e.policy.Validate(now, w, req.PartySize); err != nil {
		return nil, err
	}

	res, err := e.store.GetResource(ctx, req.ResourceID)
	if err != nil {
		return nil, systemErr("get resource", err)
	}
	if res == nil {
		return nil, &NotFoundError{Kind: "resource", ID: string(req.ResourceID)}
	}
	if !res.IsActive {
		return nil, &ValidationError{Field: "resource_id", Message: "resource is not active"}
	}
	if res.Capacity > 0 && req.PartySize > res.Capacity {
		return nil, &ValidationError{
			Field:   "party_size",
			Message: fmt.Sprintf("party size %d exceeds resource capacity %d", req.PartySize, res.Capacity),
		}
	}

	unlock := e.locker.Lock(req.ResourceID)
	defer unlock()

	avail, err := e.detector.Check(ctx, req.ResourceID, w, "")
	if err != nil {
		return nil, err
	}
	if !avail.IsAvailable {
		return nil, avail.conflictError(req.ResourceID, w)
	}

	r := &Reservation{
		ID:                 ReservationID(fmt.Sprintf("res-%d", time.Now().UnixNano())),
		ResourceID:         req.ResourceID,
		RequesterID:        req.RequesterID,
		StartTime:          req.Start,
		EndTime:            req.End,
		PartySize:          req.PartySize,
		Purpose:            req.Purpose,
		RequestedEquipment: req.Equipment,
		Status:             StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	event := EventCreated
	if !res.RequiresApproval {
		approvedAt := now
		r.Status = StatusApproved
		r.ApprovedBy = SystemActor
		r.ApprovedAt = &approvedAt
		event = EventAutoApproved
	}

	if err := e.store.SaveReservation(ctx, *r); err != nil {
		return nil, systemErr("save reservation", err)
	}

	actorType := ActorUser
	if event == EventAutoApproved {
		actorType = ActorSystem
	}
	e.audit.Record(ctx, event, actorType, req.RequesterID, r)
	e.notifier.Notify(event, *r)

	return r, nil
}

// =============================================================================
// AVAILABILITY (read-only)
// =============================================================================

// CheckAvailability reports whether the window is free. Read-only and
// idempotent: repeated calls with unchanged state return identical results.
// The engine re-runs this check under the lock before any write, so callers
// must treat the result as advisory.
func (e *Engine) CheckAvailability(ctx context.Context, id ResourceID, start, end time.Time) (Availability, error) {
	res, err := e.store.GetResource(ctx, id)
	if err != nil {
		return Availability{}, systemErr("get resource", err)
	}
	if res == nil {
		return Availability{}, &NotFoundError{Kind: "resource", ID: string(id)}
	}
	return e.detector.Check(ctx, id, Window{Start: start, End: end}, "")
}

// =============================================================================
// DECIDE (approve / reject)
// =============================================================================

// ApproveReservation moves a Pending reservation to Approved. Admin only.
// Conflicts are re-checked inside the lock, excluding the reservation's own
// row; a collision fails with ConflictError and the admin must reject or
// ask the requester to resubmit.
func (e *Engine) ApproveReservation(ctx context.Context, admin Actor, id ReservationID, note string) (*Reservation, error) {
	if admin.Role != RoleAdmin {
		return nil, &UnauthorizedError{ActorID: admin.ID, Operation: "approve reservations"}
	}

	return e.decide(ctx, id, func(r *Reservation) error {
		if err := checkTransition(r, StatusApproved); err != nil {
			return err
		}

		avail, err := e.detector.Check(ctx, r.ResourceID, r.Window(), r.ID)
		if err != nil {
			return err
		}
		if !avail.IsAvailable {
			return avail.conflictError(r.ResourceID, r.Window())
		}

		now := e.now()
		r.Status = StatusApproved
		r.ApprovedBy = admin.ID
		r.ApprovedAt = &now
		r.AdminNote = note
		r.UpdatedAt = now
		return nil
	}, EventApproved, ActorAdmin, admin.ID)
}

// RejectReservation moves a Pending reservation to Rejected. Admin only.
// Rejection only frees capacity, so no conflict re-check is needed.
func (e *Engine) RejectReservation(ctx context.Context, admin Actor, id ReservationID, reason string) (*Reservation, error) {
	if admin.Role != RoleAdmin {
		return nil, &UnauthorizedError{ActorID: admin.ID, Operation: "reject reservations"}
	}

	return e.decide(ctx, id, func(r *Reservation) error {
		if err := checkTransition(r, StatusRejected); err != nil {
			return err
		}
		r.Status = StatusRejected
		r.RejectionReason = reason
		r.UpdatedAt = e.now()
		return nil
	}, EventRejected, ActorAdmin, admin.ID)
}

// =============================================================================
// CANCEL / COMPLETE
// =============================================================================

// CancelReservation moves a Pending or Approved reservation to Cancelled.
// Owner only; freeing a slot never requires conflict checking.
func (e *Engine) CancelReservation(ctx context.Context, actor Actor, id ReservationID) error {
	_, err := e.decide(ctx, id, func(r *Reservation) error {
		if r.RequesterID != actor.ID {
			return &UnauthorizedError{ActorID: actor.ID, Operation: "cancel this reservation"}
		}
		if err := checkTransition(r, StatusCancelled); err != nil {
			return err
		}
		r.Status = StatusCancelled
		r.UpdatedAt = e.now()
		return nil
	}, EventCancelled, actor.actorType(), actor.ID)
	return err
}

// CompleteReservation moves an Approved reservation to Completed.
// Used by admins and by the elapsed-reservation sweep.
func (e *Engine) CompleteReservation(ctx context.Context, actor Actor, id ReservationID) (*Reservation, error) {
	if actor.Role != RoleAdmin && actor.ID != SystemActor {
		return nil, &UnauthorizedError{ActorID: actor.ID, Operation: "complete reservations"}
	}

	actorType := ActorAdmin
	if actor.ID == SystemActor {
		actorType = ActorSystem
	}

	return e.decide(ctx, id, func(r *Reservation) error {
		if err := checkTransition(r, StatusCompleted); err != nil {
			return err
		}
		r.Status = StatusCompleted
		r.UpdatedAt = e.now()
		return nil
	}, EventCompleted, actorType, actor.ID)
}

// CompleteElapsed marks every Approved reservation whose window has fully
// passed as Completed. Returns the number of reservations completed.
func (e *Engine) CompleteElapsed(ctx context.Context) (int, error) {
	status := StatusApproved
	now := e.now()
	approved, err := e.store.ListReservations(ctx, ReservationFilter{Status: &status, To: &now})
	if err != nil {
		return 0, systemErr("list approved reservations", err)
	}

	completed := 0
	for i := range approved {
		if approved[i].EndTime.After(now) {
			continue
		}
		if _, err := e.CompleteReservation(ctx, Actor{ID: SystemActor, Role: RoleAdmin}, approved[i].ID); err != nil {
			// A racing cancel is fine; anything else is worth surfacing.
			if !IsClientError(err) {
				return completed, err
			}
			continue
		}
		completed++
	}
	return completed, nil
}

// decide runs a mutation on a reservation under its resource's lock:
// fetch, lock, re-fetch committed state, mutate, save, audit, notify.
func (e *Engine) decide(
	ctx context.Context,
	id ReservationID,
	mutate func(*Reservation) error,
	event EventType,
	actorType ActorType,
	actorID string,
) (*Reservation, error) {
	r, err := e.store.GetReservation(ctx, id)
	if err != nil {
		return nil, systemErr("get reservation", err)
	}
	if r == nil {
		return nil, &NotFoundError{Kind: "reservation", ID: string(id)}
	}

	unlock := e.locker.Lock(r.ResourceID)
	defer unlock()

	// Fresh read of committed state now that the lock is held.
	r, err = e.store.GetReservation(ctx, id)
	if err != nil {
		return nil, systemErr("get reservation", err)
	}
	if r == nil {
		return nil, &NotFoundError{Kind: "reservation", ID: string(id)}
	}

	if err := mutate(r); err != nil {
		return nil, err
	}

	if err := e.store.SaveReservation(ctx, *r); err != nil {
		return nil, systemErr("save reservation", err)
	}

	e.audit.Record(ctx, event, actorType, actorID, r)
	e.notifier.Notify(event, *r)

	return r, nil
}

// =============================================================================
// READS
// =============================================================================

// GetReservation returns a reservation by id.
func (e *Engine) GetReservation(ctx context.Context, id ReservationID) (*Reservation, error) {
	r, err := e.store.GetReservation(ctx, id)
	if err != nil {
		return nil, systemErr("get reservation", err)
	}
	if r == nil {
		return nil, &NotFoundError{Kind: "reservation", ID: string(id)}
	}
	return r, nil
}

// ListReservations returns reservations matching the filter, newest first.
func (e *Engine) ListReservations(ctx context.Context, f ReservationFilter) ([]Reservation, error) {
	rs, err := e.store.ListReservations(ctx, f)
	if err != nil {
		return nil, systemErr("list reservations", err)
	}
	return rs, nil
}

// AuditTrail returns the audit entries matching the filter.
func (e *Engine) AuditTrail(ctx context.Context, f LogFilter) ([]LogEntry, error) {
	entries, err := e.store.QueryLog(ctx, f)
	if err != nil {
		return nil, systemErr("query audit log", err)
	}
	return entries, nil
}

/*
policy.go - Booking policy validation

PURPOSE:
  Pure, deterministic checks on a proposed time window. Runs before any lock
  is taken: a request that fails policy never touches the store.

RULES (in order, first failure wins):
  1. Start must be strictly in the future
  2. End must be after start
  3. Duration must lie within [MinDuration, MaxDuration]
  4. Start must not exceed the advance-booking horizon

No side effects; safe to call any number of times.
*/
package booking

import (
	"fmt"
	"time"
)

// Policy holds the deployment-level booking rules. Zero values fall back to
// the defaults below via Normalize.
type Policy struct {
	MinDuration      time.Duration
	MaxDuration      time.Duration
	MaxDaysInAdvance int
}

// DefaultPolicy mirrors a typical facility deployment: bookings between
// 15 minutes and 8 hours, up to 90 days out.
func DefaultPolicy() Policy {
	return Policy{
		MinDuration:      15 * time.Minute,
		MaxDuration:      8 * time.Hour,
		MaxDaysInAdvance: 90,
	}
}

// Normalize fills unset fields from DefaultPolicy.
func (p Policy) Normalize() Policy {
	d := DefaultPolicy()
	if p.MinDuration <= 0 {
		p.MinDuration = d.MinDuration
	}
	if p.MaxDuration <= 0 {
		p.MaxDuration = d.MaxDuration
	}
	if p.MaxDaysInAdvance <= 0 {
		p.MaxDaysInAdvance = d.MaxDaysInAdvance
	}
	return p
}

// Validate checks a proposed window against the policy. The current time is
// passed in so the function stays pure and testable.
func (p Policy) Validate(now time.Time, w Window, partySize int) error {
	if !w.Start.After(now) {
		return &ValidationError{Field: "start", Message: "start must be in the future"}
	}
	if !w.End.After(w.Start) {
		return &ValidationError{Field: "end", Message: "end must be after start"}
	}
	dur := w.Duration()
	if dur < p.MinDuration {
		return &ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("duration %s is below the minimum of %s", dur, p.MinDuration),
		}
	}
	if dur > p.MaxDuration {
		return &ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("duration %s exceeds the maximum of %s", dur, p.MaxDuration),
		}
	}
	horizon := now.AddDate(0, 0, p.MaxDaysInAdvance)
	if w.Start.After(horizon) {
		return &ValidationError{
			Field:   "start",
			Message: fmt.Sprintf("start is more than %d days in advance", p.MaxDaysInAdvance),
		}
	}
	if partySize < 1 {
		return &ValidationError{Field: "party_size", Message: "party size must be at least 1"}
	}
	return nil
}

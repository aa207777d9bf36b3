/*
stats.go - Read-only aggregation for dashboards

PURPOSE:
  Aggregates reservation counts and occupancy over a reporting window.
  Depends on the store and the status taxonomy but adds no new invariants:
  everything here could be recomputed from the reservation rows.

PRECISION:
  Utilization is booked time divided by bookable time. Both are durations
  clipped to the reporting window; the division uses decimal.Decimal so
  dashboard percentages don't accumulate floating-point noise.
*/
package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Stats summarizes reservations intersecting a reporting window.
type Stats struct {
	Window      Window
	ResourceID  *ResourceID
	ByStatus    map[ReservationStatus]int
	Total       int
	BookedTime  time.Duration   // Approved/Completed time clipped to the window
	Utilization decimal.Decimal // BookedTime / (window length * resource count), 0..1
}

// StatsService is the read-only query façade over the engine's data.
type StatsService struct {
	store Store
}

func NewStatsService(store Store) *StatsService {
	return &StatsService{store: store}
}

// GetStats returns counts grouped by status plus occupancy figures for
// reservations intersecting [from, to). A nil resourceID aggregates across
// all active resources.
func (s *StatsService) GetStats(ctx context.Context, resourceID *ResourceID, from, to time.Time) (*Stats, error) {
	w := Window{Start: from, End: to}
	if !to.After(from) {
		return nil, &ValidationError{Field: "to", Message: "end must be after start"}
	}

	counts, err := s.store.CountByStatus(ctx, resourceID, w)
	if err != nil {
		return nil, systemErr("count reservations", err)
	}

	total := 0
	for _, n := range counts {
		total += n
	}

	booked, err := s.bookedTime(ctx, resourceID, w)
	if err != nil {
		return nil, err
	}

	resourceCount := 1
	if resourceID == nil {
		resources, err := s.store.ListResources(ctx)
		if err != nil {
			return nil, systemErr("list resources", err)
		}
		resourceCount = 0
		for _, r := range resources {
			if r.IsActive {
				resourceCount++
			}
		}
	}

	utilization := decimal.Zero
	if bookable := w.Duration() * time.Duration(resourceCount); bookable > 0 && booked > 0 {
		utilization = decimal.NewFromInt(int64(booked)).
			Div(decimal.NewFromInt(int64(bookable))).
			Round(4)
	}

	return &Stats{
		Window:      w,
		ResourceID:  resourceID,
		ByStatus:    counts,
		Total:       total,
		BookedTime:  booked,
		Utilization: utilization,
	}, nil
}

// bookedTime sums Approved and Completed reservation time clipped to the
// reporting window.
func (s *StatsService) bookedTime(ctx context.Context, resourceID *ResourceID, w Window) (time.Duration, error) {
	var booked time.Duration
	for _, status := range []ReservationStatus{StatusApproved, StatusCompleted} {
		st := status
		rs, err := s.store.ListReservations(ctx, ReservationFilter{
			ResourceID: resourceID,
			Status:     &st,
			From:       &w.Start,
			To:         &w.End,
		})
		if err != nil {
			return 0, systemErr("list reservations", err)
		}
		for _, r := range rs {
			booked += clip(r.Window(), w)
		}
	}
	return booked, nil
}

// clip returns the length of the intersection of two windows.
func clip(r, w Window) time.Duration {
	start := r.Start
	if w.Start.After(start) {
		start = w.Start
	}
	end := r.End
	if w.End.Before(end) {
		end = w.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

/*
scheduler.go - Background completion sweep

PURPOSE:
  Periodically marks Approved reservations whose window has fully elapsed
  as Completed, so occupancy reports and "current bookings" views stay
  accurate without waiting for an admin to close them out.

  The sweep is idempotent: each tick only touches reservations still in
  Approved with an end time in the past, so overlapping ticks or restarts
  cannot double-complete anything.
*/
package api

import (
	"context"
	"log"
	"time"

	"github.com/warp/facility-engine/booking"
)

// CompletionScheduler runs the elapsed-reservation sweep on a ticker.
type CompletionScheduler struct {
	engine   *booking.Engine
	interval time.Duration
}

func NewCompletionScheduler(engine *booking.Engine, interval time.Duration) *CompletionScheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &CompletionScheduler{engine: engine, interval: interval}
}

// Start runs the sweep loop until ctx is cancelled. One sweep runs
// immediately so a restart catches up without waiting a full interval.
func (s *CompletionScheduler) Start(ctx context.Context) {
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-ctx.Done():
			log.Println("scheduler: completion sweep stopped")
			return
		}
	}
}

func (s *CompletionScheduler) sweep(ctx context.Context) {
	n, err := s.engine.CompleteElapsed(ctx)
	if err != nil {
		log.Printf("scheduler: completion sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("scheduler: completed %d elapsed reservations", n)
	}
}

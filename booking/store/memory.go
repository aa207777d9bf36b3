// Package store provides booking.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/facility-engine/booking"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu           sync.RWMutex
	resources    map[booking.ResourceID]booking.Resource
	blocks       map[booking.ResourceID][]booking.Block
	reservations map[booking.ReservationID]booking.Reservation
	logEntries   []booking.LogEntry
}

func NewMemory() *Memory {
	return &Memory{
		resources:    make(map[booking.ResourceID]booking.Resource),
		blocks:       make(map[booking.ResourceID][]booking.Block),
		reservations: make(map[booking.ReservationID]booking.Reservation),
	}
}

// =============================================================================
// RESOURCES
// =============================================================================

func (m *Memory) SaveResource(_ context.Context, r booking.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources[r.ID] = r
	return nil
}

func (m *Memory) GetResource(_ context.Context, id booking.ResourceID) (*booking.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.resources[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListResources(_ context.Context) ([]booking.Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]booking.Resource, 0, len(m.resources))
	for _, r := range m.resources {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// =============================================================================
// BLOCKS
// =============================================================================

func (m *Memory) SaveBlock(_ context.Context, b booking.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	blocks := m.blocks[b.ResourceID]

	// Binary search for insertion point keeps blocks sorted by start.
	i := sort.Search(len(blocks), func(i int) bool {
		return blocks[i].Start.After(b.Start)
	})
	blocks = append(blocks, booking.Block{})
	copy(blocks[i+1:], blocks[i:])
	blocks[i] = b
	m.blocks[b.ResourceID] = blocks
	return nil
}

func (m *Memory) ListBlocksOverlapping(_ context.Context, id booking.ResourceID, w booking.Window) ([]booking.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []booking.Block
	for _, b := range m.blocks[id] {
		if w.Overlaps(booking.Window{Start: b.Start, End: b.End}) {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *Memory) ListBlocks(_ context.Context, id booking.ResourceID) ([]booking.Block, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]booking.Block, len(m.blocks[id]))
	copy(result, m.blocks[id])
	return result, nil
}

// =============================================================================
// RESERVATIONS
// =============================================================================

func (m *Memory) SaveReservation(_ context.Context, r booking.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reservations[r.ID] = r
	return nil
}

func (m *Memory) GetReservation(_ context.Context, id booking.ReservationID) (*booking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.reservations[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListActiveOverlapping(_ context.Context, id booking.ResourceID, w booking.Window, excludeID booking.ReservationID) ([]booking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []booking.Reservation
	for _, r := range m.reservations {
		if r.ResourceID != id || !r.Status.Active() {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if w.Overlaps(r.Window()) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime.Before(result[j].StartTime) })
	return result, nil
}

func (m *Memory) ListReservations(_ context.Context, f booking.ReservationFilter) ([]booking.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []booking.Reservation
	for _, r := range m.reservations {
		if matchesFilter(r, f) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (m *Memory) CountByStatus(_ context.Context, id *booking.ResourceID, w booking.Window) (map[booking.ReservationStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[booking.ReservationStatus]int)
	for _, r := range m.reservations {
		if id != nil && r.ResourceID != *id {
			continue
		}
		if !w.Overlaps(r.Window()) {
			continue
		}
		counts[r.Status]++
	}
	return counts, nil
}

func matchesFilter(r booking.Reservation, f booking.ReservationFilter) bool {
	if f.ResourceID != nil && r.ResourceID != *f.ResourceID {
		return false
	}
	if f.RequesterID != nil && r.RequesterID != *f.RequesterID {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.From != nil && !r.EndTime.After(*f.From) {
		return false
	}
	if f.To != nil && !r.StartTime.Before(*f.To) {
		return false
	}
	return true
}

// =============================================================================
// AUDIT LOG
// =============================================================================

func (m *Memory) AppendLog(_ context.Context, e booking.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logEntries = append(m.logEntries, e)
	return nil
}

func (m *Memory) QueryLog(_ context.Context, f booking.LogFilter) ([]booking.LogEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []booking.LogEntry
	for _, e := range m.logEntries {
		if f.ReservationID != nil && e.ReservationID != *f.ReservationID {
			continue
		}
		if f.ActorID != nil && e.ActorID != *f.ActorID {
			continue
		}
		if len(f.EventTypes) > 0 && !containsEvent(f.EventTypes, e.EventType) {
			continue
		}
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && !e.Timestamp.Before(*f.To) {
			continue
		}
		result = append(result, e)
	}
	return result, nil
}

func containsEvent(events []booking.EventType, e booking.EventType) bool {
	for _, candidate := range events {
		if candidate == e {
			return true
		}
	}
	return false
}

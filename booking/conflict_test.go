package booking_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/facility-engine/booking"
	"github.com/warp/facility-engine/booking/store"
)

// =============================================================================
// WINDOW OVERLAP TESTS - The half-open interval algebra
// =============================================================================

func TestWindow_Overlaps(t *testing.T) {
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	w := func(startHour, endHour int) booking.Window {
		return booking.Window{
			Start: base.Add(time.Duration(startHour) * time.Hour),
			End:   base.Add(time.Duration(endHour) * time.Hour),
		}
	}

	tests := []struct {
		name string
		a, b booking.Window
		want bool
	}{
		{"identical windows", w(0, 2), w(0, 2), true},
		{"partial overlap at end", w(0, 2), w(1, 3), true},
		{"partial overlap at start", w(1, 3), w(0, 2), true},
		{"containment", w(0, 4), w(1, 2), true},
		{"contained", w(1, 2), w(0, 4), true},
		{"abutting: a ends where b starts", w(0, 2), w(2, 4), false},
		{"abutting: b ends where a starts", w(2, 4), w(0, 2), false},
		{"disjoint", w(0, 1), w(3, 4), false},
		{"one minute of overlap", booking.Window{Start: base, End: base.Add(61 * time.Minute)}, w(1, 2), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

// =============================================================================
// CONFLICT DETECTOR TESTS
// =============================================================================

func newTestDetector(t *testing.T) (*booking.ConflictDetector, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return booking.NewConflictDetector(mem, mem), mem
}

func saveReservation(t *testing.T, mem *store.Memory, id string, resID booking.ResourceID, w booking.Window, status booking.ReservationStatus) {
	t.Helper()
	err := mem.SaveReservation(context.Background(), booking.Reservation{
		ID:          booking.ReservationID(id),
		ResourceID:  resID,
		RequesterID: "user-1",
		StartTime:   w.Start,
		EndTime:     w.End,
		PartySize:   1,
		Status:      status,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	})
	require.NoError(t, err)
}

func TestConflictDetector_EmptyCalendarIsAvailable(t *testing.T) {
	detector, _ := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	avail, err := detector.Check(context.Background(), "room-a",
		booking.Window{Start: base, End: base.Add(time.Hour)}, "")

	require.NoError(t, err)
	assert.True(t, avail.IsAvailable)
	assert.Empty(t, avail.Conflicts)
}

func TestConflictDetector_ActiveReservationConflicts(t *testing.T) {
	// GIVEN: A pending reservation 9:00-11:00 on room-a
	// WHEN: Checking 10:00-12:00 on room-a
	// THEN: Unavailable, with the existing window reported

	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	existing := booking.Window{Start: base, End: base.Add(2 * time.Hour)}
	saveReservation(t, mem, "res-1", "room-a", existing, booking.StatusPending)

	avail, err := detector.Check(context.Background(), "room-a",
		booking.Window{Start: base.Add(time.Hour), End: base.Add(3 * time.Hour)}, "")

	require.NoError(t, err)
	assert.False(t, avail.IsAvailable)
	assert.Equal(t, booking.ConflictReservation, avail.Kind)
	require.Len(t, avail.Conflicts, 1)
	assert.Equal(t, existing, avail.Conflicts[0])
}

func TestConflictDetector_TerminalStatusesDoNotConflict(t *testing.T) {
	// Rejected, cancelled and completed reservations free the window.
	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	w := booking.Window{Start: base, End: base.Add(2 * time.Hour)}

	for i, status := range []booking.ReservationStatus{
		booking.StatusRejected, booking.StatusCancelled, booking.StatusCompleted,
	} {
		saveReservation(t, mem, fmt.Sprintf("res-%d", i), "room-a", w, status)
	}

	avail, err := detector.Check(context.Background(), "room-a", w, "")
	require.NoError(t, err)
	assert.True(t, avail.IsAvailable)
}

func TestConflictDetector_AbuttingWindowsDoNotConflict(t *testing.T) {
	// Back-to-back bookings share an instant but not a window.
	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	saveReservation(t, mem, "res-1", "room-a",
		booking.Window{Start: base, End: base.Add(2 * time.Hour)}, booking.StatusApproved)

	avail, err := detector.Check(context.Background(), "room-a",
		booking.Window{Start: base.Add(2 * time.Hour), End: base.Add(3 * time.Hour)}, "")

	require.NoError(t, err)
	assert.True(t, avail.IsAvailable)
}

func TestConflictDetector_OtherResourceDoesNotConflict(t *testing.T) {
	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	w := booking.Window{Start: base, End: base.Add(time.Hour)}
	saveReservation(t, mem, "res-1", "room-a", w, booking.StatusApproved)

	avail, err := detector.Check(context.Background(), "room-b", w, "")
	require.NoError(t, err)
	assert.True(t, avail.IsAvailable)
}

func TestConflictDetector_BlockTakesPriority(t *testing.T) {
	// GIVEN: Both a block and an active reservation overlap the window
	// WHEN: Checking availability
	// THEN: The block is reported; reservation conflicts are not mixed in

	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	w := booking.Window{Start: base, End: base.Add(2 * time.Hour)}

	require.NoError(t, mem.SaveBlock(context.Background(), booking.Block{
		ID: "blk-1", ResourceID: "room-a",
		Start: base.Add(time.Hour), End: base.Add(3 * time.Hour),
		Reason: "maintenance",
	}))
	saveReservation(t, mem, "res-1", "room-a", w, booking.StatusApproved)

	avail, err := detector.Check(context.Background(), "room-a", w, "")

	require.NoError(t, err)
	assert.False(t, avail.IsAvailable)
	assert.Equal(t, booking.ConflictBlock, avail.Kind)
	require.Len(t, avail.Conflicts, 1)
	assert.Equal(t, base.Add(time.Hour), avail.Conflicts[0].Start)
}

func TestConflictDetector_ExcludeIgnoresOwnRow(t *testing.T) {
	// A reservation re-checked against the calendar must not collide with
	// itself, but must still collide with everyone else.
	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	w := booking.Window{Start: base, End: base.Add(2 * time.Hour)}
	saveReservation(t, mem, "res-1", "room-a", w, booking.StatusPending)

	avail, err := detector.Check(context.Background(), "room-a", w, "res-1")
	require.NoError(t, err)
	assert.True(t, avail.IsAvailable, "own row must be excluded")

	saveReservation(t, mem, "res-2", "room-a", w, booking.StatusPending)
	avail, err = detector.Check(context.Background(), "room-a", w, "res-1")
	require.NoError(t, err)
	assert.False(t, avail.IsAvailable, "other rows still conflict")
}

func TestConflictDetector_MultipleConflictsAllReported(t *testing.T) {
	detector, mem := newTestDetector(t)
	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	saveReservation(t, mem, "res-1", "room-a",
		booking.Window{Start: base, End: base.Add(time.Hour)}, booking.StatusApproved)
	saveReservation(t, mem, "res-2", "room-a",
		booking.Window{Start: base.Add(90 * time.Minute), End: base.Add(3 * time.Hour)}, booking.StatusPending)

	avail, err := detector.Check(context.Background(), "room-a",
		booking.Window{Start: base, End: base.Add(4 * time.Hour)}, "")

	require.NoError(t, err)
	assert.False(t, avail.IsAvailable)
	assert.Len(t, avail.Conflicts, 2)
}

package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/facility-engine/booking"
	"github.com/warp/facility-engine/booking/store"
)

// =============================================================================
// STATS TESTS
// =============================================================================

func newTestStats(t *testing.T) (*booking.StatsService, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	ctx := context.Background()
	require.NoError(t, mem.SaveResource(ctx, booking.Resource{
		ID: "room-a", Name: "Room A", Capacity: 10, IsActive: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, mem.SaveResource(ctx, booking.Resource{
		ID: "room-b", Name: "Room B", Capacity: 10, IsActive: true, CreatedAt: time.Now(),
	}))
	require.NoError(t, mem.SaveResource(ctx, booking.Resource{
		ID: "room-retired", Name: "Retired", Capacity: 10, IsActive: false, CreatedAt: time.Now(),
	}))
	return booking.NewStatsService(mem), mem
}

func seedReservation(t *testing.T, mem *store.Memory, id string, resID booking.ResourceID, start time.Time, dur time.Duration, status booking.ReservationStatus) {
	t.Helper()
	require.NoError(t, mem.SaveReservation(context.Background(), booking.Reservation{
		ID: booking.ReservationID(id), ResourceID: resID, RequesterID: "user-1",
		StartTime: start, EndTime: start.Add(dur), PartySize: 2,
		Status: status, CreatedAt: start.Add(-time.Hour), UpdatedAt: start.Add(-time.Hour),
	}))
}

func TestGetStats_CountsByStatus(t *testing.T) {
	stats, mem := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedReservation(t, mem, "r1", "room-a", base.Add(9*time.Hour), time.Hour, booking.StatusApproved)
	seedReservation(t, mem, "r2", "room-a", base.Add(11*time.Hour), time.Hour, booking.StatusPending)
	seedReservation(t, mem, "r3", "room-a", base.Add(13*time.Hour), time.Hour, booking.StatusCancelled)
	seedReservation(t, mem, "r4", "room-b", base.Add(9*time.Hour), time.Hour, booking.StatusCompleted)

	got, err := stats.GetStats(context.Background(), nil, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 1, got.ByStatus[booking.StatusApproved])
	assert.Equal(t, 1, got.ByStatus[booking.StatusPending])
	assert.Equal(t, 1, got.ByStatus[booking.StatusCancelled])
	assert.Equal(t, 1, got.ByStatus[booking.StatusCompleted])
}

func TestGetStats_ScopedToResource(t *testing.T) {
	stats, mem := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedReservation(t, mem, "r1", "room-a", base.Add(9*time.Hour), time.Hour, booking.StatusApproved)
	seedReservation(t, mem, "r2", "room-b", base.Add(9*time.Hour), time.Hour, booking.StatusApproved)

	id := booking.ResourceID("room-a")
	got, err := stats.GetStats(context.Background(), &id, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, 1, got.Total)
	assert.Equal(t, time.Hour, got.BookedTime)
}

func TestGetStats_BookedTimeCountsApprovedAndCompletedOnly(t *testing.T) {
	stats, mem := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	seedReservation(t, mem, "r1", "room-a", base.Add(9*time.Hour), time.Hour, booking.StatusApproved)
	seedReservation(t, mem, "r2", "room-a", base.Add(11*time.Hour), 2*time.Hour, booking.StatusCompleted)
	seedReservation(t, mem, "r3", "room-a", base.Add(14*time.Hour), 3*time.Hour, booking.StatusPending)
	seedReservation(t, mem, "r4", "room-a", base.Add(18*time.Hour), 4*time.Hour, booking.StatusRejected)

	id := booking.ResourceID("room-a")
	got, err := stats.GetStats(context.Background(), &id, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, got.BookedTime, "pending and rejected time must not count")
}

func TestGetStats_BookedTimeClippedToWindow(t *testing.T) {
	// A reservation straddling the window edge only contributes the part
	// inside the window.
	stats, mem := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// 23:00 March 9 - 02:00 March 10: only 2h fall inside the window.
	seedReservation(t, mem, "r1", "room-a", base.Add(-time.Hour), 3*time.Hour, booking.StatusApproved)

	id := booking.ResourceID("room-a")
	got, err := stats.GetStats(context.Background(), &id, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, got.BookedTime)
}

func TestGetStats_UtilizationSingleResource(t *testing.T) {
	stats, mem := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// 6h booked of a 24h window = 0.25
	seedReservation(t, mem, "r1", "room-a", base.Add(9*time.Hour), 6*time.Hour, booking.StatusApproved)

	id := booking.ResourceID("room-a")
	got, err := stats.GetStats(context.Background(), &id, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, "0.25", got.Utilization.String())
}

func TestGetStats_UtilizationAcrossActiveResources(t *testing.T) {
	// Fleet-wide bookable time is window length times the number of ACTIVE
	// resources: two active rooms, the retired one does not dilute further.
	stats, mem := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	// 12h booked of 2 * 24h = 0.25
	seedReservation(t, mem, "r1", "room-a", base.Add(6*time.Hour), 12*time.Hour, booking.StatusApproved)

	got, err := stats.GetStats(context.Background(), nil, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Equal(t, "0.25", got.Utilization.String())
}

func TestGetStats_EmptyWindow(t *testing.T) {
	stats, _ := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	got, err := stats.GetStats(context.Background(), nil, base, base.AddDate(0, 0, 1))

	require.NoError(t, err)
	assert.Zero(t, got.Total)
	assert.Zero(t, got.BookedTime)
	assert.True(t, got.Utilization.IsZero())
}

func TestGetStats_InvertedWindowRejected(t *testing.T) {
	stats, _ := newTestStats(t)
	base := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	_, err := stats.GetStats(context.Background(), nil, base, base.Add(-time.Hour))

	assert.ErrorIs(t, err, booking.ErrValidation)
}

package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/events"
)

func TestNormalizeSeat(t *testing.T) {
	cases := map[string]string{
		"B5":       "B5",
		"VIP-5":    "5",
		"VIP-B5":   "B5",
		"B5-2":     "B5",
		"VIP-B5-2": "B5",
		" A1 ":     "A1",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeSeat(raw), "raw=%q", raw)
	}
}

func TestReserveTwiceFailsSecondTime(t *testing.T) {
	inv := NewSeatInventory(nil)
	inv.Initialize([]string{"Joker"}, []string{"20:00"})

	require.True(t, inv.IsAvailable("Joker", "20:00", "A1"))
	assert.True(t, inv.Reserve("Joker", "20:00", "A1"))
	assert.False(t, inv.IsAvailable("Joker", "20:00", "A1"))
	assert.False(t, inv.Reserve("Joker", "20:00", "A1"))
}

func TestFreeThenReReserve(t *testing.T) {
	inv := NewSeatInventory(nil)
	inv.Initialize([]string{"Joker"}, []string{"20:00"})

	// freeing a never-reserved seat does nothing
	assert.False(t, inv.Free("Joker", "20:00", "C3"))

	require.True(t, inv.Reserve("Joker", "20:00", "C3"))
	assert.True(t, inv.Free("Joker", "20:00", "C3"))
	assert.True(t, inv.Reserve("Joker", "20:00", "C3"))
}

func TestInitializeIsIdempotent(t *testing.T) {
	inv := NewSeatInventory(nil)
	inv.Initialize([]string{"Joker"}, []string{"20:00"})
	require.True(t, inv.Reserve("Joker", "20:00", "A1"))

	// a second initialize must not reset occupied seats
	inv.Initialize([]string{"Joker"}, []string{"20:00"})
	assert.False(t, inv.IsAvailable("Joker", "20:00", "A1"))
}

func TestReserveLazilyCreatesUnknownShow(t *testing.T) {
	inv := NewSeatInventory(nil)
	assert.True(t, inv.Reserve("Late Addition", "23:55", "B2"))
	assert.False(t, inv.IsAvailable("Late Addition", "23:55", "B2"))
	assert.True(t, inv.IsAvailable("Late Addition", "23:55", "B3"))
}

func TestOccupancyPercent(t *testing.T) {
	inv := NewSeatInventory(nil)
	inv.Initialize([]string{"Joker"}, []string{"20:00"})

	assert.Equal(t, 0.0, inv.OccupancyPercent("Joker", "20:00"))
	assert.Equal(t, 0.0, inv.OccupancyPercent("Unknown", "20:00"), "unknown show reads 0, not NaN")

	for _, seat := range []string{"A1", "A2", "A3", "A4", "A5", "A6", "A7", "A8", "A9", "A10", "A11", "A12"} {
		require.True(t, inv.Reserve("Joker", "20:00", seat))
	}
	// 12 of 96 seats = 12.5% exactly for the fixed 8x12 grid
	assert.Equal(t, 100.0*12/96, inv.OccupancyPercent("Joker", "20:00"))
}

func TestSnapshotIsDefensiveCopy(t *testing.T) {
	inv := NewSeatInventory(nil)
	inv.Initialize([]string{"Joker"}, []string{"20:00"})

	snap := inv.Snapshot("Joker", "20:00")
	require.Len(t, snap, 96)
	snap["A1"] = SeatOccupied
	assert.True(t, inv.IsAvailable("Joker", "20:00", "A1"))

	assert.Nil(t, inv.Snapshot("Unknown", "20:00"))
}

func TestVIPLabelReservesNormalizedCode(t *testing.T) {
	rec := &events.Recorder{}
	inv := NewSeatInventory(rec)
	inv.Initialize([]string{"Joker"}, []string{"20:00"})

	require.True(t, inv.Reserve("Joker", "20:00", "VIP-5"))
	assert.False(t, inv.IsAvailable("Joker", "20:00", "5"))

	reserved := rec.Named(events.SeatReserved)
	require.Len(t, reserved, 1)
	assert.Equal(t, "5", reserved[0].Payload.(events.SeatPayload).Seat)

	require.True(t, inv.Free("Joker", "20:00", "VIP-5"))
	assert.True(t, inv.IsAvailable("Joker", "20:00", "5"))
}

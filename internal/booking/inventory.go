package booking

import (
	"fmt"
	"strings"

	"github.com/iliyamo/cinema-box-office/internal/events"
)

// SeatState is the availability state of one seat for one show.
type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatOccupied  SeatState = "occupied"
)

// Fixed auditorium layout: 8 rows A–H, 12 seats each.
var seatRows = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

const seatsPerRow = 12

// showKey identifies one bookable seat grid.
type showKey struct {
	movie string
	time  string
}

// NormalizeSeat reduces a raw seat label to the canonical code used by
// the inventory: the "VIP-" display prefix is stripped, any trailing
// "-N" overflow suffix is cut, and surrounding whitespace is trimmed.
// Every reserve/free/validate call site goes through this one function.
func NormalizeSeat(raw string) string {
	s := strings.TrimPrefix(raw, "VIP-")
	if i := strings.Index(s, "-"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// SeatInventory owns the seat-availability grid per (movie, time).
// It is not safe for concurrent use on its own; the engine serializes
// all access under its lock.
type SeatInventory struct {
	pub   events.Publisher
	grids map[showKey]map[string]SeatState
}

// NewSeatInventory returns an empty inventory publishing seat events to pub.
func NewSeatInventory(pub events.Publisher) *SeatInventory {
	if pub == nil {
		pub = events.Nop{}
	}
	return &SeatInventory{pub: pub, grids: make(map[showKey]map[string]SeatState)}
}

// newGrid builds a fully available fixed-layout grid.
func newGrid() map[string]SeatState {
	g := make(map[string]SeatState, len(seatRows)*seatsPerRow)
	for _, row := range seatRows {
		for n := 1; n <= seatsPerRow; n++ {
			g[fmt.Sprintf("%s%d", row, n)] = SeatAvailable
		}
	}
	return g
}

// grid returns the seat grid for a show, creating it on first reference
// when create is true.  Shows can be added after startup, so reserve is
// deliberately fail-open about unseen shows.
func (s *SeatInventory) grid(movie, showtime string, create bool) map[string]SeatState {
	k := showKey{movie: movie, time: showtime}
	g, ok := s.grids[k]
	if !ok && create {
		g = newGrid()
		s.grids[k] = g
	}
	return g
}

// Initialize creates an available grid for every (movie, time) pair not
// already present.  Re-initializing an existing show's grid is a no-op,
// so seat state is never reset by a second call.  Emits seats-initialized.
func (s *SeatInventory) Initialize(movies, times []string) {
	for _, m := range movies {
		for _, t := range times {
			s.grid(m, t, true)
		}
	}
	s.pub.Publish(events.SeatsInitialized, events.SeatsInitializedPayload{Movies: movies, Times: times})
}

// Reserve normalizes rawSeat and marks it occupied.  The grid (and an
// unknown seat code inside it, for synthetic overflow seats) is created
// lazily.  Returns false without side effects when the seat is already
// occupied.  Emits seat-reserved on success.
func (s *SeatInventory) Reserve(movie, showtime, rawSeat string) bool {
	seat := NormalizeSeat(rawSeat)
	if seat == "" {
		return false
	}
	g := s.grid(movie, showtime, true)
	if g[seat] == SeatOccupied {
		return false
	}
	g[seat] = SeatOccupied
	s.pub.Publish(events.SeatReserved, events.SeatPayload{Movie: movie, Time: showtime, Seat: seat})
	return true
}

// Free normalizes rawSeat and marks it available again.  Returns false
// when the seat was not occupied (or the show is unknown).  Emits
// seat-freed on success.
func (s *SeatInventory) Free(movie, showtime, rawSeat string) bool {
	seat := NormalizeSeat(rawSeat)
	g := s.grid(movie, showtime, false)
	if g == nil || g[seat] != SeatOccupied {
		return false
	}
	g[seat] = SeatAvailable
	s.pub.Publish(events.SeatFreed, events.SeatPayload{Movie: movie, Time: showtime, Seat: seat})
	return true
}

// HasShow reports whether a seat grid exists for (movie, showtime).
func (s *SeatInventory) HasShow(movie, showtime string) bool {
	return s.grid(movie, showtime, false) != nil
}

// IsAvailable reports whether the normalized seat exists and is
// available.  Unknown shows and unknown seats read as unavailable
// rather than erroring.
func (s *SeatInventory) IsAvailable(movie, showtime, rawSeat string) bool {
	g := s.grid(movie, showtime, false)
	if g == nil {
		return false
	}
	return g[NormalizeSeat(rawSeat)] == SeatAvailable
}

// OccupancyPercent returns occupied seats over total seats for a show,
// in [0,100].  Unknown shows report 0 so callers never divide by zero.
func (s *SeatInventory) OccupancyPercent(movie, showtime string) float64 {
	g := s.grid(movie, showtime, false)
	if len(g) == 0 {
		return 0
	}
	occupied := 0
	for _, st := range g {
		if st == SeatOccupied {
			occupied++
		}
	}
	return float64(occupied) / float64(len(g)) * 100
}

// Snapshot returns a defensive copy of a show's grid, or nil when the
// show is unknown.  Mutating the returned map never touches inventory
// state.
func (s *SeatInventory) Snapshot(movie, showtime string) map[string]SeatState {
	g := s.grid(movie, showtime, false)
	if g == nil {
		return nil
	}
	cp := make(map[string]SeatState, len(g))
	for seat, st := range g {
		cp[seat] = st
	}
	return cp
}

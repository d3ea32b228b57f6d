package booking

import (
	"time"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// BreakdownEntry is a count+revenue pair for one movie or showtime.
type BreakdownEntry struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// StatsSnapshot is a point-in-time copy of the ledger's aggregates.
type StatsSnapshot struct {
	TotalRevenue     float64                   `json:"total_revenue"`
	TotalTicketsSold int                       `json:"total_tickets_sold"`
	RevenueByMovie   map[string]BreakdownEntry `json:"revenue_by_movie"`
	RevenueByTime    map[string]BreakdownEntry `json:"revenue_by_time"`
	GeneratedAt      time.Time                 `json:"generated_at"`
}

// SalesLedger aggregates issued and removed tickets into running
// totals and per-movie/per-time breakdowns.  Statistics reflect
// issuance, not payment: settlement never touches the ledger.
type SalesLedger struct {
	totalRevenue     float64
	totalTicketsSold int
	byMovie          map[string]*BreakdownEntry
	byTime           map[string]*BreakdownEntry
}

// NewSalesLedger returns an empty ledger.
func NewSalesLedger() *SalesLedger {
	return &SalesLedger{
		byMovie: make(map[string]*BreakdownEntry),
		byTime:  make(map[string]*BreakdownEntry),
	}
}

// RecordIssued adds one ticket to the totals and breakdowns, creating
// breakdown entries on first occurrence.
func (l *SalesLedger) RecordIssued(t model.Ticket) {
	l.totalTicketsSold++
	l.totalRevenue += t.Price

	m, ok := l.byMovie[t.Movie]
	if !ok {
		m = &BreakdownEntry{}
		l.byMovie[t.Movie] = m
	}
	m.Count++
	m.Revenue += t.Price

	tm, ok := l.byTime[t.Time]
	if !ok {
		tm = &BreakdownEntry{}
		l.byTime[t.Time] = tm
	}
	tm.Count++
	tm.Revenue += t.Price
}

// RecordRemoved reverses RecordIssued for one ticket.  Breakdown
// entries whose count reaches zero are deleted outright, so popularity
// queries never consider exhausted movies.
func (l *SalesLedger) RecordRemoved(t model.Ticket) {
	l.totalTicketsSold--
	l.totalRevenue -= t.Price

	if m, ok := l.byMovie[t.Movie]; ok {
		m.Count--
		m.Revenue -= t.Price
		if m.Count <= 0 {
			delete(l.byMovie, t.Movie)
		}
	}
	if tm, ok := l.byTime[t.Time]; ok {
		tm.Count--
		tm.Revenue -= t.Price
		if tm.Count <= 0 {
			delete(l.byTime, t.Time)
		}
	}
}

// MostPopularMovie returns the movie with the highest issued-ticket
// count.  The tie-break between equal counts is stable but unspecified
// (first encountered in map iteration order).  ok is false when no
// tickets are live.
func (l *SalesLedger) MostPopularMovie() (movie string, ok bool) {
	highest := 0
	for m, e := range l.byMovie {
		if e.Count > highest {
			highest = e.Count
			movie = m
			ok = true
		}
	}
	return movie, ok
}

// TotalRevenue returns the running revenue of live tickets.
func (l *SalesLedger) TotalRevenue() float64 { return l.totalRevenue }

// TotalTicketsSold returns the running count of live tickets.
func (l *SalesLedger) TotalTicketsSold() int { return l.totalTicketsSold }

// Snapshot copies the ledger's aggregates.  The returned maps are
// detached from ledger state.
func (l *SalesLedger) Snapshot() StatsSnapshot {
	byMovie := make(map[string]BreakdownEntry, len(l.byMovie))
	for m, e := range l.byMovie {
		byMovie[m] = *e
	}
	byTime := make(map[string]BreakdownEntry, len(l.byTime))
	for t, e := range l.byTime {
		byTime[t] = *e
	}
	return StatsSnapshot{
		TotalRevenue:     l.totalRevenue,
		TotalTicketsSold: l.totalTicketsSold,
		RevenueByMovie:   byMovie,
		RevenueByTime:    byTime,
		GeneratedAt:      time.Now().UTC(),
	}
}

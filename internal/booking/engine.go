package booking

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/events"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

// TicketRequest is one requested admission inside an add-customer or
// add-ticket call.
type TicketRequest struct {
	Type  model.TicketType `json:"type"`
	Movie string           `json:"movie"`
	Time  string           `json:"time"`
	Seat  string           `json:"seat"`
}

// Statistics extends the ledger snapshot with the live queue length.
type Statistics struct {
	StatsSnapshot
	QueueLength int `json:"queue_length"`
}

// Engine is the single owner of all live booking state.  Every
// mutating operation runs under one engine-wide lock: seat reservation
// is a check-then-act sequence, so two concurrent ticket requests for
// the same seat must never both observe "available".  Notifications go
// out fire-and-forget after the mutation is committed.
//
// The head of the queue is the customer currently being served; their
// tickets are the current selection.  Advance discards the head and
// service moves to the next customer.
type Engine struct {
	mu sync.RWMutex

	catalog   *TicketCatalog
	inventory *SeatInventory
	queue     *CustomerQueue
	ledger    *SalesLedger
	pub       events.Publisher

	movies []string
	times  []string
}

// NewEngine builds an engine for the given show catalog and initializes
// an available grid for every (movie, time) pair.  A nil publisher
// disables notifications.
func NewEngine(movies, times []string, pub events.Publisher) *Engine {
	if pub == nil {
		pub = events.Nop{}
	}
	e := &Engine{
		catalog:   NewTicketCatalog(pub),
		inventory: NewSeatInventory(pub),
		queue:     NewCustomerQueue(),
		ledger:    NewSalesLedger(),
		pub:       pub,
		movies:    append([]string(nil), movies...),
		times:     append([]string(nil), times...),
	}
	e.inventory.Initialize(e.movies, e.times)
	return e
}

// Movies returns the configured movie titles.
func (e *Engine) Movies() []string {
	return append([]string(nil), e.movies...)
}

// Showtimes returns the configured showtime strings.
func (e *Engine) Showtimes() []string {
	return append([]string(nil), e.times...)
}

// AddCustomer creates a customer, issues a ticket for every request
// whose seat could be reserved (already-taken seats are skipped, not
// fatal), and enqueues them.  The reserve call is the availability
// check: overflow seat codes outside the fixed grid are added lazily
// rather than rejected.  When the queue was empty the new customer
// immediately becomes the one being served.  Emits customer-added.
func (e *Engine) AddCustomer(name string, requests []TicketRequest) *model.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()

	cust := &model.Customer{ID: uuid.NewString(), Name: name}
	for _, r := range requests {
		if !e.inventory.Reserve(r.Movie, r.Time, r.Seat) {
			log.Printf("engine: seat %s already taken for %s %s, skipping request", r.Seat, r.Movie, r.Time)
			continue
		}
		t := e.catalog.Create(r.Type, r.Movie, r.Time, r.Seat)
		e.ledger.RecordIssued(t)
		cust.Tickets = append(cust.Tickets, t)
	}
	e.queue.Enqueue(cust)
	snapshot := cust.Clone()
	e.pub.Publish(events.CustomerAdded, snapshot)
	return snapshot
}

// Advance finishes serving the customer at the head of the queue and
// moves service to the next one.  Returns the new current customer, or
// nil when the queue ran out.  Emits next-customer either way.
func (e *Engine) Advance() *model.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.advanceLocked()
}

func (e *Engine) advanceLocked() *model.Customer {
	e.queue.Dequeue()
	cur := e.queue.PeekFront().Clone()
	if cur == nil {
		e.pub.Publish(events.NextCustomer, (*model.Customer)(nil))
		return nil
	}
	e.pub.Publish(events.NextCustomer, cur)
	return cur
}

// MoveCurrentToEnd sends the customer being served to the back of the
// line and selects the next one.  The re-enqueue happens before the
// head is replaced, so a single-member queue re-selects itself.
// Returns nil when nobody is being served.  Emits next-customer then
// customer-moved-to-end.
func (e *Engine) MoveCurrentToEnd() *model.Customer {
	e.mu.Lock()
	defer e.mu.Unlock()

	moved := e.queue.PeekFront()
	if moved == nil {
		return nil
	}
	e.queue.RotateFront()
	cur := e.queue.PeekFront().Clone()
	e.pub.Publish(events.NextCustomer, cur)
	e.pub.Publish(events.CustomerMovedToEnd, moved.Clone())
	return cur
}

// AddTicket issues one more ticket for a customer anywhere in the
// queue.  The lookup is a linear scan, which is fine at walk-up-queue
// scale.  Availability is decided by the reserve itself, so overflow
// seat codes sell lazily here too.  Fails with ErrPersonNotFound or
// ErrSeatUnavailable.  Emits ticket-added on success.
func (e *Engine) AddTicket(customerID string, req TicketRequest) (model.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var target *model.Customer
	for _, c := range e.queue.ToOrderedSequence() {
		if c.ID == customerID {
			target = c
			break
		}
	}
	if target == nil {
		return model.Ticket{}, ErrPersonNotFound
	}
	if !e.inventory.Reserve(req.Movie, req.Time, req.Seat) {
		return model.Ticket{}, ErrSeatUnavailable
	}

	t := e.catalog.Create(req.Type, req.Movie, req.Time, req.Seat)
	e.ledger.RecordIssued(t)
	target.Tickets = append(target.Tickets, t)

	e.pub.Publish(events.TicketAdded, events.TicketAddedPayload{CustomerID: customerID, Ticket: t})
	return t, nil
}

// RemoveTicket finds a ticket by id across every customer, removes it
// from its owner, frees the underlying seat and reverses the ledger
// entry.  Fails with ErrTicketNotFound.  Emits ticket-removed.
func (e *Engine) RemoveTicket(ticketID string) (model.Ticket, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, c := range e.queue.ToOrderedSequence() {
		for i, t := range c.Tickets {
			if t.ID != ticketID {
				continue
			}
			c.Tickets = append(c.Tickets[:i], c.Tickets[i+1:]...)
			e.inventory.Free(t.Movie, t.Time, t.Seat)
			e.ledger.RecordRemoved(t)
			e.pub.Publish(events.TicketRemoved, events.TicketRemovedPayload{
				TicketID:   ticketID,
				Ticket:     t,
				CustomerID: c.ID,
			})
			return t, nil
		}
	}
	return model.Ticket{}, ErrTicketNotFound
}

// SettlePurchase takes payment for the customer being served.  The
// total is the sum of their ticket prices; a short payment fails with
// InsufficientPaymentError and mutates nothing.  On success a receipt
// with per-ticket codes is built, purchase-completed is emitted, and
// service advances to the next customer.  The ledger is not touched
// here: statistics reflect issuance, not payment.
func (e *Engine) SettlePurchase(amountTendered float64) (model.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.queue.PeekFront()
	if cur == nil || len(cur.Tickets) == 0 {
		return model.Receipt{}, ErrNoActiveSelection
	}

	total := 0.0
	for _, t := range cur.Tickets {
		total += t.Price
	}
	total = round2(total)
	if amountTendered < total {
		return model.Receipt{}, &InsufficientPaymentError{Required: total, Provided: amountTendered}
	}

	codes := make([]string, 0, len(cur.Tickets))
	for _, t := range cur.Tickets {
		codes = append(codes, ticketCode(t))
	}
	receipt := model.Receipt{
		CustomerName: cur.Name,
		Tickets:      append([]model.Ticket(nil), cur.Tickets...),
		Total:        total,
		AmountPaid:   amountTendered,
		Change:       round2(amountTendered - total),
		Timestamp:    time.Now().UTC(),
		TicketCodes:  codes,
	}
	e.pub.Publish(events.PurchaseCompleted, receipt)
	e.advanceLocked()
	return receipt, nil
}

// PrintTickets produces a descriptor for each of the current customer's
// tickets.  Fails with ErrNoActiveSelection when nobody is being served
// or the selection is empty.  Emits tickets-printed.
func (e *Engine) PrintTickets() ([]model.TicketInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	cur := e.queue.PeekFront()
	if cur == nil || len(cur.Tickets) == 0 {
		return nil, ErrNoActiveSelection
	}
	infos := make([]model.TicketInfo, 0, len(cur.Tickets))
	for _, t := range cur.Tickets {
		infos = append(infos, model.TicketInfo{
			Code:         ticketCode(t),
			Movie:        t.Movie,
			Time:         t.Time,
			Seat:         t.Seat,
			Type:         t.Type,
			CustomerName: cur.Name,
		})
	}
	e.pub.Publish(events.TicketsPrinted, infos)
	return infos, nil
}

// BootstrapFromExternalRoster replaces the queue wholesale from an
// externally held customer list.  Missing ticket fields are filled with
// catalog defaults, seats are reserved idempotently (lazily creating
// grids for unseen shows), and the queue, ledger and seat grids are all
// re-derived from the imported set instead of accumulating on top of
// prior state.  The new queue head becomes the customer being served.
func (e *Engine) BootstrapFromExternalRoster(customers []model.RosterCustomer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.queue = NewCustomerQueue()
	e.ledger = NewSalesLedger()
	e.inventory = NewSeatInventory(e.pub)
	e.inventory.Initialize(e.movies, e.times)

	for _, rc := range customers {
		cust := &model.Customer{ID: rc.ID, Name: rc.Name}
		if cust.ID == "" {
			cust.ID = uuid.NewString()
		}
		for _, rt := range rc.Tickets {
			t := e.completeRosterTicket(rt)
			cust.Tickets = append(cust.Tickets, t)
			e.inventory.Reserve(rt.Movie, rt.Time, rt.Seat)
			e.ledger.RecordIssued(t)
		}
		e.queue.Enqueue(cust)
	}
	log.Printf("engine: bootstrapped %d customers, %d tickets from external roster",
		e.queue.Size(), e.ledger.TotalTicketsSold())
}

// completeRosterTicket fills the optional fields of an imported ticket
// with the catalog defaults for its type.  Supplied values win over
// defaults; the seat label is kept verbatim for display.
func (e *Engine) completeRosterTicket(rt model.RosterTicket) model.Ticket {
	typ := resolveType(model.TicketType(rt.Type))
	v := ticketVariants[typ]
	t := model.Ticket{
		ID:          rt.ID,
		Type:        typ,
		Movie:       rt.Movie,
		Time:        rt.Time,
		Seat:        rt.Seat,
		Price:       v.price,
		Concessions: v.concessions,
		VIPLounge:   v.vipLounge,
		ToyIncluded: v.toyIncluded,
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if rt.Price != nil {
		t.Price = *rt.Price
	}
	if rt.Concessions != nil {
		t.Concessions = *rt.Concessions
	}
	if rt.VIPLounge != nil {
		t.VIPLounge = *rt.VIPLounge
	}
	if rt.ToyIncluded != nil {
		t.ToyIncluded = *rt.ToyIncluded
	}
	return t
}

// CurrentCustomer returns a copy of the customer being served, or nil.
func (e *Engine) CurrentCustomer() *model.Customer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.queue.PeekFront().Clone()
}

// SelectedTickets returns a copy of the current customer's tickets.
func (e *Engine) SelectedTickets() []model.Ticket {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cur := e.queue.PeekFront()
	if cur == nil {
		return nil
	}
	return append([]model.Ticket(nil), cur.Tickets...)
}

// QueueSnapshot returns head-first copies of every queued customer.
func (e *Engine) QueueSnapshot() []*model.Customer {
	e.mu.RLock()
	defer e.mu.RUnlock()
	seq := e.queue.ToOrderedSequence()
	out := make([]*model.Customer, 0, len(seq))
	for _, c := range seq {
		out = append(out, c.Clone())
	}
	return out
}

// IsSeatAvailable reports seat availability for a show.
func (e *Engine) IsSeatAvailable(movie, showtime, seat string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inventory.IsAvailable(movie, showtime, seat)
}

// SeatMap returns a copy of a show's seat grid, nil for unknown shows.
func (e *Engine) SeatMap(movie, showtime string) map[string]SeatState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.inventory.Snapshot(movie, showtime)
}

// Occupancy returns the occupied percentage for a show in [0,100].
// ok is false for unknown shows, so callers get existence and the
// reading from one locked pass.
func (e *Engine) Occupancy(movie, showtime string) (float64, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.inventory.HasShow(movie, showtime) {
		return 0, false
	}
	return e.inventory.OccupancyPercent(movie, showtime), true
}

// Statistics returns the ledger snapshot plus the live queue length.
func (e *Engine) Statistics() Statistics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Statistics{StatsSnapshot: e.ledger.Snapshot(), QueueLength: e.queue.Size()}
}

// MostPopularMovie returns the movie with the most live tickets.
func (e *Engine) MostPopularMovie() (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ledger.MostPopularMovie()
}

// ticketCode builds a printable code: 3-letter movie prefix, showtime
// digits, normalized seat and a random 3-digit suffix,
// e.g. "AVE-2030-B5-041".
func ticketCode(t model.Ticket) string {
	movie := []rune(strings.ToUpper(t.Movie))
	if len(movie) > 3 {
		movie = movie[:3]
	}
	timeCode := strings.ReplaceAll(t.Time, ":", "")
	return fmt.Sprintf("%s-%s-%s-%03d", string(movie), timeCode, NormalizeSeat(t.Seat), rand.Intn(1000))
}

// round2 rounds to 2 decimal places, the precision receipts display.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

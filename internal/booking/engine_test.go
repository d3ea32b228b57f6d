package booking

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/events"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

var (
	testMovies = []string{"Inception", "Joker"}
	testTimes  = []string{"20:30", "22:30"}
)

func newTestEngine() (*Engine, *events.Recorder) {
	rec := &events.Recorder{}
	return NewEngine(testMovies, testTimes, rec), rec
}

func TestAddCustomerIssuesTicketsAndRecordsSales(t *testing.T) {
	e, rec := newTestEngine()

	ana := e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketStandard, Movie: "Inception", Time: "20:30", Seat: "B5"},
	})
	require.NotNil(t, ana)
	require.Len(t, ana.Tickets, 1)
	assert.Equal(t, 10.00, ana.Tickets[0].Price)

	stats := e.Statistics()
	assert.Equal(t, 1, stats.TotalTicketsSold)
	assert.Equal(t, 10.00, stats.TotalRevenue)
	assert.False(t, e.IsSeatAvailable("Inception", "20:30", "B5"))

	// first customer in becomes the one being served
	require.NotNil(t, e.CurrentCustomer())
	assert.Equal(t, ana.ID, e.CurrentCustomer().ID)
	assert.Len(t, e.SelectedTickets(), 1)

	added := rec.Named(events.CustomerAdded)
	require.Len(t, added, 1)
	assert.Equal(t, "Ana", added[0].Payload.(*model.Customer).Name)
}

func TestAddCustomerSkipsOccupiedSeats(t *testing.T) {
	e, _ := newTestEngine()

	e.AddCustomer("First", []TicketRequest{
		{Movie: "Inception", Time: "20:30", Seat: "A1"},
	})
	before := e.Statistics()

	second := e.AddCustomer("Second", []TicketRequest{
		{Movie: "Inception", Time: "20:30", Seat: "A1"},
		{Movie: "Inception", Time: "20:30", Seat: "A2"},
	})
	require.NotNil(t, second, "the customer is still added with whatever tickets succeeded")
	require.Len(t, second.Tickets, 1)
	assert.Equal(t, "A2", second.Tickets[0].Seat)

	after := e.Statistics()
	assert.Equal(t, before.TotalTicketsSold+1, after.TotalTicketsSold, "the skipped request must not reach the ledger")
}

func TestAddCustomerSellsOverflowSeat(t *testing.T) {
	e, rec := newTestEngine()

	ana := e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketVIP, Movie: "Joker", Time: "22:30", Seat: "5"},
	})
	require.Len(t, ana.Tickets, 1, "a seat code outside the fixed grid is added lazily, not skipped")
	assert.Equal(t, "VIP-5", ana.Tickets[0].Seat)
	assert.False(t, e.IsSeatAvailable("Joker", "22:30", "5"))

	bruno := e.AddCustomer("Bruno", []TicketRequest{
		{Type: model.TicketVIP, Movie: "Joker", Time: "22:30", Seat: "VIP-5"},
	})
	assert.Empty(t, bruno.Tickets, "the same overflow seat cannot be sold twice")
	assert.Equal(t, 1, e.Statistics().TotalTicketsSold)

	reserved := rec.Named(events.SeatReserved)
	require.Len(t, reserved, 1)
	assert.Equal(t, "5", reserved[0].Payload.(events.SeatPayload).Seat)
}

func TestAddTicketSellsOverflowSeat(t *testing.T) {
	e, _ := newTestEngine()
	ana := e.AddCustomer("Ana", nil)

	tk, err := e.AddTicket(ana.ID, TicketRequest{Type: model.TicketVIP, Movie: "Joker", Time: "22:30", Seat: "7"})
	require.NoError(t, err)
	assert.Equal(t, "VIP-7", tk.Seat)

	_, err = e.AddTicket(ana.ID, TicketRequest{Movie: "Joker", Time: "22:30", Seat: "7"})
	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestSettlePurchaseScenario(t *testing.T) {
	e, rec := newTestEngine()

	e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketStandard, Movie: "Inception", Time: "20:30", Seat: "B5"},
	})
	e.AddCustomer("Bruno", nil)

	receipt, err := e.SettlePurchase(10.00)
	require.NoError(t, err)
	assert.Equal(t, "Ana", receipt.CustomerName)
	assert.Equal(t, 10.00, receipt.Total)
	assert.Equal(t, 0.00, receipt.Change, "tendering exactly the total yields zero change")
	require.Len(t, receipt.TicketCodes, 1)
	assert.Regexp(t, regexp.MustCompile(`^INC-2030-B5-\d{3}$`), receipt.TicketCodes[0])
	assert.False(t, receipt.Timestamp.IsZero())

	// settlement advanced service to Bruno
	require.NotNil(t, e.CurrentCustomer())
	assert.Equal(t, "Bruno", e.CurrentCustomer().Name)

	// statistics reflect issuance, not payment: settling changes nothing
	stats := e.Statistics()
	assert.Equal(t, 1, stats.TotalTicketsSold)
	assert.Equal(t, 10.00, stats.TotalRevenue)

	require.Len(t, rec.Named(events.PurchaseCompleted), 1)
}

func TestSettlePurchaseRejectsShortPayment(t *testing.T) {
	e, _ := newTestEngine()
	e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketVIP, Movie: "Joker", Time: "22:30", Seat: "5"},
		{Type: model.TicketChild, Movie: "Joker", Time: "22:30", Seat: "C2"},
	})

	_, err := e.SettlePurchase(22.49)
	var short *InsufficientPaymentError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 22.50, short.Required)
	assert.Equal(t, 22.49, short.Provided)

	// nothing mutated: same customer still being served, totals intact
	assert.Equal(t, "Ana", e.CurrentCustomer().Name)
	assert.Equal(t, 22.50, e.Statistics().TotalRevenue)
}

func TestSettlePurchaseRequiresSelection(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.SettlePurchase(50)
	assert.ErrorIs(t, err, ErrNoActiveSelection)

	e.AddCustomer("Empty Hands", nil)
	_, err = e.SettlePurchase(50)
	assert.ErrorIs(t, err, ErrNoActiveSelection, "a current customer without tickets cannot settle")
}

func TestAdvancePreservesFIFOOrder(t *testing.T) {
	e, rec := newTestEngine()
	e.AddCustomer("Ana", nil)
	e.AddCustomer("Bruno", nil)
	e.AddCustomer("Carla", nil)

	next := e.Advance()
	require.NotNil(t, next)
	assert.Equal(t, "Bruno", next.Name)

	next = e.Advance()
	require.NotNil(t, next)
	assert.Equal(t, "Carla", next.Name)

	assert.Nil(t, e.Advance(), "advancing past the tail clears the current customer")
	assert.Nil(t, e.CurrentCustomer())

	emitted := rec.Named(events.NextCustomer)
	require.Len(t, emitted, 3)
	assert.Nil(t, emitted[2].Payload.(*model.Customer))
}

func TestMoveCurrentToEnd(t *testing.T) {
	e, rec := newTestEngine()
	assert.Nil(t, e.MoveCurrentToEnd(), "no current customer, nothing to move")

	e.AddCustomer("Ana", nil)
	e.AddCustomer("Bruno", nil)
	e.AddCustomer("Carla", nil)

	next := e.MoveCurrentToEnd()
	require.NotNil(t, next)
	assert.Equal(t, "Bruno", next.Name)

	order := e.QueueSnapshot()
	require.Len(t, order, 3)
	assert.Equal(t, []string{"Bruno", "Carla", "Ana"}, []string{order[0].Name, order[1].Name, order[2].Name})

	moved := rec.Named(events.CustomerMovedToEnd)
	require.Len(t, moved, 1)
	assert.Equal(t, "Ana", moved[0].Payload.(*model.Customer).Name)
}

func TestMoveCurrentToEndSingleMember(t *testing.T) {
	e, _ := newTestEngine()
	ana := e.AddCustomer("Ana", nil)

	next := e.MoveCurrentToEnd()
	require.NotNil(t, next)
	assert.Equal(t, ana.ID, next.ID, "a single-member queue re-selects itself")
	assert.Equal(t, 1, e.Statistics().QueueLength)
}

func TestAddTicket(t *testing.T) {
	e, rec := newTestEngine()
	ana := e.AddCustomer("Ana", nil)
	e.AddCustomer("Bruno", nil)

	_, err := e.AddTicket("nobody", TicketRequest{Movie: "Joker", Time: "22:30", Seat: "D4"})
	assert.ErrorIs(t, err, ErrPersonNotFound)

	tk, err := e.AddTicket(ana.ID, TicketRequest{Type: model.TicketChild, Movie: "Joker", Time: "22:30", Seat: "D4"})
	require.NoError(t, err)
	assert.Equal(t, 7.50, tk.Price)
	assert.Len(t, e.SelectedTickets(), 1, "Ana is current, so her selection refreshed")

	_, err = e.AddTicket(ana.ID, TicketRequest{Movie: "Joker", Time: "22:30", Seat: "D4"})
	assert.ErrorIs(t, err, ErrSeatUnavailable, "the same seat cannot be sold twice")
	assert.Equal(t, 1, e.Statistics().TotalTicketsSold, "the rejected request must not alter the ledger")

	payloads := rec.Named(events.TicketAdded)
	require.Len(t, payloads, 1)
	assert.Equal(t, ana.ID, payloads[0].Payload.(events.TicketAddedPayload).CustomerID)
}

func TestRemoveTicket(t *testing.T) {
	e, rec := newTestEngine()
	ana := e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketStandard, Movie: "Inception", Time: "20:30", Seat: "B5"},
		{Type: model.TicketChild, Movie: "Inception", Time: "20:30", Seat: "B6"},
	})
	require.Len(t, ana.Tickets, 2)

	_, err := e.RemoveTicket("missing")
	assert.ErrorIs(t, err, ErrTicketNotFound)

	removed, err := e.RemoveTicket(ana.Tickets[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "B5", removed.Seat)

	stats := e.Statistics()
	assert.Equal(t, 1, stats.TotalTicketsSold)
	assert.Equal(t, 7.50, stats.TotalRevenue)
	assert.True(t, e.IsSeatAvailable("Inception", "20:30", "B5"), "removal frees the seat")
	assert.Len(t, e.SelectedTickets(), 1)

	payloads := rec.Named(events.TicketRemoved)
	require.Len(t, payloads, 1)
	assert.Equal(t, ana.ID, payloads[0].Payload.(events.TicketRemovedPayload).CustomerID)
}

func TestVIPTicketRoundTrip(t *testing.T) {
	e, _ := newTestEngine()
	ana := e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketVIP, Movie: "Joker", Time: "22:30", Seat: "5"},
	})
	require.Len(t, ana.Tickets, 1)
	assert.Equal(t, "VIP-5", ana.Tickets[0].Seat, "the display label keeps the prefix")
	assert.False(t, e.IsSeatAvailable("Joker", "22:30", "5"), "inventory tracks the normalized code")

	_, err := e.RemoveTicket(ana.Tickets[0].ID)
	require.NoError(t, err)
	assert.True(t, e.IsSeatAvailable("Joker", "22:30", "5"), "removing the VIP ticket frees seat 5, not VIP-5")
}

func TestPrintTickets(t *testing.T) {
	e, rec := newTestEngine()

	_, err := e.PrintTickets()
	assert.ErrorIs(t, err, ErrNoActiveSelection)

	e.AddCustomer("Ana", []TicketRequest{
		{Type: model.TicketVIP, Movie: "Inception", Time: "20:30", Seat: "5"},
	})
	infos, err := e.PrintTickets()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "Ana", infos[0].CustomerName)
	assert.Equal(t, "VIP-5", infos[0].Seat)
	assert.Regexp(t, regexp.MustCompile(`^INC-2030-5-\d{3}$`), infos[0].Code)

	require.Len(t, rec.Named(events.TicketsPrinted), 1)
}

func TestBootstrapFromExternalRoster(t *testing.T) {
	e, _ := newTestEngine()

	// prior state must be replaced, not accumulated on
	e.AddCustomer("Walkup", []TicketRequest{
		{Movie: "Inception", Time: "20:30", Seat: "H12"},
	})

	price := 12.0
	e.BootstrapFromExternalRoster([]model.RosterCustomer{
		{ID: "r-1", Name: "Imported Ana", Tickets: []model.RosterTicket{
			{ID: "rt-1", Movie: "Inception", Time: "20:30", Seat: "B5", Price: &price},
			{Movie: "Midnight Premiere", Time: "23:59", Seat: "A1", Type: "vip"},
		}},
		{Name: "Imported Bruno"},
	})

	// ledger re-derived from the imported set only
	stats := e.Statistics()
	assert.Equal(t, 2, stats.TotalTicketsSold)
	assert.Equal(t, 12.0+15.0, stats.TotalRevenue)
	assert.Equal(t, 2, stats.QueueLength)

	cur := e.CurrentCustomer()
	require.NotNil(t, cur)
	assert.Equal(t, "Imported Ana", cur.Name)
	require.Len(t, cur.Tickets, 2)
	assert.Equal(t, "rt-1", cur.Tickets[0].ID)
	assert.Equal(t, 12.0, cur.Tickets[0].Price, "a supplied price wins over the catalog default")
	assert.Equal(t, model.TicketVIP, cur.Tickets[1].Type)
	assert.True(t, cur.Tickets[1].VIPLounge, "missing perks come from the catalog")
	assert.NotEmpty(t, cur.Tickets[1].ID, "missing ids are generated")

	// seats reserved, lazily creating the unseen show's grid
	assert.False(t, e.IsSeatAvailable("Inception", "20:30", "B5"))
	assert.False(t, e.IsSeatAvailable("Midnight Premiere", "23:59", "A1"))

	// the walk-up customer's reservation was discarded with them
	assert.True(t, e.IsSeatAvailable("Inception", "20:30", "H12"), "seat grids are rebuilt from the imported set")

	bruno := e.QueueSnapshot()[1]
	assert.Equal(t, "Imported Bruno", bruno.Name)
	assert.NotEmpty(t, bruno.ID)
}

func TestReceiptTicketsAreDetached(t *testing.T) {
	e, _ := newTestEngine()
	e.AddCustomer("Ana", []TicketRequest{
		{Movie: "Inception", Time: "20:30", Seat: "B5"},
	})
	receipt, err := e.SettlePurchase(20)
	require.NoError(t, err)
	assert.Equal(t, 10.00, receipt.Change)

	receipt.Tickets[0].Price = 0
	assert.Equal(t, 10.00, e.Statistics().TotalRevenue)
}

func TestEngineFailureSentinels(t *testing.T) {
	e, _ := newTestEngine()
	_, err := e.RemoveTicket("x")
	assert.True(t, errors.Is(err, ErrTicketNotFound))
	_, err = e.AddTicket("x", TicketRequest{})
	assert.True(t, errors.Is(err, ErrPersonNotFound))
}

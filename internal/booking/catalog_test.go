package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-box-office/internal/events"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

func TestCatalogVariants(t *testing.T) {
	c := NewTicketCatalog(nil)

	std := c.Create(model.TicketStandard, "Joker", "20:00", "B5")
	assert.NotEmpty(t, std.ID)
	assert.Equal(t, 10.00, std.Price)
	assert.Equal(t, "B5", std.Seat)
	assert.False(t, std.Concessions)
	assert.False(t, std.VIPLounge)
	assert.False(t, std.ToyIncluded)

	vip := c.Create(model.TicketVIP, "Joker", "20:00", "5")
	assert.Equal(t, 15.00, vip.Price)
	assert.Equal(t, "VIP-5", vip.Seat, "VIP tickets keep the display prefix")
	assert.True(t, vip.Concessions)
	assert.True(t, vip.VIPLounge)

	child := c.Create(model.TicketChild, "Toy Story 4", "10:00", "C2")
	assert.Equal(t, 7.50, child.Price)
	assert.True(t, child.ToyIncluded)

	assert.NotEqual(t, std.ID, vip.ID, "ids are process-unique")
}

func TestCatalogUnknownTypeFallsBackToStandard(t *testing.T) {
	c := NewTicketCatalog(nil)
	tk := c.Create("imax", "Joker", "20:00", "B5")
	assert.Equal(t, model.TicketStandard, tk.Type)
	assert.Equal(t, 10.00, tk.Price)

	empty := c.Create("", "Joker", "20:00", "B6")
	assert.Equal(t, model.TicketStandard, empty.Type)
}

func TestCatalogPriceOf(t *testing.T) {
	c := NewTicketCatalog(nil)
	assert.Equal(t, 10.00, c.PriceOf(model.TicketStandard))
	assert.Equal(t, 15.00, c.PriceOf("VIP"), "type tags are case-insensitive")
	assert.Equal(t, 7.50, c.PriceOf(model.TicketChild))
	assert.Equal(t, 10.00, c.PriceOf("imax"))
}

func TestCatalogEmitsTicketCreated(t *testing.T) {
	rec := &events.Recorder{}
	c := NewTicketCatalog(rec)
	tk := c.Create(model.TicketVIP, "Joker", "20:00", "5")

	created := rec.Named(events.TicketCreated)
	require.Len(t, created, 1)
	assert.Equal(t, tk, created[0].Payload.(model.Ticket))
}

package booking

import (
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/cinema-box-office/internal/events"
	"github.com/iliyamo/cinema-box-office/internal/model"
)

// ticketVariant is one row of the catalog table.  Adding a ticket type
// is a table edit, not new control flow.
type ticketVariant struct {
	price       float64
	concessions bool
	vipLounge   bool
	toyIncluded bool
	seatPrefix  string // prepended to the display seat label
}

var ticketVariants = map[model.TicketType]ticketVariant{
	model.TicketStandard: {price: 10.00},
	model.TicketVIP:      {price: 15.00, concessions: true, vipLounge: true, seatPrefix: "VIP-"},
	model.TicketChild:    {price: 7.50, toyIncluded: true},
}

// TicketCatalog maps a ticket type tag and booking request to a fully
// priced ticket record.  Prices and perks come from the variant table,
// never from the caller.
type TicketCatalog struct {
	pub events.Publisher
}

// NewTicketCatalog returns a catalog publishing ticket-created events to pub.
func NewTicketCatalog(pub events.Publisher) *TicketCatalog {
	if pub == nil {
		pub = events.Nop{}
	}
	return &TicketCatalog{pub: pub}
}

// resolveType lowercases the tag and maps unknown types to standard.
// The fallback is an explicit policy, so it is logged rather than
// applied silently.
func resolveType(typ model.TicketType) model.TicketType {
	t := model.TicketType(strings.ToLower(string(typ)))
	if t == "" {
		return model.TicketStandard
	}
	if _, ok := ticketVariants[t]; !ok {
		log.Printf("catalog: unknown ticket type %q, falling back to standard", typ)
		return model.TicketStandard
	}
	return t
}

// Create issues a ticket of the given type for (movie, showtime, seat).
// VIP tickets keep a "VIP-" prefixed seat label for display; inventory
// always works on the normalized code.  Emits ticket-created.
func (c *TicketCatalog) Create(typ model.TicketType, movie, showtime, seat string) model.Ticket {
	t := resolveType(typ)
	v := ticketVariants[t]
	ticket := model.Ticket{
		ID:          uuid.NewString(),
		Type:        t,
		Movie:       movie,
		Time:        showtime,
		Seat:        v.seatPrefix + seat,
		Price:       v.price,
		Concessions: v.concessions,
		VIPLounge:   v.vipLounge,
		ToyIncluded: v.toyIncluded,
	}
	c.pub.Publish(events.TicketCreated, ticket)
	return ticket
}

// PriceOf returns the catalog price for a ticket type without creating
// anything.  Unknown types price as standard.
func (c *TicketCatalog) PriceOf(typ model.TicketType) float64 {
	return ticketVariants[resolveType(typ)].price
}

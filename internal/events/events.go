// Package events defines the notifications the booking engine emits and
// the publisher capability it emits them through.  The engine depends on
// the Publisher interface only; concrete sinks (the AMQP publisher, the
// test recorder) live elsewhere.
package events

import "github.com/iliyamo/cinema-box-office/internal/model"

// Event names emitted by the engine.  Payload shapes are documented next
// to each constant; see the payload structs below for the composite ones.
const (
	SeatsInitialized   = "seats-initialized"     // SeatsInitializedPayload
	CustomerAdded      = "customer-added"        // *model.Customer
	NextCustomer       = "next-customer"         // *model.Customer, nil when the queue ran out
	CustomerMovedToEnd = "customer-moved-to-end" // *model.Customer
	TicketCreated      = "ticket-created"        // model.Ticket
	TicketAdded        = "ticket-added"          // TicketAddedPayload
	TicketRemoved      = "ticket-removed"        // TicketRemovedPayload
	SeatReserved       = "seat-reserved"         // SeatPayload
	SeatFreed          = "seat-freed"            // SeatPayload
	PurchaseCompleted  = "purchase-completed"    // model.Receipt
	TicketsPrinted     = "tickets-printed"       // []model.TicketInfo
)

// Publisher is the notification sink the engine publishes to.  Publishing
// is fire-and-forget: implementations must not block the caller and must
// never propagate subscriber failures back into the engine.
type Publisher interface {
	Publish(event string, payload any)
}

// SeatsInitializedPayload accompanies SeatsInitialized.
type SeatsInitializedPayload struct {
	Movies []string `json:"movies"`
	Times  []string `json:"times"`
}

// SeatPayload accompanies SeatReserved and SeatFreed.  Seat carries the
// normalized code, never a display label.
type SeatPayload struct {
	Movie string `json:"movie"`
	Time  string `json:"time"`
	Seat  string `json:"seat"`
}

// TicketAddedPayload accompanies TicketAdded.
type TicketAddedPayload struct {
	CustomerID string       `json:"customer_id"`
	Ticket     model.Ticket `json:"ticket"`
}

// TicketRemovedPayload accompanies TicketRemoved.
type TicketRemovedPayload struct {
	TicketID   string       `json:"ticket_id"`
	Ticket     model.Ticket `json:"ticket"`
	CustomerID string       `json:"customer_id"`
}

// Nop discards every event.  Used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(string, any) {}

package model

// TicketType tags an admission ticket with its pricing/perk category.
// The catalog recognises standard, vip and child; anything else falls
// back to standard at creation time.
type TicketType string

const (
	TicketStandard TicketType = "standard" // base admission, no perks
	TicketVIP      TicketType = "vip"      // concessions + lounge access
	TicketChild    TicketType = "child"    // includes a toy
)

// Ticket is an issued admission record.  It is immutable once created
// except for being removed from its owning customer.
//
// Fields:
//  ID          – process-unique identifier (UUID).
//  Type        – pricing/perk category (standard, vip, child).
//  Movie       – movie title the ticket admits to.
//  Time        – showtime string (e.g. "20:30").
//  Seat        – display seat label; VIP tickets keep the "VIP-" prefix
//                here even though inventory tracks the normalized code.
//  Price       – catalog price in dollars, fixed by the ticket type.
//  Concessions – whether a concessions voucher is included.
//  VIPLounge   – whether lounge access is included.
//  ToyIncluded – whether a toy is included (child tickets).
type Ticket struct {
	ID          string     `json:"id"`
	Type        TicketType `json:"type"`
	Movie       string     `json:"movie"`
	Time        string     `json:"time"`
	Seat        string     `json:"seat"`
	Price       float64    `json:"price"`
	Concessions bool       `json:"concessions"`
	VIPLounge   bool       `json:"vip_lounge"`
	ToyIncluded bool       `json:"toy_included"`
}

// TicketInfo is the per-ticket descriptor produced when printing the
// current customer's tickets.
type TicketInfo struct {
	Code         string     `json:"code"`
	Movie        string     `json:"movie"`
	Time         string     `json:"time"`
	Seat         string     `json:"seat"`
	Type         TicketType `json:"type"`
	CustomerName string     `json:"customer_name"`
}

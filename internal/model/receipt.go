package model

import "time"

// Receipt summarises a settled purchase.  It is derived at settlement
// time and never stored by the engine.
//
// Fields:
//  CustomerName – the customer who paid.
//  Tickets      – the tickets covered by the payment.
//  Total        – sum of ticket prices in dollars.
//  AmountPaid   – cash tendered.
//  Change       – tendered minus total, rounded to 2 decimal places.
//  Timestamp    – UTC settlement time.
//  TicketCodes  – one generated code per ticket, same order as Tickets.
type Receipt struct {
	CustomerName string    `json:"customer_name"`
	Tickets      []Ticket  `json:"tickets"`
	Total        float64   `json:"total"`
	AmountPaid   float64   `json:"amount_paid"`
	Change       float64   `json:"change"`
	Timestamp    time.Time `json:"timestamp"`
	TicketCodes  []string  `json:"ticket_codes"`
}

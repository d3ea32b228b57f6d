package model

// Customer is one walk-up party waiting in (or currently at the front
// of) the service queue.  A customer owns its tickets exclusively: a
// ticket belongs to exactly one customer at a time.
//
// Fields:
//  ID      – process-unique identifier (UUID, or the external roster id
//            when imported).
//  Name    – display name used on receipts and printed tickets.
//  Tickets – issued tickets in booking order.
type Customer struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Tickets []Ticket `json:"tickets"`
}

// Clone returns a deep copy so callers cannot mutate engine state
// through a returned customer.
func (c *Customer) Clone() *Customer {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Tickets = append([]Ticket(nil), c.Tickets...)
	return &cp
}

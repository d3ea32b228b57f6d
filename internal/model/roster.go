package model

// RosterTicket is one ticket row from an external system of record.
// Optional fields are pointers so the engine can tell "absent" from
// "zero" and fill catalog defaults for whatever is missing.
type RosterTicket struct {
	ID          string   `json:"id,omitempty"`
	Movie       string   `json:"movie"`
	Time        string   `json:"time"`
	Seat        string   `json:"seat"`
	Price       *float64 `json:"price,omitempty"`
	Type        string   `json:"type,omitempty"`
	Concessions *bool    `json:"concessions,omitempty"`
	VIPLounge   *bool    `json:"vip_lounge,omitempty"`
	ToyIncluded *bool    `json:"toy_included,omitempty"`
}

// RosterCustomer is one customer record supplied at bootstrap/re-sync
// time, when another system is authoritative for customer data.
type RosterCustomer struct {
	ID      string         `json:"id,omitempty"`
	Name    string         `json:"name"`
	Tickets []RosterTicket `json:"tickets"`
}

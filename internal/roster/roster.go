// Package roster reads customer and ticket rows from the external
// system of record the box office is seeded from.  The engine consumes
// the result through BootstrapFromExternalRoster; nothing is ever
// written back.
package roster

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/cinema-box-office/internal/model"
)

// Repo provides read access to the roster tables.
type Repo struct{ DB *sql.DB }

// NewRepo wraps an open roster database handle.
func NewRepo(db *sql.DB) *Repo { return &Repo{DB: db} }

// LoadCustomers returns every roster customer in queue order together
// with their tickets.  Optional columns are NULL-able in the schema and
// map to nil pointers, which the engine fills with catalog defaults.
func (r *Repo) LoadCustomers(ctx context.Context) ([]model.RosterCustomer, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name FROM roster_customers ORDER BY queued_at, id`)
	if err != nil {
		return nil, fmt.Errorf("roster: query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.RosterCustomer
	index := make(map[string]int)
	for rows.Next() {
		var c model.RosterCustomer
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("roster: scan customer: %w", err)
		}
		index[c.ID] = len(customers)
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("roster: iterate customers: %w", err)
	}

	tickets, err := r.DB.QueryContext(ctx,
		`SELECT id, customer_id, movie, showtime, seat,
				price, ticket_type, concessions, vip_lounge, toy_included
		   FROM roster_tickets ORDER BY customer_id, id`)
	if err != nil {
		return nil, fmt.Errorf("roster: query tickets: %w", err)
	}
	defer tickets.Close()

	for tickets.Next() {
		var (
			t          model.RosterTicket
			customerID string
			price      sql.NullFloat64
			typ        sql.NullString
			conc       sql.NullBool
			lounge     sql.NullBool
			toy        sql.NullBool
		)
		if err := tickets.Scan(&t.ID, &customerID, &t.Movie, &t.Time, &t.Seat,
			&price, &typ, &conc, &lounge, &toy); err != nil {
			return nil, fmt.Errorf("roster: scan ticket: %w", err)
		}
		if price.Valid {
			t.Price = &price.Float64
		}
		if typ.Valid {
			t.Type = typ.String
		}
		if conc.Valid {
			t.Concessions = &conc.Bool
		}
		if lounge.Valid {
			t.VIPLounge = &lounge.Bool
		}
		if toy.Valid {
			t.ToyIncluded = &toy.Bool
		}
		i, ok := index[customerID]
		if !ok {
			// orphaned ticket row; skip rather than invent a customer
			continue
		}
		customers[i].Tickets = append(customers[i].Tickets, t)
	}
	if err := tickets.Err(); err != nil {
		return nil, fmt.Errorf("roster: iterate tickets: %w", err)
	}
	return customers, nil
}

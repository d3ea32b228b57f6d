// Package booking implements the box office's live state: the per-show
// seat inventory, the walk-up customer queue, the ticket catalog, the
// sales ledger and the engine that orchestrates them.
package booking

import (
	"errors"
	"fmt"
)

// ErrSeatUnavailable is returned when a requested seat is already
// occupied, or does not exist for the show.  Handlers should translate
// this into an HTTP 409 response.
var ErrSeatUnavailable = errors.New("seat unavailable")

// ErrPersonNotFound is returned when a referenced customer id is not
// present anywhere in the queue.  Handlers should translate this into
// an HTTP 404 response.
var ErrPersonNotFound = errors.New("person not found")

// ErrTicketNotFound is returned when a referenced ticket id is not held
// by any customer.  Handlers should translate this into an HTTP 404
// response.
var ErrTicketNotFound = errors.New("ticket not found")

// ErrNoActiveSelection is returned when an operation needs a current
// customer with at least one ticket and there is none.  Handlers should
// translate this into an HTTP 409 response.
var ErrNoActiveSelection = errors.New("no current customer or tickets selected")

// InsufficientPaymentError reports a tendered amount below the computed
// total.  It carries both amounts so the UI can display them.  No engine
// state is mutated when this error is returned.
type InsufficientPaymentError struct {
	Required float64
	Provided float64
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: required %.2f, provided %.2f", e.Required, e.Provided)
}

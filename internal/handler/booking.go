package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/roster"
)

// BookingHandler exposes the booking engine over HTTP.  Every endpoint
// is a thin translation layer: bind the body, call the engine, map the
// result (or failure) onto a status code and an echo.Map body.
type BookingHandler struct {
	Engine *booking.Engine
	Roster *roster.Repo // optional external roster source; nil when no DB is configured
}

// NewBookingHandler wires the engine and the optional roster repository.
func NewBookingHandler(engine *booking.Engine, repo *roster.Repo) *BookingHandler {
	return &BookingHandler{Engine: engine, Roster: repo}
}

// AddCustomer handles POST /v1/queue/customers.  Requests for occupied
// seats are skipped by the engine, so the response carries the customer
// as actually created, which may hold fewer tickets than requested.
func (h *BookingHandler) AddCustomer(c echo.Context) error {
	var body struct {
		Name    string                  `json:"name"`
		Tickets []booking.TicketRequest `json:"tickets"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	cust := h.Engine.AddCustomer(body.Name, body.Tickets)
	return c.JSON(http.StatusCreated, echo.Map{"customer": cust})
}

// NextCustomer handles POST /v1/queue/next.  The customer at the head
// is done; the response names who is served now, null when the queue
// ran out.
func (h *BookingHandler) NextCustomer(c echo.Context) error {
	cur := h.Engine.Advance()
	return c.JSON(http.StatusOK, echo.Map{"current": cur})
}

// RotateCurrent handles POST /v1/queue/rotate: the customer being
// served steps aside to the back of the line.
func (h *BookingHandler) RotateCurrent(c echo.Context) error {
	cur := h.Engine.MoveCurrentToEnd()
	if cur == nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "no customer is being served"})
	}
	return c.JSON(http.StatusOK, echo.Map{"current": cur})
}

// GetQueue handles GET /v1/queue: the full line head-first, plus the
// customer currently being served.
func (h *BookingHandler) GetQueue(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"current":   h.Engine.CurrentCustomer(),
		"customers": h.Engine.QueueSnapshot(),
	})
}

// AddTicket handles POST /v1/customers/:id/tickets.
func (h *BookingHandler) AddTicket(c echo.Context) error {
	var req booking.TicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, err := h.Engine.AddTicket(c.Param("id"), req)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"ticket": t})
}

// RemoveTicket handles DELETE /v1/tickets/:id.  The freed seat becomes
// available again and the sale is reversed in the ledger.
func (h *BookingHandler) RemoveTicket(c echo.Context) error {
	t, err := h.Engine.RemoveTicket(c.Param("id"))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"ticket": t})
}

// SettlePurchase handles POST /v1/purchase: takes payment for the
// current customer's selection and advances the queue.
func (h *BookingHandler) SettlePurchase(c echo.Context) error {
	var body struct {
		AmountTendered float64 `json:"amount_tendered"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	receipt, err := h.Engine.SettlePurchase(body.AmountTendered)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"receipt": receipt})
}

// PrintTickets handles POST /v1/tickets/print for the current customer.
func (h *BookingHandler) PrintTickets(c echo.Context) error {
	infos, err := h.Engine.PrintTickets()
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": infos})
}

// Bootstrap handles POST /v1/bootstrap.  The queue is replaced either
// from the customers in the request body or, when the body carries
// none, from the external roster database.
func (h *BookingHandler) Bootstrap(c echo.Context) error {
	var body struct {
		Customers []model.RosterCustomer `json:"customers"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	customers := body.Customers
	source := "request"
	if len(customers) == 0 {
		if h.Roster == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "no customers supplied and no roster database configured"})
		}
		loaded, err := h.Roster.LoadCustomers(c.Request().Context())
		if err != nil {
			c.Logger().Errorf("bootstrap: roster load failed: %v", err)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to load external roster"})
		}
		customers = loaded
		source = "database"
	}

	h.Engine.BootstrapFromExternalRoster(customers)
	return c.JSON(http.StatusOK, echo.Map{
		"source":    source,
		"customers": len(customers),
	})
}

// bookingError maps engine failures onto HTTP statuses.  Short payments
// get 402 with the exact amounts so the client can show the shortfall.
func bookingError(c echo.Context, err error) error {
	var short *booking.InsufficientPaymentError
	switch {
	case errors.Is(err, booking.ErrPersonNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "customer not found"})
	case errors.Is(err, booking.ErrTicketNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
	case errors.Is(err, booking.ErrSeatUnavailable):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat is not available"})
	case errors.Is(err, booking.ErrNoActiveSelection):
		return c.JSON(http.StatusConflict, echo.Map{"error": "no customer with tickets is being served"})
	case errors.As(err, &short):
		return c.JSON(http.StatusPaymentRequired, echo.Map{
			"error":    "insufficient payment",
			"required": short.Required,
			"provided": short.Provided,
		})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}

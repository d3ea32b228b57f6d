package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/booking"
)

// SeatsHandler serves read-only views of the seat inventory.
type SeatsHandler struct {
	Engine *booking.Engine
}

// NewSeatsHandler wires the engine.
func NewSeatsHandler(engine *booking.Engine) *SeatsHandler {
	return &SeatsHandler{Engine: engine}
}

// ListShows handles GET /v1/shows: the configured movies and showtimes.
func (h *SeatsHandler) ListShows(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"movies":    h.Engine.Movies(),
		"showtimes": h.Engine.Showtimes(),
	})
}

// SeatMap handles GET /v1/shows/:movie/:time/seats.  Movie titles and
// showtimes arrive URL-encoded in the path; echo decodes them.
func (h *SeatsHandler) SeatMap(c echo.Context) error {
	movie, showtime := c.Param("movie"), c.Param("time")
	seats := h.Engine.SeatMap(movie, showtime)
	if seats == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie": movie,
		"time":  showtime,
		"seats": seats,
	})
}

// Occupancy handles GET /v1/shows/:movie/:time/occupancy.
func (h *SeatsHandler) Occupancy(c echo.Context) error {
	movie, showtime := c.Param("movie"), c.Param("time")
	pct, ok := h.Engine.Occupancy(movie, showtime)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "show not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"movie":             movie,
		"time":              showtime,
		"occupancy_percent": pct,
	})
}

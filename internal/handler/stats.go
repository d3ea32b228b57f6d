package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-box-office/internal/booking"
)

// StatsHandler serves sales statistics derived from the ledger.
type StatsHandler struct {
	Engine *booking.Engine
}

// NewStatsHandler wires the engine.
func NewStatsHandler(engine *booking.Engine) *StatsHandler {
	return &StatsHandler{Engine: engine}
}

// Statistics handles GET /v1/stats: revenue, ticket counts and the
// per-movie / per-time breakdowns, plus the live queue length.
func (h *StatsHandler) Statistics(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Engine.Statistics())
}

// PopularMovie handles GET /v1/stats/popular.  With no tickets sold the
// movie field is null rather than an arbitrary title.
func (h *StatsHandler) PopularMovie(c echo.Context) error {
	movie, ok := h.Engine.MostPopularMovie()
	if !ok {
		return c.JSON(http.StatusOK, echo.Map{"movie": nil, "tickets_sold": 0})
	}
	stats := h.Engine.Statistics()
	return c.JSON(http.StatusOK, echo.Map{
		"movie":        movie,
		"tickets_sold": stats.RevenueByMovie[movie].Count,
	})
}

// Package router wires HTTP routes to their handlers and middleware.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/handler"
	"github.com/iliyamo/cinema-box-office/internal/middleware"
	"github.com/iliyamo/cinema-box-office/internal/roster"
)

// Deps carries everything the routes need.  Roster and Redis may be
// nil; the corresponding features degrade gracefully.
type Deps struct {
	Cfg       config.Config
	RateLimit config.RateLimitConfig
	Engine    *booking.Engine
	Roster    *roster.Repo
	Redis     *redis.Client
	StaffHash string // resolved bcrypt hash of the staff password
}

// Register attaches all routes to the Echo instance.  Everything under
// /v1 except login requires a staff token and passes the rate limiter.
func Register(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	auth := handler.NewAuthHandler(d.Cfg.JWTSecret, d.StaffHash, d.Cfg.AccessTTLMin)
	bookingH := handler.NewBookingHandler(d.Engine, d.Roster)
	seats := handler.NewSeatsHandler(d.Engine)
	stats := handler.NewStatsHandler(d.Engine)

	e.POST("/v1/auth/login", auth.Login, middleware.RateLimit(d.RateLimit, d.Redis))

	v1 := e.Group("/v1", middleware.JWTAuth(d.Cfg.JWTSecret), middleware.RateLimit(d.RateLimit, d.Redis))

	v1.POST("/queue/customers", bookingH.AddCustomer)
	v1.POST("/queue/next", bookingH.NextCustomer)
	v1.POST("/queue/rotate", bookingH.RotateCurrent)
	v1.GET("/queue", bookingH.GetQueue)

	v1.POST("/customers/:id/tickets", bookingH.AddTicket)
	v1.DELETE("/tickets/:id", bookingH.RemoveTicket)
	v1.POST("/purchase", bookingH.SettlePurchase)
	v1.POST("/tickets/print", bookingH.PrintTickets)
	v1.POST("/bootstrap", bookingH.Bootstrap)

	v1.GET("/shows", seats.ListShows)
	v1.GET("/shows/:movie/:time/seats", seats.SeatMap)
	v1.GET("/shows/:movie/:time/occupancy", seats.Occupancy)

	v1.GET("/stats", stats.Statistics)
	v1.GET("/stats/popular", stats.PopularMovie)
}

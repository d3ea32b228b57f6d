package main // main wires configuration, the booking engine and the HTTP server

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/cinema-box-office/internal/booking"
	"github.com/iliyamo/cinema-box-office/internal/config"
	"github.com/iliyamo/cinema-box-office/internal/database"
	"github.com/iliyamo/cinema-box-office/internal/events"
	"github.com/iliyamo/cinema-box-office/internal/queue"
	"github.com/iliyamo/cinema-box-office/internal/roster"
	"github.com/iliyamo/cinema-box-office/internal/router"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

func main() {
	// Load .env if present; real environments set the variables directly.
	_ = godotenv.Load()
	cfg := config.Load()

	// The staff credential may arrive pre-hashed or in plain form.  A
	// plain password is hashed once at startup so the handler only ever
	// sees a bcrypt hash.
	staffHash := cfg.StaffPasswordHash
	if staffHash == "" {
		if cfg.StaffPassword == "" {
			log.Fatal("set STAFF_PASSWORD or STAFF_PASSWORD_HASH")
		}
		h, err := utils.HashPassword(cfg.StaffPassword, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("failed to hash staff password: %v", err)
		}
		staffHash = h
	}

	// Event publisher: RabbitMQ when reachable, otherwise a no-op so
	// the box office keeps selling without a broker.
	var pub events.Publisher
	if p, err := queue.NewPublisher(cfg.AMQPURL); err != nil {
		log.Printf("rabbitmq unavailable, notifications disabled: %v", err)
		pub = events.Nop{}
	} else {
		pub = p
		defer p.Close()
		go queue.StartSalesConsumer(cfg.AMQPURL)
	}

	engine := booking.NewEngine(cfg.Movies, cfg.Showtimes, pub)

	// Roster database is optional; without it the bootstrap endpoint
	// only accepts inline customer lists.
	var repo *roster.Repo
	if cfg.Roster.Enabled {
		db, err := database.Open(cfg.Roster.User, cfg.Roster.Pass, cfg.Roster.Host, cfg.Roster.Port, cfg.Roster.Name)
		if err != nil {
			log.Fatalf("failed to connect to roster database: %v", err)
		}
		defer db.Close()
		repo = roster.NewRepo(db)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.Register(e, router.Deps{
		Cfg:       cfg,
		RateLimit: config.LoadRateLimitConfig(),
		Engine:    engine,
		Roster:    repo,
		Redis:     config.NewRedisClient(),
		StaffHash: staffHash,
	})

	log.Printf("box office listening on :%s (%s), %d movies x %d showtimes",
		cfg.Port, cfg.Env, len(cfg.Movies), len(cfg.Showtimes))
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

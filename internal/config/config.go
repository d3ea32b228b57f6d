package config // package config loads application configuration from environment variables

import (
	"log"     // log reports configuration errors and halts execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits comma-separated list values
)

// Default show catalog used when MOVIES / SHOWTIMES are not configured.
// These define the domain of valid show keys at startup; shows can still
// be added lazily afterwards.
var (
	DefaultMovies = []string{
		"Avengers: Endgame",
		"Star Wars: El Ascenso de Skywalker",
		"Joker",
		"Toy Story 4",
		"El Rey León",
	}
	DefaultShowtimes = []string{"10:00", "12:30", "15:00", "17:30", "20:00", "22:30"}
)

// RosterDB holds the connection settings for the external system of
// record the engine bootstraps customers from.  When Enabled is false
// the bootstrap endpoint is not registered.
type RosterDB struct {
	Enabled bool   // whether a roster database is configured
	User    string // database username
	Pass    string // database password (optional)
	Host    string // database host address
	Port    string // database port number
	Name    string // database name
}

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.
type Config struct {
	Env               string   // application environment (e.g. "dev", "prod")
	Port              string   // HTTP port to listen on
	Movies            []string // movie titles forming the show catalog
	Showtimes         []string // showtime strings forming the show catalog
	JWTSecret         string   // secret used to sign staff JWTs
	AccessTTLMin      int      // access token time-to-live in minutes
	BcryptCost        int      // bcrypt cost for hashing the staff password
	StaffPassword     string   // plain staff password (hashed at startup if no hash given)
	StaffPasswordHash string   // bcrypt hash of the staff password
	AMQPURL           string   // broker URL for the event publisher (optional)
	Roster            RosterDB // external roster database (optional)
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must() and missing values cause the program
// to exit with a fatal log message.
func Load() Config {
	host := os.Getenv("DB_HOST")
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		Movies:            csv("MOVIES", DefaultMovies),
		Showtimes:         csv("SHOWTIMES", DefaultShowtimes),
		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:        envInt("BCRYPT_COST", 10),
		StaffPassword:     os.Getenv("STAFF_PASSWORD"),
		StaffPasswordHash: os.Getenv("STAFF_PASSWORD_HASH"),
		AMQPURL:           os.Getenv("RABBITMQ_URL"),
		Roster: RosterDB{
			Enabled: host != "",
			User:    os.Getenv("DB_USER"),
			Pass:    os.Getenv("DB_PASS"),
			Host:    host,
			Port:    os.Getenv("DB_PORT"),
			Name:    os.Getenv("DB_NAME"),
		},
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// envInt reads an optional integer variable, falling back to def.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// csv reads an optional comma-separated list, falling back to def.
func csv(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

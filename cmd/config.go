package cmd

import "time"

// Config carries everything the process needs at start; values are read from
// the environment once and treated as immutable afterwards.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TelegramBotToken string
	GoogleMapsAPIKey string

	// DefaultCity is appended to address queries that name no known city.
	DefaultCity string

	BasePriceRub  float64
	PricePerKmRub float64
	PricePerKgRub float64

	// SessionTTL is how long an idle intake conversation survives before
	// the cleanup job discards it.
	SessionTTL time.Duration
}

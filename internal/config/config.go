package config

import (
	"os"
	"time"
)

// Config carries all environment-driven settings for the bidder client and
// the bundled dev backend.
type Config struct {
	// Bidder client.
	BackendURL     string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	SessionFile    string

	// Dev backend.
	ListenAddr string
	JWTSecret  string
	TokenTTL   time.Duration
}

// Load reads configuration from the environment, falling back to defaults.
func Load() Config {
	return Config{
		BackendURL:     getEnv("BACKEND_URL", "http://localhost:4000"),
		PollInterval:   getDuration("POLL_INTERVAL", 30*time.Second),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		SessionFile:    getEnv("SESSION_FILE", ".auction-session.json"),
		ListenAddr:     getEnv("LISTEN_ADDR", ":4000"),
		JWTSecret:      getEnv("JWT_SECRET", "change-this-secret"),
		TokenTTL:       getDuration("TOKEN_TTL", 24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

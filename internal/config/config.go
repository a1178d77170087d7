package config

import (
	"os"
	"time"
)

type Config struct {
	Addr string

	// Store selects the backend: "sqlite" (default) or "memory".
	Store  string
	DBPath string

	RedisAddr     string
	RedisPassword string

	SessionTTL    time.Duration
	SecureCookies bool
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	cfg := Config{
		Addr:          getenv("WAGETRACK_ADDR", ":8080"),
		Store:         getenv("WAGETRACK_STORE", "sqlite"),
		DBPath:        getenv("WAGETRACK_DB", "wagetrack.db"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionTTL:    24 * time.Hour,
		SecureCookies: os.Getenv("WAGETRACK_INSECURE_COOKIES") == "",
	}

	if ttl := os.Getenv("WAGETRACK_SESSION_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil && d > 0 {
			cfg.SessionTTL = d
		}
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

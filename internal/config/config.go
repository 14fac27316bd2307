package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env                string
	HTTPPort           string
	DatabaseURL        string
	MongoDB            string
	MongoMaxPool       int
	MongoSelectTimeout time.Duration
	MongoSocketTimeout time.Duration
	CORSOrigins        []string
	RedisAddr          string
	CacheTTL           time.Duration
}

// Load returns application config populated from environment variables with sensible defaults.
// DATABASE_URL carries the mongodb connection string and has no default; Validate rejects
// a config without it.
func Load() App {
	return App{
		Env:                getEnv("APP_ENV", "dev"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MongoDB:            getEnv("MONGO_DB", "idcard"),
		MongoMaxPool:       intEnv("MONGO_MAX_POOL", 20),
		MongoSelectTimeout: durationEnv("MONGO_SELECT_TIMEOUT", 5*time.Second),
		MongoSocketTimeout: durationEnv("MONGO_SOCKET_TIMEOUT", 10*time.Second),
		CORSOrigins:        listEnv("CORS_ORIGINS", "http://localhost:3000"),
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		CacheTTL:           durationEnv("CACHE_TTL", 30*time.Second),
	}
}

// Validate fails fast on configuration the service cannot run without.
func (a App) Validate() error {
	if a.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required (mongodb connection string)")
	}
	if a.HTTPPort == "" {
		return errors.New("HTTP_PORT must not be empty")
	}
	if a.MongoMaxPool < 1 {
		return fmt.Errorf("MONGO_MAX_POOL must be at least 1, got %d", a.MongoMaxPool)
	}
	if len(a.CORSOrigins) == 0 {
		return errors.New("CORS_ORIGINS must list at least one allowed origin")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func listEnv(key, fallback string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, fallback), ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}

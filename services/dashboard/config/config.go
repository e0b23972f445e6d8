package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultTable      = "SENSOR_DATA"
	defaultFetchLimit = 300
	defaultPort       = 8080
	defaultCacheTTL   = 60 * time.Second
)

// Config holds environment-driven settings for the dashboard API.
type Config struct {
	DatabaseURL string
	SensorTable string
	FetchLimit  int
	Port        int
	BearerToken string
	CacheTTL    time.Duration
	Debug       bool
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		SensorTable: defaultTable,
		FetchLimit:  defaultFetchLimit,
		Port:        defaultPort,
		CacheTTL:    defaultCacheTTL,
	}

	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required")
	}

	if table := strings.TrimSpace(os.Getenv("SENSOR_TABLE")); table != "" {
		cfg.SensorTable = table
	}

	if limitStr := strings.TrimSpace(os.Getenv("FETCH_LIMIT")); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil && limit > 0 {
			cfg.FetchLimit = limit
		} else {
			return cfg, fmt.Errorf("invalid FETCH_LIMIT: %s", limitStr)
		}
	}

	if portStr := strings.TrimSpace(os.Getenv("PORT")); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	}

	if ttlStr := strings.TrimSpace(os.Getenv("CACHE_TTL")); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil {
			return cfg, fmt.Errorf("invalid CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = ttl
	}

	cfg.BearerToken = os.Getenv("API_BEARER_TOKEN")

	debug := strings.TrimSpace(os.Getenv("DEBUG"))
	cfg.Debug = debug == "1" || strings.EqualFold(debug, "true")

	return cfg, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

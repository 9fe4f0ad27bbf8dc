package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// defaultUserID is the fixed caller identity used until real auth lands.
const defaultUserID = "00000000-0000-0000-0000-000000000001"

// Config keeps runtime settings for the backend.
type Config struct {
	HTTPAddr           string
	DatabaseURL        string
	DefaultUserID      uuid.UUID
	TranscribeInterval time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddr:           strings.TrimSpace(os.Getenv("HTTP_ADDR")),
		DatabaseURL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TranscribeInterval: parseInterval(strings.TrimSpace(os.Getenv("TRANSCRIBE_INTERVAL_SECONDS"))),
	}

	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "voice_todo.db"
	}
	if cfg.TranscribeInterval == 0 {
		cfg.TranscribeInterval = 30 * time.Second
	}

	raw := strings.TrimSpace(os.Getenv("DEFAULT_USER_ID"))
	if raw == "" {
		raw = defaultUserID
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return cfg, fmt.Errorf("DEFAULT_USER_ID must be a UUID: %w", err)
	}
	cfg.DefaultUserID = userID

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	seconds, err := time.ParseDuration(raw + "s")
	if err != nil || seconds <= 0 {
		return 0
	}
	return seconds
}

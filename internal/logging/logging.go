// Package logging builds the zerolog loggers used across the client.
// Components derive their own sub-loggers with With().Str("component", ...).
package logging

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls log construction.
type Config struct {
	Level  string `json:"level"`  // debug, info, warn, error
	Pretty bool   `json:"pretty"` // console writer instead of JSON
}

// ParseLevel maps a config string to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// New creates the root logger.
func New(cfg Config) zerolog.Logger {
	var logger zerolog.Logger
	if cfg.Pretty {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
}

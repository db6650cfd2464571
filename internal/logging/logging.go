// Package logging sets up the application-wide zerolog logger. Components
// receive derived logger handles at construction instead of reaching for
// a global.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Init builds the root logger with human-readable console output on
// stderr. An unknown level falls back to info.
func Init(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	writer := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}

// Component derives a logger tagged with the owning component's name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}

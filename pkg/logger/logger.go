package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the service logger. Development gets a human-readable console
// writer, every other environment gets JSON lines with timestamp and caller.
func New(env, level string, out io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).
			Level(lvl).
			With().
			Timestamp().
			Str("service", "poliklinik-triage").
			Logger()
	}
	return zerolog.New(out).
		Level(lvl).
		With().
		Timestamp().
		Caller().
		Str("service", "poliklinik-triage").
		Logger()
}

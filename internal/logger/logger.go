package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a service logger. Development gets human readable console
// output at debug level, every other environment gets JSON at info level.
func New(environment string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}).
			Level(zerolog.DebugLevel).
			With().
			Timestamp().
			Str("service", "aifa-contracts").
			Logger()
	}

	return zerolog.New(os.Stdout).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Str("service", "aifa-contracts").
		Str("env", environment).
		Logger()
}

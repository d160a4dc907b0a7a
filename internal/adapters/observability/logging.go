package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the service-wide zerolog Logger. APP_ENV=dev (or
// development) switches to a human-friendly console writer; every line
// carries the service name so aggregated logs stay attributable.
func NewLogger(env string) zerolog.Logger {
	out := io.Writer(os.Stdout)
	if env == "dev" || env == "development" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Str("service", "voyago").Logger()
}

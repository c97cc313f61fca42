package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger returns the bootstrap logger used before configuration is loaded:
// console output on stderr at the default level.
func Logger() zerolog.Logger {
	return NewLogger(os.Stderr, DefaultLogFormat).Level(zerolog.WarnLevel)
}

// NewLogger builds a zerolog logger writing to w in the given format
// ("console" or "json"). Filtering is left to the global level so it can be
// changed while the session runs; see SetLogLevel.
func NewLogger(w io.Writer, format string) zerolog.Logger {
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// SetLogLevel sets the process-wide minimum log level.
func SetLogLevel(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

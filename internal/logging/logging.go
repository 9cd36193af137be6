// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Options selects where log lines go.
type Options struct {
	// Level is a zerolog level name; empty means "warn".
	Level string
	// File, if set, receives every log line in addition to the console.
	File string
	// Console is the human-readable sink, usually os.Stderr. Nil drops
	// console output (the dashboard owns the terminal).
	Console io.Writer
}

// Setup builds a logger from opts, installs it as log.Logger and returns
// it together with a closer for the log file (a no-op when there is none).
func Setup(opts Options) (zerolog.Logger, io.Closer, error) {
	level := zerolog.WarnLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var writers []io.Writer
	if opts.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{Out: opts.Console})
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("could not open log file %s: %w", opts.File, err)
		}
		writers = append(writers, file)
		closer = file
	}

	var logger zerolog.Logger
	switch len(writers) {
	case 0:
		logger = zerolog.Nop()
	case 1:
		logger = zerolog.New(writers[0]).Level(level).With().Timestamp().Logger()
	default:
		logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}
	log.Logger = logger
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

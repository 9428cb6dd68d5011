// Package logging builds the logrus loggers used by the actl tool.
//
// The containers never log. Logging belongs to the script runtime and the
// command line tool, which tag every entry with a component and, for script
// runs, a run ID.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Format selects the log line encoding.
type Format string

const (
	// FormatText writes human-readable key=value lines.
	FormatText Format = "text"
	// FormatJSON writes one JSON object per line.
	FormatJSON Format = "json"
	// FormatAuto picks text for a terminal and JSON otherwise.
	FormatAuto Format = "auto"
)

// Config configures the logger.
type Config struct {
	// Level is the minimum level name (trace, debug, info, warn, error).
	Level string
	// Format is the line encoding. Empty means FormatAuto.
	Format Format
	// Output is where logs are written. Defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: FormatAuto,
		Output: os.Stderr,
	}
}

// New creates a logger from cfg.
func New(cfg Config) (*logrus.Logger, error) {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	level, err := logrus.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	formatter, err := formatterFor(cfg.Format, cfg.Output)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(cfg.Output)
	log.SetLevel(level)
	log.SetFormatter(formatter)
	return log, nil
}

func formatterFor(format Format, out io.Writer) (logrus.Formatter, error) {
	switch format {
	case FormatText:
		return &logrus.TextFormatter{FullTimestamp: true}, nil
	case FormatJSON:
		return &logrus.JSONFormatter{}, nil
	case FormatAuto, "":
		if IsTerminal(out) {
			return &logrus.TextFormatter{FullTimestamp: true}, nil
		}
		return &logrus.JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.PanicLevel)
	return log
}

// WithComponent returns an entry tagged with the component field.
func WithComponent(log logrus.FieldLogger, component string) *logrus.Entry {
	return log.WithField("component", component)
}

// WithRun returns an entry tagged with a fresh run_id and the run's ID.
func WithRun(log logrus.FieldLogger) (*logrus.Entry, string) {
	id := uuid.NewString()
	return log.WithField("run_id", id), id
}

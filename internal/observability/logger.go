// Package observability sets up the process logger and request identifiers.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName is attached to every log line.
const AppName = "liuren"

// ParseLevel maps a configured level name to a zerolog level. The empty
// string means warn.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.WarnLevel, nil
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return lvl, nil
}

// InitLogger builds a console logger writing to out at the given level and
// installs it as the global logger.
func InitLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    true,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", AppName).Logger()
	log.Logger = logger
	return logger
}

// NewRequestID returns a time-ordered identifier for one cast.
func NewRequestID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

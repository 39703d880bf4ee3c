package logging

import (
	"fmt"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// BuildLogger creates a MultiLogger from the agent's configuration: a
// console writer is always present, and a JSON file writer is added when
// cfg.LogFilePath is set. Both are filtered to cfg.LogLevel.
//
// Params:
//   - cfg: the agent's runtime configuration.
//
// Returns:
//   - logging.Logger: the created logger.
//   - error: non-nil if the JSON writer's file cannot be opened.
func BuildLogger(cfg *config.Config) (logging.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logging.LevelInfo
	}

	writers := []logging.Writer{WithLevelFilter(NewConsoleWriter(), level)}

	if cfg.LogFilePath != "" {
		jw, err := NewJSONWriter(cfg.LogFilePath)
		if err != nil {
			return nil, fmt.Errorf("building json writer: %w", err)
		}
		writers = append(writers, WithLevelFilter(jw, level))
	}

	return New(writers...), nil
}

// DefaultLogger creates a logger with default console output at info
// level, for callers without a parsed configuration.
//
// Returns:
//   - logging.Logger: the default console logger.
func DefaultLogger() logging.Logger {
	return New(WithLevelFilter(NewConsoleWriter(), logging.LevelInfo))
}

// NewSilentLogger creates a logger with no writers, discarding every
// event. Used in tests that need a non-nil logger.
//
// Returns:
//   - logging.Logger: a logger that discards all output.
func NewSilentLogger() logging.Logger {
	return New()
}

package logging

import (
	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// LevelFilter wraps a Writer and silently discards events below a minimum
// level.
type LevelFilter struct {
	writer   logging.Writer
	minLevel logging.Level
}

// WithLevelFilter wraps w with level filtering.
//
// Params:
//   - w: the writer to wrap.
//   - minLevel: the minimum level to pass through.
//
// Returns:
//   - *LevelFilter: the level-filtered writer.
func WithLevelFilter(w logging.Writer, minLevel logging.Level) *LevelFilter {
	return &LevelFilter{writer: w, minLevel: minLevel}
}

// Write implements logging.Writer, dropping events below minLevel.
func (f *LevelFilter) Write(event logging.LogEvent) error {
	if event.Level < f.minLevel {
		return nil
	}
	return f.writer.Write(event)
}

// Close implements logging.Writer, delegating to the wrapped writer.
func (f *LevelFilter) Close() error {
	return f.writer.Close()
}

// Ensure LevelFilter implements logging.Writer.
var _ logging.Writer = (*LevelFilter)(nil)

package logging

import (
	"sync"

	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// MultiLogger aggregates multiple writers and dispatches every event to
// all of them. It implements logging.Logger.
type MultiLogger struct {
	mu      sync.RWMutex
	writers []logging.Writer
}

// New creates a MultiLogger dispatching to writers.
//
// Params:
//   - writers: the writers to dispatch events to.
//
// Returns:
//   - *MultiLogger: the created multi-logger.
func New(writers ...logging.Writer) *MultiLogger {
	return &MultiLogger{writers: writers}
}

// Log implements logging.Logger.
func (l *MultiLogger) Log(event logging.LogEvent) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, w := range l.writers {
		_ = w.Write(event)
	}
}

// Debug implements logging.Logger.
func (l *MultiLogger) Debug(service, eventType, message string, meta map[string]any) {
	l.Log(logging.NewLogEvent(logging.LevelDebug, service, eventType, message).WithMetadata(meta))
}

// Info implements logging.Logger.
func (l *MultiLogger) Info(service, eventType, message string, meta map[string]any) {
	l.Log(logging.NewLogEvent(logging.LevelInfo, service, eventType, message).WithMetadata(meta))
}

// Warn implements logging.Logger.
func (l *MultiLogger) Warn(service, eventType, message string, meta map[string]any) {
	l.Log(logging.NewLogEvent(logging.LevelWarn, service, eventType, message).WithMetadata(meta))
}

// Error implements logging.Logger.
func (l *MultiLogger) Error(service, eventType, message string, meta map[string]any) {
	l.Log(logging.NewLogEvent(logging.LevelError, service, eventType, message).WithMetadata(meta))
}

// Close implements logging.Logger, closing every writer and returning the
// first error encountered.
func (l *MultiLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var firstErr error
	for _, w := range l.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Ensure MultiLogger implements logging.Logger.
var _ logging.Logger = (*MultiLogger)(nil)

package logging

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"

	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// File permission constants for the JSON log file.
const (
	// dirPermissions is the mode for log directories (rwxr-x---).
	dirPermissions os.FileMode = 0o750
	// filePermissions is the mode for log files (rw-------).
	filePermissions os.FileMode = 0o600
	// jsonMapInitialCapacity is the pre-allocated capacity for JSON log entries.
	jsonMapInitialCapacity int = 16
)

// jsonMapPool provides reusable map[string]any instances to reduce
// allocations in the JSON encoding hot path. Maps are cleared before
// being returned to the pool.
var jsonMapPool sync.Pool = sync.Pool{
	New: func() any {
		return make(map[string]any, jsonMapInitialCapacity)
	},
}

// JSONWriter writes log events as JSON lines to a file.
type JSONWriter struct {
	mu      sync.Mutex
	file    *os.File
	path    string
	encoder *json.Encoder
}

// NewJSONWriter opens (or creates) path and returns a writer appending
// JSON lines to it.
//
// Params:
//   - path: the file path to write JSON lines to.
//
// Returns:
//   - *JSONWriter: the created writer. Caller must call Close.
//   - error: nil on success, error on failure.
func NewJSONWriter(path string) (*JSONWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePermissions)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	return &JSONWriter{
		file:    file,
		path:    path,
		encoder: json.NewEncoder(file),
	}, nil
}

// Write implements logging.Writer, flattening event.Metadata into the
// top-level JSON object.
func (w *JSONWriter) Write(event logging.LogEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	pooled := jsonMapPool.Get()
	entry, ok := pooled.(map[string]any)
	if !ok {
		entry = make(map[string]any, jsonMapInitialCapacity)
	}

	entry["ts"] = event.Timestamp.Format("2006-01-02T15:04:05Z07:00")
	entry["level"] = event.Level.String()
	if event.Service != "" {
		entry["service"] = event.Service
	}
	entry["event"] = event.EventType
	if event.Message != "" {
		entry["message"] = event.Message
	}
	maps.Copy(entry, event.Metadata)

	err := w.encoder.Encode(entry)

	clear(entry)
	jsonMapPool.Put(entry)

	return err
}

// Close implements logging.Writer.
func (w *JSONWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.Close()
}

// Ensure JSONWriter implements logging.Writer.
var _ logging.Writer = (*JSONWriter)(nil)

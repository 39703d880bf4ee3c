// Package collecterr enumerates the recoverable and fatal error kinds a
// Collect() invocation can encounter, and how each is expected to degrade.
package collecterr

import "errors"

// Kind classifies a collection-time failure by its recovery strategy.
type Kind string

const (
	// SourceUnavailable means an entire upstream source could not be
	// reached (engine unreachable, proc root inaccessible). The source is
	// skipped; collection continues with the others.
	SourceUnavailable Kind = "source_unavailable"
	// PerItemFailure means one item within a source failed (one
	// container's inspect call). The item is logged and kept in its
	// source's output with whatever partial data is available.
	PerItemFailure Kind = "per_item_failure"
	// PartialAttribution means a pid could not be mapped to a container;
	// the record is emitted with source=system and no container id.
	PartialAttribution Kind = "partial_attribution"
	// Timeout means the platform phase's hard deadline elapsed before it
	// completed.
	Timeout Kind = "timeout"
	// ConfigurationError means supplied configuration (e.g. TLS material)
	// could not be used; the affected feature is downgraded or disabled.
	ConfigurationError Kind = "configuration_error"
	// Fatal means every source failed catastrophically: Collect() has no
	// data to report.
	Fatal Kind = "fatal"
)

// ErrNoSourceProduced is the sentinel wrapped by a Fatal error, returned
// from Collect() only when no source yielded a single record.
var ErrNoSourceProduced = errors.New("no collection source produced any data")

// Error is a collection-time failure tagged with its recovery Kind. Only
// errors of Kind Fatal are ever returned from Collect(); all others are
// logged and folded into the report.
type Error struct {
	Kind Kind
	// Source names the layer that produced the error (e.g. "dockerengine",
	// "platformapi", "sysnet").
	Source string
	Err    error
}

// Error implements the error interface.
//
// Returns:
//   - string: "<source>: <kind>: <underlying error>".
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Source + ": " + string(e.Kind)
	}
	return e.Source + ": " + string(e.Kind) + ": " + e.Err.Error()
}

// Unwrap exposes the wrapped error for errors.Is/errors.As.
//
// Returns:
//   - error: the underlying error, possibly nil.
func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with the given kind and source label.
//
// Params:
//   - kind: the recovery classification.
//   - source: the layer that observed the failure.
//   - err: the underlying error, may be nil.
//
// Returns:
//   - *Error: the tagged error.
func New(kind Kind, source string, err error) *Error {
	return &Error{Kind: kind, Source: source, Err: err}
}

// IsFatal reports whether err is (or wraps) a Fatal-kind Error.
//
// Params:
//   - err: the error to inspect.
//
// Returns:
//   - bool: true if err is an *Error with Kind == Fatal.
func IsFatal(err error) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == Fatal
	}
	return false
}

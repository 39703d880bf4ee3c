// Package logging provides structured event logging infrastructure: a
// multi-writer Logger and console/JSON writers, implementing the domain
// logging interfaces.
package logging

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// Buffer size and format constants.
const (
	// typicalLogLineLength is the initial capacity for log line building.
	typicalLogLineLength int = 128
	// decimalBase is the base for decimal number formatting.
	decimalBase int = 10
	// floatPrecision64 is the bit size for 64-bit float formatting.
	floatPrecision64 int = 64
)

// builderPool provides reusable strings.Builder instances to reduce
// allocations in the formatting hot path.
var builderPool sync.Pool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// getBuilder retrieves a strings.Builder from the pool.
func getBuilder() *strings.Builder {
	sb, ok := builderPool.Get().(*strings.Builder)
	if !ok {
		sb = &strings.Builder{}
	}
	return sb
}

// putBuilder returns a strings.Builder to the pool after resetting it.
func putBuilder(sb *strings.Builder) {
	sb.Reset()
	builderPool.Put(sb)
}

// Formatter formats log events into strings.
type Formatter interface {
	// Format formats a log event into a string.
	Format(event logging.LogEvent) string
}

// TextFormatter formats log events as human-readable text:
// "<timestamp> [<LEVEL>] <service> <message> key=value ...".
type TextFormatter struct {
	timestampFormat string
}

// NewTextFormatter creates a text formatter. An empty timestampFormat
// defaults to RFC3339.
//
// Params:
//   - timestampFormat: the Go time format string, or "" for RFC3339.
//
// Returns:
//   - *TextFormatter: the created formatter.
func NewTextFormatter(timestampFormat string) *TextFormatter {
	if timestampFormat == "" {
		timestampFormat = "2006-01-02T15:04:05Z07:00"
	}
	return &TextFormatter{timestampFormat: timestampFormat}
}

// Format implements Formatter.
func (f *TextFormatter) Format(event logging.LogEvent) string {
	sb := getBuilder()
	defer putBuilder(sb)
	sb.Grow(typicalLogLineLength)

	sb.WriteString(event.Timestamp.Format(f.timestampFormat))
	sb.WriteByte(' ')
	sb.WriteByte('[')
	sb.WriteString(event.Level.String())
	sb.WriteString("] ")

	if event.Service != "" {
		sb.WriteString(event.Service)
		sb.WriteByte(' ')
	}

	if event.Message != "" {
		sb.WriteString(event.Message)
	} else {
		sb.WriteString(event.EventType)
	}

	if len(event.Metadata) > 0 {
		sb.WriteByte(' ')
		formatMetadataToBuilder(sb, event.Metadata)
	}

	return sb.String()
}

// formatMetadataToBuilder writes metadata as sorted "key=value" pairs.
func formatMetadataToBuilder(sb *strings.Builder, meta map[string]any) {
	keys := slices.Collect(maps.Keys(meta))
	sort.Strings(keys)

	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		formatValue(sb, meta[k])
	}
}

// formatValue writes v's string representation, type-switching over the
// common metadata value types before falling back to fmt.
func formatValue(sb *strings.Builder, v any) {
	switch val := v.(type) {
	case string:
		sb.WriteString(val)
	case int:
		sb.WriteString(strconv.Itoa(val))
	case int64:
		sb.WriteString(strconv.FormatInt(val, decimalBase))
	case uint64:
		sb.WriteString(strconv.FormatUint(val, decimalBase))
	case float64:
		sb.WriteString(strconv.FormatFloat(val, 'f', -1, floatPrecision64))
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	default:
		fmt.Fprintf(sb, "%v", val)
	}
}

// Ensure TextFormatter implements Formatter.
var _ Formatter = (*TextFormatter)(nil)

package logging

import (
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// ANSI color codes for log levels.
const (
	colorReset string = "\033[0m"
	colorDebug string = "\033[36m" // Cyan
	colorInfo  string = "\033[32m" // Green
	colorWarn  string = "\033[33m" // Yellow
	colorError string = "\033[31m" // Red
)

// ConsoleWriter writes log events to stdout/stderr based on level. DEBUG
// and INFO go to stdout, WARN and ERROR go to stderr. This is the default
// writer when the agent runs without a configured log file.
type ConsoleWriter struct {
	mu     sync.Mutex
	stdout io.Writer
	stderr io.Writer
	format Formatter
	color  bool
}

// NewConsoleWriter creates a console writer with auto-detected color
// support.
//
// Returns:
//   - *ConsoleWriter: the created console writer.
func NewConsoleWriter() *ConsoleWriter {
	return NewConsoleWriterWithOptions(os.Stdout, os.Stderr, isTerminal(os.Stdout))
}

// NewConsoleWriterWithOptions creates a console writer with explicit
// output streams and color setting, for tests.
//
// Params:
//   - stdout: the writer for DEBUG and INFO.
//   - stderr: the writer for WARN and ERROR.
//   - color: whether to wrap lines in ANSI color codes.
//
// Returns:
//   - *ConsoleWriter: the created console writer.
func NewConsoleWriterWithOptions(stdout, stderr io.Writer, color bool) *ConsoleWriter {
	return &ConsoleWriter{
		stdout: stdout,
		stderr: stderr,
		format: NewTextFormatter(""),
		color:  color,
	}
}

// Write implements logging.Writer.
func (w *ConsoleWriter) Write(event logging.LogEvent) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := w.stdout
	if event.Level >= logging.LevelWarn {
		out = w.stderr
	}

	line := w.format.Format(event)
	if w.color {
		line = w.colorize(event.Level, line)
	}

	_, err := out.Write([]byte(line + "\n"))
	return err
}

// colorize wraps line in the ANSI color matching level.
func (w *ConsoleWriter) colorize(level logging.Level, line string) string {
	var color string
	switch level {
	case logging.LevelDebug:
		color = colorDebug
	case logging.LevelInfo:
		color = colorInfo
	case logging.LevelWarn:
		color = colorWarn
	case logging.LevelError:
		color = colorError
	default:
		return line
	}
	return color + line + colorReset
}

// Close is a no-op; ConsoleWriter does not own stdout/stderr.
func (w *ConsoleWriter) Close() error {
	return nil
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// Ensure ConsoleWriter implements logging.Writer.
var _ logging.Writer = (*ConsoleWriter)(nil)

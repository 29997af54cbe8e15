package utils

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger with the domain-specific call shapes the
// rest of this tree uses (Circuit/Collapse/Implication/Frontier) plus
// nested-scope indentation for trace-level call sequences.
type Logger struct {
	base   zerolog.Logger
	indent int
}

// NewLogger creates a logger at the given zerolog level, writing to stdout
// through zerolog's console writer.
func NewLogger(level zerolog.Level) *Logger {
	return NewLoggerOutput(os.Stdout, level)
}

// NewLoggerOutput creates a logger writing to an arbitrary writer, used by
// NewFileLogger and by tests that want to capture output.
func NewLoggerOutput(w io.Writer, level zerolog.Level) *Logger {
	console := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05.000"}
	return &Logger{base: zerolog.New(console).Level(level).With().Timestamp().Logger()}
}

// NewFileLogger creates a logger that writes to a file.
func NewFileLogger(level zerolog.Level, filename string) (*Logger, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	return NewLoggerOutput(file, level), nil
}

// SetLevel adjusts the minimum level the logger emits.
func (l *Logger) SetLevel(level zerolog.Level) {
	l.base = l.base.Level(level)
}

// Indent increases the indentation level for nested trace scopes.
func (l *Logger) Indent() {
	l.indent++
}

// Outdent decreases the indentation level.
func (l *Logger) Outdent() {
	if l.indent > 0 {
		l.indent--
	}
}

// ResetIndent resets indentation to zero.
func (l *Logger) ResetIndent() {
	l.indent = 0
}

func (l *Logger) prefix(msg string) string {
	if l.indent == 0 {
		return msg
	}
	return strings.Repeat("  ", l.indent) + msg
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.base.Error().Msgf(l.prefix(format), args...)
}

func (l *Logger) Warning(format string, args ...interface{}) {
	l.base.Warn().Msgf(l.prefix(format), args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.base.Info().Msgf(l.prefix(format), args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.base.Debug().Msgf(l.prefix(format), args...)
}

func (l *Logger) Trace(format string, args ...interface{}) {
	l.base.Trace().Msgf(l.prefix(format), args...)
}

// Circuit logs circuit-graph diagnostics (e.g. the post-parse summary).
func (l *Logger) Circuit(format string, args ...interface{}) {
	l.base.Debug().Str("component", "circuit").Msgf(l.prefix(format), args...)
}

// Collapse logs fault-collapser traversal steps.
func (l *Logger) Collapse(format string, args ...interface{}) {
	l.base.Debug().Str("component", "collapse").Msgf(l.prefix(format), args...)
}

// Implication logs implication-engine steps.
func (l *Logger) Implication(format string, args ...interface{}) {
	l.base.Trace().Str("component", "implication").Msgf(l.prefix(format), args...)
}

// Frontier logs frontier/X-path query steps.
func (l *Logger) Frontier(format string, args ...interface{}) {
	l.base.Trace().Str("component", "frontier").Msgf(l.prefix(format), args...)
}

// DefaultLogger is the default logger instance, at info level.
var DefaultLogger = NewLogger(zerolog.InfoLevel)

// SetDefaultLogLevel sets the level of the default logger.
func SetDefaultLogLevel(level zerolog.Level) {
	DefaultLogger.SetLevel(level)
}

// Package logging implements the diagnostics logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// ConsoleLogger writes diagnostics as single text lines, one entry per
// line: a timestamp, the level, the message, then key=value fields.
// It backs the CLI's --verbose output; the provisioning transcript the
// user watches never goes through a logger.
type ConsoleLogger struct {
	mu     sync.Mutex
	out    io.Writer
	level  ports.Level
	clock  func() time.Time
	fields []ports.Field
}

// ConsoleLoggerOption configures the console logger.
type ConsoleLoggerOption func(*ConsoleLogger)

// WithOutput sets the output writer (default: os.Stderr).
func WithOutput(w io.Writer) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.out = w
	}
}

// WithLevel sets the minimum level (default: LevelInfo).
func WithLevel(level ports.Level) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.level = level
	}
}

// WithClock overrides the timestamp source.
func WithClock(clock func() time.Time) ConsoleLoggerOption {
	return func(l *ConsoleLogger) {
		l.clock = clock
	}
}

// NewConsoleLogger creates a console logger.
func NewConsoleLogger(opts ...ConsoleLoggerOption) *ConsoleLogger {
	l := &ConsoleLogger{
		out:   os.Stderr,
		level: ports.LevelInfo,
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Debug implements ports.Logger.
func (l *ConsoleLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.log(ports.LevelDebug, msg, fields)
}

// Info implements ports.Logger.
func (l *ConsoleLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.log(ports.LevelInfo, msg, fields)
}

// Warn implements ports.Logger.
func (l *ConsoleLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.log(ports.LevelWarn, msg, fields)
}

// Error implements ports.Logger.
func (l *ConsoleLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.log(ports.LevelError, msg, fields)
}

// With returns a logger that carries fields into every entry. The child
// shares the parent's writer but keeps its own level.
func (l *ConsoleLogger) With(fields ...ports.Field) ports.Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	combined := make([]ports.Field, 0, len(l.fields)+len(fields))
	combined = append(combined, l.fields...)
	combined = append(combined, fields...)

	return &ConsoleLogger{
		out:    l.out,
		level:  l.level,
		clock:  l.clock,
		fields: combined,
	}
}

// Level returns the minimum level.
func (l *ConsoleLogger) Level() ports.Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetLevel sets the minimum level.
func (l *ConsoleLogger) SetLevel(level ports.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *ConsoleLogger) log(level ports.Level, msg string, fields []ports.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	var sb strings.Builder
	sb.WriteString(l.clock().Format("15:04:05"))
	sb.WriteByte(' ')
	sb.WriteString(level.String())
	sb.WriteByte(' ')
	sb.WriteString(msg)

	for _, f := range l.fields {
		writeField(&sb, f)
	}
	for _, f := range fields {
		writeField(&sb, f)
	}

	_, _ = fmt.Fprintln(l.out, sb.String())
}

// writeField appends " key=value", quoting values whose text form has
// whitespace so the line stays splittable.
func writeField(sb *strings.Builder, f ports.Field) {
	sb.WriteByte(' ')
	sb.WriteString(f.Key)
	sb.WriteByte('=')

	text := fmt.Sprint(f.Value)
	if strings.ContainsAny(text, " \t\n") {
		text = fmt.Sprintf("%q", text)
	}
	sb.WriteString(text)
}

// Ensure ConsoleLogger implements Logger.
var _ ports.Logger = (*ConsoleLogger)(nil)

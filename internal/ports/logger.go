package ports

import "context"

// Level orders log severities.
type Level int

const (
	// LevelDebug is chatter for diagnosing the provisioner itself, e.g.
	// why a probe was treated as unsatisfied.
	LevelDebug Level = iota
	// LevelInfo is normal operational output.
	LevelInfo
	// LevelWarn is for conditions a run survives but the user should
	// know about, e.g. history that could not be written.
	LevelWarn
	// LevelError is for failures that change the outcome of a run.
	LevelError
)

// String returns the lowercase name of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	}
	return "unknown"
}

// Field is one key-value pair of structured log context.
type Field struct {
	Key   string
	Value any
}

// F creates a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Logger is the provisioner's diagnostics seam. The transcript a user
// watches goes to the application's output writer, never through here;
// the logger carries diagnostics, which default to warnings and above
// so a normal run stays quiet.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...Field)
	Info(ctx context.Context, msg string, fields ...Field)
	Warn(ctx context.Context, msg string, fields ...Field)
	Error(ctx context.Context, msg string, fields ...Field)

	// With returns a logger that adds fields to every entry.
	With(fields ...Field) Logger

	Level() Level
	SetLevel(level Level)
}

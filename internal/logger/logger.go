package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/romanresh/test-runner-nunit-reporter/internal/ports"
)

// Options describes logger configuration supplied at creation time.
type Options struct {
	Level         string
	HumanReadable bool
	Writer        io.Writer
	Component     string
}

// Logger wraps zerolog and implements ports.Logger.
type Logger struct {
	base zerolog.Logger
}

// New creates a configured Logger instance based on Options.
func New(opts Options) (*Logger, error) {
	writer := opts.Writer
	if writer == nil {
		writer = os.Stderr
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, err
		}
		level = parsed
	}

	var output io.Writer = writer
	if opts.HumanReadable {
		console := zerolog.NewConsoleWriter()
		console.Out = writer
		console.TimeFormat = time.RFC3339
		output = console
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if opts.Component != "" {
		ctx = ctx.Str("component", opts.Component)
	}
	return &Logger{base: ctx.Logger()}, nil
}

// With derives a logger with persistent key/value pairs.
func (l *Logger) With(fields ...interface{}) ports.Logger {
	if l == nil {
		return NewNoOp()
	}

	builder := l.base.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok || key == "" {
			continue
		}
		builder = builder.Interface(key, fields[i+1])
	}

	derived := Logger{base: builder.Logger()}
	return &derived
}

// Debug writes a debug-level log entry if enabled.
func (l *Logger) Debug(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	emit(ctx, l.base.Debug(), msg, fields)
}

// Info writes an informational log entry.
func (l *Logger) Info(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	emit(ctx, l.base.Info(), msg, fields)
}

// Warn writes a warning level log entry.
func (l *Logger) Warn(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	emit(ctx, l.base.Warn(), msg, fields)
}

// Error writes an error log entry. An "error" field holding an error value is
// rendered with zerolog's error marshaling.
func (l *Logger) Error(ctx context.Context, msg string, fields ...interface{}) {
	if l == nil {
		return
	}
	emit(ctx, l.base.Error(), msg, fields)
}

func emit(ctx context.Context, event *zerolog.Event, msg string, fields []interface{}) {
	if event == nil {
		return
	}
	if id := ports.GetCorrelationID(ctx); id != "" {
		event = event.Str("correlation_id", id)
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok || key == "" {
			continue
		}
		switch value := fields[i+1].(type) {
		case error:
			event = event.AnErr(key, value)
		case string:
			event = event.Str(key, value)
		case int:
			event = event.Int(key, value)
		default:
			event = event.Interface(key, value)
		}
	}
	event.Msg(msg)
}

// compile-time assurance
var _ ports.Logger = (*Logger)(nil)

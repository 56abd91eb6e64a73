// internal/logger/logger.go
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"
)

var (
	mu            sync.RWMutex
	defaultLogger *slog.Logger
	logLevel      = new(slog.LevelVar)
)

func init() {
	// Silent until Init or Setup is called.
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: logLevel}))
}

func handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.SourceKey {
				if source, ok := a.Value.Any().(*slog.Source); ok && source != nil {
					source.File = filepath.Base(source.File)
				}
			}
			if a.Key == slog.TimeKey {
				a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
			}
			return a
		},
	}
}

// Init installs an unfiltered text logger writing to output at level.
func Init(level slog.Level, output io.Writer) {
	if output == nil {
		output = io.Discard
	}
	logLevel.Set(level)
	install(slog.NewTextHandler(output, handlerOptions()))
}

// Setup installs a logger built from cfg: level, destination and filters.
// The returned closer releases the log file, if one was opened.
func Setup(cfg Config) (io.Closer, error) {
	cfg.process()

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if cfg.LogFilePath != "" && cfg.LogFilePath != "-" {
		f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file '%s': %w", cfg.LogFilePath, err)
		}
		out, closer = f, f
	}

	logLevel.Set(cfg.level)
	install(newFilteringHandler(slog.NewTextHandler(out, handlerOptions()), &cfg))
	Infof("Logger initialized at level %s", cfg.level)
	return closer, nil
}

// SetupWriter is Setup with an explicit destination, used by hosts that own the writer.
func SetupWriter(cfg Config, out io.Writer) {
	cfg.process()
	logLevel.Set(cfg.level)
	install(newFilteringHandler(slog.NewTextHandler(out, handlerOptions()), &cfg))
}

func install(h slog.Handler) {
	mu.Lock()
	defaultLogger = slog.New(h)
	mu.Unlock()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// logAtLevel creates and logs a record at the specified level, capturing the correct caller source.
func logAtLevel(level slog.Level, tag string, format string, args ...interface{}) {
	l := Get()
	if !l.Enabled(context.Background(), level) {
		return
	}

	// Skip runtime.Callers, logAtLevel and the exported wrapper.
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), level, fmt.Sprintf(format, args...), pcs[0])
	if tag != "" {
		r.AddAttrs(slog.String(tagKey, tag))
	}
	_ = l.Handler().Handle(context.Background(), r)
}

// Debugf logs a debug message using Printf-style formatting.
func Debugf(format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, "", format, args...)
}

// Infof logs an info message using Printf-style formatting.
func Infof(format string, args ...interface{}) {
	logAtLevel(slog.LevelInfo, "", format, args...)
}

// Warnf logs a warning message using Printf-style formatting.
func Warnf(format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, "", format, args...)
}

// Errorf logs an error message using Printf-style formatting.
func Errorf(format string, args ...interface{}) {
	logAtLevel(slog.LevelError, "", format, args...)
}

// DebugTagf logs a debug message carrying a tag that filters can match on.
func DebugTagf(tag string, format string, args ...interface{}) {
	logAtLevel(slog.LevelDebug, tag, format, args...)
}

// WarnTagf logs a tagged warning.
func WarnTagf(tag string, format string, args ...interface{}) {
	logAtLevel(slog.LevelWarn, tag, format, args...)
}

// Get retrieves the configured logger instance.
func Get() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

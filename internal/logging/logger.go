package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds logging configuration
type Config struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"` // "stdout", "stderr" or a file path
}

// DefaultConfig returns the default logging configuration.
// The terminal belongs to the UI, so logs go to a file.
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "text",
		Output: "scrollpager.log",
	}
}

// Logger wraps slog.Logger with additional context methods
type Logger struct {
	*slog.Logger
	closer io.Closer
}

// NewLogger creates a new structured logger from configuration
func NewLogger(cfg Config) (*Logger, error) {
	var writer io.Writer
	var closer io.Closer

	switch strings.ToLower(cfg.Output) {
	case "stderr":
		writer = os.Stderr
	case "stdout":
		writer = os.Stdout
	case "":
		writer = io.Discard
	default:
		if dir := filepath.Dir(cfg.Output); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory: %w", err)
			}
		}
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		writer = f
		closer = f
	}

	return &Logger{
		Logger: slog.New(newHandler(writer, cfg)),
		closer: closer,
	}, nil
}

// New builds a logger writing to w, mostly useful in tests
func New(w io.Writer, cfg Config) *Logger {
	return &Logger{Logger: slog.New(newHandler(w, cfg))}
}

func newHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("timestamp", a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	switch strings.ToLower(cfg.Format) {
	case "json":
		return slog.NewJSONHandler(w, opts)
	default:
		return slog.NewTextHandler(w, opts)
	}
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WithComponent adds component context to logger
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

// Paging logs page load events with standard fields
func (l *Logger) Paging(msg string, page int, args ...any) {
	finalArgs := []any{"page", page}
	finalArgs = append(finalArgs, args...)
	l.Logger.Info(msg, finalArgs...)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

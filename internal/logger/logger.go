package logger

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/ishqrisk/ishqrisk-backend/internal/config"
)

var (
	mu  sync.RWMutex
	log *slog.Logger
)

// Init sets up the global logger from config. Safe to call multiple times.
func Init(cfg *config.LoggingConfig) {
	mu.Lock()
	defer mu.Unlock()

	level := parseLevel("info")
	format := "text"
	if cfg != nil {
		level = parseLevel(cfg.Level)
		format = strings.ToLower(cfg.Format)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log = slog.New(handler)
}

// L returns the global logger. Always returns a non-nil instance.
func L() *slog.Logger {
	mu.RLock()
	if log != nil {
		defer mu.RUnlock()
		return log
	}
	mu.RUnlock()

	Init(nil)

	mu.RLock()
	defer mu.RUnlock()
	return log
}

// With creates a child logger with additional attributes.
func With(args ...any) *slog.Logger { return L().With(args...) }

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

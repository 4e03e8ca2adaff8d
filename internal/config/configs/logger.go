package configs

import (
	"log/slog"
	"strings"
)

var slogLevels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
	"err":     slog.LevelError,
}

// Logger configures the slog handler built by main.
type Logger struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"text"`
	// Source adds the file:line of the log call to every record.
	Source bool `env:"SOURCE" envDefault:"false"`
}

// SlogLevel maps Level to a slog.Level. Unknown levels mean info.
func (c Logger) SlogLevel() slog.Level {
	if lvl, ok := slogLevels[strings.ToLower(c.Level)]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// SlogFormat returns "json" or "text".
func (c Logger) SlogFormat() string {
	if strings.EqualFold(c.Format, "json") {
		return "json"
	}
	return "text"
}

// HandlerOptions returns the options shared by both handler formats.
func (c Logger) HandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{Level: c.SlogLevel(), AddSource: c.Source}
}

package logging

import (
	"io"
	"log/slog"
)

// Logger is the structured logger used across the simulation
type Logger interface {
	Debug(msg string, keyValues ...any)
	Info(msg string, keyValues ...any)
	Warn(msg string, keyValues ...any)
	Error(msg string, keyValues ...any)
}

// SlogAdapter forwards to a *slog.Logger
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlog wraps logger
func NewSlog(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// NewText creates a text logger writing to w at the given level
func NewText(w io.Writer, level slog.Level) *SlogAdapter {
	return NewSlog(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (a *SlogAdapter) Debug(msg string, keyValues ...any) {
	a.logger.Debug(msg, keyValues...)
}

func (a *SlogAdapter) Info(msg string, keyValues ...any) {
	a.logger.Info(msg, keyValues...)
}

func (a *SlogAdapter) Warn(msg string, keyValues ...any) {
	a.logger.Warn(msg, keyValues...)
}

func (a *SlogAdapter) Error(msg string, keyValues ...any) {
	a.logger.Error(msg, keyValues...)
}

// Nop discards everything
type Nop struct{}

func (Nop) Debug(string, ...any) {}
func (Nop) Info(string, ...any)  {}
func (Nop) Warn(string, ...any)  {}
func (Nop) Error(string, ...any) {}

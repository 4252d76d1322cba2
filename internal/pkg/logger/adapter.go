package logger

import (
	"log/slog"

	"wallet_tracker/internal/app/port"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

// slogAdapter реализует интерфейс port.Logger поверх slog.Logger.
type slogAdapter struct {
	l *slog.Logger
}

// NewSlogAdapter returns a port.Logger backed by the global logger.
func NewSlogAdapter() port.Logger {
	ensureInitialized()
	return &slogAdapter{l: globalLogger}
}

// FromZap returns a port.Logger writing to the given zap logger.
func FromZap(zapLogger *zap.Logger) port.Logger {
	return &slogAdapter{l: slog.New(zapslog.NewHandler(zapLogger.Core()))}
}

// NewNop returns a port.Logger that discards everything.
func NewNop() port.Logger {
	return FromZap(zap.NewNop())
}

func (a *slogAdapter) Info(msg string, args ...any) {
	a.l.Info(msg, args...)
}

func (a *slogAdapter) Debug(msg string, args ...any) {
	a.l.Debug(msg, args...)
}

func (a *slogAdapter) Warn(msg string, args ...any) {
	a.l.Warn(msg, args...)
}

func (a *slogAdapter) Error(msg string, args ...any) {
	a.l.Error(msg, args...)
}

// With returns a child logger carrying args on every entry.
func (a *slogAdapter) With(args ...any) port.Logger {
	return &slogAdapter{l: a.l.With(args...)}
}

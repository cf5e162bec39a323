package logging

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type contextKey int

var loggerKey = contextKey(0)

var ErrNoLoggerInContext = errors.New("no logger in context")

// ContextWithLogger returns a copy of ctx carrying log.
func ContextWithLogger(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// LoggerFromContext returns the logger stored by ContextWithLogger.
func LoggerFromContext(ctx context.Context) (*zap.Logger, error) {
	if log, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return log, nil
	}

	return nil, ErrNoLoggerInContext
}

// LoggerOrNop is like LoggerFromContext, but falls back to a no-op logger.
func LoggerOrNop(ctx context.Context) *zap.Logger {
	if log, err := LoggerFromContext(ctx); err == nil {
		return log
	}

	return zap.NewNop()
}

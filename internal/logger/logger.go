// Package logger carries a zap logger through contexts.
//
// Without a logger in the context, entries are discarded, so library code
// can log unconditionally without configuring anything.
package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environments accepted by Setup and New.
const (
	// DevelopmentEnvironment logs human-readable output at debug level.
	DevelopmentEnvironment = "development"

	// ProductionEnvironment logs JSON at info level.
	ProductionEnvironment = "production"

	// SilentEnvironment discards all output.
	SilentEnvironment = "silent"
)

var defaultLogger = zap.NewNop() //nolint: gochecknoglobals

// New builds a logger for the given environment. Unknown environments get
// the silent logger.
func New(environment string) (*zap.Logger, error) {
	switch environment {
	case DevelopmentEnvironment:
		return zap.NewDevelopment()
	case ProductionEnvironment:
		return zap.NewProduction()
	default:
		return zap.NewNop(), nil
	}
}

type key struct{}

// Get returns the logger stored in ctx, or the default logger.
func Get(ctx context.Context) *zap.Logger {
	if l, _ := ctx.Value(key{}).(*zap.Logger); l != nil {
		return l
	}
	return defaultLogger
}

// WithLogger returns a context carrying l.
func WithLogger(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, key{}, l)
}

// WithFields returns a context whose logger adds fields to every entry.
func WithFields(ctx context.Context, fields ...zapcore.Field) context.Context {
	return WithLogger(ctx, Get(ctx).With(fields...))
}

// IsDebug reports whether the context logger emits debug entries.
func IsDebug(ctx context.Context) bool {
	return Get(ctx).Core().Enabled(zapcore.DebugLevel)
}

func Debug(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Debug(msg, fields...)
}

func Info(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Info(msg, fields...)
}

func Warn(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Warn(msg, fields...)
}

func Error(ctx context.Context, msg string, fields ...zapcore.Field) {
	Get(ctx).Error(msg, fields...)
}

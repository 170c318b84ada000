package logutil

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type ctxKey struct{}

var (
	defaultLogger *zap.Logger
	initOnce      sync.Once
)

func Init(level string) {
	initOnce.Do(func() {
		cfg := zap.NewProductionConfig()
		if lv, err := zap.ParseAtomicLevel(level); err == nil {
			cfg.Level = lv
		}
		logger, err := cfg.Build(zap.AddCallerSkip(0))
		if err != nil {
			logger = zap.NewNop()
		}
		defaultLogger = logger
	})
}

// GetLogger returns the logger bound to ctx, falling back to the
// process-wide logger.
func GetLogger(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && logger != nil {
			return logger
		}
	}
	if defaultLogger == nil {
		return zap.NewNop()
	}
	return defaultLogger
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// Package xzap wraps zap with file rotation and request scoped loggers.
package xzap

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/streakbeast/beastcore/config"
)

// CtxTraceID is the context key the router middleware stores the request id
// under. WithContext picks it up so every log line of a request carries it.
const CtxTraceID = "trace_id"

var logger *zap.Logger

// Init builds the process logger: JSON to a rotated file plus console output.
// Must run before any WithContext call; safe to call once from main.
func Init(cfg config.Log) error {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSize, // MB
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), fileWriter, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(os.Stdout), level),
	)
	logger = zap.New(core, zap.AddCaller())
	return nil
}

// WithContext returns the process logger annotated with the request trace id
// if the context carries one. Falls back to a no-op logger before Init so
// tests don't need logging set up.
func WithContext(ctx context.Context) *zap.Logger {
	l := logger
	if l == nil {
		return zap.NewNop()
	}
	if ctx == nil {
		return l
	}
	if id, ok := ctx.Value(CtxTraceID).(string); ok && id != "" {
		return l.With(zap.String(CtxTraceID, id))
	}
	return l
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

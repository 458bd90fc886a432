package aion

import (
	"context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger forwards messages to the runtime's logging module when one is reachable and
// always records them on the local zap logger.
type Logger struct {
	rt    Runtime
	local *zap.Logger
}

func NewLogger(rt Runtime, local *zap.Logger) *Logger {
	if local == nil {
		local = zap.NewNop()
	}
	if rt == nil {
		rt = Unavailable{}
	}
	return &Logger{rt: rt, local: local}
}

func (l *Logger) Log(ctx context.Context, level zapcore.Level, msg string) {
	l.local.Check(level, msg).Write(zap.Bool("forwarded", l.forward(ctx, level, msg)))
}

func (l *Logger) forward(ctx context.Context, level zapcore.Level, msg string) bool {
	if !l.rt.Available() {
		return false
	}
	module, err := l.rt.Module(ModuleLogging)
	if err != nil {
		return false
	}
	if _, err := module.Call(ctx, level.String(), msg); err != nil {
		l.local.Debug("runtime logging failed", zap.Error(err))
		return false
	}
	return true
}

func (l *Logger) Debug(ctx context.Context, msg string) {
	l.Log(ctx, zapcore.DebugLevel, msg)
}

func (l *Logger) Info(ctx context.Context, msg string) {
	l.Log(ctx, zapcore.InfoLevel, msg)
}

func (l *Logger) Warn(ctx context.Context, msg string) {
	l.Log(ctx, zapcore.WarnLevel, msg)
}

func (l *Logger) Error(ctx context.Context, msg string) {
	l.Log(ctx, zapcore.ErrorLevel, msg)
}

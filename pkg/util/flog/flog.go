package flog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var l = newClientLogger()

func newClientLogger() *zap.Logger {
	level := zap.InfoLevel
	if v := os.Getenv("KUBECLIENT_LOG_LEVEL"); v != "" {
		if parsed, err := zapcore.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		os.Stderr,
		level,
	)
	logger := zap.New(core)
	defer func() { _ = logger.Sync() }()

	return logger
}

func Debug(msg string, fields ...interface{}) {
	l.Debug(msg, zapFields(fields)...)
}

func Debugf(format string, a ...interface{}) {
	l.Debug(fmt.Sprintf(format, a...))
}

func Info(msg string, fields ...interface{}) {
	l.Info(msg, zapFields(fields)...)
}

func Infof(format string, a ...interface{}) {
	l.Info(fmt.Sprintf(format, a...))
}

func Warn(msg string, fields ...interface{}) {
	l.Warn(msg, zapFields(fields)...)
}

func Warnf(format string, a ...interface{}) {
	l.Warn(fmt.Sprintf(format, a...))
}

func Error(err error, fields ...interface{}) {
	l.Error(err.Error(), zapFields(fields)...)
}

func Errorf(format string, a ...interface{}) {
	l.Error(fmt.Sprintf(format, a...))
}

func Field(key string, value interface{}) interface{} {
	return zap.Any(key, value)
}

func zapFields(fields []interface{}) []zap.Field {
	var res []zap.Field
	for _, i := range fields {
		if f, ok := i.(zap.Field); ok {
			res = append(res, f)
		}
	}
	return res
}

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel keeps a normal run quiet: stdout carries the report, logs go to stderr.
const DefaultLevel = "warn"

func NewLogger(level string) (*zap.Logger, error) {
	return build(level, "stderr")
}

// NewFileLogger writes JSON logs to path instead of stderr.
func NewFileLogger(path, level string) (*zap.Logger, error) {
	return build(level, path)
}

func build(level, output string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()

	// Parse level
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		l = zapcore.InfoLevel
	}
	config.Level = zap.NewAtomicLevelAt(l)
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return config.Build()
}

package common

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger = newLogger("warn")

func newLogger(level string) *zap.Logger {
	var lv zapcore.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = zapcore.WarnLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lv)
	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return l
}

// InitLogger replaces the process logger. level is one of zap's level names;
// the debug level also switches on EnableDebug diagnostics.
func InitLogger(level string) {
	logger = newLogger(level)
	EnableDebug = logger.Core().Enabled(zapcore.DebugLevel)
}

// Logger returns the process logger.
func Logger() *zap.Logger { return logger }

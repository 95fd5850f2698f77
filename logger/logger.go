package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log = zap.NewNop()

// Init builds the process logger from LOG_LEVEL / LOG_FORMAT env vars.
func Init() {
	log = New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
}

// New constructs a zap logger. format "console" gives the development
// encoder; anything else is production JSON.
func New(levelStr, format string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	l, _ := cfg.Build()
	return l
}

// L returns the process logger (a no-op logger before Init).
func L() *zap.Logger {
	return log
}

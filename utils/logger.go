package utils

import (
	"log"
	"sync"

	"mindwell/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger, also installed as zap.L().
var Logger *zap.Logger

var loggerOnce sync.Once

// InitializeLogger builds the logger from ENV and LOG_LEVEL.
func InitializeLogger() {
	production := config.IsProduction()

	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(config.AppConfig.LogLevel, production))

	l, err := cfg.Build(zap.Fields(zap.String("service", "mindwell")))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = l
	zap.ReplaceGlobals(Logger)
}

// GetLogger returns the process-wide logger, building it on first use.
func GetLogger() *zap.Logger {
	loggerOnce.Do(func() {
		if Logger == nil {
			InitializeLogger()
		}
	})
	return Logger
}

// parseLevel falls back to info in production and debug elsewhere.
func parseLevel(level string, production bool) zapcore.Level {
	var lvl zapcore.Level
	if level == "" || lvl.UnmarshalText([]byte(level)) != nil {
		if production {
			return zapcore.InfoLevel
		}
		return zapcore.DebugLevel
	}
	return lvl
}

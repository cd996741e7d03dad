package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// LogLevel can be adjusted at runtime (LOG_LEVEL env at startup).
	LogLevel = zap.NewAtomicLevel()
	// Log is the global structured logger.
	Log *zap.Logger
)

// Init builds the production logger. Must be called once before any
// component logs.
func Init() {
	config := zap.NewProductionConfig()
	config.Level = LogLevel
	config.OutputPaths = []string{"stdout"}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	var err error
	Log, err = config.Build()
	if err != nil {
		panic(err)
	}

	zap.ReplaceGlobals(Log)
}

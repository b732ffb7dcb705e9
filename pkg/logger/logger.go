package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Log   *zap.Logger
	Sugar *zap.SugaredLogger
)

func Init(level string, development bool) error {
	var config zap.Config

	if development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.OutputPaths = []string{"stdout"}
		config.ErrorOutputPaths = []string{"stderr"}
	}

	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	var err error
	Log, err = config.Build()
	if err != nil {
		return err
	}

	Sugar = Log.Sugar()

	return nil
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zap.DebugLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func Close() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// get keeps the helpers safe before Init, e.g. in tests.
func get() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

func Fatal(msg string, fields ...zap.Field) {
	get().Fatal(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	get().Error(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	get().Warn(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	get().Info(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	get().Debug(msg, fields...)
}

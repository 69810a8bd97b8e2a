package testutil

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewSimpleLogger returns a console logger for tests. With debug enabled it
// shows every rollback/rollforward step of wallet synchronization
func NewSimpleLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("04:05.000")
	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	lvl := zapcore.InfoLevel
	if debug {
		lvl = zapcore.DebugLevel
	}
	log = log.WithOptions(zap.IncreaseLevel(lvl), zap.AddStacktrace(zapcore.FatalLevel))
	return log.Sugar()
}

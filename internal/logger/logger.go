package logger

import (
	"log/slog"
	"strings"

	"github.com/humanbelnik/flickswipe/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// New builds a zap core from cfg and exposes it as an *slog.Logger so the
// rest of the code base only depends on log/slog.
func New(cfg config.Log) (*slog.Logger, func(), error) {
	encoding := "json"
	if strings.EqualFold(cfg.Format, "console") {
		encoding = "console"
	}

	zapCfg := zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(parseLevel(cfg.Level)),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
	}

	zapLogger, err := zapCfg.Build()
	if err != nil {
		return nil, nil, err
	}

	handler := zapslog.NewHandler(zapLogger.Core(),
		zapslog.WithName("flickswipe"),
		zapslog.WithCaller(true),
	)

	return slog.New(handler), func() { _ = zapLogger.Sync() }, nil
}

// MustSetDefault installs the zap backed logger as slog's default.
func MustSetDefault(cfg config.Log) func() {
	l, sync, err := New(cfg)
	if err != nil {
		panic(err)
	}
	slog.SetDefault(l)
	return sync
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

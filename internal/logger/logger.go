// Package logger builds the zap logger used by the command tools.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level      string    // debug, info, warn, error
	File       string    // optional rotating log file; empty disables it
	MaxSize    int       // megabytes per log file before rotation
	MaxBackups int       // rotated files kept
	MaxAge     int       // days a rotated file is kept
	Console    io.Writer // console sink; nil means os.Stderr
}

const (
	DefaultLevel      = "warn"
	DefaultMaxSize    = 10
	DefaultMaxBackups = 3
	DefaultMaxAge     = 14
)

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// New returns a logger writing console-encoded entries to cfg.Console and,
// when cfg.File is set, JSON entries to a lumberjack-rotated file.
// An unparsable level falls back to DefaultLevel.
func New(cfg Config) *zap.Logger {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil || cfg.Level == "" {
		_ = level.UnmarshalText([]byte(DefaultLevel))
	}

	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig()),
			zapcore.AddSync(console),
			level,
		),
	}

	if cfg.File != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig()),
			zapcore.AddSync(fileWriter(cfg)),
			level,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func fileWriter(cfg Config) *lumberjack.Logger {
	w := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   true,
	}
	if w.MaxSize <= 0 {
		w.MaxSize = DefaultMaxSize
	}
	if w.MaxBackups <= 0 {
		w.MaxBackups = DefaultMaxBackups
	}
	if w.MaxAge <= 0 {
		w.MaxAge = DefaultMaxAge
	}
	return w
}

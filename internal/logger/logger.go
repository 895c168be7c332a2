// Package logger wraps zap for the whole application. The TUI owns stdout,
// so logs go to a rotated file; with no file configured everything is
// discarded.
package logger

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	global = zap.NewNop()
	once   sync.Once
)

// Config controls where logs go and how they rotate.
type Config struct {
	OutputPath string
	Debug      bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init sets up the global logger. Safe to call more than once; only the
// first call takes effect. An empty OutputPath leaves the nop logger in
// place.
func Init(config Config) {
	once.Do(func() {
		if config.OutputPath == "" {
			return
		}
		if err := os.MkdirAll(filepath.Dir(config.OutputPath), 0o755); err != nil {
			return
		}

		level := zapcore.InfoLevel
		if config.Debug {
			level = zapcore.DebugLevel
		}

		if config.MaxSizeMB == 0 {
			config.MaxSizeMB = 10
		}
		if config.MaxBackups == 0 {
			config.MaxBackups = 3
		}

		encoderConfig := zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		}

		writer := zapcore.AddSync(&lumberjack.Logger{
			Filename:   config.OutputPath,
			MaxSize:    config.MaxSizeMB,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAgeDays,
		})

		core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), writer, level)
		global = zap.New(core,
			zap.AddCaller(),
			zap.AddStacktrace(zapcore.ErrorLevel),
		)
	})
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = global.Sync()
}

func Debug(msg string, fields ...zap.Field) {
	global.Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	global.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	global.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	global.Error(msg, fields...)
}

// Field helpers so call sites do not import zap directly.

func String(key, val string) zap.Field {
	return zap.String(key, val)
}

func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

func Any(key string, val interface{}) zap.Field {
	return zap.Any(key, val)
}

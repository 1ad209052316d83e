// Package logging builds the process-wide zap logger.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/config"
)

var (
	mu     sync.RWMutex
	logger = zap.NewNop()
)

// Init replaces the global logger with one that writes to stderr and, when
// cfg.File is set, to a rotated JSON file.
func Init(appName string, cfg config.LogConfig) error {
	return InitWithConsole(appName, cfg, zapcore.Lock(os.Stderr))
}

// InitWithConsole is Init with an explicit console destination. A nil console
// disables console output, which the terminal UI needs since it owns the screen.
func InitWithConsole(appName string, cfg config.LogConfig, console zapcore.WriteSyncer) error {
	l := New(appName, cfg, console)

	mu.Lock()
	old := logger
	logger = l
	mu.Unlock()

	_ = old.Sync()
	return nil
}

// New builds a logger without touching the global one.
func New(appName string, cfg config.LogConfig, console zapcore.WriteSyncer) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zapcore.InfoLevel
	}
	atomicLevel := zap.NewAtomicLevelAt(lvl)

	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	// no ANSI colours in the file
	consoleCfg := encoderCfg
	consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	fileCfg := encoderCfg
	fileCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), console, atomicLevel))
	}
	if cfg.File != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    max(1, cfg.MaxSize),
			MaxBackups: max(0, cfg.MaxBackups),
			MaxAge:     max(0, cfg.MaxAge),
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), atomicLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}

	opts := []zap.Option{zap.AddCaller()}
	if cfg.Dev {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	}

	return zap.New(zapcore.NewTee(cores...), opts...).Named(appName)
}

// L returns the global logger. It is a no-op logger until Init is called.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Sync flushes the global logger.
func Sync() error {
	return L().Sync()
}

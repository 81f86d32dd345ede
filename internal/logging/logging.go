package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the structured logging contract used across the codebase.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...zap.Field)
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Warn(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

type Config struct {
	Level  string `yaml:"level"`  // debug|info|warn|error
	Format string `yaml:"format"` // json|console
	Output string `yaml:"output"` // stdout|file|both
	File   struct {
		Path       string `yaml:"path"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
		MaxAgeDays int    `yaml:"max_age_days"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"file"`
}

// Thread-safe global holder with a no-op default so packages can log before
// initialization and inside tests.
var (
	mu     sync.RWMutex
	global Logger = noopLogger{}
)

type noopLogger struct{}

func (noopLogger) Debug(context.Context, string, ...zap.Field) {}
func (noopLogger) Info(context.Context, string, ...zap.Field)  {}
func (noopLogger) Warn(context.Context, string, ...zap.Field)  {}
func (noopLogger) Error(context.Context, string, ...zap.Field) {}
func (noopLogger) With(...zap.Field) Logger                    { return noopLogger{} }
func (noopLogger) Sync() error                                 { return nil }

type zapLogger struct{ l *zap.Logger }

func (z *zapLogger) Debug(_ context.Context, msg string, fields ...zap.Field) {
	z.l.Debug(msg, fields...)
}
func (z *zapLogger) Info(_ context.Context, msg string, fields ...zap.Field) {
	z.l.Info(msg, fields...)
}
func (z *zapLogger) Warn(_ context.Context, msg string, fields ...zap.Field) {
	z.l.Warn(msg, fields...)
}
func (z *zapLogger) Error(_ context.Context, msg string, fields ...zap.Field) {
	z.l.Error(msg, fields...)
}
func (z *zapLogger) With(fields ...zap.Field) Logger { return &zapLogger{l: z.l.With(fields...)} }
func (z *zapLogger) Sync() error                     { return z.l.Sync() }

// Init builds the zap logger from config and installs it as the global.
func Init(cfg Config) error {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "console") {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}

	ws, err := buildWriteSyncer(cfg)
	if err != nil {
		return fmt.Errorf("build log writer: %w", err)
	}

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(strings.TrimSpace(cfg.Level))); err != nil && cfg.Level != "" {
		return fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}

	core := zapcore.NewCore(encoder, ws, level)
	SetGlobal(&zapLogger{l: zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))})
	return nil
}

func buildWriteSyncer(cfg Config) (zapcore.WriteSyncer, error) {
	stdout := zapcore.Lock(os.Stdout)
	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
		return stdout, nil
	case "file":
		return fileSyncer(cfg), nil
	case "both":
		return zapcore.NewMultiWriteSyncer(stdout, fileSyncer(cfg)), nil
	}
	return nil, fmt.Errorf("unknown log output %q", cfg.Output)
}

func fileSyncer(cfg Config) zapcore.WriteSyncer {
	path := cfg.File.Path
	if path == "" {
		path = "logs/solodesk.log"
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    orDefault(cfg.File.MaxSizeMB, 100),
		MaxBackups: orDefault(cfg.File.MaxBackups, 5),
		MaxAge:     orDefault(cfg.File.MaxAgeDays, 14),
		Compress:   cfg.File.Compress,
	})
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// SetGlobal replaces the global logger.
func SetGlobal(l Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// L returns the current global logger.
func L() Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	return l
}

func Debug(ctx context.Context, msg string, fields ...zap.Field) { L().Debug(ctx, msg, fields...) }
func Info(ctx context.Context, msg string, fields ...zap.Field)  { L().Info(ctx, msg, fields...) }
func Warn(ctx context.Context, msg string, fields ...zap.Field)  { L().Warn(ctx, msg, fields...) }
func Error(ctx context.Context, msg string, fields ...zap.Field) { L().Error(ctx, msg, fields...) }

func Infof(ctx context.Context, format string, args ...any) {
	L().Info(ctx, fmt.Sprintf(format, args...))
}
func Warnf(ctx context.Context, format string, args ...any) {
	L().Warn(ctx, fmt.Sprintf(format, args...))
}
func Errorf(ctx context.Context, format string, args ...any) {
	L().Error(ctx, fmt.Sprintf(format, args...))
}

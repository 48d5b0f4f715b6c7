// Package logger is the process-wide structured logger. Records carry the
// OpenTelemetry trace/span ids of the surrounding span when tracing is on.
package logger

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/isaacbatst/felip-ai-sub001/internal/trace"
)

var base *zap.Logger

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // json or console
}

// LoadConfigFromEnv loads logging configuration from environment variables.
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}
}

// Init initializes the global logger from environment variables.
func Init() error {
	return InitWithConfig(LoadConfigFromEnv())
}

// InitWithConfig initializes the global logger with specific configuration.
func InitWithConfig(cfg LogConfig) error {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zapcore.InfoLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "console" {
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	base = zap.New(core, zap.AddCaller())
	return nil
}

// Sync flushes buffered records.
func Sync() {
	if base != nil {
		_ = base.Sync()
	}
}

func init() {
	_ = Init()
}

// Debug logs a debug message.
func Debug(ctx context.Context, msg string, args ...any) {
	logWith(ctx, 1).Debugw(msg, args...)
}

// DebugSkip is Debug for middleware wrappers: skip extra caller frames so
// the record points at the actual caller.
func DebugSkip(ctx context.Context, skip int, msg string, args ...any) {
	logWith(ctx, 1+skip).Debugw(msg, args...)
}

// Info logs an info message.
func Info(ctx context.Context, msg string, args ...any) {
	logWith(ctx, 1).Infow(msg, args...)
}

func InfoSkip(ctx context.Context, skip int, msg string, args ...any) {
	logWith(ctx, 1+skip).Infow(msg, args...)
}

// Warn logs a warning message.
func Warn(ctx context.Context, msg string, args ...any) {
	logWith(ctx, 1).Warnw(msg, args...)
}

func WarnSkip(ctx context.Context, skip int, msg string, args ...any) {
	logWith(ctx, 1+skip).Warnw(msg, args...)
}

// Error logs an error message.
func Error(ctx context.Context, msg string, args ...any) {
	logWith(ctx, 1).Errorw(msg, args...)
}

// ErrorWithErr logs an error message with an error object and records the
// error on the current span.
func ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	recordSpanError(ctx, err)
	allArgs := append([]any{"error", err}, args...)
	logWith(ctx, 1).Errorw(msg, allArgs...)
}

func ErrorWithErrSkip(ctx context.Context, skip int, msg string, err error, args ...any) {
	recordSpanError(ctx, err)
	allArgs := append([]any{"error", err}, args...)
	logWith(ctx, 1+skip).Errorw(msg, allArgs...)
}

func logWith(ctx context.Context, skip int) *zap.SugaredLogger {
	l := base
	if skip > 0 {
		l = l.WithOptions(zap.AddCallerSkip(skip))
	}
	s := l.Sugar()
	if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
		s = s.With("trace_id", traceID, "span_id", spanID)
	}
	return s
}

func recordSpanError(ctx context.Context, err error) {
	if !trace.Enabled() || err == nil {
		return
	}
	span := oteltrace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

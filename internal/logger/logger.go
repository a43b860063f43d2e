package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format represents the logging format.
type Format string

const (
	// FormatConsole indicates human-readable console format.
	FormatConsole Format = "CONSOLE"
	// FormatJSON indicates structured JSON format.
	FormatJSON Format = "JSON"
)

const (
	// EnvLevel overrides configured level
	EnvLevel = "LOGGING_LEVEL"
	// EnvFormat overrides configured format
	EnvFormat = "LOGGING_FORMAT"
)

// component names
const (
	ComponentService  = "callpoint"
	ComponentRegistry = "registry"
	ComponentExecutor = "executor"
	ComponentCLI      = "nsocli"
	ComponentVersion  = "versiongen"
)

// Level converts a level name to zapcore.Level, defaulting to info.
func Level(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func timeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("2006-01-02 15:04:05 MST"))
}

// New creates a zap logger writing to w; env variables take precedence over the arguments.
func New(level string, format Format, w io.Writer) *zap.Logger {
	if v := os.Getenv(EnvLevel); v != "" {
		level = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		format = Format(strings.ToUpper(v))
	}
	if w == nil {
		w = os.Stderr
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "component",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	var encoder zapcore.Encoder
	switch Format(strings.ToUpper(string(format))) {
	case FormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = timeEncoder
		encoderConfig.ConsoleSeparator = " | "
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(Level(level)))
	return zap.New(core, zap.AddCaller())
}

// For returns a named child logger, or a no-op logger when base is nil.
func For(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.Named(component)
}

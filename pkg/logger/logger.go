// Package logger creates the console logger shared by the servers.
package logger

import (
	"io"

	// Packages
	zap "go.uber.org/zap"
	zapcore "go.uber.org/zap/zapcore"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Logger = zap.SugaredLogger

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.StringDurationEncoder,
	EncodeName:     zapcore.FullNameEncoder,
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a console logger writing to w. Standard output is reserved
// for the stdio transport, so callers normally pass os.Stderr.
func New(w io.Writer, debug bool) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if debug {
		level.SetLevel(zapcore.DebugLevel)
	}
	return zap.New(
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(w), level),
	).Sugar()
}

// Nop returns a logger which discards everything
func Nop() *Logger {
	return zap.NewNop().Sugar()
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Secret describes whether a credential is set without revealing it
func Secret(value string) string {
	if value == "" {
		return "unset"
	}
	return "set"
}

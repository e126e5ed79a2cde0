// Package logger builds the zap loggers used by the CLI and the audit core.
//
// JSON format for machines, console for people. The level is held in a
// zap.AtomicLevel so it can be changed after construction.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format names accepted by New.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Logger is a zap.Logger with an adjustable level.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
}

// New creates a logger writing to w (stderr when nil).
// level: debug, info, warn, error
// format: json or console
func New(level, format string, w io.Writer) (*Logger, error) {
	atomicLevel := zap.NewAtomicLevel()
	if err := atomicLevel.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", level, err)
	}
	if w == nil {
		w = os.Stderr
	}

	var encoder zapcore.Encoder
	switch format {
	case FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(cfg)
	case FormatJSON, "":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), atomicLevel)
	return &Logger{Logger: zap.New(core), level: atomicLevel}, nil
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevelAt(zapcore.FatalLevel)}
}

// SetLevel dynamically changes the log level.
func (l *Logger) SetLevel(level string) error {
	return l.level.UnmarshalText([]byte(level))
}

// Level returns the current log level.
func (l *Logger) Level() zapcore.Level {
	return l.level.Level()
}

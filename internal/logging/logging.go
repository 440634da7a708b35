// Package logging builds the program's zap logger.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

// Levels accepted by New.
const (
	LevelNone   = "none"
	LevelNormal = "normal"
	LevelDebug  = "debug"
)

// New returns a console logger writing to stderr. Stdout is reserved for
// program output, so every level goes to stderr. "none" and "" return a
// no-op logger.
func New(level string) (*zap.Logger, error) {
	return newLogger(level, os.Stderr)
}

func newLogger(level string, out *os.File) (*zap.Logger, error) {
	var min zapcore.Level
	switch level {
	case LevelNone, "":
		return zap.NewNop(), nil
	case LevelNormal:
		min = zapcore.InfoLevel
	case LevelDebug:
		min = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (want none, normal or debug)", level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if term.IsTerminal(int(out.Fd())) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(out), zap.NewAtomicLevelAt(min))
	return zap.New(core), nil
}

// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultLevel applies when neither flags nor config choose a level.
const DefaultLevel = zapcore.WarnLevel

// New returns a console logger writing to w at level. Entries carry no
// timestamps; they are read interactively, next to the command that made
// them.
func New(w io.Writer, level zapcore.Level) *zap.Logger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.TimeKey = ""
	enc.CallerKey = ""
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core)
}

// ParseLevel parses a zap level name such as "debug" or "warn".
func ParseLevel(s string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return DefaultLevel, fmt.Errorf("logging: invalid level %q (valid: debug, info, warn, error)", s)
	}
	return level, nil
}

// Resolve picks the effective level. An explicit level wins over the -v
// count (one for info, two or more for debug), which wins over the
// configured level. quiet overrides everything with error.
func Resolve(explicit string, verbose int, quiet bool, configured string) (zapcore.Level, error) {
	if quiet {
		return zapcore.ErrorLevel, nil
	}
	switch {
	case explicit != "":
		return ParseLevel(explicit)
	case verbose >= 2:
		return zapcore.DebugLevel, nil
	case verbose == 1:
		return zapcore.InfoLevel, nil
	case configured != "":
		return ParseLevel(configured)
	}
	return DefaultLevel, nil
}

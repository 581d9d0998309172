package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Level is the severity threshold of a logger.
type Level int8

// Levels share their values with zapcore.
const (
	DEBUG = Level(zapcore.DebugLevel)
	INFO  = Level(zapcore.InfoLevel)
	WARN  = Level(zapcore.WarnLevel)
	ERROR = Level(zapcore.ErrorLevel)
)

// AsZap converts the Level to a `zapcore.Level`.
func (level Level) AsZap() zapcore.Level {
	return zapcore.Level(level)
}

func (level Level) String() string {
	return level.AsZap().CapitalString()
}

// LevelFromString parses one of `debug`, `info`, `warn` (or `warning`) and `error`, ignoring
// case.
func LevelFromString(inp string) (Level, error) {
	lower := strings.ToLower(inp)
	if lower == "warning" {
		lower = "warn"
	}
	zl, err := zapcore.ParseLevel(lower)
	if err != nil || zl < zapcore.DebugLevel || zl > zapcore.ErrorLevel {
		return INFO, fmt.Errorf("unknown log level: %q", inp)
	}
	return Level(zl), nil
}

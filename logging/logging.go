// Package logging provides the named, leveled loggers of the imu publisher. Loggers are zap
// sugared loggers whose output fans out to a set of appenders shared by a logger and all of its
// subloggers.
package logging

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// Logger is what components of the publisher log through.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnf(template string, args ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Fatal(args ...interface{})

	SetLevel(level Level)
	GetLevel() Level
	// Sublogger returns a child named "<name>.<subname>". It starts at the parent's current level
	// and writes to the same appenders, including ones added later.
	Sublogger(subname string) Logger
	AddAppender(appender Appender)
	Sync() error
}

type zapLogger struct {
	*zap.SugaredLogger
	level     zap.AtomicLevel
	appenders *appenderSet
}

func newLogger(name string, level Level, utc bool, appenders ...Appender) *zapLogger {
	set := &appenderSet{}
	for _, appender := range appenders {
		set.add(appender)
	}
	atomicLevel := zap.NewAtomicLevelAt(level.AsZap())

	opts := []zap.Option{zap.AddCaller()}
	if utc {
		opts = append(opts, zap.WithClock(utcClock{}))
	}
	base := zap.New(&fanoutCore{level: atomicLevel, appenders: set}, opts...)
	return &zapLogger{
		SugaredLogger: base.Named(name).Sugar(),
		level:         atomicLevel,
		appenders:     set,
	}
}

// NewLogger returns a logger that writes Info+ logs to stdout with UTC timestamps.
func NewLogger(name string) Logger {
	return newLogger(name, INFO, true, NewStdoutAppender())
}

// NewTestLogger returns a logger that writes Debug+ logs through tb.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is like NewTestLogger but also keeps every entry in memory for
// assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	return newLogger("", DEBUG, false, NewTestAppender(tb), observerCore), observedLogs
}

func (l *zapLogger) SetLevel(level Level) {
	l.level.SetLevel(level.AsZap())
}

func (l *zapLogger) GetLevel() Level {
	return Level(l.level.Level())
}

func (l *zapLogger) Sublogger(subname string) Logger {
	level := zap.NewAtomicLevelAt(l.level.Level())
	core := &fanoutCore{level: level, appenders: l.appenders}
	child := l.Desugar().WithOptions(zap.WrapCore(func(zapcore.Core) zapcore.Core { return core }))
	return &zapLogger{
		SugaredLogger: child.Named(subname).Sugar(),
		level:         level,
		appenders:     l.appenders,
	}
}

func (l *zapLogger) AddAppender(appender Appender) {
	l.appenders.add(appender)
}

type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}

func (utcClock) NewTicker(d time.Duration) *time.Ticker {
	return time.NewTicker(d)
}

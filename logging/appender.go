package logging

import (
	"io"
	"os"
	"sync"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultTimeFormatStr is the timestamp layout of console lines.
const DefaultTimeFormatStr = "2006-01-02T15:04:05.000Z0700"

// Appender is an output for log entries. zapcore cores, such as the zaptest observer, are
// appenders.
type Appender interface {
	zapcore.LevelEnabler
	Write(zapcore.Entry, []zapcore.Field) error
	Sync() error
}

func consoleEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout(DefaultTimeFormatStr),
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	})
}

// NewWriterAppender returns an appender writing tab separated console lines to w.
func NewWriterAppender(w io.Writer) Appender {
	return zapcore.NewCore(consoleEncoder(), zapcore.Lock(zapcore.AddSync(w)), zapcore.DebugLevel)
}

// NewStdoutAppender returns a console appender on stdout.
func NewStdoutAppender() Appender {
	return zapcore.NewCore(consoleEncoder(), zapcore.Lock(os.Stdout), zapcore.DebugLevel)
}

// NewTestAppender returns a console appender that logs through tb.Log.
func NewTestAppender(tb testing.TB) Appender {
	return zapcore.NewCore(consoleEncoder(), zaptest.NewTestingWriter(tb), zapcore.DebugLevel)
}

// FileAppenderConfig sizes the rotation of a file appender.
type FileAppenderConfig struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// NewFileAppender returns a console appender on a size rotated file. The closer releases the
// file.
func NewFileAppender(cfg FileAppenderConfig) (Appender, io.Closer) {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 100
	}
	out := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}
	return NewWriterAppender(out), out
}

type appenderSet struct {
	mu        sync.RWMutex
	appenders []Appender
}

func (s *appenderSet) add(appender Appender) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appenders = append(s.appenders, appender)
}

func (s *appenderSet) snapshot() []Appender {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appenders
}

// fanoutCore gates entries on a logger's own level and hands them to every appender of the set.
type fanoutCore struct {
	level     zap.AtomicLevel
	appenders *appenderSet
	fields    []zapcore.Field
}

func (c *fanoutCore) Enabled(level zapcore.Level) bool {
	return c.level.Enabled(level)
}

func (c *fanoutCore) With(fields []zapcore.Field) zapcore.Core {
	return &fanoutCore{
		level:     c.level,
		appenders: c.appenders,
		fields:    append(append([]zapcore.Field{}, c.fields...), fields...),
	}
}

func (c *fanoutCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(entry.Level) {
		return checked.AddCore(entry, c)
	}
	return checked
}

func (c *fanoutCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	if len(c.fields) > 0 {
		fields = append(append([]zapcore.Field{}, c.fields...), fields...)
	}
	var err error
	for _, appender := range c.appenders.snapshot() {
		if appender.Enabled(entry.Level) {
			err = multierr.Append(err, appender.Write(entry, fields))
		}
	}
	return err
}

func (c *fanoutCore) Sync() error {
	var err error
	for _, appender := range c.appenders.snapshot() {
		err = multierr.Append(err, appender.Sync())
	}
	return err
}

// Package recorder saves published Imu messages to disk as JSON lines.
package recorder

import (
	"encoding/json"
	"io"
	"sync"

	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
	"gopkg.in/natefinch/lumberjack.v2"

	"go.viam.com/imubridge/logging"
	"go.viam.com/imubridge/ros"
)

// Config sizes the output file. Files are rotated once they reach MaxSizeMB.
type Config struct {
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	Compress   bool
}

// Recorder drains a subscription and writes one JSON document per message.
type Recorder struct {
	sub    *ros.Subscription
	out    io.WriteCloser
	logger logging.Logger

	mu      sync.Mutex
	written int
	err     error

	workers sync.WaitGroup
}

// New creates a Recorder writing the messages of sub to a rotated file.
func New(sub *ros.Subscription, cfg Config, logger logging.Logger) *Recorder {
	maxSize := cfg.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 1024
	}
	return NewWithWriter(sub, &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    maxSize,
		MaxBackups: cfg.MaxBackups,
		Compress:   cfg.Compress,
	}, logger)
}

// NewWithWriter creates a Recorder writing to out.
func NewWithWriter(sub *ros.Subscription, out io.WriteCloser, logger logging.Logger) *Recorder {
	return &Recorder{sub: sub, out: out, logger: logger}
}

// Start begins draining the subscription in the background.
func (r *Recorder) Start() {
	r.workers.Add(1)
	goutils.PanicCapturingGo(func() {
		defer r.workers.Done()
		enc := json.NewEncoder(r.out)
		for msg := range r.sub.C() {
			if err := enc.Encode(msg); err != nil {
				r.mu.Lock()
				r.err = multierr.Append(r.err, err)
				r.mu.Unlock()
				r.logger.Errorw("failed to record imu message", "topic", r.sub.Topic(), "error", err)
				continue
			}
			r.mu.Lock()
			r.written++
			r.mu.Unlock()
		}
	})
}

// Written returns how many messages have been written so far.
func (r *Recorder) Written() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.written
}

// Close unsubscribes, waits for queued messages to be written and closes the file.
func (r *Recorder) Close() error {
	r.sub.Close()
	r.workers.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger.Debugw("recorder closed", "topic", r.sub.Topic(), "written", r.written, "dropped", r.sub.Dropped())
	return multierr.Combine(r.err, r.out.Close())
}

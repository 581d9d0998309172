// Package source delivers decoded IMU samples, each with the time it was captured at.
package source

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"go.viam.com/imubridge/imu"
	"go.viam.com/imubridge/logging"
	"go.viam.com/imubridge/ros"
)

// A Source produces samples in order. Next returns io.EOF once there are no more.
type Source interface {
	Next(ctx context.Context) (imu.Sample, ros.Time, error)
}

// A SampleHandler consumes samples; it reports whether a message was published.
type SampleHandler interface {
	Handle(sample imu.Sample, captured ros.Time) bool
}

// Stats counts what Run did.
type Stats struct {
	Samples   int
	Published int
}

// Run feeds every sample of src to handler, one at a time, until src is exhausted or ctx is
// done.
func Run(ctx context.Context, src Source, handler SampleHandler, logger logging.Logger) (Stats, error) {
	var stats Stats
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		sample, captured, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Debugw("source exhausted", "samples", stats.Samples, "published", stats.Published)
				return stats, nil
			}
			return stats, errors.Wrapf(err, "failed reading sample %d", stats.Samples+1)
		}
		stats.Samples++
		if handler.Handle(sample, captured) {
			stats.Published++
		} else {
			logger.Debugw("sample had no motion data", "sample", stats.Samples)
		}
	}
}

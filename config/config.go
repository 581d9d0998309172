// Package config defines the configuration of the imu publisher and how it is read.
package config

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

const (
	// DefaultQueueSize is the publisher queue depth used when none is configured.
	DefaultQueueSize = 5
	// DefaultFrameID is attached to published messages when no frame is configured.
	DefaultFrameID = "imu_link"
	// DefaultCorrectedFrameID is the frame of the axis remapped messages.
	DefaultCorrectedFrameID = "base_link"
)

// Attribute names of the stddev triples.
const (
	OrientationStddevKey        = "orientation_stddev"
	AngularVelocityStddevKey    = "angular_velocity_stddev"
	LinearAccelerationStddevKey = "linear_acceleration_stddev"
)

// Config is the configuration of an imu publisher. A nil stddev means the value was not
// configured.
type Config struct {
	QueueSize                *int      `json:"publisher_queue_size,omitempty"`
	UseUTCTime               bool      `json:"use_utc_time"`
	FrameID                  string    `json:"frame_id,omitempty"`
	OrientationStddev        []float64 `json:"orientation_stddev,omitempty"`
	AngularVelocityStddev    []float64 `json:"angular_velocity_stddev,omitempty"`
	LinearAccelerationStddev []float64 `json:"linear_acceleration_stddev,omitempty"`

	// PublishCorrected enables the axis remapped imu_correct output. The orientation remap of
	// that output is not implemented.
	PublishCorrected bool   `json:"publish_corrected"`
	CorrectedFrameID string `json:"corrected_frame_id,omitempty"`
}

// Validate ensures all parts of the config are valid. Stddev triples of the wrong size are
// tolerated here; the publisher warns about them and treats the variance as unknown.
func (cfg *Config) Validate(path string) error {
	if cfg.QueueSize != nil && *cfg.QueueSize < 0 {
		return goutils.NewConfigValidationError(path,
			errors.Errorf("publisher_queue_size cannot be negative, got %d", *cfg.QueueSize))
	}
	return nil
}

// QueueDepth returns the configured queue depth or DefaultQueueSize.
func (cfg *Config) QueueDepth() int {
	if cfg.QueueSize == nil {
		return DefaultQueueSize
	}
	return *cfg.QueueSize
}

// FrameIDOrDefault returns the configured frame or DefaultFrameID.
func (cfg *Config) FrameIDOrDefault() string {
	if cfg.FrameID == "" {
		return DefaultFrameID
	}
	return cfg.FrameID
}

// CorrectedFrameIDOrDefault returns the configured corrected frame or DefaultCorrectedFrameID.
func (cfg *Config) CorrectedFrameIDOrDefault() string {
	if cfg.CorrectedFrameID == "" {
		return DefaultCorrectedFrameID
	}
	return cfg.CorrectedFrameID
}

// Stddevs returns the configured stddev triples keyed by attribute name.
func (cfg *Config) Stddevs() map[string][]float64 {
	return map[string][]float64{
		OrientationStddevKey:        cfg.OrientationStddev,
		AngularVelocityStddevKey:    cfg.AngularVelocityStddev,
		LinearAccelerationStddevKey: cfg.LinearAccelerationStddev,
	}
}

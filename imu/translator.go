package imu

import (
	"github.com/samber/lo"

	"go.viam.com/imubridge/config"
	"go.viam.com/imubridge/logging"
	"go.viam.com/imubridge/ros"
)

const (
	// DataTopic is the topic translated samples are published on.
	DataTopic = "imu/data"
	// CorrectedTopic is the topic of the axis remapped output.
	CorrectedTopic = "imu_correct"
)

// Settings are the resolved, immutable parameters of a SampleTranslator.
type Settings struct {
	QueueSize        int
	UseUTCTime       bool
	FrameID          string
	PublishCorrected bool
	CorrectedFrameID string

	OrientationVariance        [3]float64
	AngularVelocityVariance    [3]float64
	LinearAccelerationVariance [3]float64
}

// VarianceFromStddev squares a configured stddev triple. A missing triple gives an unknown
// (zero) variance; so does a triple of the wrong size, after a warning.
func VarianceFromStddev(param string, stddev []float64, logger logging.Logger) [3]float64 {
	var variance [3]float64
	if stddev == nil {
		return variance
	}
	if len(stddev) != 3 {
		logger.Warnf("Wrong size of param: %s, must be of size 3", param)
		return variance
	}
	copy(variance[:], lo.Map(stddev, func(x float64, _ int) float64 { return x * x }))
	return variance
}

// An output publishes some rendition of every translated message.
type output struct {
	pub       ros.Publisher
	transform func(ros.Imu) ros.Imu
}

// SampleTranslator turns samples into Imu messages and publishes them. It keeps no state
// between samples.
type SampleTranslator struct {
	settings Settings
	outputs  []output
	logger   logging.Logger
}

// NewSampleTranslator resolves conf and advertises the output topics on node. Problems with conf
// are logged, never returned.
func NewSampleTranslator(node ros.Node, conf *config.Config, logger logging.Logger) *SampleTranslator {
	if conf == nil {
		conf = &config.Config{}
	}
	stddevs := conf.Stddevs()
	st := &SampleTranslator{
		settings: Settings{
			QueueSize:        conf.QueueDepth(),
			UseUTCTime:       conf.UseUTCTime,
			FrameID:          conf.FrameIDOrDefault(),
			PublishCorrected: conf.PublishCorrected,
			CorrectedFrameID: conf.CorrectedFrameIDOrDefault(),

			// REP 145: Conventions for IMU Sensor Drivers (http://www.ros.org/reps/rep-0145.html)
			OrientationVariance: VarianceFromStddev(
				config.OrientationStddevKey, stddevs[config.OrientationStddevKey], logger),
			AngularVelocityVariance: VarianceFromStddev(
				config.AngularVelocityStddevKey, stddevs[config.AngularVelocityStddevKey], logger),
			LinearAccelerationVariance: VarianceFromStddev(
				config.LinearAccelerationStddevKey, stddevs[config.LinearAccelerationStddevKey], logger),
		},
		logger: logger,
	}

	st.outputs = append(st.outputs, output{
		pub:       node.Advertise(DataTopic, st.settings.QueueSize),
		transform: func(msg ros.Imu) ros.Imu { return msg },
	})
	if st.settings.PublishCorrected {
		logger.Warnf("publishing axis remapped messages on %s; their orientation is not remapped", CorrectedTopic)
		st.outputs = append(st.outputs, output{
			pub:       node.Advertise(CorrectedTopic, st.settings.QueueSize),
			transform: st.Corrected,
		})
	}

	logger.Debugw("imu translator ready",
		"frame_id", st.settings.FrameID,
		"queue_size", st.settings.QueueSize,
		"use_utc_time", st.settings.UseUTCTime,
		"publish_corrected", st.settings.PublishCorrected)
	return st
}

// Settings returns the resolved settings.
func (st *SampleTranslator) Settings() Settings {
	return st.settings
}

// Translate builds the Imu message for sample. captured is used as the stamp unless the sample
// has a UTC time and UTC stamps are enabled. It returns false, and no message, when the sample
// has neither orientation, angular velocity nor linear acceleration.
func (st *SampleTranslator) Translate(sample Sample, captured ros.Time) (ros.Imu, bool) {
	if !sample.HasMotionData() {
		return ros.Imu{}, false
	}

	msg := ros.Imu{
		Header: ros.Header{
			Stamp:   captured,
			FrameID: st.settings.FrameID,
		},
	}
	if sample.UTCTime != nil && st.settings.UseUTCTime {
		msg.Header.Stamp = TimeFromUTC(*sample.UTCTime)
	}

	if q := sample.Orientation; q != nil {
		msg.Orientation = ros.Quaternion{W: q.Real, X: q.Imag, Y: q.Jmag, Z: q.Kmag}
		msg.OrientationCovariance = ros.Diagonal(st.settings.OrientationVariance)
	} else {
		msg.OrientationCovariance = ros.Unavailable()
	}

	if g := sample.AngularVelocity; g != nil {
		msg.AngularVelocity = ros.Vector3{X: g.X, Y: g.Y, Z: g.Z}
		msg.AngularVelocityCovariance = ros.Diagonal(st.settings.AngularVelocityVariance)
	} else {
		msg.AngularVelocityCovariance = ros.Unavailable()
	}

	if a := sample.LinearAcceleration; a != nil {
		msg.LinearAcceleration = ros.Vector3{X: a.X, Y: a.Y, Z: a.Z}
		msg.LinearAccelerationCovariance = ros.Diagonal(st.settings.LinearAccelerationVariance)
	} else {
		msg.LinearAccelerationCovariance = ros.Unavailable()
	}

	return msg, true
}

// Handle translates sample and publishes the result on every output. It reports whether
// anything was published.
func (st *SampleTranslator) Handle(sample Sample, captured ros.Time) bool {
	msg, ok := st.Translate(sample, captured)
	if !ok {
		return false
	}
	for _, out := range st.outputs {
		out.pub.Publish(out.transform(msg))
	}
	return true
}

package source

import (
	"context"
	"io"

	"github.com/edaniels/gobag/rosbag"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/imubridge/imu"
	"go.viam.com/imubridge/ros"
)

// BagSource replays recorded sensor_msgs/Imu messages as samples. A field is present in the
// sample unless the recorded covariance marks it as not available. The recorded header stamp
// is the capture time.
type BagSource struct {
	msgs []ros.ImuMessage
	next int
}

// NewBagSource loads every Imu message recorded on topic.
func NewBagSource(rb *rosbag.RosBag, topic string) (*BagSource, error) {
	msgs, err := ros.ImuMessagesForTopic(rb, topic)
	if err != nil {
		return nil, err
	}
	return NewMessageSource(msgs), nil
}

// NewMessageSource replays already decoded messages.
func NewMessageSource(msgs []ros.ImuMessage) *BagSource {
	return &BagSource{msgs: msgs}
}

// Next returns the next recorded message as a sample.
func (src *BagSource) Next(ctx context.Context) (imu.Sample, ros.Time, error) {
	if err := ctx.Err(); err != nil {
		return imu.Sample{}, ros.Time{}, err
	}
	if src.next >= len(src.msgs) {
		return imu.Sample{}, ros.Time{}, io.EOF
	}
	msg := src.msgs[src.next]
	src.next++
	return SampleFromImu(msg.Data), msg.Data.Header.Stamp, nil
}

// SampleFromImu is the inverse of translation: every field whose covariance is available
// becomes part of the sample.
func SampleFromImu(msg ros.Imu) imu.Sample {
	var s imu.Sample
	if msg.OrientationCovariance.Available() {
		o := msg.Orientation
		s.Orientation = &quat.Number{Real: o.W, Imag: o.X, Jmag: o.Y, Kmag: o.Z}
	}
	if msg.AngularVelocityCovariance.Available() {
		g := msg.AngularVelocity
		s.AngularVelocity = &r3.Vector{X: g.X, Y: g.Y, Z: g.Z}
	}
	if msg.LinearAccelerationCovariance.Available() {
		a := msg.LinearAcceleration
		s.LinearAcceleration = &r3.Vector{X: a.X, Y: a.Y, Z: a.Z}
	}
	return s
}

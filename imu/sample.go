// Package imu translates decoded IMU samples into sensor_msgs/Imu messages and publishes them.
//
// Covariances follow REP-145: a field that the sample does not carry has -1 as the first
// element of its covariance, an available field has the configured variance on the diagonal.
package imu

import (
	"time"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/imubridge/ros"
)

// UTCTime is the absolute time a device attached to a sample. Month is zero based.
type UTCTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
	Nano   int
}

// Sample is one decoded reading from the device. A nil field was not part of the reading.
type Sample struct {
	// Orientation as w (Real), x (Imag), y (Jmag), z (Kmag).
	Orientation        *quat.Number
	AngularVelocity    *r3.Vector
	LinearAcceleration *r3.Vector
	UTCTime            *UTCTime
}

// HasMotionData reports whether the sample carries any of orientation, angular velocity or
// linear acceleration.
func (s Sample) HasMotionData() bool {
	return s.Orientation != nil || s.AngularVelocity != nil || s.LinearAcceleration != nil
}

// utcCorrection is added to every stamp derived from a device UTC time.
const utcCorrection = 86400

// TimeFromUTC converts a device UTC time to a ROS time: the whole days between the date and
// 1970-01-01, the time of day, a fixed 86400 seconds and the nanoseconds as sub-second part.
// No timezone is applied.
func TimeFromUTC(utc UTCTime) ros.Time {
	date := time.Date(utc.Year, time.Month(utc.Month+1), utc.Day, 0, 0, 0, 0, time.UTC)
	secs := date.Unix()
	secs += int64(utc.Hour)*3600 + int64(utc.Minute)*60 + int64(utc.Second) + utcCorrection
	return ros.Time{Secs: secs, Nsecs: int64(utc.Nano)}
}

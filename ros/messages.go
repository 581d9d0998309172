package ros

import "time"

// ImuMessageType is the ROS type name of Imu.
const ImuMessageType = "sensor_msgs/Imu"

// Time is a ROS time: whole seconds plus nanoseconds since the unix epoch.
type Time struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// TimeFromGo converts a go time to a ROS time.
func TimeFromGo(t time.Time) Time {
	return Time{Secs: t.Unix(), Nsecs: int64(t.Nanosecond())}
}

// Go converts the ROS time to a go time.
func (t Time) Go() time.Time {
	return time.Unix(t.Secs, t.Nsecs)
}

// IsZero reports whether t is the zero time.
func (t Time) IsZero() bool {
	return t.Secs == 0 && t.Nsecs == 0
}

// Header is the std_msgs/Header carried by stamped messages.
type Header struct {
	Seq     uint32 `json:"seq"`
	Stamp   Time   `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// Quaternion is a geometry_msgs/Quaternion.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// Vector3 is a geometry_msgs/Vector3.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Covariance is a row-major 3x3 covariance matrix.
type Covariance [9]float64

// CovarianceUnavailable is written to the first element of a covariance to mark the associated
// field as not provided (REP-145).
const CovarianceUnavailable = -1

// Diagonal returns the covariance with the given variance on its diagonal and zero elsewhere.
func Diagonal(variance [3]float64) Covariance {
	var cov Covariance
	cov[0] = variance[0]
	cov[4] = variance[1]
	cov[8] = variance[2]
	return cov
}

// Unavailable returns a covariance marking its field as not available.
func Unavailable() Covariance {
	var cov Covariance
	cov[0] = CovarianceUnavailable
	return cov
}

// Available is false when the covariance carries the not available marker.
func (c Covariance) Available() bool {
	return c[0] != CovarianceUnavailable
}

// Imu is a sensor_msgs/Imu.
type Imu struct {
	Header                       Header     `json:"header"`
	Orientation                  Quaternion `json:"orientation"`
	OrientationCovariance        Covariance `json:"orientation_covariance"`
	AngularVelocity              Vector3    `json:"angular_velocity"`
	AngularVelocityCovariance    Covariance `json:"angular_velocity_covariance"`
	LinearAcceleration           Vector3    `json:"linear_acceleration"`
	LinearAccelerationCovariance Covariance `json:"linear_acceleration_covariance"`
}

// ImuMessage is an Imu as recorded in a rosbag, along with the time it was recorded at.
type ImuMessage struct {
	Meta Time `json:"meta"`
	Data Imu  `json:"data"`
}

package ros

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/edaniels/gobag/rosbag"
	"go.viam.com/test"
)

func TestBagTopicKey(t *testing.T) {
	test.That(t, BagTopicKey("/imu/data"), test.ShouldEqual, "imu_data")
	test.That(t, BagTopicKey("Xsens/IMU"), test.ShouldEqual, "xsens_imu")
}

func TestDecodeImuMessages(t *testing.T) {
	//nolint:lll
	raw := `{"meta": {"secs":10,"nsecs":20}, "data":{"header":{"seq":3,"stamp":{"secs":9,"nsecs":5},"frame_id":"imu_link"},"orientation":{"x":0,"y":0,"z":0,"w":1},"orientation_covariance":[0.01,0,0,0,0.01,0,0,0,0.01],"angular_velocity":{"x":0.1,"y":0.2,"z":0.3},"angular_velocity_covariance":[-1,0,0,0,0,0,0,0,0],"linear_acceleration":{"x":0,"y":0,"z":9.8},"linear_acceleration_covariance":[0,0,0,0,0,0,0,0,0]}}

{"meta": {"secs":11,"nsecs":0}, "data":{"header":{"seq":4,"stamp":{"secs":10,"nsecs":0},"frame_id":"imu_link"}}}
`
	msgs, err := DecodeImuMessages(strings.NewReader(raw))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, msgs, test.ShouldHaveLength, 2)

	first := msgs[0]
	test.That(t, first.Meta, test.ShouldResemble, Time{Secs: 10, Nsecs: 20})
	test.That(t, first.Data.Header.Stamp, test.ShouldResemble, Time{Secs: 9, Nsecs: 5})
	test.That(t, first.Data.Header.FrameID, test.ShouldEqual, "imu_link")
	test.That(t, first.Data.Orientation.W, test.ShouldEqual, 1.0)
	test.That(t, first.Data.OrientationCovariance[4], test.ShouldEqual, 0.01)
	test.That(t, first.Data.AngularVelocity, test.ShouldResemble, Vector3{0.1, 0.2, 0.3})
	test.That(t, first.Data.AngularVelocityCovariance.Available(), test.ShouldBeFalse)
	test.That(t, first.Data.LinearAcceleration.Z, test.ShouldEqual, 9.8)
	test.That(t, msgs[1].Data.Header.Seq, test.ShouldEqual, uint32(4))

	_, err = DecodeImuMessages(strings.NewReader("{not json}\n"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "malformed imu message")
}

func TestReadBagErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadBag(filepath.Join(dir, "missing.bag"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to open input file")

	truncated := filepath.Join(dir, "truncated.bag")
	test.That(t, os.WriteFile(truncated, []byte("#ROS"), 0o600), test.ShouldBeNil)
	_, err = ReadBag(truncated)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unable to create ros bag")
}

func TestImuMessagesForTopic(t *testing.T) {
	rb := rosbag.NewRosBag()
	_, err := ImuMessagesForTopic(rb, "/imu/data")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no messages for topic /imu/data")

	//nolint:lll
	rb.TopicsAsJSON[BagTopicKey("/imu/data")] = bytes.NewBufferString(`{"meta": {"secs":1,"nsecs":2}, "data":{"header":{"seq":7,"stamp":{"secs":1,"nsecs":0},"frame_id":"imu_link"},"angular_velocity":{"x":0.1,"y":0.2,"z":0.3}}}
{"meta": {"secs":2,"nsecs":0}, "data":{"header":{"seq":8,"stamp":{"secs":2,"nsecs":0},"frame_id":"imu_link"}}}
`)
	msgs, err := ImuMessagesForTopic(rb, "/imu/data")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, msgs, test.ShouldHaveLength, 2)
	test.That(t, msgs[0].Meta, test.ShouldResemble, Time{Secs: 1, Nsecs: 2})
	test.That(t, msgs[0].Data.AngularVelocity, test.ShouldResemble, Vector3{0.1, 0.2, 0.3})
	test.That(t, msgs[1].Data.Header.Seq, test.ShouldEqual, uint32(8))
}

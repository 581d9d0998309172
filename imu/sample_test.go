package imu

import (
	"testing"
	"time"

	"go.viam.com/test"

	"go.viam.com/imubridge/ros"
)

func TestTimeFromUTC(t *testing.T) {
	t.Run("epoch gains one day", func(t *testing.T) {
		test.That(t, TimeFromUTC(UTCTime{Year: 1970, Month: 0, Day: 1}), test.ShouldResemble, ros.Time{Secs: 86400})
	})

	t.Run("time of day and nanoseconds", func(t *testing.T) {
		got := TimeFromUTC(UTCTime{Year: 1970, Month: 0, Day: 1, Hour: 1, Minute: 2, Second: 3, Nano: 999})
		test.That(t, got, test.ShouldResemble, ros.Time{Secs: 86400 + 3723, Nsecs: 999})
	})

	t.Run("calendar dates", func(t *testing.T) {
		// 2024-03-01 12:30:15 UTC; month is zero based so March is 2.
		want := time.Date(2024, time.March, 1, 12, 30, 15, 0, time.UTC).Unix() + 86400
		got := TimeFromUTC(UTCTime{Year: 2024, Month: 2, Day: 1, Hour: 12, Minute: 30, Second: 15, Nano: 5})
		test.That(t, got.Secs, test.ShouldEqual, want)
		test.That(t, got.Nsecs, test.ShouldEqual, int64(5))
	})

	t.Run("leap day", func(t *testing.T) {
		feb29 := TimeFromUTC(UTCTime{Year: 2024, Month: 1, Day: 29})
		mar1 := TimeFromUTC(UTCTime{Year: 2024, Month: 2, Day: 1})
		test.That(t, mar1.Secs-feb29.Secs, test.ShouldEqual, int64(86400))
	})

	t.Run("before the epoch", func(t *testing.T) {
		got := TimeFromUTC(UTCTime{Year: 1969, Month: 11, Day: 31})
		test.That(t, got.Secs, test.ShouldEqual, int64(0))
	})
}

func TestHasMotionData(t *testing.T) {
	test.That(t, Sample{}.HasMotionData(), test.ShouldBeFalse)
	test.That(t, Sample{UTCTime: &UTCTime{}}.HasMotionData(), test.ShouldBeFalse)
	test.That(t, Sample{Orientation: orientation}.HasMotionData(), test.ShouldBeTrue)
	test.That(t, Sample{AngularVelocity: gyro}.HasMotionData(), test.ShouldBeTrue)
	test.That(t, Sample{LinearAcceleration: accel}.HasMotionData(), test.ShouldBeTrue)
}

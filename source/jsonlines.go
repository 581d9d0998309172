package source

import (
	"context"
	"encoding/json"
	"io"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/imubridge/imu"
	"go.viam.com/imubridge/ros"
)

type jsonQuaternion struct {
	W float64 `json:"w"`
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type jsonVector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type jsonUTCTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
	Nano   int `json:"nano"`
}

// jsonSample is one line of a samples file. The month of utc_time is zero based.
type jsonSample struct {
	Orientation        *jsonQuaternion `json:"orientation"`
	AngularVelocity    *jsonVector     `json:"angular_velocity"`
	LinearAcceleration *jsonVector     `json:"linear_acceleration"`
	UTCTime            *jsonUTCTime    `json:"utc_time"`
	CaptureTime        *ros.Time       `json:"capture_time"`
}

func (js *jsonSample) sample() imu.Sample {
	var s imu.Sample
	if q := js.Orientation; q != nil {
		s.Orientation = &quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
	}
	if g := js.AngularVelocity; g != nil {
		s.AngularVelocity = &r3.Vector{X: g.X, Y: g.Y, Z: g.Z}
	}
	if a := js.LinearAcceleration; a != nil {
		s.LinearAcceleration = &r3.Vector{X: a.X, Y: a.Y, Z: a.Z}
	}
	if u := js.UTCTime; u != nil {
		s.UTCTime = &imu.UTCTime{
			Year:   u.Year,
			Month:  u.Month,
			Day:    u.Day,
			Hour:   u.Hour,
			Minute: u.Minute,
			Second: u.Second,
			Nano:   u.Nano,
		}
	}
	return s
}

// JSONLinesSource reads one JSON encoded sample per line. Samples without a capture_time are
// stamped with the clock when they are read.
type JSONLinesSource struct {
	dec   *json.Decoder
	clock clock.Clock
	line  int
}

// NewJSONLinesSource returns a source reading from r.
func NewJSONLinesSource(r io.Reader, clk clock.Clock) *JSONLinesSource {
	if clk == nil {
		clk = clock.New()
	}
	return &JSONLinesSource{dec: json.NewDecoder(r), clock: clk}
}

// Next decodes the next sample.
func (src *JSONLinesSource) Next(ctx context.Context) (imu.Sample, ros.Time, error) {
	if err := ctx.Err(); err != nil {
		return imu.Sample{}, ros.Time{}, err
	}
	var js jsonSample
	if err := src.dec.Decode(&js); err != nil {
		if errors.Is(err, io.EOF) {
			return imu.Sample{}, ros.Time{}, io.EOF
		}
		return imu.Sample{}, ros.Time{}, errors.Wrapf(err, "malformed sample after line %d", src.line)
	}
	src.line++

	captured := ros.TimeFromGo(src.clock.Now())
	if js.CaptureTime != nil {
		captured = *js.CaptureTime
	}
	return js.sample(), captured, nil
}

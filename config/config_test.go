package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"go.viam.com/imubridge/logging"
)

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	test.That(t, cfg.QueueDepth(), test.ShouldEqual, 5)
	test.That(t, cfg.UseUTCTime, test.ShouldBeFalse)
	test.That(t, cfg.FrameIDOrDefault(), test.ShouldEqual, "imu_link")
	test.That(t, cfg.CorrectedFrameIDOrDefault(), test.ShouldEqual, "base_link")
	test.That(t, cfg.PublishCorrected, test.ShouldBeFalse)
	test.That(t, cfg.Validate("imu"), test.ShouldBeNil)
	for key, stddev := range cfg.Stddevs() {
		test.That(t, key, test.ShouldNotBeEmpty)
		test.That(t, stddev, test.ShouldBeNil)
	}
}

func TestValidate(t *testing.T) {
	depth := -1
	cfg := &Config{QueueSize: &depth}
	err := cfg.Validate("imu")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "publisher_queue_size")

	depth = 0
	test.That(t, cfg.Validate("imu"), test.ShouldBeNil)
	test.That(t, cfg.QueueDepth(), test.ShouldEqual, 0)

	// wrong sized triples are not a validation error
	cfg.OrientationStddev = []float64{1, 2}
	test.That(t, cfg.Validate("imu"), test.ShouldBeNil)
}

func TestFromAttributes(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	cfg, err := FromAttributes(map[string]interface{}{
		"publisher_queue_size":    10.0,
		"use_utc_time":            true,
		"frame_id":                "xsens",
		"orientation_stddev":      []interface{}{0.1, 0.2, 0.3},
		"angular_velocity_stddev": []interface{}{0.5},
		"publish_corrected":       true,
		"unknown_key":             "x",
	}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.QueueDepth(), test.ShouldEqual, 10)
	test.That(t, cfg.UseUTCTime, test.ShouldBeTrue)
	test.That(t, cfg.FrameIDOrDefault(), test.ShouldEqual, "xsens")
	test.That(t, cfg.OrientationStddev, test.ShouldResemble, []float64{0.1, 0.2, 0.3})
	test.That(t, cfg.AngularVelocityStddev, test.ShouldResemble, []float64{0.5})
	test.That(t, cfg.LinearAccelerationStddev, test.ShouldBeNil)
	test.That(t, cfg.PublishCorrected, test.ShouldBeTrue)
	test.That(t, logs.FilterMessageSnippet("unknown config attributes").Len(), test.ShouldEqual, 1)

	_, err = FromAttributes(map[string]interface{}{"frame_id": []interface{}{1.0}}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestFractionalQueueSize(t *testing.T) {
	logger := logging.NewTestLogger(t)
	_, err := FromAttributes(map[string]interface{}{"publisher_queue_size": 2.7}, logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "whole number")

	_, err = FromReader("imu.json", strings.NewReader(`{"publisher_queue_size": 0.5}`), logger)
	test.That(t, err, test.ShouldNotBeNil)

	cfg, err := FromAttributes(map[string]interface{}{"publisher_queue_size": 3.0}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.QueueDepth(), test.ShouldEqual, 3)
}

func TestRead(t *testing.T) {
	logger := logging.NewTestLogger(t)
	t.Setenv("IMU_FRAME", "imu_from_env")

	dir := t.TempDir()
	path := filepath.Join(dir, "imu.json")
	contents := `{
		"frame_id": "${IMU_FRAME}",
		"linear_acceleration_stddev": [0.01, 0.01, 0.02]
	}`
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)

	cfg, err := Read(path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.FrameID, test.ShouldEqual, "imu_from_env")
	test.That(t, cfg.LinearAccelerationStddev, test.ShouldResemble, []float64{0.01, 0.01, 0.02})
	test.That(t, cfg.QueueSize, test.ShouldBeNil)

	_, err = Read(filepath.Join(dir, "missing.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromReader("bad.json", strings.NewReader(`{"publisher_queue_size": -3}`), logger)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = FromReader("bad.json", strings.NewReader(`not json`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "failed to decode config")
}

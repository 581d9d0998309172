// Package main replays IMU samples through the translator and records what gets published.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/imubridge/config"
	"go.viam.com/imubridge/imu"
	"go.viam.com/imubridge/logging"
	"go.viam.com/imubridge/recorder"
	"go.viam.com/imubridge/ros"
	"go.viam.com/imubridge/source"
)

const (
	flagConfig    = "config"
	flagSamples   = "samples"
	flagBag       = "bag"
	flagBagTopic  = "bag-topic"
	flagOutput    = "output"
	flagCorrected = "corrected-output"
	flagLogFile   = "log-file"
	flagLogLevel  = "log-level"
	flagDebug     = "debug"
)

func newApp(logger logging.Logger) *cli.App {
	return &cli.App{
		Name:            "imu-publisher",
		Usage:           "translate imu samples into sensor_msgs/Imu and record them",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load publisher configuration from `FILE`",
			},
			&cli.StringFlag{
				Name:  flagSamples,
				Usage: "read JSON line samples from `FILE` (- for stdin)",
			},
			&cli.StringFlag{
				Name:  flagBag,
				Usage: "replay sensor_msgs/Imu messages from the rosbag `FILE`",
			},
			&cli.StringFlag{
				Name:  flagBagTopic,
				Value: "/imu/data",
				Usage: "topic to replay from the rosbag",
			},
			&cli.StringFlag{
				Name:  flagOutput,
				Value: "imu.jsonl",
				Usage: "record messages published on imu/data to `FILE`",
			},
			&cli.StringFlag{
				Name:  flagCorrected,
				Value: "imu_correct.jsonl",
				Usage: "record messages published on imu_correct to `FILE` when enabled",
			},
			&cli.StringFlag{
				Name:  flagLogFile,
				Usage: "also write logs to `FILE`",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Value: "info",
				Usage: "minimum `LEVEL` to log: debug, info, warn or error",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			return runAction(c, logger)
		},
	}
}

func runAction(c *cli.Context, logger logging.Logger) (err error) {
	level, err := logging.LevelFromString(c.String(flagLogLevel))
	if err != nil {
		return err
	}
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	logger.SetLevel(level)
	if path := c.String(flagLogFile); path != "" {
		appender, closer := logging.NewFileAppender(logging.FileAppenderConfig{Filename: path, MaxBackups: 3})
		logger.AddAppender(appender)
		defer func() {
			err = multierr.Combine(err, closer.Close())
		}()
	}

	conf := &config.Config{}
	if path := c.String(flagConfig); path != "" {
		conf, err = config.Read(path, logger)
		if err != nil {
			return err
		}
	}

	src, closeSrc, err := openSource(c)
	if err != nil {
		return err
	}
	defer goutils.UncheckedErrorFunc(closeSrc)

	bus := ros.NewBus(logger.Sublogger("bus"))
	defer bus.Close()

	translator := imu.NewSampleTranslator(bus, conf, logger.Sublogger("imu"))

	recorders := []*recorder.Recorder{
		recorder.New(bus.Subscribe(imu.DataTopic, 0), recorder.Config{Filename: c.String(flagOutput)}, logger),
	}
	if translator.Settings().PublishCorrected {
		recorders = append(recorders, recorder.New(
			bus.Subscribe(imu.CorrectedTopic, 0), recorder.Config{Filename: c.String(flagCorrected)}, logger))
	}
	for _, rec := range recorders {
		rec.Start()
	}

	stats, runErr := source.Run(c.Context, src, translator, logger)
	if errors.Is(runErr, context.Canceled) {
		logger.Infow("interrupted, shutting down")
		runErr = nil
	}
	for _, rec := range recorders {
		runErr = multierr.Combine(runErr, rec.Close())
	}
	logger.Infow("done", "samples", stats.Samples, "published", stats.Published)
	return runErr
}

func openSource(c *cli.Context) (source.Source, func() error, error) {
	noop := func() error { return nil }
	samples, bag := c.String(flagSamples), c.String(flagBag)
	switch {
	case samples != "" && bag != "":
		return nil, nil, errors.Errorf("only one of --%s and --%s may be given", flagSamples, flagBag)
	case bag != "":
		rb, err := ros.ReadBag(bag)
		if err != nil {
			return nil, nil, err
		}
		src, err := source.NewBagSource(rb, c.String(flagBagTopic))
		if err != nil {
			return nil, nil, err
		}
		return src, noop, nil
	case samples == "-":
		return source.NewJSONLinesSource(c.App.Reader, clock.New()), noop, nil
	case samples != "":
		//nolint:gosec
		f, err := os.Open(samples)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "unable to open samples file")
		}
		return source.NewJSONLinesSource(f, clock.New()), f.Close, nil
	default:
		return nil, nil, errors.Errorf("one of --%s or --%s is required", flagSamples, flagBag)
	}
}

func main() {
	logger := logging.NewLogger("imu-publisher")
	defer goutils.UncheckedErrorFunc(logger.Sync)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp(logger).RunContext(ctx, os.Args); err != nil {
		logger.Fatal(err)
	}
}

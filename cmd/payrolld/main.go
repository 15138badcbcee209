// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command payrolld runs the payroll REST service.
//
//     payrolld --http :8080 --backend sqlite:/var/lib/payroll.db
//
// Settings can also come from a YAML file named by --config, with
// keys named after the Config fields (http, backend, log_requests,
// log_level, log_format, no_seed, shutdown_grace, metrics_interval).
// Command-line flags and their environment variables override the
// file.
package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-payroll/backend"
	"github.com/diffeo/go-payroll/payroll"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	defaults := DefaultConfig()
	storage := backend.Backend{Implementation: defaults.Backend}

	app := cli.NewApp()
	app.Name = "payrolld"
	app.Usage = "serve the payroll REST interface"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "http",
			Value:  defaults.HTTP,
			Usage:  "[ip]:port for HTTP REST interface",
			EnvVar: "PAYROLL_HTTP",
		},
		cli.GenericFlag{
			Name:   "backend",
			Value:  &storage,
			Usage:  "impl[:address] of the storage backend",
			EnvVar: "PAYROLL_BACKEND",
		},
		cli.StringFlag{
			Name:   "config",
			Usage:  "global configuration YAML file",
			EnvVar: "PAYROLL_CONFIG",
		},
		cli.BoolFlag{
			Name:   "log-requests",
			Usage:  "log all requests",
			EnvVar: "PAYROLL_LOG_REQUESTS",
		},
		cli.StringFlag{
			Name:   "log-level",
			Value:  defaults.LogLevel,
			Usage:  "minimum level to log (debug, info, warning, error)",
			EnvVar: "PAYROLL_LOG_LEVEL",
		},
		cli.StringFlag{
			Name:   "log-format",
			Value:  defaults.LogFormat,
			Usage:  "log output format (text, json)",
			EnvVar: "PAYROLL_LOG_FORMAT",
		},
		cli.BoolFlag{
			Name:   "no-seed",
			Usage:  "do not preload sample employees",
			EnvVar: "PAYROLL_NO_SEED",
		},
		cli.DurationFlag{
			Name:   "shutdown-grace",
			Value:  defaults.ShutdownGrace,
			Usage:  "time to let requests finish on shutdown",
			EnvVar: "PAYROLL_SHUTDOWN_GRACE",
		},
		cli.DurationFlag{
			Name:   "metrics-interval",
			Value:  defaults.MetricsInterval,
			Usage:  "how often to refresh the employee count metric",
			EnvVar: "PAYROLL_METRICS_INTERVAL",
		},
	}
	app.Action = func(c *cli.Context) error {
		config, err := loadConfig(c)
		if err != nil {
			return err
		}
		return run(config)
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("payrolld failed")
	}
}

// loadConfig layers the defaults, the YAML file, and the command line.
func loadConfig(c *cli.Context) (Config, error) {
	config := DefaultConfig()
	if filename := c.String("config"); filename != "" {
		settings, err := loadConfigYaml(filename)
		if err == nil {
			err = config.Merge(settings)
		}
		if err != nil {
			return config, err
		}
	}
	if c.IsSet("http") {
		config.HTTP = c.String("http")
	}
	if c.IsSet("backend") {
		config.Backend = c.Generic("backend").(*backend.Backend).String()
	}
	if c.IsSet("log-requests") {
		config.LogRequests = c.Bool("log-requests")
	}
	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}
	if c.IsSet("log-format") {
		config.LogFormat = c.String("log-format")
	}
	if c.IsSet("no-seed") {
		config.NoSeed = c.Bool("no-seed")
	}
	if c.IsSet("shutdown-grace") {
		config.ShutdownGrace = c.Duration("shutdown-grace")
	}
	if c.IsSet("metrics-interval") {
		config.MetricsInterval = c.Duration("metrics-interval")
	}
	return config, config.Validate()
}

func run(config Config) error {
	logger := logrus.StandardLogger()
	if err := config.ConfigureLogger(logger); err != nil {
		return err
	}

	var storage backend.Backend
	if err := storage.Set(config.Backend); err != nil {
		return err
	}
	repo, err := storage.Repository()
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"backend": storage.String(),
			"err":     err,
		}).Fatal("Could not create payroll backend")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !config.NoSeed {
		if _, err = payroll.Preload(ctx, repo, logger); err != nil {
			return err
		}
	}

	l, err := net.Listen("tcp", config.HTTP)
	if err != nil {
		return err
	}

	clk := clock.New()
	prometheus.MustRegister(employeeCount)
	go observe(ctx, repo, employeeCount, clk, config.MetricsInterval, logger)

	h := &HTTP{
		Repository: repo,
		Log:        logger,
		Registry:   prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
		Clock:      clk,
	}
	if reqLogger := config.RequestLogger(logger); reqLogger != nil {
		h.RequestLog = reqLogger
	}
	return h.Serve(ctx, l, config.ShutdownGrace)
}

// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"fmt"
	"io/ioutil"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// Config holds the daemon settings.  Each field can come from the
// YAML configuration file or from the command line, and the command
// line wins.
type Config struct {
	// HTTP is the [ip]:port to listen on.
	HTTP string `mapstructure:"http"`

	// Backend is the impl[:address] of the storage backend.
	Backend string `mapstructure:"backend"`

	// LogRequests logs every HTTP request.
	LogRequests bool `mapstructure:"log_requests"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// NoSeed skips loading the sample employees at startup.
	NoSeed bool `mapstructure:"no_seed"`

	// ShutdownGrace is how long in-flight requests get to finish
	// after a shutdown signal.
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`

	// MetricsInterval is how often the employee count gauge is
	// refreshed.
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
}

// DefaultConfig returns the settings used when nothing else is given.
func DefaultConfig() Config {
	return Config{
		HTTP:            ":8080",
		Backend:         "memory",
		LogLevel:        "info",
		LogFormat:       "text",
		ShutdownGrace:   10 * time.Second,
		MetricsInterval: 30 * time.Second,
	}
}

// loadConfigYaml reads a YAML file into a string-keyed map.
func loadConfigYaml(filename string) (map[string]interface{}, error) {
	var result map[string]interface{}
	var err error
	var bytes []byte
	bytes, err = ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

// Merge decodes a string-keyed map, typically from a YAML file, over
// the existing settings.  Keys not in the map keep their values;
// unknown keys are an error.
func (c *Config) Merge(settings map[string]interface{}) error {
	config := mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           c,
	}
	decoder, err := mapstructure.NewDecoder(&config)
	if err == nil {
		err = decoder.Decode(settings)
	}
	return err
}

// Validate checks settings that would otherwise only fail once the
// daemon is running.
func (c *Config) Validate() error {
	if c.MetricsInterval <= 0 {
		return fmt.Errorf("metrics interval must be positive, not %v", c.MetricsInterval)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("shutdown grace must not be negative, not %v", c.ShutdownGrace)
	}
	return nil
}

// ConfigureLogger applies the log level and format to a logger.
func (c *Config) ConfigureLogger(logger *logrus.Logger) error {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	switch c.LogFormat {
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{})
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// RequestLogger returns a logger for the request log, or nil if
// requests should not be logged.  Request entries are logged at
// Debug level, so this logger is always at least that verbose, but
// otherwise shares the output and formatting of logger.
func (c *Config) RequestLogger(logger *logrus.Logger) *logrus.Logger {
	if !c.LogRequests {
		return nil
	}
	return &logrus.Logger{
		Out:       logger.Out,
		Formatter: logger.Formatter,
		Hooks:     logger.Hooks,
		Level:     logrus.DebugLevel,
		ExitFunc:  logger.ExitFunc,
	}
}

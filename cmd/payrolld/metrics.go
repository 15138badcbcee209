// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-payroll/payroll"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var employeeCount = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Namespace: "diffeo",
		Subsystem: "payroll",
		Name:      "employees",
		Help:      "Number of stored employees",
	},
)

// observe refreshes gauge with the number of employees in repo, once
// immediately and then every interval until ctx is cancelled.  A
// non-positive interval updates only once.
func observe(ctx context.Context, repo payroll.Repository, gauge prometheus.Gauge, clk clock.Clock, interval time.Duration, log logrus.FieldLogger) {
	update := func() {
		all, err := repo.FindAll(ctx)
		if err != nil {
			if ctx.Err() == nil {
				log.WithFields(logrus.Fields{
					"err": err,
				}).Warn("Could not count employees")
			}
			return
		}
		gauge.Set(float64(len(all)))
	}

	update()
	if interval <= 0 {
		return
	}
	ticker := clk.Ticker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			update()
		}
	}
}

// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package middleware

import (
	"net/http"
	"strconv"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/negroni"
)

// Metrics counts requests and records their latency.
type Metrics struct {
	Clock clock.Clock

	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// NewMetrics creates the request metrics and registers them with reg.
// If clk is nil the wall clock is used.
func NewMetrics(reg prometheus.Registerer, clk clock.Clock) (*Metrics, error) {
	if clk == nil {
		clk = clock.New()
	}
	m := &Metrics{
		Clock: clk,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "diffeo",
				Subsystem: "payroll",
				Name:      "http_requests_total",
				Help:      "HTTP requests by method and status code",
			},
			[]string{"method", "code"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "diffeo",
				Subsystem: "payroll",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	for _, c := range []prometheus.Collector{m.requests, m.latency} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ServeHTTP(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	start := m.Clock.Now()
	next(rw, req)
	elapsed := m.Clock.Now().Sub(start)

	status := http.StatusOK
	if res, ok := rw.(negroni.ResponseWriter); ok && res.Status() != 0 {
		status = res.Status()
	}
	m.requests.WithLabelValues(req.Method, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(req.Method).Observe(elapsed.Seconds())
}

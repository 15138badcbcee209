// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/negroni"
)

// slowHandler advances a mock clock while serving.
func slowHandler(mock *clock.Mock, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.Add(250 * time.Millisecond)
		w.WriteHeader(status)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestLogger(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	mock := clock.NewMock()

	n := negroni.New(NewRequestLogger(logger, mock))
	n.UseHandler(slowHandler(mock, http.StatusTeapot))

	req := httptest.NewRequest(http.MethodGet, "/employees/1", nil)
	rec := httptest.NewRecorder()
	n.ServeHTTP(rec, req)

	id := rec.Header().Get(RequestIDHeader)
	assert.Len(t, id, 36)
	entry := hook.LastEntry()
	if assert.NotNil(t, entry) {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		assert.Equal(t, "Request", entry.Message)
		assert.Equal(t, id, entry.Data["request_id"])
		assert.Equal(t, http.MethodGet, entry.Data["method"])
		assert.Equal(t, "/employees/1", entry.Data["path"])
		assert.Equal(t, http.StatusTeapot, entry.Data["status"])
		assert.Equal(t, 2, entry.Data["size"])
		assert.Equal(t, 250*time.Millisecond, entry.Data["latency"])
	}
}

func TestRequestLoggerKeepsID(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	n := negroni.New(NewRequestLogger(logger, nil))
	n.UseHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", r.Header.Get(RequestIDHeader))
	}))

	req := httptest.NewRequest(http.MethodDelete, "/employees/1", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rec := httptest.NewRecorder()
	n.ServeHTTP(rec, req)

	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
	if assert.Len(t, hook.Entries, 1) {
		assert.Equal(t, "abc", hook.LastEntry().Data["request_id"])
	}
}

func TestRequestLoggerQuiet(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.InfoLevel)

	n := negroni.New(NewRequestLogger(logger, nil))
	n.UseHandler(http.NotFoundHandler())
	n.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Empty(t, hook.Entries)
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	mock := clock.NewMock()
	m, err := NewMetrics(reg, mock)
	require.NoError(t, err)

	n := negroni.New(m)
	n.UseHandler(slowHandler(mock, http.StatusCreated))
	for i := 0; i < 3; i++ {
		n.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/employees", nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues("POST", "201")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, family := range families {
		if family.GetName() != "diffeo_payroll_http_request_duration_seconds" {
			continue
		}
		found = true
		if assert.Len(t, family.GetMetric(), 1) {
			h := family.GetMetric()[0].GetHistogram()
			assert.Equal(t, uint64(3), h.GetSampleCount())
			assert.InDelta(t, 0.75, h.GetSampleSum(), 1e-9)
		}
	}
	assert.True(t, found, "latency histogram not registered")
}

func TestMetricsDefaultStatus(t *testing.T) {
	m, err := NewMetrics(prometheus.NewRegistry(), nil)
	require.NoError(t, err)

	n := negroni.New(m)
	n.UseHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	n.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
}

func TestMetricsDoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics(reg, nil)
	require.NoError(t, err)
	_, err = NewMetrics(reg, nil)
	assert.Error(t, err)
}

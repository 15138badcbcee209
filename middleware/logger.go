// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package middleware

import (
	"net/http"

	"github.com/benbjohnson/clock"
	"github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// RequestIDHeader carries a per-request identifier.  An identifier
// supplied by the client is kept; otherwise a random one is made up.
const RequestIDHeader = "X-Request-Id"

// RequestLogger logs one Debug-level entry per request.
type RequestLogger struct {
	Log   logrus.FieldLogger
	Clock clock.Clock
}

// NewRequestLogger creates a request logger.  If clk is nil the
// wall clock is used.
func NewRequestLogger(log logrus.FieldLogger, clk clock.Clock) *RequestLogger {
	if clk == nil {
		clk = clock.New()
	}
	return &RequestLogger{Log: log, Clock: clk}
}

func (l *RequestLogger) ServeHTTP(rw http.ResponseWriter, req *http.Request, next http.HandlerFunc) {
	start := l.Clock.Now()

	id := req.Header.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewV4().String()
		req.Header.Set(RequestIDHeader, id)
	}
	rw.Header().Set(RequestIDHeader, id)

	next(rw, req)

	fields := logrus.Fields{
		"request_id": id,
		"method":     req.Method,
		"path":       req.URL.Path,
		"remote":     req.RemoteAddr,
		"latency":    l.Clock.Now().Sub(start),
	}
	if res, ok := rw.(negroni.ResponseWriter); ok {
		fields["status"] = res.Status()
		fields["size"] = res.Size()
	}
	l.Log.WithFields(fields).Debug("Request")
}

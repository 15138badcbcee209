// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-payroll/middleware"
	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restserver"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

// HTTP serves the payroll REST interface.
type HTTP struct {
	Repository payroll.Repository
	Log        logrus.FieldLogger

	// RequestLog, if non-nil, receives one entry per request.
	RequestLog logrus.FieldLogger

	Registry prometheus.Registerer
	Gatherer prometheus.Gatherer
	Clock    clock.Clock
}

// Handler builds the complete HTTP handler: the REST routes and
// /metrics behind the middleware chain.
func (h *HTTP) Handler() (http.Handler, error) {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(h.Gatherer, promhttp.HandlerOpts{}))
	restserver.PopulateRouter(r, h.Repository, h.Log)

	metrics, err := middleware.NewMetrics(h.Registry, h.Clock)
	if err != nil {
		return nil, err
	}
	n := negroni.New(negroni.NewRecovery())
	if h.RequestLog != nil {
		n.Use(middleware.NewRequestLogger(h.RequestLog, h.Clock))
	}
	n.Use(metrics)
	n.UseHandler(r)
	return n, nil
}

// Serve runs an HTTP server on the listener until ctx is cancelled,
// then gives in-flight requests up to grace to finish.
func (h *HTTP) Serve(ctx context.Context, l net.Listener, grace time.Duration) error {
	handler, err := h.Handler()
	if err != nil {
		return err
	}
	server := &http.Server{Handler: handler}

	errs := make(chan error, 1)
	go func() {
		errs <- server.Serve(l)
	}()
	h.Log.WithFields(logrus.Fields{
		"addr": l.Addr().String(),
	}).Info("Serving HTTP")

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}

	h.Log.WithFields(logrus.Fields{
		"grace": grace,
	}).Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	err = server.Shutdown(shutdownCtx)
	if serveErr := <-errs; serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	return err
}

// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package middleware holds negroni handlers that wrap the payroll
// REST service: a request logger and Prometheus request metrics.
//
//     n := negroni.New(negroni.NewRecovery())
//     n.Use(middleware.NewRequestLogger(logger, clock.New()))
//     n.Use(metrics)
//     n.UseHandler(router)
//
// Both handlers expect to run inside negroni, which wraps the
// response in a negroni.ResponseWriter so the status code can be
// read back afterwards.
package middleware

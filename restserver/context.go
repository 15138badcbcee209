// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restdata"
	"github.com/gorilla/mux"
)

// errUnmarshal is returned if the put/post contract is violated and
// a handler function is passed the wrong type.
var errUnmarshal = restdata.ErrBadRequest{
	Err: errors.New("Invalid input format"),
}

// requestContext holds all of the information that can be extracted
// from the request line and headers.
type requestContext struct {
	// Context is the request's context, passed on to storage.
	Context context.Context

	// EmployeeID is the {id} route variable, or zero if the route
	// does not have one.
	EmployeeID int64

	// BaseURL is the scheme and host the client used to reach us.
	BaseURL *url.URL
}

func (api *restAPI) Context(req *http.Request) (ctx *requestContext, err error) {
	ctx = &requestContext{
		Context: req.Context(),
		BaseURL: baseURL(req),
	}
	vars := mux.Vars(req)

	if id, present := vars["id"]; present {
		ctx.EmployeeID, err = parseID(id)
	}

	return
}

// parseID converts a path segment to an employee ID.  Only positive
// base-10 integers are accepted.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, restdata.ErrBadRequest{Err: payroll.ErrBadID}
	}
	return id, nil
}

// baseURL reconstructs the scheme and host the client addressed.
func baseURL(req *http.Request) *url.URL {
	scheme := "http"
	if req.TLS != nil {
		scheme = "https"
	}
	if proto := req.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	host := req.Host
	if host == "" {
		host = req.URL.Host
	}
	return &url.URL{Scheme: scheme, Host: host, Path: "/"}
}

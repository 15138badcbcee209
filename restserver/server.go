// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restdata"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter creates a new HTTP handler that processes all payroll
// requests.  All payroll resources are under the URL path root,
// e.g. /employees/1.  Failures are logged to the standard logrus
// logger.  For more control over this setup, create a mux.Router and
// call PopulateRouter instead.
func NewRouter(repo payroll.Repository) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, repo, nil)
	return r
}

// PopulateRouter adds payroll routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to place the payroll interface under a subpath:
//
//     import "github.com/diffeo/go-payroll/memory"
//     import "github.com/gorilla/mux"
//     r := mux.NewRouter()
//     s := r.PathPrefix("/payroll").Subrouter()
//     repo := memory.New()
//     PopulateRouter(s, repo, logrus.StandardLogger())
//
// Server-side failures are logged to log; if it is nil, the standard
// logrus logger is used.
func PopulateRouter(r *mux.Router, repo payroll.Repository, log logrus.FieldLogger) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	api := &restAPI{
		Repository: repo,
		Assembler:  &Assembler{Router: r},
		Router:     r,
		Log:        log,
	}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the payroll REST API.
type restAPI struct {
	Repository payroll.Repository
	Assembler  *Assembler
	Router     *mux.Router
	Log        logrus.FieldLogger
}

// PopulateRouter adds all payroll URL paths to a router.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	api.PopulateEmployee(r)
	r.Path("/").Name("root").Handler(api.handler(&resourceHandler{
		Representation: restdata.RootData{},
		Get:            api.RootDocument,
	}))
}

// handler fills in the parts of a resourceHandler that are common to
// every route.
func (api *restAPI) handler(h *resourceHandler) *resourceHandler {
	h.Context = api.Context
	h.Log = api.Log
	return h
}

// RootDocument returns links to the employee collection and a
// template for individual employees.
func (api *restAPI) RootDocument(ctx *requestContext) (interface{}, error) {
	resp := restdata.RootData{Links: restdata.Links{}}
	err := buildURLs(api.Router, ctx.BaseURL).
		Link(resp.Links, restdata.RelSelf, "root").
		Link(resp.Links, restdata.RelEmployees, "employees").
		Template(resp.Links, restdata.RelEmployee, "employee", "id").
		Error
	return resp, err
}

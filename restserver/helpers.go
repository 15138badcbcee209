// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains helpers to turn named routes into absolute links.

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/diffeo/go-payroll/restdata"
	"github.com/gorilla/mux"
)

// templateMarker stands in for a template parameter while mux builds
// the URL.  It must survive URL escaping unchanged.
const templateMarker = "---"

type urlBuilder struct {
	Router *mux.Router
	Base   *url.URL
	Params []string
	Error  error
}

// buildURLs starts building links from router.  If base is non-nil,
// all links are resolved against it.  params are alternating route
// variable names and values.
func buildURLs(router *mux.Router, base *url.URL, params ...string) *urlBuilder {
	return &urlBuilder{Router: router, Base: base, Params: params}
}

func (u *urlBuilder) Route(route string) *mux.Route {
	if u.Error != nil {
		return nil
	}
	r := u.Router.Get(route)
	if r == nil {
		u.Error = fmt.Errorf("No such route %q", route)
	}
	return r
}

func (u *urlBuilder) resolve(path *url.URL) string {
	if u.Base == nil {
		return path.String()
	}
	return u.Base.ResolveReference(path).String()
}

// URL stores the absolute URL of route in out.
func (u *urlBuilder) URL(out *string, route string) *urlBuilder {
	var r *mux.Route
	var path *url.URL
	if u.Error == nil {
		r = u.Route(route)
	}
	if u.Error == nil {
		path, u.Error = r.URL(u.Params...)
	}
	if u.Error == nil {
		*out = u.resolve(path)
	}
	return u
}

// Link stores the absolute URL of route as links[rel].
func (u *urlBuilder) Link(links restdata.Links, rel, route string) *urlBuilder {
	var href string
	u.URL(&href, route)
	if u.Error == nil {
		links[rel] = restdata.Link{Href: href}
	}
	return u
}

// Template stores a URI template for route as links[rel], where the
// route variable param is left as a {param} placeholder.
func (u *urlBuilder) Template(links restdata.Links, rel, route, param string) *urlBuilder {
	var r *mux.Route
	var path *url.URL
	if u.Error == nil {
		r = u.Route(route)
	}
	if u.Error == nil {
		params := append([]string{param, templateMarker}, u.Params...)
		path, u.Error = r.URL(params...)
	}
	if u.Error == nil {
		href := strings.Replace(u.resolve(path), templateMarker, "{"+param+"}", 1)
		links[rel] = restdata.Link{Href: href, Templated: true}
	}
	return u
}

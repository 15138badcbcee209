// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a payroll Repository as a REST service.
// The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.  In
// particular, note that the URLs described here are not actually part
// of the API.
//
// HTTP Considerations
//
// All responses are application/hal+json.  Clients may use the
// standard HTTP Accept: header, but the only representations on offer
// are JSON ones, so anything other than a JSON type or a wildcard gets
// 406 Not Acceptable.  See "MIME Types" below.
//
// Every link in a response is absolute.  The scheme and host come from
// the request: https if the connection used TLS or an
// X-Forwarded-Proto: header says so, and the Host: header.
//
// This interface does not support HTTP caching, authentication
// headers, or pagination.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/hal+json
//     application/json
//     text/json
//
// These all mean the same JSON representation.  Request bodies must
// have one of these as their Content-Type:, or the request fails with
// 415 Unsupported Media Type.
//
// URL Scheme
//
// Employees are addressed by their numeric ID, which must be a
// positive base-10 integer; anything else is a 400 Bad Request.
//
// The following URLs are defined:
//
//     /
//     /employees
//     /employees/{id}
package restserver

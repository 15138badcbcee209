// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

// This file contains a REST skeleton framework.
//
// The bulk of this is dealing with HTTP content type negotiation, and
// providing a standard way to deal with input and output values.
// Every representation we produce is HAL JSON, so negotiation only
// decides whether the client will take it at all.

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/diffeo/go-payroll/restdata"
	"github.com/sirupsen/logrus"
)

// errBadAccept is returned from negotiateResponse() if the Accept:
// header is malformed (and no more specific error applies).
var errBadAccept = errors.New("Invalid Accept: header")

// errNotAcceptable is returned from negotiateResponse() if the Accept:
// header does not mention any media types we can actually return.
type errNotAcceptable struct{}

func (e errNotAcceptable) Error() string {
	return "No acceptable representation for response"
}

func (e errNotAcceptable) HTTPStatus() int {
	return http.StatusNotAcceptable
}

// errMethodNotAllowed is used within the resourceHandler implementation
// to flag an error if a particular HTTP method is not allowed.  This
// corresponds exactly to the 405 Method Not Allowed HTTP status code.
type errMethodNotAllowed struct {
	Method string
}

func (e errMethodNotAllowed) Error() string {
	return fmt.Sprintf("Method %v not allowed", e.Method)
}

func (e errMethodNotAllowed) HTTPStatus() int {
	return http.StatusMethodNotAllowed
}

// responseCreated is returned as a value response from handler
// functions that want to indicate that a new resource was created.
type responseCreated struct {
	// Location holds the canonical URL to the newly created resource.
	Location string

	// Body contains the object sent in the body of the response.
	Body interface{}
}

type resourceHandler struct {
	// Representation is an object representing this resource.
	// A copy of this object will be passed to handler functions.
	Representation interface{}

	// Context reads an HTTP request and produces a context object.
	Context func(req *http.Request) (*requestContext, error)

	// Log receives server-side failures.
	Log logrus.FieldLogger

	// Get, if non-nil, returns a representation of the object.
	// Its return type should be the same type as Representation,
	// though this is not enforced.
	Get func(*requestContext) (interface{}, error)

	// Put, if non-nil, updates the representation of the object.
	// The interface parameter is guaranteed to be the same type
	// as Representation.  The return can be any useful return
	// value.
	Put func(*requestContext, interface{}) (interface{}, error)

	// Post, if non-nil, takes some arbitrary action.  The
	// interface parameter is guaranteed to be the same type as
	// Representation, though in this case this is not necessarily
	// a representation of the resource.  The return can be any
	// useful return value, include responseCreated.
	Post func(*requestContext, interface{}) (interface{}, error)

	// Delete, if non-nil, deletes the object.  The return can be
	// any useful return value.
	Delete func(*requestContext) (interface{}, error)
}

// allowed lists the methods this resource handles, for the Allow:
// header of a 405 response.
func (h *resourceHandler) allowed() string {
	var methods []string
	if h.Get != nil {
		methods = append(methods, http.MethodGet, http.MethodHead)
	}
	if h.Put != nil {
		methods = append(methods, http.MethodPut)
	}
	if h.Post != nil {
		methods = append(methods, http.MethodPost)
	}
	if h.Delete != nil {
		methods = append(methods, http.MethodDelete)
	}
	return strings.Join(methods, ", ")
}

// handles reports whether this resource has a handler for method.
func (h *resourceHandler) handles(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead:
		return h.Get != nil
	case http.MethodPut:
		return h.Put != nil
	case http.MethodPost:
		return h.Post != nil
	case http.MethodDelete:
		return h.Delete != nil
	}
	return false
}

func (h *resourceHandler) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	var (
		ctx     *requestContext
		in, out interface{}
		err     error
		status  int
	)

	// Recover from panics by sending an HTTP error.
	defer func() {
		if recovered := recover(); recovered != nil {
			response := restdata.ErrorResponse{}
			response.FromPanic(recovered)
			h.log().WithFields(logrus.Fields{
				"method": req.Method,
				"url":    req.URL.String(),
				"panic":  response.Message,
			}).Error("Handler panicked")
			resp.Header().Set("Content-Type", restdata.HALMediaType)
			resp.WriteHeader(http.StatusInternalServerError)
			_ = restdata.Encode(resp, response)
		}
	}()

	// Start by checking that the client will take what we send,
	// even before trying to parse the input.  Errors here by
	// default are in the header setup.
	status = http.StatusBadRequest
	err = negotiateResponse(req)

	// An unsupported method wins over a bad URL or body
	if err == nil && !h.handles(req.Method) {
		err = errMethodNotAllowed{Method: req.Method}
	}

	// Get bits from URL parameters
	if err == nil {
		ctx, err = h.Context(req)
	}

	// Read the (JSON?) body, if it's there
	if err == nil && (req.Method == http.MethodPut || req.Method == http.MethodPost) {
		// Make a new object of the same type as h.Representation
		// and decode the message body into that object
		ptr := reflect.New(reflect.TypeOf(h.Representation))
		contentType := req.Header.Get("Content-Type")
		err = restdata.Decode(contentType, req.Body, ptr.Interface())
		if err == nil {
			in = ptr.Elem().Interface()
		}
	}

	// Actually call the handler method
	if err == nil {
		// If anything else goes wrong here, it's an error in
		// the storage layer
		status = http.StatusInternalServerError
		switch req.Method {
		case http.MethodGet, http.MethodHead:
			out, err = h.Get(ctx)
		case http.MethodPut:
			out, err = h.Put(ctx, in)
		case http.MethodPost:
			out, err = h.Post(ctx, in)
		case http.MethodDelete:
			out, err = h.Delete(ctx)
		}
	}

	// Fix up the final result based on what we know.
	if err != nil {
		// Pick a better status code if we know of one
		if errS, hasStatus := err.(restdata.ErrorStatus); hasStatus {
			status = errS.HTTPStatus()
		}
		if status == http.StatusMethodNotAllowed {
			resp.Header().Set("Allow", h.allowed())
		}
		if status >= http.StatusInternalServerError {
			h.log().WithFields(logrus.Fields{
				"method": req.Method,
				"url":    req.URL.String(),
				"err":    err,
			}).Error("Request failed")
		}
		response := restdata.ErrorResponse{}
		response.FromError(err)
		out = response
	} else if out == nil {
		status = http.StatusNoContent
	} else if created, isCreated := out.(responseCreated); isCreated {
		status = http.StatusCreated
		if created.Location != "" {
			resp.Header().Set("Location", created.Location)
		}
		out = created.Body
	} else {
		status = http.StatusOK
	}

	// Actually send the response.  It is possible for the
	// encoder to fail, but by the point this happens we've
	// already written an HTTP status line, so there is nothing
	// better to do than drop the error.
	if out != nil {
		resp.Header().Set("Content-Type", restdata.HALMediaType)
	}
	resp.WriteHeader(status)
	if out != nil && req.Method != http.MethodHead {
		_ = restdata.Encode(resp, out)
	}
}

func (h *resourceHandler) log() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

// negotiateResponse checks that the Accept: header admits our JSON
// representation, following the path laid out in RFC 7231 section
// 5.3.  Returns nil if it does.
func negotiateResponse(req *http.Request) error {
	accept := req.Header.Get("Accept")
	if accept == "" {
		return nil
	}
	bestQ := 0.0
	mediaRanges := strings.Split(accept, ",")
	for _, mediaRange := range mediaRanges {
		mediaRange = strings.TrimSpace(mediaRange)
		if mediaRange == "" {
			continue
		}
		mediaType, params, err := mime.ParseMediaType(mediaRange)
		if err != nil {
			return restdata.ErrBadRequest{Err: errBadAccept}
		}

		// What is the "q" ("quality") parameter for this type?
		q := 1.0
		if qStr, haveQ := params["q"]; haveQ {
			q, err = strconv.ParseFloat(qStr, 64)
			if err != nil || q < 0.0 || q > 1.0 {
				return restdata.ErrBadRequest{Err: errBadAccept}
			}
		}

		// This is acceptable if it's one of our types or a
		// wildcard that covers one of them.  Otherwise we
		// don't recognize this type at all, so just drop it.
		switch {
		case mediaType == "*/*",
			mediaType == "application/*",
			mediaType == "text/*",
			restdata.IsJSON(mediaType):
			if q > bestQ {
				bestQ = q
			}
		}
	}
	// If nothing matched with a nonzero quality, fail
	if bestQ == 0.0 {
		return errNotAcceptable{}
	}
	return nil
}

// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/diffeo/go-payroll/restdata"
	"github.com/jtacoma/uritemplates"
)

// maxErrorBody caps how much of a failed response is kept in ErrorHTTP.
const maxErrorBody = 64 * 1024

// resource is a fetched HAL document: its own URL, against which
// its links resolve, and the HTTP client used to follow them.
type resource struct {
	URL *url.URL

	// Client performs requests; nil means http.DefaultClient.
	Client *http.Client
}

// Resolve turns a link from this resource into an absolute URL,
// filling in vars if the link is a URI template.
func (r *resource) Resolve(link string, vars map[string]interface{}) (*url.URL, error) {
	tmpl, err := uritemplates.Parse(link)
	if err != nil {
		return nil, err
	}
	expanded, err := tmpl.Expand(vars)
	if err != nil {
		return nil, err
	}
	return r.URL.Parse(expanded)
}

func (r *resource) client() *http.Client {
	if r.Client != nil {
		return r.Client
	}
	return http.DefaultClient
}

// Do sends one request to target.  A non-nil in becomes the JSON
// request body; a non-nil out, which must be a pointer, receives the
// decoded response body.  Failed statuses come back as errors, using
// the server's ErrorResponse when it sent one.
func (r *resource) Do(ctx context.Context, method string, target *url.URL, in, out interface{}) (err error) {
	var body io.Reader
	if in != nil {
		buf := &bytes.Buffer{}
		if err = restdata.Encode(buf, in); err != nil {
			return err
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", restdata.HALMediaType)
	if in != nil {
		req.Header.Set("Content-Type", restdata.HALMediaType)
	}

	resp, err := r.client().Do(req)
	if err != nil {
		return err
	}
	defer func() {
		err = firstError(err, resp.Body.Close())
	}()

	if err = checkHTTPStatus(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return restdata.Decode(resp.Header.Get("Content-Type"), resp.Body, out)
}

// Get fetches this resource's own URL into out.
func (r *resource) Get(ctx context.Context, out interface{}) error {
	return r.Do(ctx, http.MethodGet, r.URL, nil, out)
}

// Follow resolves link with vars and sends method to the result.
func (r *resource) Follow(ctx context.Context, method, link string, vars map[string]interface{}, in, out interface{}) error {
	target, err := r.Resolve(link, vars)
	if err != nil {
		return err
	}
	return r.Do(ctx, method, target, in, out)
}

// ErrorHTTP is returned for a failed response that did not carry a
// recognizable ErrorResponse.
type ErrorHTTP struct {
	// Response is the failed response.  Its body has been consumed.
	Response *http.Response

	// Body is the start of the response body, as text.
	Body string
}

func (e ErrorHTTP) Error() string {
	return e.Response.Status
}

// HTTPStatus returns the status code of the failed response.
func (e ErrorHTTP) HTTPStatus() int {
	return e.Response.StatusCode
}

// checkHTTPStatus returns nil for a 2xx response.  Otherwise it reads
// the body and returns the payroll error it describes, or ErrorHTTP.
func checkHTTPStatus(resp *http.Response) error {
	if resp.StatusCode/100 == 2 {
		return nil
	}
	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return err
	}
	var errResp restdata.ErrorResponse
	if restdata.Decode(resp.Header.Get("Content-Type"), bytes.NewReader(body), &errResp) == nil && errResp.Error != "" {
		return errResp.ToError()
	}
	return ErrorHTTP{Response: resp, Body: string(body)}
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

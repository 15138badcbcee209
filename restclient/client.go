// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a payroll Repository that talks to the
// matching HTTP REST server in the "restserver" package.
//
// The server in github.com/diffeo/go-payroll/cmd/payrolld runs a
// compatible REST server.  Call New() with the base URL of that
// service; for instance,
//
//     repo, err := restclient.New("http://localhost:8080/")
//
// The client only knows the root URL.  Everything else is found by
// following the links in the root document.
package restclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restdata"
)

// New creates a new payroll Repository that speaks to an external
// REST server, using the default HTTP client.  This fetches the root
// document, and fails if the server cannot be reached.
func New(baseURL string) (payroll.Repository, error) {
	return NewWithClient(context.Background(), baseURL, nil)
}

// NewWithClient creates a new payroll Repository that speaks to an
// external REST server using a specific HTTP client.  If client is
// nil, http.DefaultClient is used.
func NewWithClient(ctx context.Context, baseURL string, client *http.Client) (payroll.Repository, error) {
	if baseURL == "" {
		return nil, errors.New("restclient: empty base URL")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	r := &restRepository{
		resource: resource{URL: u, Client: client},
	}
	err = r.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

type restRepository struct {
	resource
	Representation restdata.RootData
}

// Refresh re-reads the root document.
func (r *restRepository) Refresh(ctx context.Context) error {
	r.Representation = restdata.RootData{}
	err := r.Get(ctx, &r.Representation)
	if err == nil && (r.link(restdata.RelEmployees) == "" || r.link(restdata.RelEmployee) == "") {
		err = errors.New("restclient: root document is missing employee links")
	}
	return err
}

func (r *restRepository) link(rel string) string {
	return r.Representation.Links.Href(rel)
}

func idVars(id int64) map[string]interface{} {
	return map[string]interface{}{"id": strconv.FormatInt(id, 10)}
}

// fromWire converts a server representation back to a record.  The
// server always sends the split name, which is used as is.
func fromWire(e restdata.Employee) payroll.Employee {
	return payroll.Employee{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
}

func (r *restRepository) FindByID(ctx context.Context, id int64) (payroll.Employee, error) {
	if id <= 0 {
		return payroll.Employee{}, payroll.ErrNoSuchEmployee{ID: id}
	}
	var resp restdata.Employee
	err := r.Follow(ctx, http.MethodGet, r.link(restdata.RelEmployee), idVars(id), nil, &resp)
	if err != nil {
		return payroll.Employee{}, err
	}
	return fromWire(resp), nil
}

func (r *restRepository) FindAll(ctx context.Context) ([]payroll.Employee, error) {
	var resp restdata.EmployeeList
	err := r.Follow(ctx, http.MethodGet, r.link(restdata.RelEmployees), nil, nil, &resp)
	if err != nil {
		return nil, err
	}
	result := make([]payroll.Employee, len(resp.Embedded.Employees))
	for i, e := range resp.Embedded.Employees {
		result[i] = fromWire(e)
	}
	return result, nil
}

func (r *restRepository) Save(ctx context.Context, e payroll.Employee) (payroll.Employee, error) {
	if e.ID < 0 {
		return payroll.Employee{}, payroll.ErrBadID
	}
	// Send the split name fields; an empty "name" makes the
	// server use them as they are
	in := restdata.Employee{
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
	var resp restdata.Employee
	var err error
	if e.ID == 0 {
		err = r.Follow(ctx, http.MethodPost, r.link(restdata.RelEmployees), nil, in, &resp)
	} else {
		err = r.Follow(ctx, http.MethodPut, r.link(restdata.RelEmployee), idVars(e.ID), in, &resp)
	}
	if err != nil {
		return payroll.Employee{}, err
	}
	return fromWire(resp), nil
}

func (r *restRepository) DeleteByID(ctx context.Context, id int64) error {
	if id <= 0 {
		return nil
	}
	return r.Follow(ctx, http.MethodDelete, r.link(restdata.RelEmployee), idVars(id), nil, nil)
}

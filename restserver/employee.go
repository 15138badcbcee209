// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restdata"
	"github.com/gorilla/mux"
)

// EmployeeList returns every employee.
func (api *restAPI) EmployeeList(ctx *requestContext) (interface{}, error) {
	employees, err := api.Repository.FindAll(ctx.Context)
	if err != nil {
		return nil, err
	}
	return api.Assembler.ToCollection(ctx.BaseURL, employees)
}

// EmployeePost creates a new employee.  Any ID in the request is
// ignored and storage assigns a fresh one.
func (api *restAPI) EmployeePost(ctx *requestContext, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.Employee)
	if !valid {
		return nil, errUnmarshal
	}
	employee := req.ToEmployee()
	employee.ID = 0
	employee, err := api.Repository.Save(ctx.Context, employee)
	if err != nil {
		return nil, err
	}
	result, err := api.Assembler.ToModel(ctx.BaseURL, employee)
	if err != nil {
		return nil, err
	}
	return responseCreated{
		Location: result.Links.Href(restdata.RelSelf),
		Body:     result,
	}, nil
}

// EmployeeGet retrieves a single employee.
func (api *restAPI) EmployeeGet(ctx *requestContext) (interface{}, error) {
	employee, err := api.Repository.FindByID(ctx.Context, ctx.EmployeeID)
	if _, missing := err.(payroll.ErrNoSuchEmployee); missing {
		return nil, restdata.ErrNotFound{Err: err}
	}
	if err != nil {
		return nil, err
	}
	return api.Assembler.ToModel(ctx.BaseURL, employee)
}

// EmployeePut replaces the name and role of an existing employee, or
// creates one with exactly the ID in the URL.
func (api *restAPI) EmployeePut(ctx *requestContext, in interface{}) (interface{}, error) {
	req, valid := in.(restdata.Employee)
	if !valid {
		return nil, errUnmarshal
	}
	replacement := req.ToEmployee()
	employee, err := api.Repository.FindByID(ctx.Context, ctx.EmployeeID)
	if _, missing := err.(payroll.ErrNoSuchEmployee); missing {
		employee = payroll.Employee{ID: ctx.EmployeeID}
	} else if err != nil {
		return nil, err
	}
	employee.FirstName = replacement.FirstName
	employee.LastName = replacement.LastName
	employee.Role = replacement.Role
	employee, err = api.Repository.Save(ctx.Context, employee)
	if err != nil {
		return nil, err
	}
	return api.Assembler.ToModel(ctx.BaseURL, employee)
}

// EmployeeDelete removes an employee.  Deleting an employee that does
// not exist succeeds.
func (api *restAPI) EmployeeDelete(ctx *requestContext) (interface{}, error) {
	err := api.Repository.DeleteByID(ctx.Context, ctx.EmployeeID)
	return nil, err
}

// PopulateEmployee adds employee-specific routes to a router.
// r should be rooted at the root of the payroll URL tree, e.g. "/".
func (api *restAPI) PopulateEmployee(r *mux.Router) {
	r.Path("/employees").Name("employees").Handler(api.handler(&resourceHandler{
		Representation: restdata.Employee{},
		Get:            api.EmployeeList,
		Post:           api.EmployeePost,
	}))
	r.Path("/employees/{id}").Name("employee").Handler(api.handler(&resourceHandler{
		Representation: restdata.Employee{},
		Get:            api.EmployeeGet,
		Put:            api.EmployeePut,
		Delete:         api.EmployeeDelete,
	}))
}

// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  JSON encodings of these are
// passed across the wire as the application/hal+json MIME type.
//
// API Usage
//
// HTTP GET the root document at its specified URL.  This will return
// a JSON serialization of the RootData object.  That serialization
// has links to other resources; follow these links, possibly filling
// in template values, to get to other resources.
//
// Links follow the HAL convention: every resource has a "_links"
// object whose keys are link relations and whose values are objects
// with an "href".  Some links are RFC 6570 URI templates, marked with
// "templated": true; these have a {parameter} in curly braces to be
// filled in by the caller.  If the system is rooted at
// http://localhost:8080/, the root document looks like
//
//     {
//         "_links": {
//             "self": {"href": "http://localhost:8080/"},
//             "employees": {"href": "http://localhost:8080/employees"},
//             "employee": {
//                 "href": "http://localhost:8080/employees/{id}",
//                 "templated": true
//             }
//         }
//     }
//
// While the URL structure is predictable and formulaic, it is not
// actually part of the API contract.  The only specific guarantee is
// that retrieving the root resource will return a serialization of
// RootData.
//
// HTTP Considerations
//
// The "employees" link supports GET, returning an EmployeeList, and
// POST, submitting an Employee and returning the created Employee
// with 201 Created and a Location: header.  A single employee's
// "self" link supports GET, PUT and DELETE.  PUT replaces the name
// and role of the employee, or creates it with exactly that ID if it
// does not exist, and returns the stored Employee.  DELETE returns
// 204 No Content whether or not the employee existed.  Any resource
// that supports GET also supports HEAD.
//
// When submitting an Employee, the "id" and "_links" fields are
// ignored.  If "name" is non-empty it is split into first and last
// name; otherwise "firstName" and "lastName" are used.
//
// Errors
//
// Errors are returned as encodings of the ErrorResponse type with a
// failing HTTP status, usually 400 Bad Request, 404 Not Found, 406
// Not Acceptable, 415 Unsupported Media Type, or 500 Internal Server
// Error.  If Go server code panics, this is captured and returned as
// an ErrorResponse with error code "panic".
package restdata

import (
	"github.com/diffeo/go-payroll/payroll"
)

// HALMediaType is the preferred MIME type for all representations.
const HALMediaType = "application/hal+json"

// JSONMediaType is plain JSON, which is accepted as a synonym for
// HALMediaType.
const JSONMediaType = "application/json"

// Well-known link relations.
const (
	// RelSelf points at the resource itself.
	RelSelf = "self"

	// RelEmployees points at the employee collection.
	RelEmployees = "employees"

	// RelEmployee is a URI template with a single parameter "id"
	// that points at a single employee.
	RelEmployee = "employee"
)

// Link is a single hypermedia link.
type Link struct {
	// Href is the target URL, or a URI template if Templated
	// is set.
	Href string `json:"href"`

	// Templated marks Href as an RFC 6570 URI template.
	Templated bool `json:"templated,omitempty"`
}

// Links maps link relation names to links.
type Links map[string]Link

// Href returns the target of a link relation, or an empty string if
// there is no such link.
func (l Links) Href(rel string) string {
	return l[rel].Href
}

// RootData is returned by the root path.
type RootData struct {
	// Links has "self", "employees", and a templated "employee".
	Links Links `json:"_links"`
}

// Employee is the representation of a single employee.
type Employee struct {
	// ID is the employee's identity.  It is ignored on input.
	ID int64 `json:"id,omitempty"`

	// Name is the full name, the first and last name joined
	// with a space.
	Name string `json:"name"`

	// FirstName is the first word of the full name.
	FirstName string `json:"firstName"`

	// LastName is the remainder of the full name.
	LastName string `json:"lastName"`

	// Role is the employee's job title.
	Role string `json:"role"`

	// Links has "self" and "employees".  It is ignored on input.
	Links Links `json:"_links,omitempty"`
}

// FromEmployee fills in the data fields of a representation from a
// stored record.  It does not touch Links.
func (e *Employee) FromEmployee(employee payroll.Employee) {
	e.ID = employee.ID
	e.Name = employee.Name()
	e.FirstName = employee.FirstName
	e.LastName = employee.LastName
	e.Role = employee.Role
}

// ToEmployee converts a representation to a record.  A non-empty
// Name takes precedence over FirstName and LastName.
func (e Employee) ToEmployee() payroll.Employee {
	employee := payroll.Employee{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Role:      e.Role,
	}
	if e.Name != "" {
		employee.SetName(e.Name)
	}
	return employee
}

// EmployeeListEmbedded holds the embedded resources of an
// EmployeeList.
type EmployeeListEmbedded struct {
	// Employees holds the full representation of every employee.
	Employees []Employee `json:"employeeList"`
}

// EmployeeList is the representation of the employee collection.
type EmployeeList struct {
	Embedded EmployeeListEmbedded `json:"_embedded"`

	// Links has "self".
	Links Links `json:"_links"`
}

// ErrorResponse can be a response to any method, generally accompanied
// by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name of a payroll error, the string "panic", or the
	// string "error" for some other kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Value is an extra parameter to the error if applicable.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}

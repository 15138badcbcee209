// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/url"
	"strconv"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/restdata"
	"github.com/gorilla/mux"
)

// Assembler turns stored employees into their linked representations.
// Links are built from the named routes "employee" and "employees" of
// Router.
type Assembler struct {
	Router *mux.Router
}

// ToModel converts a single employee, with links resolved against
// base.
func (a *Assembler) ToModel(base *url.URL, e payroll.Employee) (restdata.Employee, error) {
	result := restdata.Employee{Links: restdata.Links{}}
	result.FromEmployee(e)
	err := buildURLs(a.Router, base, "id", strconv.FormatInt(e.ID, 10)).
		Link(result.Links, restdata.RelSelf, "employee").
		Link(result.Links, restdata.RelEmployees, "employees").
		Error
	return result, err
}

// ToCollection converts a list of employees, each the same as
// ToModel would produce.
func (a *Assembler) ToCollection(base *url.URL, employees []payroll.Employee) (restdata.EmployeeList, error) {
	result := restdata.EmployeeList{
		Embedded: restdata.EmployeeListEmbedded{
			Employees: make([]restdata.Employee, 0, len(employees)),
		},
		Links: restdata.Links{},
	}
	for _, e := range employees {
		model, err := a.ToModel(base, e)
		if err != nil {
			return restdata.EmployeeList{}, err
		}
		result.Embedded.Employees = append(result.Embedded.Employees, model)
	}
	err := buildURLs(a.Router, base).
		Link(result.Links, restdata.RelSelf, "employees").
		Error
	return result, err
}

// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"errors"
	"testing"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/stretchr/testify/assert"
)

func TestFromErrorNoSuchEmployee(t *testing.T) {
	var resp ErrorResponse
	resp.FromError(ErrNotFound{Err: payroll.ErrNoSuchEmployee{ID: 3}})
	assert.Equal(t, ErrorResponse{
		Error:   "ErrNoSuchEmployee",
		Message: "Could not find employee 3",
		Value:   "3",
	}, resp)
	assert.Equal(t, payroll.ErrNoSuchEmployee{ID: 3}, resp.ToError())
}

func TestFromErrorBadID(t *testing.T) {
	var resp ErrorResponse
	resp.FromError(ErrBadRequest{Err: payroll.ErrBadID})
	assert.Equal(t, "ErrBadID", resp.Error)
	assert.Equal(t, payroll.ErrBadID, resp.ToError())
}

func TestFromErrorNoMoreIDs(t *testing.T) {
	var resp ErrorResponse
	resp.FromError(payroll.ErrNoMoreIDs)
	assert.Equal(t, "ErrNoMoreIDs", resp.Error)
	assert.Equal(t, payroll.ErrNoMoreIDs, resp.ToError())
}

func TestFromErrorGeneric(t *testing.T) {
	var resp ErrorResponse
	resp.FromError(errors.New("disk on fire"))
	assert.Equal(t, "error", resp.Error)
	assert.Equal(t, "disk on fire", resp.Message)
	assert.EqualError(t, resp.ToError(), "disk on fire")
}

func TestToErrorBadValue(t *testing.T) {
	resp := ErrorResponse{Error: "ErrNoSuchEmployee", Message: "huh", Value: "x"}
	assert.EqualError(t, resp.ToError(), "huh")
}

func TestFromPanic(t *testing.T) {
	var resp ErrorResponse
	resp.FromPanic("oops")
	assert.Equal(t, "panic", resp.Error)
	assert.Equal(t, "oops", resp.Message)
	assert.NotEmpty(t, resp.Stack)
}

func TestEmployeeConversion(t *testing.T) {
	rep := Employee{ID: 9, Name: "Frodo Baggins", FirstName: "x", LastName: "y", Role: "thief"}
	e := rep.ToEmployee()
	assert.Equal(t, payroll.Employee{ID: 9, FirstName: "Frodo", LastName: "Baggins", Role: "thief"}, e)

	rep = Employee{FirstName: "Samwise", LastName: "Gamgee", Role: "gardener"}
	e = rep.ToEmployee()
	assert.Equal(t, "Samwise Gamgee", e.Name())

	var out Employee
	out.FromEmployee(payroll.Employee{ID: 2, FirstName: "Bilbo", LastName: "Baggins", Role: "burglar"})
	assert.Equal(t, Employee{
		ID:        2,
		Name:      "Bilbo Baggins",
		FirstName: "Bilbo",
		LastName:  "Baggins",
		Role:      "burglar",
	}, out)
}

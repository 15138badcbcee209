// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package payroll defines the Employee record and the storage
// interface for it.  Concrete storage lives in the memory, postgres,
// and sqlite packages, and restclient provides a Repository that
// talks to a remote restserver.
//
// Identity
//
// Every stored Employee has a positive integer ID.  An Employee with
// an ID of zero has never been saved.  Passing such an Employee to
// Repository.Save() asks the storage to pick a new identity; passing
// one with a non-zero ID stores it under exactly that identity,
// replacing any existing record.  Identities assigned automatically
// never collide with identities that were supplied explicitly.
package payroll

import (
	"context"
	"fmt"
	"strings"
)

// Employee is a single employee record.
type Employee struct {
	// ID is the storage-assigned identity, or zero if this record
	// has not been saved yet.
	ID int64

	// FirstName is the first word of the employee's full name.
	FirstName string

	// LastName is the remainder of the employee's full name,
	// possibly empty.
	LastName string

	// Role is the employee's job title.
	Role string
}

// NewEmployee creates an unsaved employee from a full name and role.
func NewEmployee(name, role string) Employee {
	e := Employee{Role: role}
	e.SetName(name)
	return e
}

// Name returns the employee's full name.
func (e Employee) Name() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// SetName splits a full name into first and last name at the first
// space.  Everything after that space, further spaces included, is
// the last name.
func (e *Employee) SetName(name string) {
	parts := strings.SplitN(name, " ", 2)
	e.FirstName = parts[0]
	if len(parts) > 1 {
		e.LastName = parts[1]
	} else {
		e.LastName = ""
	}
}

func (e Employee) String() string {
	return fmt.Sprintf("Employee{id=%d, name=%q, role=%q}", e.ID, e.Name(), e.Role)
}

// Repository is the storage interface for employees.
//
// Implementations must be safe for concurrent use.  None of them keep
// any state between calls beyond what is needed to reach the
// underlying store.
type Repository interface {
	// FindByID retrieves a single employee.  If there is no
	// employee with this ID, returns ErrNoSuchEmployee.
	FindByID(ctx context.Context, id int64) (Employee, error)

	// FindAll retrieves every employee, ordered by ID.  An empty
	// store returns an empty slice and no error.
	FindAll(ctx context.Context) ([]Employee, error)

	// Save stores an employee and returns the stored record.  If
	// e.ID is zero, a new identity is assigned.  Otherwise the
	// record is stored under e.ID, whether or not a record with
	// that ID existed before.
	Save(ctx context.Context, e Employee) (Employee, error)

	// DeleteByID removes an employee.  Deleting an ID that does
	// not exist is not an error.
	DeleteByID(ctx context.Context, id int64) error
}

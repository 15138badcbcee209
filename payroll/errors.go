// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package payroll

import (
	"errors"
	"fmt"
)

// ErrNoSuchEmployee is returned by Repository.FindByID() and similar
// functions that want to look up an employee, but cannot find it.
type ErrNoSuchEmployee struct {
	ID int64
}

func (err ErrNoSuchEmployee) Error() string {
	return fmt.Sprintf("Could not find employee %v", err.ID)
}

// ErrBadID is returned from Repository.Save() if the employee has a
// negative ID, and from request parsing if an ID in a URL is not a
// positive integer.
var ErrBadID = errors.New("Employee ID must be a positive integer")

// ErrNoMoreIDs is returned from Repository.Save() when a new employee
// needs an ID but the largest possible ID has already been used.
var ErrNoMoreIDs = errors.New("No employee IDs left to assign")

// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package payrolltest provides generic functional tests for the
// payroll Repository interface.  A typical backend test module needs
// to wrap Suite to create its backend:
//
//     package mybackend
//
//     import (
//             "testing"
//             "github.com/diffeo/go-payroll/payroll/payrolltest"
//             "github.com/stretchr/testify/suite"
//     )
//
//     // Suite is the per-backend generic test suite.
//     type Suite struct{
//             payrolltest.Suite
//     }
//
//     // SetupSuite does global setup for the test suite.
//     func (s *Suite) SetupSuite() {
//             s.Suite.SetupSuite()
//             s.Repository = New()
//     }
//
//     // TestRepository runs the payroll generic tests.
//     func TestRepository(t *testing.T) {
//             suite.Run(t, &Suite{})
//     }
//
// The tests share one Repository and do not assume it starts empty,
// so a backend may be pointed at a database that already has data.
package payrolltest

import (
	"context"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/stretchr/testify/suite"
)

// Suite is the generic payroll backend test suite.
type Suite struct {
	suite.Suite

	// Repository contains the backend under test.  It is set by
	// importing packages.
	Repository payroll.Repository
}

// SetupSuite does one-time initialization for the test suite.
func (s *Suite) SetupSuite() {}

// Context returns the context tests pass to the repository.
func (s *Suite) Context() context.Context {
	return context.Background()
}

// Create saves a new employee, failing the test immediately if that
// does not work.
func (s *Suite) Create(name, role string) payroll.Employee {
	e, err := s.Repository.Save(s.Context(), payroll.NewEmployee(name, role))
	s.Require().NoError(err)
	s.Require().NotZero(e.ID)
	return e
}

// All fetches every employee, failing the test immediately on error.
func (s *Suite) All() []payroll.Employee {
	all, err := s.Repository.FindAll(s.Context())
	s.Require().NoError(err)
	return all
}

// UnusedID returns an ID well past any ID currently in the repository.
func (s *Suite) UnusedID() int64 {
	var max int64
	for _, e := range s.All() {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1000
}

// AssertMissing checks that looking up id fails with
// ErrNoSuchEmployee.
func (s *Suite) AssertMissing(id int64) {
	_, err := s.Repository.FindByID(s.Context(), id)
	s.Equal(payroll.ErrNoSuchEmployee{ID: id}, err)
}

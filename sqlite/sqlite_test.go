// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/payroll/payrolltest"
	"github.com/diffeo/go-payroll/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// Suite runs the generic payroll tests against an SQLite file.
type Suite struct {
	payrolltest.Suite
}

// SetupSuite creates a fresh database in a temporary directory.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	repo, err := sqlite.New(filepath.Join(s.T().TempDir(), "payroll.db"))
	s.Require().NoError(err)
	s.Repository = repo
}

func TestRepository(t *testing.T) {
	suite.Run(t, &Suite{})
}

// TestInMemory runs the suite against an in-memory database.
func TestInMemory(t *testing.T) {
	repo, err := sqlite.New(":memory:")
	require.NoError(t, err)
	s := &payrolltest.Suite{Repository: repo}
	suite.Run(t, s)
}

// TestReopen checks that records survive closing and reopening the
// file, and that the migrations are not applied twice.
func TestLastID(t *testing.T) {
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "payroll.db"))
	require.NoError(t, err)
	payrolltest.CheckLastID(t, repo)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "payroll.db")

	repo, err := sqlite.New(path)
	require.NoError(t, err)
	e, err := repo.Save(ctx, payroll.NewEmployee("Bilbo Baggins", "burglar"))
	require.NoError(t, err)

	repo, err = sqlite.New(path)
	require.NoError(t, err)
	found, err := repo.FindByID(ctx, e.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, e, found)
	}
}

// TestDeletedIDNotReused checks that the highest ID is not handed out
// again after it is deleted.
func TestDeletedIDNotReused(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.New(filepath.Join(t.TempDir(), "payroll.db"))
	require.NoError(t, err)

	e, err := repo.Save(ctx, payroll.NewEmployee("Boromir", "captain"))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteByID(ctx, e.ID))
	next, err := repo.Save(ctx, payroll.NewEmployee("Faramir", "captain"))
	require.NoError(t, err)
	assert.True(t, next.ID > e.ID)
}

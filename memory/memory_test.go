// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory_test

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/diffeo/go-payroll/memory"
	"github.com/diffeo/go-payroll/payroll"
	"github.com/diffeo/go-payroll/payroll/payrolltest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// Suite runs the generic payroll tests against the memory backend.
type Suite struct {
	payrolltest.Suite
}

// SetupSuite creates the backend.
func (s *Suite) SetupSuite() {
	s.Suite.SetupSuite()
	s.Repository = memory.New()
}

func TestRepository(t *testing.T) {
	suite.Run(t, &Suite{})
}

// TestIndependent checks that two repositories do not share state.
func TestLastID(t *testing.T) {
	payrolltest.CheckLastID(t, memory.New())

	repo := memory.New()
	e := payroll.NewEmployee("Gandalf", "wizard")
	e.ID = math.MaxInt64
	_, err := repo.Save(context.Background(), e)
	if assert.NoError(t, err) {
		_, err = repo.Save(context.Background(), payroll.NewEmployee("Pippin", "guard"))
		assert.Equal(t, payroll.ErrNoMoreIDs, err)
	}
}

func TestIndependent(t *testing.T) {
	ctx := context.Background()
	a := memory.New()
	b := memory.New()
	e, err := a.Save(ctx, payroll.NewEmployee("Bilbo Baggins", "burglar"))
	if assert.NoError(t, err) {
		_, err = b.FindByID(ctx, e.ID)
		assert.Equal(t, payroll.ErrNoSuchEmployee{ID: e.ID}, err)
	}
}

// TestConcurrentCreate checks that concurrent saves never hand out
// the same ID twice.
func TestConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			e, err := repo.Save(ctx, payroll.NewEmployee("Sam", "cook"))
			if assert.NoError(t, err) {
				ids <- e.ID
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %v", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

// TestSavedCopy checks that the stored record is not affected by
// changes to the caller's copy.
func TestSavedCopy(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	e, err := repo.Save(ctx, payroll.NewEmployee("Frodo Baggins", "thief"))
	if !assert.NoError(t, err) {
		return
	}
	e.Role = "ring bearer"
	found, err := repo.FindByID(ctx, e.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "thief", found.Role)
	}
}

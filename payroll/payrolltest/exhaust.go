// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package payrolltest

import (
	"context"
	"math"
	"testing"

	"github.com/diffeo/go-payroll/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CheckLastID saves an employee under the largest possible ID and
// then creates another.  The new employee must either get a positive
// ID that can be looked up, or be refused with ErrNoMoreIDs; the
// record at the largest ID must be unaffected and still replaceable.
//
// This fills up the repository's ID space, so repo should be fresh
// and not shared with Suite.
func CheckLastID(t *testing.T, repo payroll.Repository) {
	ctx := context.Background()
	last := payroll.NewEmployee("Gandalf the Grey", "wizard")
	last.ID = math.MaxInt64
	saved, err := repo.Save(ctx, last)
	require.NoError(t, err)
	assert.Equal(t, last, saved)

	e, err := repo.Save(ctx, payroll.NewEmployee("Peregrin Took", "guard"))
	if err == nil {
		if assert.True(t, e.ID > 0, "assigned id %v", e.ID) {
			found, err := repo.FindByID(ctx, e.ID)
			if assert.NoError(t, err) {
				assert.Equal(t, e, found)
			}
		}
	} else {
		assert.Equal(t, payroll.ErrNoMoreIDs, err)
	}

	last.SetName("Gandalf the White")
	_, err = repo.Save(ctx, last)
	assert.NoError(t, err)
	found, err := repo.FindByID(ctx, math.MaxInt64)
	if assert.NoError(t, err) {
		assert.Equal(t, last, found)
	}
}

// Copyright 2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package payroll_test

import (
	"context"
	"testing"

	"github.com/diffeo/go-payroll/memory"
	"github.com/diffeo/go-payroll/payroll"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreload(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	logger, hook := test.NewNullLogger()

	saved, err := payroll.Preload(ctx, repo, logger)
	require.NoError(t, err)
	if assert.Len(t, saved, 2) {
		assert.Equal(t, int64(1), saved[0].ID)
		assert.Equal(t, "Bilbo Baggins", saved[0].Name())
		assert.Equal(t, "burglar", saved[0].Role)
		assert.Equal(t, int64(2), saved[1].ID)
		assert.Equal(t, "Frodo Baggins", saved[1].Name())
		assert.Equal(t, "thief", saved[1].Role)
	}

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, all)

	if assert.Len(t, hook.AllEntries(), 2) {
		entry := hook.AllEntries()[0]
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, "Preloading", entry.Message)
		assert.Equal(t, int64(1), entry.Data["id"])
	}
}

func TestPreloadTwice(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	logger, _ := test.NewNullLogger()

	_, err := payroll.Preload(ctx, repo, logger)
	require.NoError(t, err)
	again, err := payroll.Preload(ctx, repo, logger)
	require.NoError(t, err)
	if assert.Len(t, again, 2) {
		assert.Equal(t, int64(3), again[0].ID)
		assert.Equal(t, int64(4), again[1].ID)
	}
}

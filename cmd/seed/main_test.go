package main

import (
	"context"
	"testing"
	"time"

	"github.com/SAP-F-2025/interview-coach/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed(t *testing.T) {
	ctx := context.Background()
	store := memory.New()

	require.NoError(t, seed(ctx, store, time.Now()))

	userCount, err := store.Users().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(users), userCount)

	stats, err := store.Evaluations().GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(interviews), stats.Total)
	assert.InDelta(t, 86.4, stats.AverageScore, 0.01)

	admin, err := store.Users().GetByEmail(ctx, "admin@interview.ai")
	require.NoError(t, err)
	assert.Equal(t, "Admin User", admin.FullName)

	// Emails are unique, so a second run fails instead of duplicating rows
	assert.Error(t, seed(ctx, store, time.Now()))
}

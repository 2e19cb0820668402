package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func sampleInvestigators() []*actor.Investigator {
	first := actor.NewPlaceholder(1)
	first.Name = "Ana"
	first.Stats[actor.StatSanity] = 42
	first.Statuses.MajorWound = true
	first.PendingChecks.MajorWoundConCheck = true
	first.Background[actor.BackgroundTraits] = "stubborn"
	return []*actor.Investigator{first, actor.NewPlaceholder(2)}
}

// exerciseStorage runs the behaviour every adapter shares.
func exerciseStorage(t *testing.T, s storage.Storage, corrupt func([]byte)) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, err := s.LoadInvestigators(ctx)
	require.ErrorIs(t, err, storage.ErrNotFound, "nothing saved yet")

	want := sampleInvestigators()
	require.NoError(t, s.SaveInvestigators(ctx, want))
	got, err := s.LoadInvestigators(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, s.SaveInvestigators(ctx, nil))
	got, err = s.LoadInvestigators(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	corrupt([]byte(`[{"name": 7}]`))
	_, err = s.LoadInvestigators(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrMalformed), "got %v", err)
	assert.False(t, errors.Is(err, storage.ErrNotFound))
}

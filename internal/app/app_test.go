package app

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/investigator-tracker/internal/config"
	internalstorage "github.com/jwebster45206/investigator-tracker/internal/storage"
	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/state"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StorageBackend: config.BackendFile,
		DataFile:       filepath.Join(dir, "investigator_data.json"),
		SQLitePath:     filepath.Join(dir, "tracker.db"),
		RedisKey:       "tracker:test",
	}
}

func TestOpenStorage(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name    string
		backend string
		want    any
	}{
		{"file", config.BackendFile, &internalstorage.FileStorage{}},
		{"sqlite", config.BackendSQLite, &internalstorage.SQLiteStorage{}},
		{"redis", config.BackendRedis, &internalstorage.RedisStorage{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.StorageBackend = tt.backend
			cfg.RedisURL = mr.Addr()

			store, err := OpenStorage(context.Background(), cfg, testLogger())
			require.NoError(t, err)
			defer store.Close()
			assert.IsType(t, tt.want, store)
		})
	}
}

func TestOpenStorage_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = "tape"

	_, err := OpenStorage(context.Background(), cfg, testLogger())
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestOpenStorage_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t)
	cfg.StorageBackend = config.BackendRedis
	cfg.RedisURL = addr

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := OpenStorage(ctx, cfg, testLogger())
	assert.Error(t, err)
}

func TestNewWithStore_KeeperObservesRoster(t *testing.T) {
	a := NewWithStore(testConfig(t), storage.NewMockStorage(), testLogger())

	a.Roster.Add()
	a.Roster.Select(0)
	value, ok := a.Roster.CommitStat(actor.StatHealth, "+50")
	require.True(t, ok)
	assert.Equal(t, 10, value, "health is clamped to max by the keeper")
}

func TestNewWithStore_RecomputeDerived(t *testing.T) {
	cfg := testConfig(t)
	cfg.RecomputeDerived = true
	a := NewWithStore(cfg, storage.NewMockStorage(), testLogger())

	a.Roster.Add()
	a.Roster.Select(0)
	_, ok := a.Roster.CommitStat(actor.StatMythos, "10")
	require.True(t, ok)
	assert.Equal(t, 89, a.Roster.Selected().MaxSanity)
}

func TestShutdownThenLoad(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	first, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, first.Load(ctx))
	first.Roster.Add()
	first.Roster.Add()
	require.NoError(t, first.Shutdown(ctx))

	second, err := New(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer second.Store.Close()
	require.NoError(t, second.Load(ctx))
	assert.Equal(t, 2, second.Roster.Len())
	assert.Equal(t, 0, second.Roster.SelectedIndex())
	assert.Equal(t, "Player 3", second.Roster.Add().Name)
}

func TestShutdown_SaveErrorStillCloses(t *testing.T) {
	store := storage.NewMockStorage()
	store.SetSaveError(assert.AnError)
	a := NewWithStore(testConfig(t), store, testLogger())

	var reported string
	a.Roster.WithHooks(state.Hooks{OnError: func(title string, err error) { reported = title }})

	err := a.Shutdown(context.Background())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, state.TitleSaveError, reported)
}

// Package app wires configuration, storage and the domain services into
// one tracker instance.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jwebster45206/investigator-tracker/internal/config"
	"github.com/jwebster45206/investigator-tracker/internal/logger"
	internalstorage "github.com/jwebster45206/investigator-tracker/internal/storage"
	"github.com/jwebster45206/investigator-tracker/pkg/rules"
	"github.com/jwebster45206/investigator-tracker/pkg/state"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

const (
	connectTimeout  = 2 * time.Minute
	shutdownTimeout = 30 * time.Second
)

// App holds one running tracker.
type App struct {
	Config *config.Config
	Logger *slog.Logger
	Store  storage.Storage
	Roster *state.Roster
	Keeper *rules.Keeper
}

// OpenStorage creates the storage adapter selected by cfg.StorageBackend
// and checks that it is reachable.
func OpenStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (storage.Storage, error) {
	log = logger.WithComponent(log, "storage")

	var store storage.Storage
	switch cfg.StorageBackend {
	case config.BackendFile:
		store = internalstorage.NewFileStorage(cfg.DataFile, log)
	case config.BackendRedis:
		rs, err := internalstorage.NewRedisStorage(cfg.RedisURL, cfg.RedisKey, log)
		if err != nil {
			return nil, err
		}
		waitCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		if err := rs.WaitForConnection(waitCtx); err != nil {
			_ = rs.Close()
			return nil, err
		}
		store = rs
	case config.BackendSQLite:
		ss, err := internalstorage.NewSQLiteStorage(cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		store = ss
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownBackend, cfg.StorageBackend)
	}

	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("storage %s unavailable: %w", cfg.StorageBackend, err)
	}
	log.Info("Storage connection established successfully", "backend", cfg.StorageBackend)
	return store, nil
}

// New opens the configured storage and builds the app around it.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	store, err := OpenStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store, log), nil
}

// NewWithStore builds the app on an already opened store. The roster has
// no UI hooks yet; the console installs them with Roster.WithHooks.
func NewWithStore(cfg *config.Config, store storage.Storage, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	keeper := rules.NewKeeper(logger.WithComponent(log, "keeper")).
		WithRecomputeDerived(cfg.RecomputeDerived)
	roster := state.NewRoster(store, state.Hooks{}, logger.WithComponent(log, "roster")).
		WithObserver(keeper)

	return &App{
		Config: cfg,
		Logger: log,
		Store:  store,
		Roster: roster,
		Keeper: keeper,
	}
}

// Load reads the saved investigators. Failures are reported through the
// roster's error hook; the error is returned too.
func (a *App) Load(ctx context.Context) error {
	return a.Roster.Load(ctx)
}

// Shutdown saves the roster and closes the storage. Both steps run even
// when the save fails.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	saveErr := a.Roster.Save(ctx)
	closeErr := a.Store.Close()
	if closeErr != nil {
		a.Logger.Error("Error closing storage connection", "error", closeErr)
	}
	return errors.Join(saveErr, closeErr)
}

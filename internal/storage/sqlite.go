package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

// keepSnapshots is how many saved documents survive pruning.
const keepSnapshots = 20

// SQLiteStorage appends every save as a snapshot row and loads the newest.
type SQLiteStorage struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Ensure SQLiteStorage implements Storage interface
var _ storage.Storage = (*SQLiteStorage)(nil)

// NewSQLiteStorage opens (creating if needed) the database at path.
func NewSQLiteStorage(path string, logger *slog.Logger) (*SQLiteStorage, error) {
	if path == "" {
		path = "tracker.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		saved_at TEXT NOT NULL,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create snapshots table: %w", err)
	}
	return &SQLiteStorage{db: db, path: path, logger: logger}, nil
}

func (s *SQLiteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite ping failed: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// LoadInvestigators decodes the newest snapshot.
func (s *SQLiteStorage) LoadInvestigators(ctx context.Context) ([]*actor.Investigator, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM snapshots ORDER BY id DESC LIMIT 1`).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sqlite %s: %w", s.path, storage.ErrNotFound)
		}
		s.logger.Error("Failed to select snapshot", "path", s.path, "error", err)
		return nil, fmt.Errorf("select snapshot: %w", err)
	}

	investigators, err := actor.DecodeInvestigators(payload)
	if err != nil {
		s.logger.Error("Failed to decode snapshot", "path", s.path, "error", err)
		return nil, storage.WrapMalformed(err)
	}
	return investigators, nil
}

// SaveInvestigators inserts a new snapshot and prunes old ones in one transaction.
func (s *SQLiteStorage) SaveInvestigators(ctx context.Context, investigators []*actor.Investigator) (retErr error) {
	data, err := actor.EncodeInvestigators(investigators)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO snapshots(saved_at, payload) VALUES(?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), data); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id NOT IN (
		SELECT id FROM snapshots ORDER BY id DESC LIMIT ?
	)`, keepSnapshots); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.Debug("Snapshot saved", "path", s.path, "count", len(investigators), "bytes", len(data))
	return nil
}

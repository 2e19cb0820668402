package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

// FileStorage keeps the investigator list as one JSON document on disk.
type FileStorage struct {
	path   string
	logger *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a file-backed storage for the document at path
func NewFileStorage(path string, logger *slog.Logger) *FileStorage {
	if path == "" {
		path = "investigator_data.json"
	}
	return &FileStorage{
		path:   path,
		logger: logger,
	}
}

// Path returns the data file location
func (f *FileStorage) Path() string {
	return f.path
}

// Ping checks that the directory holding the data file exists
func (f *FileStorage) Ping(ctx context.Context) error {
	dir := filepath.Dir(f.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("data directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory unavailable: %s is not a directory", dir)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}

// LoadInvestigators reads and decodes the data file. A missing file is
// storage.ErrNotFound; content that does not decode is storage.ErrMalformed.
func (f *FileStorage) LoadInvestigators(ctx context.Context) ([]*actor.Investigator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("data file %s: %w", f.path, storage.ErrNotFound)
		}
		f.logger.Error("Failed to read data file", "path", f.path, "error", err)
		return nil, fmt.Errorf("failed to read data file %s: %w", f.path, err)
	}

	investigators, err := actor.DecodeInvestigators(data)
	if err != nil {
		f.logger.Error("Failed to decode data file", "path", f.path, "error", err)
		return nil, storage.WrapMalformed(err)
	}

	f.logger.Debug("Data file loaded", "path", f.path, "count", len(investigators))
	return investigators, nil
}

// SaveInvestigators replaces the data file. The document is written to a
// temporary file in the same directory and renamed over the old one.
func (f *FileStorage) SaveInvestigators(ctx context.Context, investigators []*actor.Investigator) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := actor.EncodeInvestigators(investigators)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write data file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("failed to set data file mode: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		return fmt.Errorf("failed to replace data file %s: %w", f.path, err)
	}

	f.logger.Debug("Data file saved", "path", f.path, "count", len(investigators), "bytes", len(data))
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

var (
	// ErrNotFound is returned by LoadInvestigators when nothing has been saved yet.
	ErrNotFound = errors.New("investigator data not found")

	// ErrMalformed is returned by LoadInvestigators when the stored document
	// cannot be decoded.
	ErrMalformed = errors.New("investigator data is malformed")
)

// Storage persists the whole ordered investigator list as a single document.
// Adapters: JSON file (default), Redis key, SQLite snapshots.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// LoadInvestigators returns the stored list in its saved order.
	// Returns ErrNotFound when no document exists and ErrMalformed when it
	// cannot be decoded; both are wrapped and checked with errors.Is.
	LoadInvestigators(ctx context.Context) ([]*actor.Investigator, error)

	// SaveInvestigators overwrites the stored document with the given list.
	SaveInvestigators(ctx context.Context, investigators []*actor.Investigator) error
}

// WrapMalformed marks a decode failure so callers can match it with ErrMalformed.
func WrapMalformed(err error) error {
	return fmt.Errorf("%w: %w", ErrMalformed, err)
}

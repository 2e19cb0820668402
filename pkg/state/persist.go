package state

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

// Titles passed to Hooks.OnError.
const (
	TitleSaveError = "Error Saving Data"
	TitleLoadError = "Error Loading Data"
)

// Save writes the whole roster through the storage port. A failure is
// logged and reported through the error hook; in-memory state is kept.
func (r *Roster) Save(ctx context.Context) error {
	if err := r.store.SaveInvestigators(ctx, r.investigators); err != nil {
		r.logger.Error("Failed to save investigators", "count", len(r.investigators), "error", err)
		r.reportError(TitleSaveError, err)
		return err
	}
	r.logger.Info("Investigators saved", "count", len(r.investigators))
	return nil
}

// Load replaces the roster with the stored list.
//
// Nothing stored yet is a silent empty start. A malformed document is
// reported and leaves the roster empty. Any other failure is reported and
// leaves the roster unchanged. On success the first investigator is selected.
func (r *Roster) Load(ctx context.Context) error {
	investigators, err := r.store.LoadInvestigators(ctx)
	switch {
	case err == nil:
	case errors.Is(err, storage.ErrNotFound):
		r.logger.Info("No saved investigators, starting empty")
		return nil
	case errors.Is(err, storage.ErrMalformed):
		r.logger.Error("Saved investigators are malformed", "error", err)
		r.investigators = nil
		r.nextNumber = 1
		r.reportError(TitleLoadError, err)
		r.Select(NoSelection)
		return err
	default:
		r.logger.Error("Failed to load investigators", "error", err)
		r.reportError(TitleLoadError, err)
		return err
	}

	r.investigators = investigators
	r.nextNumber = nextPlaceholderNumber(investigators)
	r.logger.Info("Investigators loaded", "count", len(investigators))

	if len(investigators) > 0 {
		r.Select(0)
	} else {
		r.Select(NoSelection)
	}
	return nil
}

func (r *Roster) reportError(title string, err error) {
	if r.hooks.OnError != nil {
		r.hooks.OnError(title, err)
	}
}

// nextPlaceholderNumber continues numbering after a load so new placeholders
// do not repeat a "Player N" already in the list.
func nextPlaceholderNumber(investigators []*actor.Investigator) int {
	highest := len(investigators)
	for _, inv := range investigators {
		for _, s := range []string{inv.Name, inv.Character} {
			if n, ok := placeholderNumber(s); ok && n > highest {
				highest = n
			}
		}
	}
	return highest + 1
}

func placeholderNumber(s string) (int, bool) {
	for _, prefix := range []string{"Player ", "Character "} {
		if rest, ok := strings.CutPrefix(s, prefix); ok {
			n, err := strconv.Atoi(rest)
			return n, err == nil
		}
	}
	return 0, false
}

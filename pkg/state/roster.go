package state

import (
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/storage"
)

// NoSelection is the selected index when no investigator is selected.
const NoSelection = -1

// Hooks are the UI callbacks the roster drives. Either may be nil.
type Hooks struct {
	// OnSelectionChanged fires on every Select call, including re-selecting
	// the same index; the UI re-renders the sheet in response.
	OnSelectionChanged func()

	// OnError reports a load or save failure to the user.
	OnError func(title string, err error)
}

// StatObserver is told about every valid stat commit on the selected investigator.
// It may adjust the investigator further (clamping, status changes).
type StatObserver interface {
	StatCommitted(inv *actor.Investigator, key string, before, after int)
}

// Roster is the ordered investigator list with at most one selected entry.
// It is not safe for concurrent use; the console drives it from its update loop.
type Roster struct {
	investigators []*actor.Investigator
	selected      int
	nextNumber    int

	store    storage.Storage
	hooks    Hooks
	observer StatObserver
	logger   *slog.Logger
}

// NewRoster creates an empty roster persisted through store.
func NewRoster(store storage.Storage, hooks Hooks, logger *slog.Logger) *Roster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Roster{
		selected:   NoSelection,
		nextNumber: 1,
		store:      store,
		hooks:      hooks,
		logger:     logger,
	}
}

// WithObserver sets the observer notified of stat commits.
// Returns the Roster for method chaining
func (r *Roster) WithObserver(o StatObserver) *Roster {
	r.observer = o
	return r
}

// WithHooks replaces the UI callbacks.
// Returns the Roster for method chaining
func (r *Roster) WithHooks(h Hooks) *Roster {
	r.hooks = h
	return r
}

// Add appends a placeholder investigator numbered from a counter that is
// never reused, even after removals. The selection is left unchanged.
func (r *Roster) Add() *actor.Investigator {
	inv := actor.NewPlaceholder(r.nextNumber)
	r.nextNumber++
	r.investigators = append(r.investigators, inv)
	r.logger.Debug("Investigator added", "id", inv.ID, "label", inv.Label())
	return inv
}

// RemoveSelected deletes the selected investigator, clears the selection and
// then selects the first remaining one. Without a valid selection it does nothing.
func (r *Roster) RemoveSelected() {
	if !r.validIndex(r.selected) {
		return
	}
	removed := r.investigators[r.selected]
	r.investigators = slices.Delete(r.investigators, r.selected, r.selected+1)
	r.logger.Debug("Investigator removed", "id", removed.ID, "label", removed.Label())

	r.Select(NoSelection)
	if len(r.investigators) > 0 {
		r.Select(0)
	}
}

// Select changes the selection. Out-of-range indices clear it.
// The selection-changed hook always fires.
func (r *Roster) Select(index int) {
	if r.validIndex(index) {
		r.selected = index
	} else {
		r.selected = NoSelection
	}
	if r.hooks.OnSelectionChanged != nil {
		r.hooks.OnSelectionChanged()
	}
}

// Selected returns the selected investigator, nil when nothing is selected.
func (r *Roster) Selected() *actor.Investigator {
	if !r.validIndex(r.selected) {
		return nil
	}
	return r.investigators[r.selected]
}

// SelectedIndex returns the selected index or NoSelection.
func (r *Roster) SelectedIndex() int {
	if !r.validIndex(r.selected) {
		return NoSelection
	}
	return r.selected
}

// Len returns the number of investigators.
func (r *Roster) Len() int {
	return len(r.investigators)
}

// At returns the investigator at index, nil when out of range.
func (r *Roster) At(index int) *actor.Investigator {
	if !r.validIndex(index) {
		return nil
	}
	return r.investigators[index]
}

// IndexOf returns the position of the investigator with id, or NoSelection.
func (r *Roster) IndexOf(id uuid.UUID) int {
	for i, inv := range r.investigators {
		if inv.ID == id {
			return i
		}
	}
	return NoSelection
}

// Investigators returns the investigators in order. The slice is a copy;
// the records are shared.
func (r *Roster) Investigators() []*actor.Investigator {
	return slices.Clone(r.investigators)
}

func (r *Roster) validIndex(i int) bool {
	return i >= 0 && i < len(r.investigators)
}

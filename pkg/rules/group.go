package rules

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/state"
)

var (
	ErrNoSession        = errors.New("no active session")
	ErrNoInvestigators  = errors.New("no living investigators")
	ErrGroupPaused      = errors.New("group check is paused on a pending insanity check")
	ErrGroupNotPaused   = errors.New("group check is not paused")
	ErrGroupFinished    = errors.New("group check is finished")
	ErrNegativeLoss     = errors.New("sanity loss cannot be negative")
	ErrInsanityUnsolved = errors.New("insanity check still pending")
)

// GroupCheck walks the living investigators through one shared sanity
// check. Each gets a loss in turn; when a loss raises a temporary or
// indefinite insanity check the walk pauses until that check is resolved.
// The investigator being processed is kept selected in the roster.
type GroupCheck struct {
	keeper *Keeper
	roster *state.Roster
	order  []uuid.UUID
	index  int
	paused bool
}

// StartGroupCheck begins a group sanity check over the investigators that
// are alive now, in roster order.
func (k *Keeper) StartGroupCheck(r *state.Roster) (*GroupCheck, error) {
	if !k.active {
		return nil, ErrNoSession
	}
	var order []uuid.UUID
	for _, inv := range r.Investigators() {
		if !inv.Statuses.Dead {
			order = append(order, inv.ID)
		}
	}
	if len(order) == 0 {
		return nil, ErrNoInvestigators
	}

	g := &GroupCheck{keeper: k, roster: r, order: order}
	g.skipMissing()
	g.selectCurrent()
	k.logger.Info("Group sanity check started", "investigators", len(order))
	return g, nil
}

// Current returns the investigator whose loss is expected next, or nil
// once the check is finished.
func (g *GroupCheck) Current() *actor.Investigator {
	if g.Done() {
		return nil
	}
	return g.roster.At(g.roster.IndexOf(g.order[g.index]))
}

// Paused reports whether the check waits on an insanity check.
func (g *GroupCheck) Paused() bool {
	return g.paused
}

// Done reports whether every investigator has been processed.
func (g *GroupCheck) Done() bool {
	return g.index >= len(g.order)
}

// Progress returns the 1-based position of the current investigator and the total.
func (g *GroupCheck) Progress() (int, int) {
	return min(g.index+1, len(g.order)), len(g.order)
}

// ApplyLoss subtracts loss from the current investigator's sanity with the
// usual session consequences, then either pauses or moves to the next one.
func (g *GroupCheck) ApplyLoss(loss int) error {
	g.Refresh()
	switch {
	case g.Done():
		return ErrGroupFinished
	case g.paused:
		return ErrGroupPaused
	case loss < 0:
		return fmt.Errorf("%w: %d", ErrNegativeLoss, loss)
	}

	inv := g.Current()
	if loss > 0 {
		before := inv.Stats.Get(actor.StatSanity)
		after := max(0, before-loss)
		inv.Stats[actor.StatSanity] = after
		if g.keeper.active {
			g.keeper.applySanityLoss(inv, before, after)
		}
	}

	if g.waitingOn(inv) {
		g.paused = true
		g.keeper.alert(SeverityWarning, "Group Check Paused",
			"The group check stops for %s.\nResolve the pending insanity check on their sheet, then resume.", inv.Character)
		return nil
	}
	g.advance()
	return nil
}

// Resume continues after the pausing insanity check has been resolved.
func (g *GroupCheck) Resume() error {
	if !g.paused {
		return ErrGroupNotPaused
	}
	if !g.currentPresent() {
		g.Refresh()
		return nil
	}
	if inv := g.Current(); g.waitingOn(inv) {
		return fmt.Errorf("%w for %s", ErrInsanityUnsolved, inv.Character)
	}
	g.paused = false
	g.keeper.alert(SeverityInfo, "Group Check Resumed", "Resuming the group check.")
	g.advance()
	return nil
}

// Refresh moves past the current investigator when it was removed or killed
// after becoming current. A pause held for that investigator is dropped.
func (g *GroupCheck) Refresh() {
	if g.Done() || g.currentPresent() {
		return
	}
	if g.paused {
		g.paused = false
		g.keeper.logger.Info("Group check pause dropped, investigator gone", "position", g.index+1)
	}
	g.skipMissing()
	g.settle()
}

func (g *GroupCheck) currentPresent() bool {
	inv := g.Current()
	return inv != nil && !inv.Statuses.Dead
}

func (g *GroupCheck) waitingOn(inv *actor.Investigator) bool {
	return inv.PendingChecks.TempInsanityIntCheck || inv.PendingChecks.IndefiniteInsanityConfirmation
}

func (g *GroupCheck) advance() {
	g.index++
	g.skipMissing()
	g.settle()
}

// settle selects the new current investigator or announces completion.
func (g *GroupCheck) settle() {
	if g.Done() {
		g.keeper.logger.Info("Group sanity check completed", "investigators", len(g.order))
		g.keeper.alert(SeverityInfo, "Group Check Complete", "Group sanity check completed.")
		return
	}
	g.selectCurrent()
}

// skipMissing moves past investigators removed or killed since the start.
func (g *GroupCheck) skipMissing() {
	for !g.Done() {
		inv := g.roster.At(g.roster.IndexOf(g.order[g.index]))
		if inv != nil && !inv.Statuses.Dead {
			return
		}
		g.index++
	}
}

func (g *GroupCheck) selectCurrent() {
	if g.Done() {
		return
	}
	g.roster.Select(g.roster.IndexOf(g.order[g.index]))
}

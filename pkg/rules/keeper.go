package rules

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/state"
)

// Severity grades an alert for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityCritical
)

// Alert is a message for the keeper produced by a rule.
type Alert struct {
	Severity Severity
	Title    string
	Message  string
}

// Keeper applies the game consequences of stat changes and status
// confirmations. It implements state.StatObserver and buffers the alerts
// it raises until the caller takes them with TakeAlerts.
type Keeper struct {
	active           bool
	recomputeDerived bool
	roller           Roller
	alerts           []Alert
	logger           *slog.Logger
}

// Ensure Keeper observes roster stat commits
var _ state.StatObserver = (*Keeper)(nil)

// NewKeeper creates a keeper with no active session and a clock-seeded dice roller.
func NewKeeper(logger *slog.Logger) *Keeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Keeper{
		roller: NewDiceRoller(),
		logger: logger,
	}
}

// WithRoller sets the die roller used for bouts of madness and skill checks.
// Returns the Keeper for method chaining
func (k *Keeper) WithRoller(r Roller) *Keeper {
	k.roller = r
	return k
}

// WithRecomputeDerived makes constitution, size and mythos edits refresh
// max health and max sanity.
// Returns the Keeper for method chaining
func (k *Keeper) WithRecomputeDerived(on bool) *Keeper {
	k.recomputeDerived = on
	return k
}

// Roller returns the keeper's die roller.
func (k *Keeper) Roller() Roller {
	return k.roller
}

// SessionActive reports whether a game session is running.
func (k *Keeper) SessionActive() bool {
	return k.active
}

// TakeAlerts returns the buffered alerts and clears the buffer.
func (k *Keeper) TakeAlerts() []Alert {
	alerts := k.alerts
	k.alerts = nil
	return alerts
}

func (k *Keeper) alert(sev Severity, title, format string, args ...any) {
	k.alerts = append(k.alerts, Alert{Severity: sev, Title: title, Message: fmt.Sprintf(format, args...)})
}

// StartSession begins a session and resets every investigator's session
// sanity loss. Returns false when a session is already active.
func (k *Keeper) StartSession(r *state.Roster) bool {
	if k.active {
		return false
	}
	k.active = true
	for _, inv := range r.Investigators() {
		inv.SanityLostThisSession = 0
	}
	k.logger.Info("Session started", "investigators", r.Len())
	k.alert(SeverityInfo, "Session Started", "Session started. The horror begins.")
	return true
}

// EndSession ends the session, resetting session sanity loss and clearing
// every pending check. Returns false when no session is active.
func (k *Keeper) EndSession(r *state.Roster) bool {
	if !k.active {
		return false
	}
	k.active = false
	for _, inv := range r.Investigators() {
		inv.SanityLostThisSession = 0
		inv.PendingChecks = actor.PendingChecks{}
	}
	k.logger.Info("Session ended", "investigators", r.Len())
	k.alert(SeverityInfo, "Session Ended", "Session ended. Pending checks and session sanity loss were reset.")
	return true
}

// StatCommitted clamps health and sanity to [0, max] and, during a session,
// applies damage and sanity loss consequences. Dead investigators get the
// clamp only.
func (k *Keeper) StatCommitted(inv *actor.Investigator, key string, before, after int) {
	if k.recomputeDerived {
		switch key {
		case actor.StatConstitution, actor.StatSize, actor.StatMythos:
			inv.RecomputeDerived()
		}
	}

	switch key {
	case actor.StatHealth:
		after = clamp(after, inv.MaxHealth)
		inv.Stats[key] = after
		if k.active && !inv.Statuses.Dead && after < before {
			k.applyDamage(inv, before, after)
		}
	case actor.StatSanity:
		after = clamp(after, inv.MaxSanity)
		inv.Stats[key] = after
		if k.active && !inv.Statuses.Dead && after < before {
			k.applySanityLoss(inv, before, after)
		}
	}
}

func clamp(v, ceiling int) int {
	return max(0, min(v, ceiling))
}

func (k *Keeper) applyDamage(inv *actor.Investigator, before, after int) {
	loss := before - after
	maxHP := inv.MaxHealth

	if loss >= maxHP {
		kill(inv)
		k.logger.Info("Investigator killed outright", "id", inv.ID, "loss", loss, "max_health", maxHP)
		k.alert(SeverityCritical, "Instant Death",
			"%s lost %d/%d HP in a single blow and is dead.", inv.Character, loss, maxHP)
		return
	}

	if 2*loss >= maxHP && !inv.Statuses.MajorWound {
		inv.Statuses.MajorWound = true
		inv.PendingChecks.MajorWoundConCheck = true
		k.alert(SeverityWarning, "Major Wound",
			"%s suffers a major wound (lost %d/%d HP).\nRoll CON against %d. On a failure they fall unconscious.",
			inv.Character, loss, maxHP, inv.Stats.Get(actor.StatConstitution))
	}

	if after <= 0 && !inv.Statuses.Dying {
		if inv.Statuses.MajorWound {
			markDying(inv)
			k.alert(SeverityCritical, "Dying",
				"%s is dying (0 HP with a major wound).\nRoll CON against %d to avoid death.",
				inv.Character, inv.Stats.Get(actor.StatConstitution))
		} else {
			inv.Statuses.Unconscious = true
			k.alert(SeverityWarning, "Unconscious", "%s is unconscious (0 HP without a major wound).", inv.Character)
		}
	}
}

func (k *Keeper) applySanityLoss(inv *actor.Investigator, before, after int) {
	loss := before - after
	sessionLoss := inv.SanityLostThisSession + loss
	threshold := before / 5
	st := &inv.Statuses

	switch {
	case st.UnderlyingInsanity && !st.TemporaryInsanity && !st.IndefiniteInsanity:
		k.alert(SeverityWarning, "New Bout of Madness",
			"%s lost %d SAN while in underlying insanity.", inv.Character, loss)
		k.triggerBout(inv)
	case sessionLoss >= threshold && !st.IndefiniteInsanity:
		st.TemporaryInsanity = false
		st.UnderlyingInsanity = false
		inv.PendingChecks.IndefiniteInsanityConfirmation = true
		k.alert(SeverityWarning, "Indefinite Insanity",
			"%s has lost %d SAN this session (threshold %d, a fifth of %d).\nConfirm to mark indefinite insanity and roll a bout of madness.",
			inv.Character, sessionLoss, threshold, before)
	case loss >= 5 && !insane(*st):
		inv.PendingChecks.TempInsanityIntCheck = true
		k.alert(SeverityWarning, "Possible Temporary Insanity",
			"%s lost %d SAN in one event.\nRoll INT against %d. On a success they go temporarily insane.",
			inv.Character, loss, inv.Stats.Get(actor.StatIntelligence))
	}

	inv.SanityLostThisSession = sessionLoss
}

// triggerBout rolls a bout of madness whose kind follows the current statuses.
func (k *Keeper) triggerBout(inv *actor.Investigator) {
	if inv.Statuses.Dead {
		return
	}
	kind := InsanityUnderlying
	switch {
	case inv.Statuses.IndefiniteInsanity:
		kind = InsanityIndefinite
	case inv.Statuses.TemporaryInsanity:
		kind = InsanityTemporary
	}
	bout := RollBout(k.roller, kind)
	k.logger.Info("Bout of madness", "id", inv.ID, "roll", bout.Roll, "kind", kind.String())
	k.alert(SeverityCritical, "Bout of Madness", "Bout of madness for %s!\n\n%s", inv.Character, bout)
}

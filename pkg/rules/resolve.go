package rules

import (
	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

// ConfirmStatus sets or clears a status and applies the linked transitions:
//
//   - dead resets every other status except a major wound and clears all checks
//   - dying makes the investigator unconscious and unstabilized, with a CON check
//   - stabilized ends dying and its check
//   - waking up ends dying and stabilized
//   - the three insanity kinds exclude each other; newly setting temporary or
//     indefinite insanity rolls a bout of madness
//   - setting a status settles its pending check
//   - clearing temporary insanity asks for the underlying insanity
//     confirmation and keeps temporary insanity until it is answered
//
// Nothing changes on a dead investigator except the dead flag itself.
// Returns false when the change was refused.
func (k *Keeper) ConfirmStatus(inv *actor.Investigator, status Status, value bool) bool {
	flag := status.flag(&inv.Statuses)
	if flag == nil {
		return false
	}
	if inv.Statuses.Dead && status != StatusDead {
		return false
	}

	prev := inv.Statuses
	*flag = value
	st := &inv.Statuses
	checks := &inv.PendingChecks
	bout := false

	switch {
	case status == StatusDead && value:
		kill(inv)
	case status == StatusDying && value:
		markDying(inv)
	case status == StatusStabilized && value:
		st.Dying = false
		checks.DyingConCheck = false
	case status == StatusUnconscious && !value && !prev.Dead:
		st.Dying = false
		st.Stabilized = false
		checks.DyingConCheck = false
	case status == StatusIndefiniteInsanity && value:
		st.TemporaryInsanity = false
		st.UnderlyingInsanity = false
		bout = !prev.IndefiniteInsanity
	case status == StatusTemporaryInsanity && value:
		st.IndefiniteInsanity = false
		st.UnderlyingInsanity = false
		bout = !prev.TemporaryInsanity
	case status == StatusUnderlyingInsanity && value:
		st.IndefiniteInsanity = false
		st.TemporaryInsanity = false
	}

	if value {
		switch status {
		case StatusMajorWound:
			checks.MajorWoundConCheck = false
		case StatusTemporaryInsanity:
			checks.TempInsanityIntCheck = false
		case StatusIndefiniteInsanity:
			checks.IndefiniteInsanityConfirmation = false
		}
	} else {
		switch status {
		case StatusDying:
			checks.DyingConCheck = false
		case StatusMajorWound:
			checks.MajorWoundConCheck = false
		case StatusIndefiniteInsanity:
			checks.IndefiniteInsanityConfirmation = false
		case StatusTemporaryInsanity:
			checks.UnderlyingInsanityConfirmation = true
			st.TemporaryInsanity = true
			k.alert(SeverityInfo, "Underlying Insanity",
				"Does %s slip into underlying insanity, or recover from the temporary insanity?", inv.Character)
		}
	}

	k.logger.Debug("Status confirmed", "id", inv.ID, "status", string(status), "value", value)
	if bout {
		k.triggerBout(inv)
	}
	return true
}

// ResolveMajorWoundCheck settles the CON roll after a major wound. The
// wound stays either way; a failed roll knocks the investigator out, and
// at 0 HP they are dying.
func (k *Keeper) ResolveMajorWoundCheck(inv *actor.Investigator, passed bool) bool {
	if inv.Statuses.Dead {
		return false
	}
	inv.Statuses.MajorWound = true
	inv.PendingChecks.MajorWoundConCheck = false

	if passed {
		k.alert(SeverityInfo, "CON Passed", "%s passed CON and stays conscious, but has a major wound.", inv.Character)
	} else {
		k.ConfirmStatus(inv, StatusUnconscious, true)
		k.alert(SeverityWarning, "CON Failed", "%s failed CON and falls unconscious with a major wound.", inv.Character)
	}
	if inv.Stats.Get(actor.StatHealth) <= 0 {
		k.ConfirmStatus(inv, StatusDying, true)
		k.alert(SeverityCritical, "Dying",
			"%s is dying (0 HP with a major wound).\nFirst aid can stabilize them. Roll CON against %d to avoid death.",
			inv.Character, inv.Stats.Get(actor.StatConstitution))
	}
	return true
}

// ResolveTempInsanityCheck settles the INT roll after a large sanity loss.
// Passing means the investigator understands what they saw and goes insane.
func (k *Keeper) ResolveTempInsanityCheck(inv *actor.Investigator, passed bool) bool {
	if inv.Statuses.Dead {
		return false
	}
	if passed {
		return k.ConfirmStatus(inv, StatusTemporaryInsanity, true)
	}
	inv.PendingChecks.TempInsanityIntCheck = false
	k.alert(SeverityInfo, "INT Failed", "%s failed INT and represses the horror.", inv.Character)
	return true
}

// ConfirmIndefiniteInsanity marks indefinite insanity after the session
// loss threshold was reached.
func (k *Keeper) ConfirmIndefiniteInsanity(inv *actor.Investigator) bool {
	if inv.Statuses.Dead {
		return false
	}
	return k.ConfirmStatus(inv, StatusIndefiniteInsanity, true)
}

// ResolveDyingCheck settles a CON roll of a dying investigator. Passing
// only buys time: the check stays pending until they are stabilized.
func (k *Keeper) ResolveDyingCheck(inv *actor.Investigator, passed bool) bool {
	if !inv.Statuses.Dying || inv.Statuses.Dead {
		return false
	}
	if passed {
		inv.PendingChecks.DyingConCheck = !inv.Statuses.Stabilized
		k.alert(SeverityWarning, "CON Passed",
			"%s passed CON and survives for now. Still dying; another roll will be needed soon.", inv.Character)
		return true
	}
	k.ConfirmStatus(inv, StatusDead, true)
	k.logger.Info("Investigator died", "id", inv.ID)
	k.alert(SeverityCritical, "Dead", "%s failed CON and has died.", inv.Character)
	return true
}

// Stabilize ends dying and raises health to at least 1.
func (k *Keeper) Stabilize(inv *actor.Investigator) bool {
	if !inv.Statuses.Dying || inv.Statuses.Dead {
		return false
	}
	k.ConfirmStatus(inv, StatusStabilized, true)
	inv.Stats[actor.StatHealth] = max(1, inv.Stats.Get(actor.StatHealth))
	k.alert(SeverityInfo, "Stabilized",
		"%s has been stabilized (at least 1 HP). They need medicine and could destabilize.", inv.Character)
	return true
}

// Destabilize drops a stabilized investigator back to dying at 0 HP.
func (k *Keeper) Destabilize(inv *actor.Investigator) bool {
	if !inv.Statuses.Stabilized || inv.Statuses.Dead {
		return false
	}
	k.ConfirmStatus(inv, StatusStabilized, false)
	k.ConfirmStatus(inv, StatusDying, true)
	inv.Stats[actor.StatHealth] = 0
	k.alert(SeverityCritical, "Destabilized",
		"%s lost stabilization and is dying again.\nRoll CON against %d to avoid death.",
		inv.Character, inv.Stats.Get(actor.StatConstitution))
	return true
}

// ResolveUnderlying answers the underlying insanity confirmation raised when
// temporary insanity ends: activate moves the investigator into underlying
// insanity, otherwise they recover.
func (k *Keeper) ResolveUnderlying(inv *actor.Investigator, activate bool) bool {
	if inv.Statuses.Dead {
		return false
	}
	inv.Statuses.TemporaryInsanity = false
	inv.Statuses.UnderlyingInsanity = activate
	inv.PendingChecks.TempInsanityIntCheck = false
	inv.PendingChecks.UnderlyingInsanityConfirmation = false
	if activate {
		k.alert(SeverityWarning, "Underlying Insanity", "%s enters underlying insanity.", inv.Character)
	} else {
		k.alert(SeverityInfo, "Recovered", "%s recovers from temporary insanity.", inv.Character)
	}
	return true
}

package rules

import (
	"slices"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

// Status names one of the investigator condition flags. The values match
// the JSON keys of actor.Statuses.
type Status string

const (
	StatusMajorWound         Status = "major_wound"
	StatusUnconscious        Status = "unconscious"
	StatusTemporaryInsanity  Status = "temporary_insanity"
	StatusIndefiniteInsanity Status = "indefinite_insanity"
	StatusUnderlyingInsanity Status = "underlying_insanity"
	StatusDying              Status = "dying"
	StatusStabilized         Status = "stabilized"
	StatusDead               Status = "dead"
)

// AllStatuses lists every status in sheet order.
var AllStatuses = []Status{
	StatusMajorWound, StatusUnconscious, StatusTemporaryInsanity, StatusIndefiniteInsanity,
	StatusUnderlyingInsanity, StatusDying, StatusStabilized, StatusDead,
}

var statusLabels = map[Status]string{
	StatusMajorWound:         "Major Wound",
	StatusUnconscious:        "Unconscious",
	StatusTemporaryInsanity:  "Temporary Insanity",
	StatusIndefiniteInsanity: "Indefinite Insanity",
	StatusUnderlyingInsanity: "Underlying Insanity",
	StatusDying:              "Dying",
	StatusStabilized:         "Stabilized",
	StatusDead:               "Dead",
}

// ParseStatus accepts the JSON key of a status.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	return st, slices.Contains(AllStatuses, st)
}

// Label is the human readable name of the status.
func (s Status) Label() string {
	return statusLabels[s]
}

func (s Status) flag(st *actor.Statuses) *bool {
	switch s {
	case StatusMajorWound:
		return &st.MajorWound
	case StatusUnconscious:
		return &st.Unconscious
	case StatusTemporaryInsanity:
		return &st.TemporaryInsanity
	case StatusIndefiniteInsanity:
		return &st.IndefiniteInsanity
	case StatusUnderlyingInsanity:
		return &st.UnderlyingInsanity
	case StatusDying:
		return &st.Dying
	case StatusStabilized:
		return &st.Stabilized
	case StatusDead:
		return &st.Dead
	}
	return nil
}

// Active reports whether the status flag is set on the investigator.
func (s Status) Active(inv *actor.Investigator) bool {
	if f := s.flag(&inv.Statuses); f != nil {
		return *f
	}
	return false
}

// ActiveStatuses returns the set flags of inv in sheet order.
func ActiveStatuses(inv *actor.Investigator) []Status {
	var active []Status
	for _, s := range AllStatuses {
		if s.Active(inv) {
			active = append(active, s)
		}
	}
	return active
}

// Check names one of the pending follow-up checks.
type Check string

const (
	CheckMajorWoundCon          Check = "major_wound_con_check"
	CheckTempInsanityInt        Check = "temp_insanity_int_check"
	CheckIndefiniteConfirmation Check = "indefinite_insanity_confirmation"
	CheckDyingCon               Check = "dying_con_check"
	CheckUnderlyingConfirmation Check = "underlying_insanity_confirmation"
)

// AllChecks lists every pending check in sheet order.
var AllChecks = []Check{
	CheckMajorWoundCon, CheckTempInsanityInt, CheckIndefiniteConfirmation,
	CheckDyingCon, CheckUnderlyingConfirmation,
}

var checkLabels = map[Check]string{
	CheckMajorWoundCon:          "Major wound: roll CON or fall unconscious",
	CheckTempInsanityInt:        "Temporary insanity: roll INT, success means insanity",
	CheckIndefiniteConfirmation: "Indefinite insanity: confirm",
	CheckDyingCon:               "Dying: roll CON or die",
	CheckUnderlyingConfirmation: "Underlying insanity: confirm or recover",
}

// Label is the keeper prompt for the check.
func (c Check) Label() string {
	return checkLabels[c]
}

// Pending reports whether the check is pending on the investigator.
func (c Check) Pending(inv *actor.Investigator) bool {
	p := inv.PendingChecks
	switch c {
	case CheckMajorWoundCon:
		return p.MajorWoundConCheck
	case CheckTempInsanityInt:
		return p.TempInsanityIntCheck
	case CheckIndefiniteConfirmation:
		return p.IndefiniteInsanityConfirmation
	case CheckDyingCon:
		return p.DyingConCheck
	case CheckUnderlyingConfirmation:
		return p.UnderlyingInsanityConfirmation
	}
	return false
}

// PendingChecks returns the pending checks of inv in sheet order.
func PendingChecks(inv *actor.Investigator) []Check {
	var pending []Check
	for _, c := range AllChecks {
		if c.Pending(inv) {
			pending = append(pending, c)
		}
	}
	return pending
}

func insane(st actor.Statuses) bool {
	return st.TemporaryInsanity || st.IndefiniteInsanity || st.UnderlyingInsanity
}

// kill resets the statuses to dead and unconscious, keeping a major wound,
// and clears every pending check.
func kill(inv *actor.Investigator) {
	inv.Statuses = actor.Statuses{
		Dead:        true,
		Unconscious: true,
		MajorWound:  inv.Statuses.MajorWound,
	}
	inv.PendingChecks = actor.PendingChecks{}
}

func markDying(inv *actor.Investigator) {
	inv.Statuses.Dying = true
	inv.Statuses.Unconscious = true
	inv.Statuses.Stabilized = false
	inv.PendingChecks.DyingConCheck = true
}

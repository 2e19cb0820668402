package rules

import (
	"fmt"

	"github.com/jwebster45206/d20"
)

// Roller rolls a die with the given number of sides, returning 1..sides.
type Roller interface {
	Roll(sides int) int
}

// DiceRoller rolls single dice with a d20 roller.
type DiceRoller struct {
	roller *d20.Roller
}

// Ensure DiceRoller implements Roller
var _ Roller = (*DiceRoller)(nil)

// NewDiceRoller creates a DiceRoller seeded from the clock.
func NewDiceRoller() *DiceRoller {
	return &DiceRoller{roller: d20.NewRandomRoller()}
}

// NewSeededDiceRoller creates a DiceRoller that repeats the same rolls for a seed.
func NewSeededDiceRoller(seed int64) *DiceRoller {
	return &DiceRoller{roller: d20.NewRoller(seed)}
}

// Roll rolls 1D(sides). It returns 0 when sides is below 1.
func (d *DiceRoller) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	outcome, err := d.roller.Dice(1, uint(sides)).Roll()
	if err != nil {
		return 0
	}
	return outcome.Value
}

// InsanityKind selects the duration text of a bout of madness.
type InsanityKind int

const (
	InsanityTemporary InsanityKind = iota
	InsanityIndefinite
	InsanityUnderlying
)

func (k InsanityKind) String() string {
	switch k {
	case InsanityTemporary:
		return "Temporary Insanity"
	case InsanityIndefinite:
		return "Indefinite Insanity"
	case InsanityUnderlying:
		return "Underlying Insanity"
	}
	return fmt.Sprintf("InsanityKind(%d)", int(k))
}

// Duration is how long the underlying state lasts for this kind of insanity.
func (k InsanityKind) Duration() string {
	switch k {
	case InsanityTemporary:
		return "1D10 hours"
	case InsanityIndefinite:
		return "months (until cured)"
	default:
		return "until cured (indefinite) or until it ends (temporary)"
	}
}

// BoutsOfMadness is the real-time bout table, indexed by 1D10 - 1.
var BoutsOfMadness = [10]string{
	"Amnesia: forgets recent events (1D10 rounds).",
	"Psychosomatic disability: blindness, deafness or paralysis (1D10 rounds).",
	"Violence: attacks anyone nearby indiscriminately (1D10 rounds).",
	"Paranoia: extreme distrust, everyone is conspiring (1D10 rounds).",
	"Significant person: mistakes someone for a key figure from their background (1D10 rounds).",
	"Faint: falls unconscious (1D10 rounds).",
	"Flee in panic: runs away uncontrollably (1D10 rounds).",
	"Hysteria: uncontrollable laughing, crying or screaming (1D10 rounds).",
	"Phobia: gains a new phobia and reacts to it (1D10 rounds).",
	"Mania: gains a new mania and acts on it (1D10 rounds).",
}

// Bout is one rolled bout of madness.
type Bout struct {
	Roll   int
	Effect string
	Kind   InsanityKind
}

// RollBout rolls 1D10 on the bout table. Rolls outside 1..10 from a
// misbehaving roller are clamped onto the table.
func RollBout(r Roller, kind InsanityKind) Bout {
	roll := min(max(r.Roll(len(BoutsOfMadness)), 1), len(BoutsOfMadness))
	return Bout{
		Roll:   roll,
		Effect: BoutsOfMadness[roll-1],
		Kind:   kind,
	}
}

// String renders the bout for an alert.
func (b Bout) String() string {
	return fmt.Sprintf("Result (1D10 = %d): %s\n\n(%s - underlying state lasts: %s)",
		b.Roll, b.Effect, b.Kind, b.Kind.Duration())
}

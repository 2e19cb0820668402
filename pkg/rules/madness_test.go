package rules

import (
	"strings"
	"testing"
)

func TestRollBout(t *testing.T) {
	tests := []struct {
		roll     int
		wantRoll int
		prefix   string
	}{
		{1, 1, "Amnesia"},
		{3, 3, "Violence"},
		{10, 10, "Mania"},
		{0, 1, "Amnesia"},
		{14, 10, "Mania"},
	}
	for _, tt := range tests {
		bout := RollBout(&fixedRoller{rolls: []int{tt.roll}}, InsanityTemporary)
		if bout.Roll != tt.wantRoll || !strings.HasPrefix(bout.Effect, tt.prefix) {
			t.Errorf("roll %d gave %d %q", tt.roll, bout.Roll, bout.Effect)
		}
	}
}

func TestBoutString(t *testing.T) {
	tests := []struct {
		kind InsanityKind
		want string
	}{
		{InsanityTemporary, "1D10 hours"},
		{InsanityIndefinite, "months (until cured)"},
		{InsanityUnderlying, "until cured"},
	}
	for _, tt := range tests {
		s := RollBout(&fixedRoller{rolls: []int{6}}, tt.kind).String()
		if !strings.Contains(s, "1D10 = 6") || !strings.Contains(s, tt.want) || !strings.Contains(s, tt.kind.String()) {
			t.Errorf("bout text for %v = %q", tt.kind, s)
		}
	}
}

func TestDiceRoller(t *testing.T) {
	r := NewDiceRoller()
	for _, sides := range []int{10, 100} {
		for range 200 {
			if v := r.Roll(sides); v < 1 || v > sides {
				t.Fatalf("Roll(%d) = %d", sides, v)
			}
		}
	}
	if r.Roll(0) != 0 {
		t.Error("Roll(0) should be 0")
	}
}

func TestSeededDiceRollerRepeats(t *testing.T) {
	a := NewSeededDiceRoller(42)
	b := NewSeededDiceRoller(42)
	for i := range 20 {
		if x, y := a.Roll(100), b.Roll(100); x != y {
			t.Fatalf("roll %d differs: %d != %d", i, x, y)
		}
	}
}

func TestRollBoutWithDice(t *testing.T) {
	bout := RollBout(NewSeededDiceRoller(7), InsanityIndefinite)
	if bout.Roll < 1 || bout.Roll > 10 || bout.Effect != BoutsOfMadness[bout.Roll-1] {
		t.Errorf("bout = %+v", bout)
	}
}

package actor

import (
	"testing"

	"github.com/google/uuid"
)

func TestDefaultStats(t *testing.T) {
	stats := DefaultStats()
	if len(stats) != len(StatKeys) {
		t.Fatalf("DefaultStats has %d keys, want %d", len(stats), len(StatKeys))
	}

	want := map[string]int{
		StatStrength: 50, StatLuck: 50, StatHealth: 10, StatSanity: 50, StatMythos: 0,
	}
	for k, v := range want {
		if stats[k] != v {
			t.Errorf("DefaultStats()[%q] = %d, want %d", k, stats[k], v)
		}
	}

	stats[StatStrength] = 1
	if DefaultStats()[StatStrength] != 50 {
		t.Error("DefaultStats should return an independent copy")
	}
}

func TestNewPlaceholder(t *testing.T) {
	inv := NewPlaceholder(3)

	if inv.Name != "Player 3" || inv.Character != "Character 3" {
		t.Errorf("placeholder identity = %q/%q", inv.Name, inv.Character)
	}
	if inv.ID == uuid.Nil {
		t.Error("placeholder should get an id")
	}
	if inv.MaxHealth != 10 || inv.Stats[StatHealth] != 10 {
		t.Errorf("health = %d/%d, want 10/10", inv.Stats[StatHealth], inv.MaxHealth)
	}
	if inv.MaxSanity != 99 || inv.Stats[StatSanity] != 50 {
		t.Errorf("sanity = %d/%d, want 50/99", inv.Stats[StatSanity], inv.MaxSanity)
	}
	if len(inv.Background) != len(BackgroundKeys) {
		t.Errorf("background has %d sections, want %d", len(inv.Background), len(BackgroundKeys))
	}
	if inv.Statuses != (Statuses{}) || inv.PendingChecks.Any() {
		t.Error("new placeholder should carry no flags")
	}
}

func TestStatusesAllowContradictions(t *testing.T) {
	inv := NewPlaceholder(1)
	inv.Statuses.Dead = true
	inv.Statuses.Stabilized = true

	if !inv.Statuses.Dead || !inv.Statuses.Stabilized {
		t.Error("record model should keep independent flags as set")
	}
}

func TestLabel(t *testing.T) {
	inv := NewInvestigator("Ana", "Harvey Walters")
	if got := inv.Label(); got != "Harvey Walters (Ana)" {
		t.Errorf("Label() = %q", got)
	}
}

func TestClone(t *testing.T) {
	inv := NewPlaceholder(1)
	inv.Background[BackgroundTomes] = "Necronomicon"

	c := inv.Clone()
	c.Stats[StatLuck] = 1
	c.Background[BackgroundTomes] = "none"
	c.Skills["Occult"] = 40

	if inv.Stats[StatLuck] != 50 {
		t.Error("Clone shares the stats map")
	}
	if inv.Background[BackgroundTomes] != "Necronomicon" {
		t.Error("Clone shares the background map")
	}
	if len(inv.Skills) != 0 {
		t.Error("Clone shares the skills map")
	}
}

package state

import (
	"testing"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

type observedCommit struct {
	key           string
	before, after int
}

type recordingObserver struct {
	commits []observedCommit
	clampTo int
}

func (o *recordingObserver) StatCommitted(inv *actor.Investigator, key string, before, after int) {
	o.commits = append(o.commits, observedCommit{key, before, after})
	if o.clampTo > 0 && inv.Stats[key] > o.clampTo {
		inv.Stats[key] = o.clampTo
	}
}

func TestCommitStat(t *testing.T) {
	r, _, _ := newTestRoster(t)
	r.Add()
	r.Select(0)

	tests := []struct {
		name   string
		key    string
		input  string
		want   int
		wantOK bool
	}{
		{"add", actor.StatLuck, "+5", 55, true},
		{"subtract", actor.StatLuck, "-10", 45, true},
		{"absolute", actor.StatLuck, "70", 70, true},
		{"invalid keeps value", actor.StatLuck, "lots", 70, false},
		{"divide by zero keeps value", actor.StatLuck, "/0", 70, false},
		{"unknown stat", "charisma", "10", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.CommitStat(tt.key, tt.input)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("CommitStat(%q, %q) = %d, %v, want %d, %v", tt.key, tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	if r.Selected().Stats[actor.StatLuck] != 70 {
		t.Errorf("stored luck = %d, want 70", r.Selected().Stats[actor.StatLuck])
	}
}

func TestCommitStat_DoesNotRecomputeDerived(t *testing.T) {
	r, _, _ := newTestRoster(t)
	r.Add()
	r.Select(0)

	r.CommitStat(actor.StatConstitution, "90")
	r.CommitStat(actor.StatMythos, "20")

	inv := r.Selected()
	if inv.MaxHealth != 10 || inv.MaxSanity != 99 {
		t.Errorf("maxima = %d/%d, want cached 10/99", inv.MaxHealth, inv.MaxSanity)
	}
}

func TestCommitStat_NotifiesObserver(t *testing.T) {
	r, _, _ := newTestRoster(t)
	obs := &recordingObserver{clampTo: 10}
	r.WithObserver(obs)
	r.Add()
	r.Select(0)

	got, ok := r.CommitStat(actor.StatHealth, "+5")
	if !ok || got != 10 {
		t.Errorf("CommitStat() = %d, %v, want observer-clamped 10, true", got, ok)
	}
	r.CommitStat(actor.StatHealth, "nonsense")

	if len(obs.commits) != 1 {
		t.Fatalf("observer saw %d commits, want 1", len(obs.commits))
	}
	if obs.commits[0] != (observedCommit{actor.StatHealth, 10, 15}) {
		t.Errorf("observer saw %+v", obs.commits[0])
	}
}

func TestCommitWithoutSelection(t *testing.T) {
	r, _, _ := newTestRoster(t)
	r.Add()

	if r.CommitName("x") || r.CommitCharacter("x") || r.CommitSkills("x") || r.CommitInventory("x") {
		t.Error("text commits without a selection should be rejected")
	}
	if _, ok := r.CommitStat(actor.StatLuck, "1"); ok {
		t.Error("stat commit without a selection should be rejected")
	}
	if r.At(0).Name != "Player 1" {
		t.Error("unselected record should be untouched")
	}
}

func TestTextCommits(t *testing.T) {
	r, _, _ := newTestRoster(t)
	r.Add()
	r.Select(0)

	r.CommitName("Ana")
	r.CommitCharacter("Harvey Walters")
	r.CommitSkills("Library Use 70")
	r.CommitInventory("lantern")
	if !r.CommitBackground(actor.BackgroundTomes, "Cultes des Goules") {
		t.Error("known background key should be accepted")
	}
	if r.CommitBackground("hobbies", "chess") {
		t.Error("unknown background key should be rejected")
	}

	inv := r.Selected()
	if inv.Name != "Ana" || inv.Character != "Harvey Walters" {
		t.Errorf("identity = %q/%q", inv.Name, inv.Character)
	}
	if inv.SkillsNotes != "Library Use 70" || inv.InventoryNotes != "lantern" {
		t.Errorf("notes = %q/%q", inv.SkillsNotes, inv.InventoryNotes)
	}
	if inv.Background[actor.BackgroundTomes] != "Cultes des Goules" {
		t.Errorf("tomes = %q", inv.Background[actor.BackgroundTomes])
	}
	if _, ok := inv.Background["hobbies"]; ok {
		t.Error("unknown background key should not be stored")
	}
}

func TestSkillCommits(t *testing.T) {
	r, _, _ := newTestRoster(t)
	r.Add()

	if r.CommitSkill("Dodge", 25) || r.RemoveSkill("Dodge") || r.ReplaceSkills(actor.Skills{"Dodge": 25}) {
		t.Error("skill commits without a selection should be rejected")
	}

	r.Select(0)
	inv := r.Selected()

	if !r.CommitSkill("Spot Hidden", 60) || !r.CommitSkill("spot hidden", 65) {
		t.Fatal("valid skills should be accepted")
	}
	if r.CommitSkill("Dodge", 101) || r.CommitSkill("Dodge", -1) || r.CommitSkill("  ", 10) {
		t.Error("out-of-range values and blank names should be rejected")
	}
	if len(inv.Skills) != 1 || inv.Skills["spot hidden"] != 65 {
		t.Errorf("skills = %v", inv.Skills)
	}

	if !r.RemoveSkill("SPOT HIDDEN") || r.RemoveSkill("Spot Hidden") {
		t.Error("RemoveSkill should delete once, ignoring case")
	}

	r.CommitSkills("Spot Hidden: 60")
	parsed := actor.Skills{"Library Use": 70}
	if !r.ReplaceSkills(parsed) {
		t.Fatal("ReplaceSkills rejected")
	}
	parsed["Library Use"] = 1
	if inv.Skills["Library Use"] != 70 {
		t.Error("ReplaceSkills should copy the list")
	}
	if inv.SkillsNotes != "" {
		t.Errorf("notes = %q, want cleared", inv.SkillsNotes)
	}
}

package sheet

import (
	"strings"
	"testing"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

func TestStatLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{actor.StatConstitution, "Constitution"},
		{actor.StatMythos, "Mythos"},
		{"phobias_manias", "Phobias Manias"},
	}
	for _, tt := range tests {
		if got := StatLabel(tt.key); got != tt.want {
			t.Errorf("StatLabel(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestSummary(t *testing.T) {
	inv := actor.NewInvestigator("Ana", "Harvey Walters")
	if got := Summary(inv); got != "Harvey Walters (Ana)" {
		t.Errorf("Summary() = %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	inv := actor.NewPlaceholder(1)
	inv.Character = "Harvey *The Hat* Walters"
	inv.Stats[actor.StatHealth] = 4
	inv.SanityLostThisSession = 6
	inv.Statuses.MajorWound = true
	inv.PendingChecks.MajorWoundConCheck = true
	inv.SkillsNotes = "Library Use 70"
	inv.Background[actor.BackgroundTomes] = "Cultes des Goules"

	md := Markdown(inv)

	wantContains := []string{
		`# Harvey \*The Hat\* Walters`,
		"*Player: Player 1*",
		"| Constitution | 50 |",
		"| Health | 4 / 10 |",
		"| Sanity | 50 / 99 |",
		"Sanity lost this session: 6",
		"- Major Wound",
		"## Pending Checks",
		"Major wound: roll CON",
		"Library Use 70",
		"### Arcane Tomes, Spells & Artifacts",
		"Cultes des Goules",
	}
	for _, want := range wantContains {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q in:\n%s", want, md)
		}
	}

	wantMissing := []string{"**DEAD**", "Personal Description"}
	for _, missing := range wantMissing {
		if strings.Contains(md, missing) {
			t.Errorf("Markdown() should not contain %q", missing)
		}
	}
}

func TestMarkdown_Empty(t *testing.T) {
	inv := actor.NewPlaceholder(2)
	inv.Statuses.Dead = true

	md := Markdown(inv)

	if !strings.Contains(md, "**DEAD**") {
		t.Error("dead investigators should be marked")
	}
	if strings.Contains(md, "## Pending Checks") || strings.Contains(md, "## Background") {
		t.Error("empty sections should be omitted")
	}
	if strings.Count(md, "*None*") != 2 {
		t.Errorf("skills and inventory should read None:\n%s", md)
	}
	if !strings.HasSuffix(md, "\n") || strings.HasSuffix(md, "\n\n") {
		t.Error("sheet should end with exactly one newline")
	}
}

func TestMarkdown_StructuredSkills(t *testing.T) {
	inv := actor.NewPlaceholder(1)
	inv.Skills.Set("Spot Hidden", 60)
	inv.Skills.Set("Dodge", 25)
	inv.SkillsNotes = "Credit Rating varies"

	md := Markdown(inv)

	table := "| Skill | Value |\n|---|---|\n| Dodge | 25 |\n| Spot Hidden | 60 |\n"
	if !strings.Contains(md, table) {
		t.Errorf("Markdown() missing sorted skill table in:\n%s", md)
	}
	if !strings.Contains(md, "Credit Rating varies") {
		t.Error("skills notes should follow the table")
	}
	if strings.Count(md, "## Skills") != 1 {
		t.Error("skills heading should appear once")
	}
}

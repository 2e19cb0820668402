// Package sheet renders an investigator as a markdown character sheet.
package sheet

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
	"github.com/jwebster45206/investigator-tracker/pkg/rules"
)

var titleCaser = cases.Title(language.English)

// markdownEscaper escapes characters that would otherwise format identity text.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"|", `\|`,
)

// StatLabel is the display name of a stat key, e.g. "Constitution".
func StatLabel(key string) string {
	return titleCaser.String(strings.ReplaceAll(key, "_", " "))
}

// Summary is the one-line list label, "Character (Name)".
func Summary(inv *actor.Investigator) string {
	return inv.Label()
}

// Markdown renders the full sheet: identity, stats with derived maxima,
// conditions, pending checks, skills, inventory and the background
// sections that have text.
func Markdown(inv *actor.Investigator) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", escape(inv.Character))
	fmt.Fprintf(&b, "*Player: %s*\n\n", escape(inv.Name))
	if inv.Statuses.Dead {
		b.WriteString("**DEAD**\n\n")
	}

	b.WriteString("## Stats\n\n")
	b.WriteString("| Stat | Value |\n|---|---|\n")
	for _, key := range actor.StatKeys {
		value := inv.Stats.Get(key)
		switch key {
		case actor.StatHealth:
			fmt.Fprintf(&b, "| %s | %d / %d |\n", StatLabel(key), value, inv.MaxHealth)
		case actor.StatSanity:
			fmt.Fprintf(&b, "| %s | %d / %d |\n", StatLabel(key), value, inv.MaxSanity)
		default:
			fmt.Fprintf(&b, "| %s | %d |\n", StatLabel(key), value)
		}
	}
	b.WriteString("\n")
	if inv.SanityLostThisSession > 0 {
		fmt.Fprintf(&b, "Sanity lost this session: %d\n\n", inv.SanityLostThisSession)
	}

	b.WriteString("## Conditions\n\n")
	statuses := rules.ActiveStatuses(inv)
	if len(statuses) == 0 {
		b.WriteString("*None*\n\n")
	} else {
		for _, s := range statuses {
			fmt.Fprintf(&b, "- %s\n", s.Label())
		}
		b.WriteString("\n")
	}

	if checks := rules.PendingChecks(inv); len(checks) > 0 {
		b.WriteString("## Pending Checks\n\n")
		for _, c := range checks {
			fmt.Fprintf(&b, "- %s\n", c.Label())
		}
		b.WriteString("\n")
	}

	skills(&b, inv)
	section(&b, "Inventory", inv.InventoryNotes)

	var background []string
	for _, key := range actor.BackgroundKeys {
		if text := strings.TrimSpace(inv.Background[key]); text != "" {
			background = append(background, fmt.Sprintf("### %s\n\n%s\n", actor.BackgroundLabels[key], text))
		}
	}
	if len(background) > 0 {
		b.WriteString("## Background\n\n")
		b.WriteString(strings.Join(background, "\n"))
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func skills(b *strings.Builder, inv *actor.Investigator) {
	if len(inv.Skills) == 0 {
		section(b, "Skills", inv.SkillsNotes)
		return
	}
	b.WriteString("## Skills\n\n")
	b.WriteString("| Skill | Value |\n|---|---|\n")
	for _, name := range inv.Skills.Names() {
		fmt.Fprintf(b, "| %s | %d |\n", escape(name), inv.Skills[name])
	}
	b.WriteString("\n")
	if notes := strings.TrimSpace(inv.SkillsNotes); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n\n")
	}
}

func section(b *strings.Builder, title, text string) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if text = strings.TrimSpace(text); text == "" {
		b.WriteString("*None*\n\n")
		return
	}
	b.WriteString(text)
	b.WriteString("\n\n")
}

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

package actor

import (
	"slices"
	"strconv"
	"strings"
)

// Skill values are percentages.
const (
	MinSkill = 0
	MaxSkill = 100
)

// Skills maps a skill name, as the player typed it, to its value.
type Skills map[string]int

// ValidSkill reports whether name is non-blank and value lies in MinSkill..MaxSkill.
func ValidSkill(name string, value int) bool {
	return strings.TrimSpace(name) != "" && value >= MinSkill && value <= MaxSkill
}

// Lookup finds a skill ignoring case and surrounding spaces. It returns the
// stored name and value.
func (s Skills) Lookup(name string) (string, int, bool) {
	want := strings.TrimSpace(name)
	for k, v := range s {
		if strings.EqualFold(k, want) {
			return k, v, true
		}
	}
	return "", 0, false
}

// Set stores a skill, replacing any entry whose name differs only in case.
func (s Skills) Set(name string, value int) {
	name = strings.TrimSpace(name)
	s.Delete(name)
	s[name] = value
}

// Delete removes a skill ignoring case and reports whether one was removed.
func (s Skills) Delete(name string) bool {
	k, _, ok := s.Lookup(name)
	if ok {
		delete(s, k)
	}
	return ok
}

// Names returns the skill names in case-insensitive alphabetical order.
func (s Skills) Names() []string {
	names := make([]string, 0, len(s))
	for k := range s {
		names = append(names, k)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return names
}

// ParseSkillLines reads a pasted skill list, one "Name: value" entry per line
// or per semicolon. Blank entries are skipped. The list is accepted only when
// every entry parses and at least one skill is found.
func ParseSkillLines(text string) (Skills, bool) {
	entries := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == ';'
	})

	skills := Skills{}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, valueText, found := strings.Cut(entry, ":")
		if !found || strings.Contains(valueText, ":") {
			return nil, false
		}
		value, err := strconv.Atoi(strings.TrimSpace(valueText))
		if err != nil || !ValidSkill(name, value) {
			return nil, false
		}
		skills.Set(name, value)
	}
	if len(skills) == 0 {
		return nil, false
	}
	return skills, true
}

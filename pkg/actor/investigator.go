package actor

import (
	"fmt"
	"maps"

	"github.com/google/uuid"
)

// Stat keys, in sheet order.
const (
	StatStrength     = "strength"
	StatDexterity    = "dexterity"
	StatIntelligence = "intelligence"
	StatConstitution = "constitution"
	StatPower        = "power"
	StatAppearance   = "appearance"
	StatEducation    = "education"
	StatSize         = "size"
	StatLuck         = "luck"
	StatHealth       = "health"
	StatSanity       = "sanity"
	StatMythos       = "mythos"
)

// StatKeys lists every stat an investigator carries, in sheet order.
var StatKeys = []string{
	StatStrength, StatDexterity, StatIntelligence, StatConstitution, StatPower,
	StatAppearance, StatEducation, StatSize, StatLuck,
	StatHealth, StatSanity, StatMythos,
}

var defaultStats = map[string]int{
	StatStrength:     50,
	StatDexterity:    50,
	StatIntelligence: 50,
	StatConstitution: 50,
	StatPower:        50,
	StatAppearance:   50,
	StatEducation:    50,
	StatSize:         50,
	StatLuck:         50,
	StatHealth:       10,
	StatSanity:       50,
	StatMythos:       0,
}

// Stats maps a stat key to its current value.
type Stats map[string]int

// DefaultStats returns a fresh stat set with every key at its default.
func DefaultStats() Stats {
	s := make(Stats, len(defaultStats))
	maps.Copy(s, defaultStats)
	return s
}

// DefaultStat returns the default value for key and whether key is a known stat.
func DefaultStat(key string) (int, bool) {
	v, ok := defaultStats[key]
	return v, ok
}

// IsStat reports whether key is one of the fixed stat keys.
func IsStat(key string) bool {
	_, ok := defaultStats[key]
	return ok
}

// Get returns the stat value, falling back to the default when the key is absent.
func (s Stats) Get(key string) int {
	if v, ok := s[key]; ok {
		return v
	}
	return defaultStats[key]
}

// Background section keys, in sheet order.
const (
	BackgroundDescription   = "description"
	BackgroundIdeology      = "ideology"
	BackgroundAllies        = "allies"
	BackgroundPlaces        = "places"
	BackgroundPossessions   = "possessions"
	BackgroundTraits        = "traits"
	BackgroundInjuries      = "injuries"
	BackgroundPhobiasManias = "phobias_manias"
	BackgroundTomes         = "tomes"
	BackgroundEncounters    = "encounters"
)

// BackgroundKeys lists the free-text background sections in sheet order.
var BackgroundKeys = []string{
	BackgroundDescription, BackgroundIdeology, BackgroundAllies, BackgroundPlaces,
	BackgroundPossessions, BackgroundTraits, BackgroundInjuries,
	BackgroundPhobiasManias, BackgroundTomes, BackgroundEncounters,
}

// BackgroundLabels are the human readable headings for each background key.
var BackgroundLabels = map[string]string{
	BackgroundDescription:   "Personal Description",
	BackgroundIdeology:      "Ideology/Beliefs",
	BackgroundAllies:        "Significant People",
	BackgroundPlaces:        "Meaningful Locations",
	BackgroundPossessions:   "Treasured Possessions",
	BackgroundTraits:        "Traits",
	BackgroundInjuries:      "Injuries & Scars",
	BackgroundPhobiasManias: "Phobias & Manias",
	BackgroundTomes:         "Arcane Tomes, Spells & Artifacts",
	BackgroundEncounters:    "Encounters with Strange Entities",
}

// Background holds the free-text background sections keyed by BackgroundKeys.
type Background map[string]string

// DefaultBackground returns a background with every section present and empty.
func DefaultBackground() Background {
	b := make(Background, len(BackgroundKeys))
	for _, k := range BackgroundKeys {
		b[k] = ""
	}
	return b
}

// IsBackgroundKey reports whether key names one of the background sections.
func IsBackgroundKey(key string) bool {
	_, ok := BackgroundLabels[key]
	return ok
}

// Statuses are the condition flags of an investigator.
// The flags are independent; contradictory combinations are representable.
type Statuses struct {
	MajorWound         bool `json:"major_wound"`
	Unconscious        bool `json:"unconscious"`
	TemporaryInsanity  bool `json:"temporary_insanity"`
	IndefiniteInsanity bool `json:"indefinite_insanity"`
	UnderlyingInsanity bool `json:"underlying_insanity"`
	Dying              bool `json:"dying"`
	Stabilized         bool `json:"stabilized"`
	Dead               bool `json:"dead"`
}

// PendingChecks flag follow-up rolls or confirmations the keeper still owes.
type PendingChecks struct {
	MajorWoundConCheck             bool `json:"major_wound_con_check"`
	TempInsanityIntCheck           bool `json:"temp_insanity_int_check"`
	IndefiniteInsanityConfirmation bool `json:"indefinite_insanity_confirmation"`
	DyingConCheck                  bool `json:"dying_con_check"`
	UnderlyingInsanityConfirmation bool `json:"underlying_insanity_confirmation"`
}

// Any reports whether at least one check is pending.
func (p PendingChecks) Any() bool {
	return p.MajorWoundConCheck || p.TempInsanityIntCheck || p.IndefiniteInsanityConfirmation ||
		p.DyingConCheck || p.UnderlyingInsanityConfirmation
}

// Investigator is one tracked character sheet.
type Investigator struct {
	ID                    uuid.UUID     `json:"id"`
	Name                  string        `json:"name"`
	Character             string        `json:"character"`
	Stats                 Stats         `json:"stats"`
	Skills                Skills        `json:"skills"`
	SkillsNotes           string        `json:"skills_notes"`
	Background            Background    `json:"background"`
	InventoryNotes        string        `json:"inventory_notes"`
	MaxHealth             int           `json:"max_health"`
	MaxSanity             int           `json:"max_sanity"`
	SanityLostThisSession int           `json:"sanity_lost_this_session"`
	Statuses              Statuses      `json:"statuses"`
	PendingChecks         PendingChecks `json:"pending_checks"`
}

// NewInvestigator returns a record with default stats, empty notes and no flags.
// Derived maxima are left at zero; call ApplyStartingValues to fill them.
func NewInvestigator(name, character string) *Investigator {
	return &Investigator{
		ID:         uuid.New(),
		Name:       name,
		Character:  character,
		Stats:      DefaultStats(),
		Skills:     Skills{},
		Background: DefaultBackground(),
	}
}

// NewPlaceholder returns a record named "Player n" / "Character n" with its
// starting health and sanity derived from the default stats.
func NewPlaceholder(n int) *Investigator {
	inv := NewInvestigator(fmt.Sprintf("Player %d", n), fmt.Sprintf("Character %d", n))
	inv.ApplyStartingValues()
	return inv
}

// Label is the list label for the investigator, "Character (Name)".
func (inv *Investigator) Label() string {
	return fmt.Sprintf("%s (%s)", inv.Character, inv.Name)
}

// Clone returns a deep copy of the investigator.
func (inv *Investigator) Clone() *Investigator {
	if inv == nil {
		return nil
	}
	c := *inv
	c.Stats = maps.Clone(inv.Stats)
	c.Skills = maps.Clone(inv.Skills)
	c.Background = maps.Clone(inv.Background)
	return &c
}

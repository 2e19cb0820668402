package actor

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// UnmarshalJSON decodes a stored record onto a default record, so keys that
// are missing from the document keep their documented defaults:
//
//   - missing or null stats/background fall back to the default set
//   - stat and background keys outside the fixed sets are dropped
//   - missing or null skills become an empty set; invalid entries are dropped
//   - a missing id gets a fresh uuid
//   - missing max_health/max_sanity are derived from the stored stats
func (inv *Investigator) UnmarshalJSON(data []byte) error {
	type investigatorFields Investigator

	base := NewInvestigator("", "")
	base.ID = uuid.Nil
	if err := json.Unmarshal(data, (*investigatorFields)(base)); err != nil {
		return fmt.Errorf("failed to unmarshal investigator: %w", err)
	}

	var present struct {
		MaxHealth *int `json:"max_health"`
		MaxSanity *int `json:"max_sanity"`
	}
	if err := json.Unmarshal(data, &present); err != nil {
		return fmt.Errorf("failed to unmarshal investigator: %w", err)
	}

	base.normalize()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if present.MaxHealth == nil {
		base.MaxHealth = MaxHealth(base.Stats.Get(StatConstitution), base.Stats.Get(StatSize))
	}
	if present.MaxSanity == nil {
		base.MaxSanity = MaxSanity(base.Stats.Get(StatMythos))
	}

	*inv = *base
	return nil
}

// normalize restores the fixed stat and background key sets and keeps only
// valid skills.
func (inv *Investigator) normalize() {
	stats := DefaultStats()
	for k := range stats {
		if v, ok := inv.Stats[k]; ok {
			stats[k] = v
		}
	}
	inv.Stats = stats

	bg := DefaultBackground()
	for k := range bg {
		bg[k] = inv.Background[k]
	}
	inv.Background = bg

	skills := Skills{}
	for name, v := range inv.Skills {
		if ValidSkill(name, v) {
			skills.Set(name, v)
		}
	}
	inv.Skills = skills
}

// EncodeInvestigators writes the ordered records as one compact JSON array.
func EncodeInvestigators(investigators []*Investigator) ([]byte, error) {
	if investigators == nil {
		investigators = []*Investigator{}
	}
	data, err := json.Marshal(investigators)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal investigators: %w", err)
	}
	return data, nil
}

// DecodeInvestigators parses a JSON array of records. Null entries are skipped.
func DecodeInvestigators(data []byte) ([]*Investigator, error) {
	var decoded []*Investigator
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal investigators: %w", err)
	}

	investigators := make([]*Investigator, 0, len(decoded))
	for _, inv := range decoded {
		if inv != nil {
			investigators = append(investigators, inv)
		}
	}
	return investigators, nil
}

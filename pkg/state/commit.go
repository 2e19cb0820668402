package state

import (
	"maps"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

// Field commits apply finished edits to the selected investigator.
// Each returns false when nothing is selected or the edit is rejected.

func (r *Roster) CommitName(name string) bool {
	inv := r.Selected()
	if inv == nil {
		return false
	}
	inv.Name = name
	return true
}

func (r *Roster) CommitCharacter(character string) bool {
	inv := r.Selected()
	if inv == nil {
		return false
	}
	inv.Character = character
	return true
}

func (r *Roster) CommitSkills(text string) bool {
	inv := r.Selected()
	if inv == nil {
		return false
	}
	inv.SkillsNotes = text
	return true
}

// CommitSkill sets one structured skill. Names are matched ignoring case and
// values outside 0..100 are rejected.
func (r *Roster) CommitSkill(name string, value int) bool {
	inv := r.Selected()
	if inv == nil || !actor.ValidSkill(name, value) {
		return false
	}
	if inv.Skills == nil {
		inv.Skills = actor.Skills{}
	}
	inv.Skills.Set(name, value)
	return true
}

// RemoveSkill deletes one structured skill.
func (r *Roster) RemoveSkill(name string) bool {
	inv := r.Selected()
	if inv == nil {
		return false
	}
	return inv.Skills.Delete(name)
}

// ReplaceSkills swaps in a parsed skill list and clears the free-text
// skills notes it came from.
func (r *Roster) ReplaceSkills(skills actor.Skills) bool {
	inv := r.Selected()
	if inv == nil {
		return false
	}
	inv.Skills = maps.Clone(skills)
	if inv.Skills == nil {
		inv.Skills = actor.Skills{}
	}
	inv.SkillsNotes = ""
	r.logger.Debug("Skill list replaced", "id", inv.ID, "count", len(skills))
	return true
}

func (r *Roster) CommitInventory(text string) bool {
	inv := r.Selected()
	if inv == nil {
		return false
	}
	inv.InventoryNotes = text
	return true
}

// CommitBackground sets one background section; unknown keys are rejected.
func (r *Roster) CommitBackground(key, text string) bool {
	inv := r.Selected()
	if inv == nil || !actor.IsBackgroundKey(key) {
		return false
	}
	if inv.Background == nil {
		inv.Background = actor.DefaultBackground()
	}
	inv.Background[key] = text
	return true
}

// CommitStat applies a modifier expression (see actor.ApplyModifier) to a
// stat of the selected investigator and returns the stored value.
// Invalid input is ignored: the stat keeps its last committed value and
// false is returned. Derived maxima are not recomputed here.
func (r *Roster) CommitStat(key, input string) (int, bool) {
	inv := r.Selected()
	if inv == nil || !actor.IsStat(key) {
		return 0, false
	}
	if inv.Stats == nil {
		inv.Stats = actor.DefaultStats()
	}

	before := inv.Stats.Get(key)
	after, ok := actor.ApplyModifier(before, input)
	if !ok {
		r.logger.Debug("Ignoring invalid stat input", "stat", key, "input", input)
		return before, false
	}

	inv.Stats[key] = after
	if r.observer != nil {
		r.observer.StatCommitted(inv, key, before, after)
	}
	return inv.Stats[key], true
}

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

var errInvalidData = errors.New("investigator data is invalid")

func newValidateCmd(o *overrides) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [data.json]",
		Short: "Check an investigator data file",
		Long:  "validate decodes a JSON data file strictly and lists every record problem the tracker would silently repair or drop on load. Without an argument it checks the configured data file.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := ""
			if len(args) == 1 {
				filename = args[0]
			} else {
				cfg, err := loadConfig(cmd, *o)
				if err != nil {
					return err
				}
				filename = cfg.DataFile
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Validating %s...\n", filename)
			v := &DataValidator{}
			if err := v.validateFile(filename); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Data file is valid! (%d investigators)\n", v.records)
			return nil
		},
	}
}

// storedRecord mirrors the saved layout so strict decoding can flag unknown fields.
type storedRecord struct {
	ID                    *string             `json:"id"`
	Name                  string              `json:"name"`
	Character             string              `json:"character"`
	Stats                 map[string]int      `json:"stats"`
	Skills                map[string]int      `json:"skills"`
	SkillsNotes           string              `json:"skills_notes"`
	Background            map[string]string   `json:"background"`
	InventoryNotes        string              `json:"inventory_notes"`
	MaxHealth             *int                `json:"max_health"`
	MaxSanity             *int                `json:"max_sanity"`
	SanityLostThisSession int                 `json:"sanity_lost_this_session"`
	Statuses              actor.Statuses      `json:"statuses"`
	PendingChecks         actor.PendingChecks `json:"pending_checks"`
}

// DataValidator collects the problems found in one data file.
type DataValidator struct {
	errors  []string
	records int
}

func (v *DataValidator) validateFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil
	v.records = 0

	if !json.Valid(data) {
		return fmt.Errorf("%w: file %s contains invalid JSON", errInvalidData, filename)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: file %s is not a list of investigators: %w", errInvalidData, filename, err)
	}

	seen := make(map[string]int)
	for i, msg := range raw {
		if bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			v.addError(i, "", "null entry is skipped on load")
			continue
		}
		v.records++

		var rec storedRecord
		decoder := json.NewDecoder(bytes.NewReader(msg))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&rec); err != nil {
			v.addError(i, "", fmt.Sprintf("failed strict JSON unmarshaling: %v", err))
			continue
		}
		v.validateRecord(i, &rec, seen)
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("%w: validation errors in %s:\n%s", errInvalidData, filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *DataValidator) validateRecord(i int, rec *storedRecord, seen map[string]int) {
	label := rec.Character

	switch {
	case rec.ID == nil:
		v.addError(i, label, "missing id (a new one is generated on load)")
	default:
		if _, err := uuid.Parse(*rec.ID); err != nil {
			v.addError(i, label, fmt.Sprintf("id %q is not a UUID", *rec.ID))
		} else if prev, dup := seen[*rec.ID]; dup {
			v.addError(i, label, fmt.Sprintf("id %s duplicates record %d", *rec.ID, prev+1))
		} else {
			seen[*rec.ID] = i
		}
	}

	for _, key := range sortedKeys(rec.Stats) {
		if !actor.IsStat(key) {
			v.addError(i, label, fmt.Sprintf("unknown stat %q is dropped on load", key))
		}
	}
	for _, key := range sortedKeys(rec.Background) {
		if !actor.IsBackgroundKey(key) {
			v.addError(i, label, fmt.Sprintf("unknown background section %q is dropped on load", key))
		}
	}

	for _, name := range sortedKeys(rec.Skills) {
		value := rec.Skills[name]
		switch {
		case strings.TrimSpace(name) == "":
			v.addError(i, label, "blank skill name is dropped on load")
		case !actor.ValidSkill(name, value):
			v.addError(i, label, fmt.Sprintf("skill %q value %d outside %d..%d is dropped on load",
				name, value, actor.MinSkill, actor.MaxSkill))
		}
	}

	if rec.MaxHealth != nil {
		if hp, ok := rec.Stats[actor.StatHealth]; ok && (hp < 0 || hp > *rec.MaxHealth) {
			v.addError(i, label, fmt.Sprintf("health %d outside 0..%d", hp, *rec.MaxHealth))
		}
	}
	if rec.MaxSanity != nil {
		if san, ok := rec.Stats[actor.StatSanity]; ok && (san < 0 || san > max(0, *rec.MaxSanity)) {
			v.addError(i, label, fmt.Sprintf("sanity %d outside 0..%d", san, *rec.MaxSanity))
		}
	}
	if rec.SanityLostThisSession < 0 {
		v.addError(i, label, "negative sanity_lost_this_session")
	}
	if rec.Statuses.Dead && (rec.Statuses.Dying || rec.PendingChecks.Any()) {
		v.addError(i, label, "dead investigator is still dying or has pending checks")
	}
}

func (v *DataValidator) addError(i int, label, problem string) {
	if label == "" {
		v.errors = append(v.errors, fmt.Sprintf("  record %d: %s", i+1, problem))
		return
	}
	v.errors = append(v.errors, fmt.Sprintf("  record %d (%s): %s", i+1, label, problem))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

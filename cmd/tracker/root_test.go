package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/investigator-tracker/internal/config"
	"github.com/jwebster45206/investigator-tracker/pkg/actor"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("STORAGE_BACKEND", "file")

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(append(args, "--log-file", filepath.Join(t.TempDir(), "tracker.log")))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeDataFixture(t *testing.T, investigators ...*actor.Investigator) string {
	t.Helper()
	data, err := actor.EncodeInvestigators(investigators)
	require.NoError(t, err)
	return writeRawFixture(t, string(data))
}

func writeRawFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "investigator_data.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestValidateHappyPath(t *testing.T) {
	path := writeDataFixture(t, actor.NewPlaceholder(1), actor.NewPlaceholder(2))

	stdout, _, err := executeCLI(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Data file is valid! (2 investigators)")
}

func TestValidateUsesConfiguredDataFile(t *testing.T) {
	path := writeDataFixture(t, actor.NewPlaceholder(1))

	stdout, _, err := executeCLI(t, "validate", "--data-file", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Validating "+path)
}

func TestValidateReportsRecordProblems(t *testing.T) {
	path := writeRawFixture(t, `[
		{"id": "not-a-uuid", "character": "Harvey", "stats": {"charm": 3}},
		{"id": "6f1c2a4e-3a5b-4c8d-9e0f-112233445566", "character": "Ada", "stats": {"health": 12}, "max_health": 10},
		{"id": "6f1c2a4e-3a5b-4c8d-9e0f-112233445566", "character": "Ada Again"},
		{"character": "Nobody", "favourite_colour": "green"},
		{"character": "Ghost", "statuses": {"dead": true, "dying": true}},
		null,
		{"id": "0b7e1d52-8c3f-4a61-b2d9-5e4f6a7b8c9d", "character": "Spot", "skills": {"Spot Hidden": 120, " ": 5, "Dodge": 25}}
	]`)

	_, _, err := executeCLI(t, "validate", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, errInvalidData)

	msg := err.Error()
	assert.Contains(t, msg, `record 1 (Harvey): id "not-a-uuid" is not a UUID`)
	assert.Contains(t, msg, `record 1 (Harvey): unknown stat "charm"`)
	assert.Contains(t, msg, "record 2 (Ada): health 12 outside 0..10")
	assert.Contains(t, msg, "record 3 (Ada Again): id 6f1c2a4e-3a5b-4c8d-9e0f-112233445566 duplicates record 2")
	assert.Contains(t, msg, "record 4: failed strict JSON unmarshaling")
	assert.Contains(t, msg, "record 5 (Ghost): missing id")
	assert.Contains(t, msg, "record 5 (Ghost): dead investigator is still dying")
	assert.Contains(t, msg, "record 6: null entry")
	assert.Contains(t, msg, `record 7 (Spot): skill "Spot Hidden" value 120 outside 0..100`)
	assert.Contains(t, msg, "record 7 (Spot): blank skill name")
	assert.NotContains(t, msg, "Dodge")
}

func TestValidateInvalidJSON(t *testing.T) {
	path := writeRawFixture(t, `{"oops"`)

	_, _, err := executeCLI(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contains invalid JSON")

	path = writeRawFixture(t, `{"name": "not a list"}`)
	_, _, err = executeCLI(t, "validate", path)
	assert.ErrorIs(t, err, errInvalidData)
}

func TestValidateMissingFile(t *testing.T) {
	_, _, err := executeCLI(t, "validate", filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestExportMarkdown(t *testing.T) {
	first := actor.NewPlaceholder(1)
	first.Character = "Harvey Walters"
	path := writeDataFixture(t, first, actor.NewPlaceholder(2))

	stdout, _, err := executeCLI(t, "export", "--data-file", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Harvey Walters")
	assert.Contains(t, stdout, "\n---\n\n# Character 2")

	before, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(before), "Harvey Walters", "export does not rewrite the file")
}

func TestExportJSON(t *testing.T) {
	path := writeDataFixture(t, actor.NewPlaceholder(4))

	stdout, _, err := executeCLI(t, "export", "--json", "--data-file", path)
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Player 4", records[0]["name"])
}

func TestExportEmptyAndMalformed(t *testing.T) {
	stdout, _, err := executeCLI(t, "export", "--data-file", filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "No investigators saved.")

	path := writeRawFixture(t, `[{"id": 12}]`)
	_, _, err = executeCLI(t, "export", "--data-file", path)
	assert.Error(t, err)
}

func TestUnknownBackendFlag(t *testing.T) {
	_, _, err := executeCLI(t, "export", "--backend", "tape")
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

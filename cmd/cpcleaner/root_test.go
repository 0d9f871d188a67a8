package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cperrors "github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
)

const testDoc = `{
  "formatVersion": "4.0",
  "entities": [
    {"typeId": "assets/prefabs/npc/autoturret/autoturret_deployed.prefab", "ownerId": 7, "flags": {"on": true}},
    {"typeId": "assets/prefabs/building/wall/wall.prefab", "ownerId": 7},
    {"typeId": "assets/prefabs/building/door.hinged/door.hinged.wood.prefab", "ownerId": 0, "lock": {"code": "0000"}}
  ]
}`

const testSettings = `{
  "version": 1,
  "filters": [
    {
      "filter-id": "turrets-off",
      "removed-prefabs": [],
      "switchedoff-prefabs": ["assets/prefabs/npc/autoturret/*"],
      "removed-items-from-prefabs": []
    }
  ]
}`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGetInfoJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "base.json")
	require.NoError(t, os.WriteFile(input, []byte(testDoc), 0644))

	out, err := run(t, "get-info", "--input", input, "--json")
	require.NoError(t, err)

	var report struct {
		TotalEntities int `json:"totalEntities"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.TotalEntities)
}

func TestGetInfoMissingInput(t *testing.T) {
	_, err := run(t, "get-info", "--input", filepath.Join(t.TempDir(), "absent.json"))
	assert.True(t, cperrors.IsCode(err, cperrors.ErrInputNotFound))
}

func TestDoCleanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "base.json")
	output := filepath.Join(dir, "cleaned.json")
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(input, []byte(testDoc), 0644))
	require.NoError(t, os.WriteFile(settingsPath, []byte(testSettings), 0644))
	t.Setenv("CPCLEANER_SETTINGS_PATH", settingsPath)

	out, err := run(t, "do-clean", "--input", input, "--output", output, "--lock-code", "4321")
	require.NoError(t, err)
	assert.Contains(t, out, "Processed 1 file(s)")

	cleaned, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.NotContains(t, string(cleaned), `"on"`)
	assert.Contains(t, string(cleaned), `"4321"`)
	assert.NotContains(t, string(cleaned), `"ownerId": 0`)
}

func TestDoCleanDryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "base.json")
	output := filepath.Join(dir, "cleaned.json")
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(input, []byte(testDoc), 0644))
	require.NoError(t, os.WriteFile(settingsPath, []byte(testSettings), 0644))
	t.Setenv("CPCLEANER_SETTINGS_PATH", settingsPath)

	out, err := run(t, "do-clean", "--input", input, "--output", output, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "DRY RUN")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestDoCleanUnknownFilter(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "base.json")
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(input, []byte(testDoc), 0644))
	require.NoError(t, os.WriteFile(settingsPath, []byte(testSettings), 0644))
	t.Setenv("CPCLEANER_SETTINGS_PATH", settingsPath)

	_, err := run(t, "do-clean", "--input", input, "--output", filepath.Join(dir, "out.json"),
		"--filter-id", "nope")
	assert.True(t, cperrors.IsCode(err, cperrors.ErrUsageFilterUnknown))
}

func TestDoCleanBadLockCode(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "base.json")
	settingsPath := filepath.Join(dir, "settings.json")
	require.NoError(t, os.WriteFile(input, []byte(testDoc), 0644))
	require.NoError(t, os.WriteFile(settingsPath, []byte(testSettings), 0644))
	t.Setenv("CPCLEANER_SETTINGS_PATH", settingsPath)

	_, err := run(t, "do-clean", "--input", input, "--output", filepath.Join(dir, "out.json"),
		"--lock-code", "12")
	assert.True(t, cperrors.IsCode(err, cperrors.ErrUsageBadLockCode))
}

func TestInitSettingsRefusesSecondRun(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.json")
	t.Setenv("CPCLEANER_SETTINGS_PATH", settingsPath)

	out, err := run(t, "init-settings")
	require.NoError(t, err)
	assert.Contains(t, out, settingsPath)

	_, err = run(t, "init-settings")
	assert.True(t, cperrors.IsCode(err, cperrors.ErrFileExists))
}

func TestDoSpaceEndToEnd(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "base.json")
	outDir := filepath.Join(dir, "out")
	require.NoError(t, os.WriteFile(input, []byte(testDoc), 0644))
	require.NoError(t, os.Mkdir(outDir, 0755))

	out, err := run(t, "do-space", "--input", input, "--output", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "base-config.json")

	configData, err := os.ReadFile(filepath.Join(outDir, "base-config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(configData), "autoturret")
}

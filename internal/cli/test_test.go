package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenariosDir() string {
	return filepath.Join("..", "harness", "testdata", "scenarios")
}

func TestTestCommand_AllScenariosPass(t *testing.T) {
	out, err := execute(t, NewTestCommand(testOptions("text")), scenariosDir())
	require.NoError(t, err, out)

	assert.Contains(t, out, "✓ convert_touchchat_defaults\n")
	assert.Contains(t, out, "✓ convert_uncatalogued_target\n")
	assert.Contains(t, out, "✓ portable_oversized\n")
	assert.Contains(t, out, "Test Summary: 5 passed, 0 failed, 5 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTestCommand_JSON(t *testing.T) {
	out, err := execute(t, NewTestCommand(testOptions("json")), scenariosDir(), "--filter", "touchchat_*")
	require.NoError(t, err)

	var resp struct {
		Status  string     `json:"status"`
		Data    TestResult `json:"data"`
		TraceID string     `json:"trace_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)
	assert.Equal(t, 1, resp.Data.Total)
	require.Len(t, resp.Data.Scenarios, 1)
	assert.Equal(t, "convert_touchchat_defaults", resp.Data.Scenarios[0].Name)
	assert.True(t, resp.Data.Scenarios[0].Pass)
}

func TestTestCommand_UpdateThenCompare(t *testing.T) {
	goldenDir := filepath.Join(t.TempDir(), "golden")

	out, err := execute(t, NewTestCommand(testOptions("text")),
		scenariosDir(), "--golden-dir", goldenDir, "--update", "--filter", "oversized_*")
	require.NoError(t, err, out)
	assert.Contains(t, out, "✓ portable_oversized (golden updated)")

	written, err := os.ReadFile(filepath.Join(goldenDir, "portable_oversized.golden"))
	require.NoError(t, err)
	committed, err := os.ReadFile(filepath.Join("..", "harness", "testdata", "golden", "portable_oversized.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(committed), string(written))

	out, err = execute(t, NewTestCommand(testOptions("text")),
		scenariosDir(), "--golden-dir", goldenDir, "--filter", "oversized_*")
	require.NoError(t, err, out)
	assert.Contains(t, out, "1 passed, 0 failed")
}

func TestTestCommand_GoldenMismatch(t *testing.T) {
	goldenDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(goldenDir, "convert_touchchat_defaults.golden"), []byte("{}"), 0644))

	out, err := execute(t, NewTestCommand(testOptions("text")),
		scenariosDir(), "--golden-dir", goldenDir, "--filter", "touchchat_*")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ convert_touchchat_defaults")
	assert.Contains(t, out, "plan does not match golden file")
}

func TestTestCommand_FailingAssertion(t *testing.T) {
	dir := t.TempDir()
	scenarios := filepath.Join(dir, "scenarios")
	require.NoError(t, os.MkdirAll(scenarios, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(scenarios, "wrong_grid.yaml"), []byte(`name: wrong_grid
description: "Expects the wrong grid"
convert:
  targetSystem: TouchChat
assertions:
  - type: target_grid
    grid: { rows: 3, columns: 3 }
`), 0644))

	out, err := execute(t, NewTestCommand(testOptions("json")), scenarios)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Scenarios, 1)
	require.Len(t, resp.Data.Scenarios[0].Errors, 1)
	assert.Contains(t, resp.Data.Scenarios[0].Errors[0], "expected grid 3x3, got 6x10")
}

func TestTestCommand_InvalidScenarioFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: broken\n"), 0644))

	out, err := execute(t, NewTestCommand(testOptions("text")), dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTestCommand_NoScenarios(t *testing.T) {
	out, err := execute(t, NewTestCommand(testOptions("text")), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)
}

func TestTestCommand_MissingDir(t *testing.T) {
	_, err := execute(t, NewTestCommand(testOptions("text")), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, strings.Contains(err.Error(), "scenarios directory not found"))
}

func TestFindScenarioFiles_BadPattern(t *testing.T) {
	_, err := findScenarioFiles(scenariosDir(), "[")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

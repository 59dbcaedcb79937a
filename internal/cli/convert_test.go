package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageport/internal/ir"
)

type convertResponse struct {
	Status  string        `json:"status"`
	Data    ConvertResult `json:"data"`
	Error   *CLIError     `json:"error"`
	TraceID string        `json:"trace_id"`
}

func decodeConvert(t *testing.T, out string) convertResponse {
	t.Helper()
	var resp convertResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestConvert_DefaultTargetPageset(t *testing.T) {
	out, err := execute(t, NewConvertCommand(testOptions("json")), "--target-system", "TouchChat")
	require.NoError(t, err)

	resp := decodeConvert(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)
	require.NotNil(t, resp.Data.Plan)

	plan := resp.Data.Plan
	assert.Equal(t, "WordPower 60 Basic", plan.Target.Pageset)
	assert.True(t, plan.Target.Catalogued)
	assert.Equal(t, ir.GridSize{Rows: 6, Columns: 10}, plan.TargetGrid)
	assert.Equal(t,
		[]string{"Alphabet & Spelling", "Core Words", "Quick Phrases & Navigation"},
		ir.PageNames(plan.CustomPages))

	fp, err := ir.PlanFingerprint(plan)
	require.NoError(t, err)
	assert.Equal(t, fp, resp.Data.Fingerprint)
}

func TestConvert_FlagsShapeRequest(t *testing.T) {
	out, err := execute(t, NewConvertCommand(testOptions("json")),
		"--source-system", "Grid for iPad",
		"--source-pageset", "Super Core 50",
		"--target-system", "Proloquo2Go",
		"--no-alphabet",
		"--vocab", "park,pizza",
	)
	require.NoError(t, err)

	plan := decodeConvert(t, out).Data.Plan
	require.NotNil(t, plan)
	require.NotNil(t, plan.Source)
	assert.Equal(t, "Super Core 50", plan.Source.Pageset)
	assert.Equal(t, "Crescendo 64", plan.Target.Pageset)
	assert.Equal(t, []string{"Core Words", "Quick Phrases & Navigation", "Custom Fringe/Topics"},
		ir.PageNames(plan.CustomPages))
	assert.Equal(t, []string{"park", "pizza"}, plan.CustomPages[2].SeededVocabulary)
}

func TestConvert_UncataloguedTargetIsAdvisory(t *testing.T) {
	out, err := execute(t, NewConvertCommand(testOptions("json")), "--target-system", "Unknown Vendor")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	resp := decodeConvert(t, out)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeAdvisory, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "No catalog entries found for Unknown Vendor.")
	assert.Equal(t, testTraceID, resp.TraceID)
}

func TestConvert_UncataloguedTargetWithGrid(t *testing.T) {
	out, err := execute(t, NewConvertCommand(testOptions("json")),
		"--target-system", "New Vendor", "--rows", "5", "--columns", "8")
	require.NoError(t, err)

	plan := decodeConvert(t, out).Data.Plan
	require.NotNil(t, plan)
	assert.False(t, plan.Target.Catalogued)
	assert.Equal(t, ir.GridSize{Rows: 5, Columns: 8}, plan.TargetGrid)
}

func TestConvert_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing target", nil},
		{"zero rows", []string{"--target-system", "TouchChat", "--rows", "0"}},
		{"negative columns", []string{"--target-system", "TouchChat", "--columns", "-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewConvertCommand(testOptions("json")), tt.args...)

			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			resp := decodeConvert(t, out)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeInvalidArgument, resp.Error.Code)
		})
	}
}

func TestConvert_RequestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "convert.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`targetSystem: TouchChat
targetRows: 4
targetColumns: 4
includeQuickPhrases: false
`), 0644))

	out, err := execute(t, NewConvertCommand(testOptions("json")), "--request", path, "--columns", "12")
	require.NoError(t, err)

	plan := decodeConvert(t, out).Data.Plan
	require.NotNil(t, plan)
	assert.Equal(t, ir.GridSize{Rows: 4, Columns: 12}, plan.TargetGrid, "flags override the request file")
	assert.Equal(t, []string{"Alphabet & Spelling", "Core Words"}, ir.PageNames(plan.CustomPages))
}

func TestConvert_RequestFileErrors(t *testing.T) {
	dir := t.TempDir()
	typo := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte("targetSystem: TouchChat\ntargetRow: 4\n"), 0644))

	for _, path := range []string{typo, filepath.Join(dir, "missing.yaml")} {
		out, err := execute(t, NewConvertCommand(testOptions("json")), "--request", path)

		require.Error(t, err)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		resp := decodeConvert(t, out)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeRequestFile, resp.Error.Code)
	}
}

func TestConvert_TextOutput(t *testing.T) {
	out, err := execute(t, NewConvertCommand(testOptions("text")), "--target-system", "TouchChat")
	require.NoError(t, err)

	assert.Contains(t, out, "Target: TouchChat / WordPower 60 Basic (6x10)")
	assert.Contains(t, out, "Target grid: 6x10")
	assert.Contains(t, out, "Conversion steps:\n  1. Start with core + navigation placement")
	assert.Contains(t, out, "  - Core Words (6x10, SymbolStix)")
	assert.Contains(t, out, "Fingerprint: ")
}

func TestConvert_CatalogExtension(t *testing.T) {
	opts := testOptions("json")
	opts.CatalogDirs = []string{filepath.Join("..", "harness", "testdata", "catalogs", "extra")}

	out, err := execute(t, NewConvertCommand(opts), "--target-system", "Snap Core First")
	require.NoError(t, err)

	plan := decodeConvert(t, out).Data.Plan
	require.NotNil(t, plan)
	assert.Equal(t, "Core 36", plan.Target.Pageset)
	assert.Equal(t, ir.GridSize{Rows: 6, Columns: 6}, plan.TargetGrid)
}

func TestConvert_MissingCatalogDir(t *testing.T) {
	opts := testOptions("json")
	opts.CatalogDirs = []string{filepath.Join(t.TempDir(), "nope")}

	out, err := execute(t, NewConvertCommand(opts), "--target-system", "TouchChat")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	resp := decodeConvert(t, out)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
}

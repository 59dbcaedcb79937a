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

type createResponse struct {
	Status  string       `json:"status"`
	Data    CreateResult `json:"data"`
	Error   *CLIError    `json:"error"`
	TraceID string       `json:"trace_id"`
}

func decodeCreate(t *testing.T, out string) createResponse {
	t.Helper()
	var resp createResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestCreate_Defaults(t *testing.T) {
	out, err := execute(t, NewCreateCommand(testOptions("json")),
		"--system", "TouchChat", "--system", "Proloquo2Go")
	require.NoError(t, err)

	resp := decodeCreate(t, out)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, testTraceID, resp.TraceID)

	plan := resp.Data.Plan
	require.NotNil(t, plan)
	assert.Equal(t, "Custom Portable Pageset", plan.Name)
	assert.Equal(t, ir.GridSize{Rows: 6, Columns: 10}, plan.BaseGrid)
	assert.Len(t, plan.PortableNotes, 2)
	require.Len(t, plan.Systems, 2)
	assert.Equal(t, "TouchChat", plan.Systems[0].System)
	assert.Equal(t, "Proloquo2Go", plan.Systems[1].System)

	fp, err := ir.PortableFingerprint(plan)
	require.NoError(t, err)
	assert.Equal(t, fp, resp.Data.Fingerprint)
}

func TestCreate_RequestFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`targetSystems: [TouchChat, Proloquo2Go, touchchat, " "]
pagesetName: Clinic Set
baseRows: 12
baseColumns: 20
symbolSet: SymbolStix
`), 0644))

	out, err := execute(t, NewCreateCommand(testOptions("json")),
		"--request", path, "--access-method", "eye gaze")
	require.NoError(t, err)

	plan := decodeCreate(t, out).Data.Plan
	require.NotNil(t, plan)
	assert.Equal(t, "Clinic Set", plan.Name)
	require.Len(t, plan.Systems, 2, "duplicate and blank systems are dropped")
	assert.Equal(t, ir.GridSize{Rows: 8, Columns: 12}, plan.Systems[0].TargetGrid)
	assert.Equal(t, ir.GridSize{Rows: 8, Columns: 10}, plan.Systems[1].TargetGrid)
	assert.Len(t, plan.PortableNotes, 3)
}

func TestCreate_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no systems", nil},
		{"blank system", []string{"--system", "  "}},
		{"zero rows", []string{"--system", "TouchChat", "--rows", "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, NewCreateCommand(testOptions("json")), tt.args...)

			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			resp := decodeCreate(t, out)
			require.NotNil(t, resp.Error)
			assert.Equal(t, ErrCodeInvalidArgument, resp.Error.Code)
		})
	}
}

func TestCreate_TextOutput(t *testing.T) {
	out, err := execute(t, NewCreateCommand(testOptions("text")),
		"--system", "TouchChat", "--name", "Home Set")
	require.NoError(t, err)

	assert.Contains(t, out, "Portable pageset: Home Set")
	assert.Contains(t, out, "Base grid: 6x10")
	assert.Contains(t, out, "== TouchChat (6x10) ==")
	assert.Contains(t, out, "Creation steps:\n  1. Export the .mwz profile")
	assert.Contains(t, out, "Reference pagesets:\n  - WordPower 60 Basic (6x10)")
}

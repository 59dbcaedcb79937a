package harness

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/planner"
)

func loadTestdata(t *testing.T, file string) *Scenario {
	t.Helper()
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", file))
	require.NoError(t, err)
	return scenario
}

func TestRun_TestdataScenariosPassWithGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		scenario, err := LoadScenario(f)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
		})
	}
}

func TestRun_ExtendedCatalog(t *testing.T) {
	result, err := Run(context.Background(), loadTestdata(t, "extended_catalog.yaml"))
	require.NoError(t, err)
	require.True(t, result.Pass, strings.Join(result.Errors, "\n"))

	require.NotNil(t, result.Conversion)
	assert.Nil(t, result.Portable)
	assert.Equal(t, []string{"Snap Core First: adjusted grid to 2x6 (supports rows 2-10, columns 2-12)."},
		result.Conversion.Compatibility.GridAdjustments)
}

func TestRun_AdvisoryIsAResult(t *testing.T) {
	result, err := Run(context.Background(), loadTestdata(t, "uncatalogued_target.yaml"))
	require.NoError(t, err)
	assert.True(t, result.Pass)
	assert.Nil(t, result.Plan())
	assert.Contains(t, result.Advisory, "Unknown Vendor")
}

func TestRun_FailingAssertionsReported(t *testing.T) {
	scenario := &Scenario{
		Name:        "wrong",
		Description: "every assertion is wrong",
		Convert:     &ir.ConvertRequest{TargetSystem: "TouchChat"},
		Assertions: []Assertion{
			{Type: AssertTargetGrid, Grid: &ir.GridSize{Rows: 1, Columns: 1}},
			{Type: AssertPageOrder, Pages: []string{"Core Words"}},
			{Type: AssertStepsContain, Text: "no such step"},
			{Type: AssertTargetPageset, Text: "Other"},
			{Type: AssertAdjustmentCount, Count: ir.Int(3)},
			{Type: AssertAdvisory, Text: "No catalog entries"},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 6)
	assert.Contains(t, result.Errors[0], "expected grid 1x1, got 6x10")
	assert.Contains(t, result.Errors[2], `no step contains "no such step"`)
	assert.Contains(t, result.Errors[3], `expected target pageset "Other", got "WordPower 60 Basic"`)
	assert.Contains(t, result.Errors[5], "got a plan")
}

func TestRun_AdvisoryFailsPlanAssertions(t *testing.T) {
	scenario := &Scenario{
		Name:        "advisory",
		Description: "plan assertions on an advisory",
		Convert:     &ir.ConvertRequest{TargetSystem: "Nowhere"},
		Assertions:  []Assertion{{Type: AssertTargetGrid, Grid: &ir.GridSize{Rows: 6, Columns: 10}}},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "no plan")
}

func TestRun_PortableSystemSelection(t *testing.T) {
	scenario := &Scenario{
		Name:        "portable",
		Description: "select systems",
		Create: &ir.PortableRequest{
			TargetSystems: []string{"TouchChat", "Unknown Vendor"},
			BaseRows:      ir.Int(12),
		},
		Assertions: []Assertion{
			{Type: AssertTargetGrid, System: "touchchat", Grid: &ir.GridSize{Rows: 8, Columns: 10}},
			{Type: AssertTargetGrid, System: "Unknown Vendor", Grid: &ir.GridSize{Rows: 12, Columns: 10}},
			{Type: AssertAdjustmentCount, System: "Unknown Vendor", Count: ir.Int(0)},
			{Type: AssertAdjustmentCount, Count: ir.Int(1)},
			{Type: AssertTargetGrid, System: "Missing", Grid: &ir.GridSize{Rows: 1, Columns: 1}},
		},
	}

	result, err := Run(context.Background(), scenario)
	require.NoError(t, err)
	require.NotNil(t, result.Portable)
	require.Len(t, result.Errors, 1, strings.Join(result.Errors, "\n"))
	assert.Contains(t, result.Errors[0], `system "Missing" not in plan`)
}

func TestRun_ArgumentErrorIsAnError(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad",
		Description: "bad rows",
		Convert:     &ir.ConvertRequest{TargetSystem: "TouchChat", TargetRows: ir.Int(0)},
		Assertions:  []Assertion{{Type: AssertTargetPageset, Text: "x"}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
	var argErr *planner.ArgumentError
	assert.True(t, errors.As(err, &argErr))
}

func TestRun_BadCatalogDir(t *testing.T) {
	scenario := &Scenario{
		Name:        "bad catalog",
		Description: "missing dir",
		Catalog:     []string{filepath.Join(t.TempDir(), "missing")},
		Convert:     &ir.ConvertRequest{TargetSystem: "TouchChat"},
		Assertions:  []Assertion{{Type: AssertTargetPageset, Text: "x"}},
	}

	_, err := Run(context.Background(), scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load catalog")
}

func TestHarness_RunUsesGivenPlanner(t *testing.T) {
	h := New(planner.New(catalog.MustBuiltin(), nil))
	scenario := loadTestdata(t, "grid_to_proloquo.yaml")

	result, err := h.Run(context.Background(), scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, strings.Join(result.Errors, "\n"))
	require.NoError(t, AssertGolden(t, scenario.Name, result))
}

func TestSnapshot_EmptyResult(t *testing.T) {
	_, err := Snapshot(NewResult())
	require.Error(t, err)
}

package harness

import (
	"context"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/pageport/internal/ir"
)

// advisorySnapshot is the golden form of a scenario that produced an
// advisory instead of a plan.
type advisorySnapshot struct {
	Advisory string `json:"advisory"`
}

// Snapshot renders the result's plan (or advisory) as canonical JSON for
// golden comparison.
func Snapshot(result *Result) ([]byte, error) {
	if plan := result.Plan(); plan != nil {
		return ir.MarshalCanonical(plan)
	}
	if result.Advisory != "" {
		return ir.MarshalCanonical(advisorySnapshot{Advisory: result.Advisory})
	}
	return nil, fmt.Errorf("result has neither plan nor advisory")
}

// RunWithGolden executes a scenario and compares the plan against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the plan doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

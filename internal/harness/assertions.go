package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/pageport/internal/ir"
)

// EvaluateAssertions checks every assertion against the result and
// returns one message per failure. An empty slice means all passed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d (%s): %v", i, a.Type, err))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	if a.Type == AssertAdvisory {
		return assertAdvisory(result, a.Text)
	}
	if result.Advisory != "" {
		return fmt.Errorf("no plan: planner returned advisory %q", result.Advisory)
	}
	if result.Portable != nil {
		return evaluatePortable(result.Portable, a)
	}
	if result.Conversion != nil {
		return evaluateConversion(result.Conversion, a)
	}
	return fmt.Errorf("no plan")
}

func assertAdvisory(result *Result, text string) error {
	if result.Advisory == "" {
		return fmt.Errorf("expected advisory containing %q, got a plan", text)
	}
	if !strings.Contains(result.Advisory, text) {
		return fmt.Errorf("advisory %q does not contain %q", result.Advisory, text)
	}
	return nil
}

func evaluateConversion(plan *ir.ConversionPlan, a Assertion) error {
	switch a.Type {
	case AssertTargetGrid:
		return assertGrid(plan.TargetGrid, *a.Grid)
	case AssertPageOrder:
		return assertPages(plan.CustomPages, a.Pages)
	case AssertStepsContain:
		return assertContains(plan.ConversionSteps, a.Text)
	case AssertTargetPageset:
		if plan.Target.Pageset != a.Text {
			return fmt.Errorf("expected target pageset %q, got %q", a.Text, plan.Target.Pageset)
		}
		return nil
	case AssertAdjustmentCount:
		if got := len(plan.Compatibility.GridAdjustments); got != *a.Count {
			return fmt.Errorf("expected %d grid adjustments, got %d", *a.Count, got)
		}
		return nil
	default:
		return fmt.Errorf("not applicable to convert scenarios")
	}
}

func evaluatePortable(plan *ir.PortablePlan, a Assertion) error {
	if a.Type == AssertPortableNotes {
		if got := len(plan.PortableNotes); got != *a.Count {
			return fmt.Errorf("expected %d portable notes, got %d", *a.Count, got)
		}
		return nil
	}

	systems, err := selectSystems(plan, a.System)
	if err != nil {
		return err
	}

	switch a.Type {
	case AssertTargetGrid:
		for _, sp := range systems {
			if err := assertGrid(sp.TargetGrid, *a.Grid); err != nil {
				return fmt.Errorf("%s: %w", sp.System, err)
			}
		}
		return nil
	case AssertPageOrder:
		for _, sp := range systems {
			if err := assertPages(sp.CustomPages, a.Pages); err != nil {
				return fmt.Errorf("%s: %w", sp.System, err)
			}
		}
		return nil
	case AssertStepsContain:
		var steps []string
		for _, sp := range systems {
			steps = append(steps, sp.CreationSteps...)
		}
		return assertContains(steps, a.Text)
	case AssertAdjustmentCount:
		n := 0
		for _, sp := range systems {
			for _, step := range sp.CreationSteps {
				if strings.Contains(step, ": adjusted grid to ") {
					n++
				}
			}
		}
		if n != *a.Count {
			return fmt.Errorf("expected %d grid adjustments, got %d", *a.Count, n)
		}
		return nil
	default:
		return fmt.Errorf("not applicable to create scenarios")
	}
}

// selectSystems returns the named system plan, or every plan when name
// is empty.
func selectSystems(plan *ir.PortablePlan, name string) ([]ir.SystemPlan, error) {
	if name == "" {
		return plan.Systems, nil
	}
	for _, sp := range plan.Systems {
		if ir.SameName(sp.System, name) {
			return []ir.SystemPlan{sp}, nil
		}
	}
	return nil, fmt.Errorf("system %q not in plan", name)
}

func assertGrid(got, want ir.GridSize) error {
	if got != want {
		return fmt.Errorf("expected grid %s, got %s", want, got)
	}
	return nil
}

func assertPages(pages []ir.GeneratedPage, want []string) error {
	got := ir.PageNames(pages)
	if !slices.Equal(got, want) {
		return fmt.Errorf("expected pages %v, got %v", want, got)
	}
	return nil
}

func assertContains(lines []string, text string) error {
	for _, line := range lines {
		if strings.Contains(line, text) {
			return nil
		}
	}
	return fmt.Errorf("no step contains %q", text)
}

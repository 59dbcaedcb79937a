package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/pageport/internal/alphabet"
	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/planner"
)

// Harness is the test execution engine. It runs scenarios against one
// planner.
type Harness struct {
	planner *planner.Planner
}

// New returns a harness that runs every scenario against p.
func New(p *planner.Planner) *Harness {
	return &Harness{planner: p}
}

// Run executes a test scenario and returns the result.
//
// Each scenario gets a fresh catalog built from the built-in records plus
// the scenario's catalog directories, and a fresh alphabet cache.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	cat, errs := catalog.Load(scenario.Catalog, catalog.LoadModeFailFast)
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to load catalog: %w", errors.Join(errs...))
	}

	resolver, err := alphabet.NewCached(alphabet.NewBuiltin(), alphabet.DefaultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create alphabet resolver: %w", err)
	}

	return New(planner.New(cat, resolver)).Run(ctx, scenario)
}

// Run executes the scenario's request and evaluates its assertions.
// An advisory from the conversion planner is a result, not an error;
// argument errors are returned as errors.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	result := NewResult()

	switch scenario.Kind() {
	case KindCreate:
		plan, err := h.planner.CreatePortable(ctx, *scenario.Create)
		if err != nil {
			return nil, fmt.Errorf("failed to plan portable pageset: %w", err)
		}
		result.Portable = plan
	default:
		plan, err := h.planner.Convert(ctx, *scenario.Convert)
		var advisory *planner.Advisory
		switch {
		case errors.As(err, &advisory):
			result.Advisory = advisory.Message
		case err != nil:
			return nil, fmt.Errorf("failed to plan conversion: %w", err)
		default:
			result.Conversion = plan
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

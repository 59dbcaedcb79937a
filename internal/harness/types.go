package harness

import "github.com/roach88/pageport/internal/ir"

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all assertions match.
	Pass bool `json:"pass"`

	// Conversion is set for convert scenarios that produced a plan.
	Conversion *ir.ConversionPlan `json:"conversion,omitempty"`

	// Portable is set for create scenarios.
	Portable *ir.PortablePlan `json:"portable,omitempty"`

	// Advisory holds the planner advisory message when the request
	// targeted an uncatalogued system without a grid.
	Advisory string `json:"advisory,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Plan returns whichever plan the scenario produced, or nil.
func (r *Result) Plan() any {
	switch {
	case r.Conversion != nil:
		return r.Conversion
	case r.Portable != nil:
		return r.Portable
	default:
		return nil
	}
}

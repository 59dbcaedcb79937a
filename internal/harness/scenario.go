package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/pageport/internal/ir"
)

// Scenario kinds.
const (
	KindConvert = "convert"
	KindCreate  = "create"
)

// Scenario defines a conformance test scenario.
// A scenario runs one planner request against a catalog and asserts on
// the resulting plan.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Catalog lists extra CUE catalog directories appended to the
	// built-in catalog. Paths are relative to the scenario file location.
	Catalog []string `yaml:"catalog,omitempty"`

	// Convert is the request for a convert scenario.
	Convert *ir.ConvertRequest `yaml:"convert,omitempty"`

	// Create is the request for a portable pageset scenario.
	Create *ir.PortableRequest `yaml:"create,omitempty"`

	// Assertions validate the plan.
	Assertions []Assertion `yaml:"assertions"`
}

// Kind reports which planner the scenario drives.
func (s *Scenario) Kind() string {
	if s.Create != nil {
		return KindCreate
	}
	return KindConvert
}

// Assertion validates one aspect of a plan.
type Assertion struct {
	// Type specifies the assertion type:
	// - "target_grid": grid equals Grid (System selects a portable system)
	// - "page_order": page names equal Pages
	// - "steps_contain": some step contains Text
	// - "target_pageset": resolved target pageset equals Text
	// - "adjustment_count": number of grid adjustment notes equals Count
	// - "portable_notes": number of portable notes equals Count
	// - "advisory": the planner returned an advisory containing Text
	Type string `yaml:"type"`

	// System selects one system plan in create scenarios.
	System string `yaml:"system,omitempty"`

	// Grid is the expected grid (target_grid).
	Grid *ir.GridSize `yaml:"grid,omitempty"`

	// Pages is the expected page order (page_order).
	Pages []string `yaml:"pages,omitempty"`

	// Text is a substring or exact value depending on Type.
	Text string `yaml:"text,omitempty"`

	// Count is the expected number of items.
	Count *int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTargetGrid      = "target_grid"
	AssertPageOrder       = "page_order"
	AssertStepsContain    = "steps_contain"
	AssertTargetPageset   = "target_pageset"
	AssertAdjustmentCount = "adjustment_count"
	AssertPortableNotes   = "portable_notes"
	AssertAdvisory        = "advisory"
)

// LoadScenario reads and parses a scenario YAML file. Catalog paths are
// resolved relative to the scenario file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, filepath.Dir(path))
}

// LoadScenarioWithBasePath reads and parses a scenario YAML file,
// resolving catalog paths relative to the provided base path.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	// Resolve catalog paths relative to base path BEFORE validation
	for i, dir := range scenario.Catalog {
		if !filepath.IsAbs(dir) && basePath != "" {
			scenario.Catalog[i] = filepath.Join(basePath, dir)
		}
	}

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return scenario, nil
}

// ParseScenario decodes scenario YAML with strict field checking. Catalog
// paths are left as written and not checked.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Convert == nil && s.Create == nil:
		return fmt.Errorf("one of convert or create is required")
	case s.Convert != nil && s.Create != nil:
		return fmt.Errorf("convert and create are mutually exclusive")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for _, dir := range s.Catalog {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("catalog directory not found: %s", dir)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Kind()); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, kind string) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTargetGrid:
		if a.Grid == nil {
			return fmt.Errorf("assertions[%d]: grid is required for target_grid", index)
		}
	case AssertPageOrder:
		if a.Pages == nil {
			return fmt.Errorf("assertions[%d]: pages list is required for page_order", index)
		}
	case AssertStepsContain, AssertTargetPageset, AssertAdvisory:
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for %s", index, a.Type)
		}
	case AssertAdjustmentCount, AssertPortableNotes:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for %s", index, a.Type)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	switch a.Type {
	case AssertTargetPageset, AssertAdvisory:
		if kind != KindConvert {
			return fmt.Errorf("assertions[%d]: %s applies to convert scenarios only", index, a.Type)
		}
	case AssertPortableNotes:
		if kind != KindCreate {
			return fmt.Errorf("assertions[%d]: %s applies to create scenarios only", index, a.Type)
		}
	}
	if a.System != "" && kind != KindCreate {
		return fmt.Errorf("assertions[%d]: system applies to create scenarios only", index)
	}

	return nil
}

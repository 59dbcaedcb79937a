// Package harness provides conformance testing for pageset plans.
//
// A scenario names one planner request and the properties its plan must
// have. Scenarios run against the built-in catalog, optionally extended
// with catalog directories, and can be compared against golden plans.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	catalog:
//	  - ../catalogs/extra
//	convert:
//	  sourceSystem: Grid for iPad
//	  targetSystem: Proloquo2Go
//	assertions:
//	  - type: target_grid
//	    grid: { rows: 8, columns: 8 }
//	  - type: steps_contain
//	    text: "Export vocabulary"
//
// A create scenario carries a create: block (a portable pageset request)
// instead of convert:. Exactly one of the two is required.
//
// # Assertion Types
//
//   - target_grid: the plan grid (or every selected system grid) equals grid
//   - page_order: generated page names equal pages
//   - steps_contain: some conversion or creation step contains text
//   - target_pageset: the resolved target pageset equals text
//   - adjustment_count: the number of grid adjustment notes equals count
//   - portable_notes: the number of cross-system notes equals count
//   - advisory: the planner declined with an advisory containing text
//
// Create-scenario assertions may name a system to check one system plan.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/grid_to_proloquo.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(ctx, scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness

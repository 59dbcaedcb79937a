// Package compat fits requested grids to what a vendor system can display.
//
// Unknown systems are treated as fully flexible: the desired grid passes
// through unchanged and no notes are produced.
package compat

import (
	"fmt"

	"github.com/roach88/pageport/internal/ir"
)

// ProfileSource looks up system profiles. *catalog.Catalog satisfies it.
type ProfileSource interface {
	FindSystemProfile(system string) (ir.SystemProfile, bool)
}

// Result is a clamped grid plus any adjustment notes.
type Result struct {
	Grid  ir.GridSize
	Notes []string
}

// Adjusted reports whether clamping changed the grid.
func (r Result) Adjusted() bool {
	return len(r.Notes) > 0
}

// ClampGridToSystem clamps each axis of desired into the system's range.
// At most one note is emitted, and only when an axis changed. Clamping is
// idempotent: a clamped grid clamps to itself with no notes.
func ClampGridToSystem(src ProfileSource, desired ir.GridSize, system string) Result {
	profile, ok := src.FindSystemProfile(system)
	if !ok {
		return Result{Grid: desired, Notes: []string{}}
	}
	return Clamp(desired, profile)
}

// Clamp is ClampGridToSystem against a profile already in hand.
func Clamp(desired ir.GridSize, profile ir.SystemProfile) Result {
	r := profile.GridRange
	clamped := ir.GridSize{
		Rows:    clampInt(desired.Rows, r.MinRows, r.MaxRows),
		Columns: clampInt(desired.Columns, r.MinColumns, r.MaxColumns),
	}

	notes := []string{}
	if clamped != desired {
		notes = append(notes, fmt.Sprintf("%s: adjusted grid to %s (supports rows %d-%d, columns %d-%d).",
			profile.System, clamped, r.MinRows, r.MaxRows, r.MinColumns, r.MaxColumns))
	}
	return Result{Grid: clamped, Notes: notes}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

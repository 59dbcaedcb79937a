// Package planner turns conversion and portable-pageset requests into
// plans.
//
// Planning never fails on unknown systems or pagesets; it degrades to
// defaults and echoes the raw request. The only failures are argument
// errors caught at the boundary and the uncatalogued-target advisory.
package planner

import (
	"github.com/roach88/pageport/internal/alphabet"
	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/pages"
)

// Catalog is the read-only lookup the planner needs.
// *catalog.Catalog satisfies it.
type Catalog interface {
	FindBySystem(system string) []ir.PagesetEntry
	FindOne(system, pageset string) (ir.PagesetEntry, bool)
	FindSystemProfile(system string) (ir.SystemProfile, bool)
	Preview(systems ...string) []ir.CatalogPreview
}

// Planner builds plans against one catalog. It holds no mutable state and
// is safe for concurrent use.
type Planner struct {
	catalog Catalog
	pages   *pages.Synthesizer
}

// New returns a Planner. alphabets may be nil to disable alphabet
// previews.
func New(cat Catalog, alphabets alphabet.Resolver) *Planner {
	return &Planner{
		catalog: cat,
		pages:   pages.New(alphabets),
	}
}

// symbolPreference picks the page symbol label: the requested set, else
// the first library of the reference entry, else empty for page defaults.
func symbolPreference(requested string, ref *ir.PagesetEntry) string {
	if requested != "" {
		return requested
	}
	if ref != nil && len(ref.SymbolLibraries) > 0 {
		return ref.SymbolLibraries[0]
	}
	return ""
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

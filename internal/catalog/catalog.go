package catalog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/pageport/internal/compiler"
	"github.com/roach88/pageport/internal/ir"
)

// Catalog is an immutable index over pageset, system and processor
// reference records. It is built once and safe for concurrent reads.
//
// Record order is significant: the first pageset listed for a system is
// that system's default target pageset.
type Catalog struct {
	entries    []ir.PagesetEntry
	bySystem   map[string][]int
	profiles   []ir.SystemProfile
	byProfile  map[string]int
	processors []ir.Processor
}

// New validates the records and builds the index. Validation failures are
// returned joined; the catalog is not built when any record is invalid.
func New(pagesets []ir.PagesetEntry, systems []ir.SystemProfile, processors []ir.Processor) (*Catalog, error) {
	compiled := &compiler.Catalog{Pagesets: pagesets, Systems: systems, Processors: processors}
	if verrs := compiler.Validate(compiled); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, e := range verrs {
			errs[i] = e
		}
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	c := &Catalog{
		bySystem:  make(map[string][]int),
		byProfile: make(map[string]int),
	}
	for _, e := range pagesets {
		c.bySystem[ir.FoldKey(e.System)] = append(c.bySystem[ir.FoldKey(e.System)], len(c.entries))
		c.entries = append(c.entries, clonePageset(e))
	}
	for _, p := range systems {
		c.byProfile[ir.FoldKey(p.System)] = len(c.profiles)
		c.profiles = append(c.profiles, cloneSystem(p))
	}
	for _, p := range processors {
		c.processors = append(c.processors, cloneProcessor(p))
	}
	return c, nil
}

// FindBySystem returns every pageset whose system matches, in catalog
// order. Returns an empty list for unknown systems.
func (c *Catalog) FindBySystem(system string) []ir.PagesetEntry {
	idx := c.bySystem[ir.FoldKey(system)]
	out := make([]ir.PagesetEntry, 0, len(idx))
	for _, i := range idx {
		out = append(out, clonePageset(c.entries[i]))
	}
	return out
}

// FindOne returns the first pageset matching the given system and/or
// pageset name. Empty strings mean "not supplied". When both are empty
// the result is absent rather than the first entry, so callers can tell
// "no source given" from a real match.
func (c *Catalog) FindOne(system, pageset string) (ir.PagesetEntry, bool) {
	sysKey, psKey := ir.FoldKey(system), ir.FoldKey(pageset)
	if sysKey == "" && psKey == "" {
		return ir.PagesetEntry{}, false
	}

	for _, e := range c.entries {
		if sysKey != "" && ir.FoldKey(e.System) != sysKey {
			continue
		}
		if psKey != "" && ir.FoldKey(e.Pageset) != psKey {
			continue
		}
		return clonePageset(e), true
	}
	return ir.PagesetEntry{}, false
}

// FindSystemProfile returns the profile for a system. Empty input yields
// no profile.
func (c *Catalog) FindSystemProfile(system string) (ir.SystemProfile, bool) {
	key := ir.FoldKey(system)
	if key == "" {
		return ir.SystemProfile{}, false
	}
	i, ok := c.byProfile[key]
	if !ok {
		return ir.SystemProfile{}, false
	}
	return cloneSystem(c.profiles[i]), true
}

// Preview lists the catalog entries of any of the given systems, reduced
// for display, in catalog order. Empty system names are ignored.
func (c *Catalog) Preview(systems ...string) []ir.CatalogPreview {
	keys := make(map[string]bool, len(systems))
	for _, s := range systems {
		if k := ir.FoldKey(s); k != "" {
			keys[k] = true
		}
	}

	out := []ir.CatalogPreview{}
	for _, e := range c.entries {
		if keys[ir.FoldKey(e.System)] {
			out = append(out, PreviewOf(e))
		}
	}
	return out
}

// PreviewOf reduces an entry to its display fields.
func PreviewOf(e ir.PagesetEntry) ir.CatalogPreview {
	return ir.CatalogPreview{
		System:          e.System,
		Pageset:         e.Pageset,
		DefaultGrid:     e.DefaultGrid,
		SymbolLibraries: slices.Clone(e.SymbolLibraries),
		TypicalUseCases: slices.Clone(e.TypicalUseCases),
	}
}

// Entries returns all pagesets in catalog order.
func (c *Catalog) Entries() []ir.PagesetEntry {
	out := make([]ir.PagesetEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = clonePageset(e)
	}
	return out
}

// Systems returns all system profiles in catalog order.
func (c *Catalog) Systems() []ir.SystemProfile {
	out := make([]ir.SystemProfile, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = cloneSystem(p)
	}
	return out
}

// Processors returns all processors in catalog order.
func (c *Catalog) Processors() []ir.Processor {
	out := make([]ir.Processor, len(c.processors))
	for i, p := range c.processors {
		out[i] = cloneProcessor(p)
	}
	return out
}

// Snapshot returns a copy of every record.
func (c *Catalog) Snapshot() ir.CatalogSnapshot {
	return ir.CatalogSnapshot{
		Pagesets:   c.Entries(),
		Systems:    c.Systems(),
		Processors: c.Processors(),
	}
}

// Fingerprint identifies the catalog contents.
func (c *Catalog) Fingerprint() (string, error) {
	return ir.Fingerprint(ir.DomainCatalog, c.Snapshot())
}

// Merge returns a new catalog with the records of others appended after
// c's, in order. Identity rules apply across the merged result.
func (c *Catalog) Merge(others ...*Catalog) (*Catalog, error) {
	snap := c.Snapshot()
	for _, o := range others {
		more := o.Snapshot()
		snap.Pagesets = append(snap.Pagesets, more.Pagesets...)
		snap.Systems = append(snap.Systems, more.Systems...)
		snap.Processors = append(snap.Processors, more.Processors...)
	}
	return New(snap.Pagesets, snap.Systems, snap.Processors)
}

func clonePageset(e ir.PagesetEntry) ir.PagesetEntry {
	e.SymbolLibraries = slices.Clone(e.SymbolLibraries)
	e.TypicalUseCases = slices.Clone(e.TypicalUseCases)
	e.ConversionNotes = slices.Clone(e.ConversionNotes)
	e.AccessNotes = slices.Clone(e.AccessNotes)
	return e
}

func cloneSystem(p ir.SystemProfile) ir.SystemProfile {
	p.SupportedSymbols = slices.Clone(p.SupportedSymbols)
	p.ImportFormats = slices.Clone(p.ImportFormats)
	p.ExportFormats = slices.Clone(p.ExportFormats)
	p.NotableFeatures = slices.Clone(p.NotableFeatures)
	p.ConversionTips = slices.Clone(p.ConversionTips)
	return p
}

func cloneProcessor(p ir.Processor) ir.Processor {
	p.SupportedTasks = slices.Clone(p.SupportedTasks)
	p.FileInputs = slices.Clone(p.FileInputs)
	return p
}

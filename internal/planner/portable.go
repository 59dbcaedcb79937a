package planner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/pageport/internal/compat"
	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/pages"
)

// CreatePortable fans one base grid out across several target systems.
// Each system is clamped on its own; there is never a merged grid.
func (p *Planner) CreatePortable(ctx context.Context, req ir.PortableRequest) (*ir.PortablePlan, error) {
	if err := ValidatePortable(req); err != nil {
		return nil, err
	}

	base := ir.DefaultGrid
	if req.BaseRows != nil {
		base.Rows = *req.BaseRows
	}
	if req.BaseColumns != nil {
		base.Columns = *req.BaseColumns
	}

	name := req.PagesetName
	if strings.TrimSpace(name) == "" {
		name = ir.DefaultPortableName
	}

	systems := uniqueSystems(req.TargetSystems)
	plan := &ir.PortablePlan{
		Name:          name,
		BaseGrid:      base,
		PortableNotes: portableNotes(len(systems), req.SymbolSet),
		Systems:       make([]ir.SystemPlan, 0, len(systems)),
	}
	for _, system := range systems {
		plan.Systems = append(plan.Systems, p.systemPlan(ctx, system, base, req))
	}

	slog.Debug("portable pageset planned",
		"name", plan.Name,
		"systems", len(plan.Systems),
		"base_grid", base.String(),
	)
	return plan, nil
}

func (p *Planner) systemPlan(ctx context.Context, system string, base ir.GridSize, req ir.PortableRequest) ir.SystemPlan {
	profile, hasProfile := p.catalog.FindSystemProfile(system)
	fit := compat.ClampGridToSystem(p.catalog, base, system)

	sp := ir.SystemPlan{
		System:            system,
		TargetGrid:        fit.Grid,
		SymbolSupport:     []string{},
		ImportFormats:     []string{},
		ExportFormats:     []string{},
		NotableFeatures:   []string{},
		CreationSteps:     []string{},
		ReferencePagesets: []ir.CatalogPreview{},
	}

	if hasProfile {
		sp.SymbolSupport = orEmpty(profile.SupportedSymbols)
		sp.ImportFormats = orEmpty(profile.ImportFormats)
		sp.ExportFormats = orEmpty(profile.ExportFormats)
		sp.NotableFeatures = orEmpty(profile.NotableFeatures)

		sp.CreationSteps = append(sp.CreationSteps, profile.ConversionTips...)
		sp.CreationSteps = append(sp.CreationSteps,
			fmt.Sprintf("%s: use supported symbol libraries (%s) or fall back to text labels for unsupported graphics.",
				profile.System, strings.Join(profile.SupportedSymbols, ", ")),
			fmt.Sprintf("%s: recommended import formats %s - export backups before editing to preserve motor plans.",
				profile.System, strings.Join(profile.ImportFormats, ", ")),
		)
	}
	if req.AccessMethod != "" {
		sp.CreationSteps = append(sp.CreationSteps, fmt.Sprintf(
			"Adjust spacing for %s: increase cell padding for eye gaze, ensure generous hit targets for touch, "+
				"or keep consistent dwell timing for switch scanning.", req.AccessMethod))
	}
	sp.CreationSteps = append(sp.CreationSteps, fit.Notes...)

	refs := p.catalog.FindBySystem(system)
	for _, e := range refs {
		sp.ReferencePagesets = append(sp.ReferencePagesets, ir.CatalogPreview{
			Pageset:         e.Pageset,
			DefaultGrid:     e.DefaultGrid,
			SymbolLibraries: e.SymbolLibraries,
			TypicalUseCases: e.TypicalUseCases,
		})
	}

	var ref *ir.PagesetEntry
	if len(refs) > 0 {
		ref = &refs[0]
	}
	sp.CustomPages = p.pages.Build(ctx, pages.Options{
		TargetGrid:          fit.Grid,
		SymbolSet:           symbolPreference(req.SymbolSet, ref),
		IncludeAlphabet:     req.IncludeAlphabet,
		IncludeQuickPhrases: req.IncludeQuickPhrases,
		CustomVocabulary:    req.Vocabulary,
		AlphabetLanguage:    req.AlphabetLanguage,
		AlphabetScript:      req.AlphabetScript,
	})
	return sp
}

func portableNotes(systems int, symbolSet string) []string {
	notes := []string{}
	if systems < 2 {
		return notes
	}
	notes = append(notes,
		"Align navigation anchors (home/back/search) to the same corners across systems to minimize relearning.",
		"Keep core word positions stable and adjust only fringe folders when grid sizes differ between systems.",
	)
	if symbolSet != "" {
		notes = append(notes, fmt.Sprintf(
			"Verify symbol licensing across systems for %s; fallback to text labels if a system lacks that library.", symbolSet))
	}
	return notes
}

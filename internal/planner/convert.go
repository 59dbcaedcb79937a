package planner

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/roach88/pageport/internal/compat"
	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/pages"
)

// Convert plans a single source to single target migration.
//
// It returns an *ArgumentError for malformed requests and an *Advisory
// when the target system is uncatalogued and no grid was requested.
// Unknown source or target names otherwise degrade to a best-effort plan.
func (p *Planner) Convert(ctx context.Context, req ir.ConvertRequest) (*ir.ConversionPlan, error) {
	if err := ValidateConvert(req); err != nil {
		return nil, err
	}

	var source *ir.PagesetEntry
	if e, ok := p.catalog.FindOne(req.SourceSystem, req.SourcePageset); ok {
		source = &e
	}

	candidates := p.catalog.FindBySystem(req.TargetSystem)
	if len(candidates) == 0 && !req.HasGridOverride() {
		return nil, uncatalogued(req.TargetSystem)
	}
	target := selectTarget(candidates, req.TargetPageset, req.SourcePageset)

	base := ir.DefaultGrid
	switch {
	case target != nil:
		base = target.DefaultGrid
	case source != nil:
		base = source.DefaultGrid
	}
	desired := base
	if req.TargetRows != nil {
		desired.Rows = *req.TargetRows
	}
	if req.TargetColumns != nil {
		desired.Columns = *req.TargetColumns
	}

	profile, hasProfile := p.catalog.FindSystemProfile(req.TargetSystem)
	fit := compat.ClampGridToSystem(p.catalog, desired, req.TargetSystem)
	if fit.Adjusted() {
		slog.Debug("target grid clamped",
			"system", req.TargetSystem,
			"desired", desired.String(),
			"grid", fit.Grid.String(),
		)
	}

	var prof *ir.SystemProfile
	if hasProfile {
		prof = &profile
	}

	plan := &ir.ConversionPlan{
		Source:          sourceRef(source, req),
		Target:          targetRef(target, req, fit.Grid),
		TargetGrid:      fit.Grid,
		ConversionSteps: conversionSteps(req, source, target, prof),
		CustomPages: p.pages.Build(ctx, pages.Options{
			TargetGrid:          fit.Grid,
			SymbolSet:           symbolPreference(req.SymbolSet, target),
			IncludeAlphabet:     req.IncludeAlphabet,
			IncludeQuickPhrases: req.IncludeQuickPhrases,
			CustomVocabulary:    req.CustomVocabulary,
			AlphabetLanguage:    req.AlphabetLanguage,
			AlphabetScript:      req.AlphabetScript,
		}),
		Compatibility:  compatibility(prof, req.SymbolSet, fit.Notes),
		CatalogPreview: p.catalog.Preview(req.TargetSystem, req.SourceSystem),
	}

	slog.Debug("conversion planned",
		"target_system", req.TargetSystem,
		"target_pageset", plan.Target.Pageset,
		"source_resolved", source != nil,
		"grid", plan.TargetGrid.String(),
		"pages", len(plan.CustomPages),
	)
	return plan, nil
}

// selectTarget picks among the target system's entries: the requested
// target pageset, else one named like the source pageset, else the first.
func selectTarget(candidates []ir.PagesetEntry, targetPageset, sourcePageset string) *ir.PagesetEntry {
	if len(candidates) == 0 {
		return nil
	}
	for _, name := range []string{targetPageset, sourcePageset} {
		if strings.TrimSpace(name) == "" {
			continue
		}
		for i := range candidates {
			if ir.SameName(candidates[i].Pageset, name) {
				return &candidates[i]
			}
		}
	}
	return &candidates[0]
}

func conversionSteps(req ir.ConvertRequest, source, target *ir.PagesetEntry, profile *ir.SystemProfile) []string {
	steps := []string{}

	switch {
	case source != nil:
		steps = append(steps,
			fmt.Sprintf("Export vocabulary from %s (%s) using CSV/TXT if available to preserve categories and stored phrases.",
				source.Pageset, source.System),
			fmt.Sprintf("Replicate navigation anchors from %s (e.g., home/back positions) before resizing grids in %s.",
				source.Pageset, req.TargetSystem),
		)
		steps = append(steps, prefixed(source.Pageset+": ", source.ConversionNotes)...)
	case strings.TrimSpace(req.SourceSystem) != "":
		steps = append(steps,
			fmt.Sprintf("Map high-frequency core from %s into the target grid first to preserve motor plans.", req.SourceSystem))
	default:
		steps = append(steps, "Start with core + navigation placement, then layer fringe/topics and morphology popups.")
	}

	if target != nil {
		steps = append(steps, prefixed(target.Pageset+": ", target.ConversionNotes)...)
		if target.LayoutStyle != "" {
			steps = append(steps, fmt.Sprintf("%s layout: %s", target.Pageset, target.LayoutStyle))
		}
		steps = append(steps, prefixed(target.Pageset+" access: ", target.AccessNotes)...)
	}

	if profile != nil {
		steps = append(steps, prefixed(profile.System+": ", profile.ConversionTips)...)
	}

	if req.SymbolSet != "" {
		steps = append(steps, fmt.Sprintf(
			"Ensure symbol library compatibility: requested %s. Remap incompatible symbols to text labels where needed.",
			req.SymbolSet))
	}
	return steps
}

func prefixed(prefix string, lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = prefix + l
	}
	return out
}

func sourceRef(source *ir.PagesetEntry, req ir.ConvertRequest) *ir.PagesetRef {
	if source != nil {
		ref := catalogued(*source)
		return &ref
	}
	if strings.TrimSpace(req.SourceSystem) == "" {
		return nil
	}
	pageset := req.SourcePageset
	if pageset == "" {
		pageset = ir.PagesetUnspecified
	}
	return &ir.PagesetRef{System: req.SourceSystem, Pageset: pageset}
}

func targetRef(target *ir.PagesetEntry, req ir.ConvertRequest, grid ir.GridSize) ir.PagesetRef {
	if target != nil {
		return catalogued(*target)
	}
	libs := []string{}
	if req.SymbolSet != "" {
		libs = []string{req.SymbolSet}
	}
	return ir.PagesetRef{
		System:          req.TargetSystem,
		Pageset:         ir.PagesetCustom,
		DefaultGrid:     &grid,
		SymbolLibraries: libs,
	}
}

func catalogued(e ir.PagesetEntry) ir.PagesetRef {
	grid := e.DefaultGrid
	return ir.PagesetRef{
		System:          e.System,
		Pageset:         e.Pageset,
		DefaultGrid:     &grid,
		SymbolLibraries: slices.Clone(e.SymbolLibraries),
		LayoutStyle:     e.LayoutStyle,
		AccessNotes:     slices.Clone(e.AccessNotes),
		Catalogued:      true,
	}
}

func compatibility(profile *ir.SystemProfile, symbolSet string, adjustments []string) ir.Compatibility {
	c := ir.Compatibility{
		SymbolSupport:      []string{},
		RequestedSymbolSet: symbolSet,
		GridAdjustments:    orEmpty(adjustments),
		ImportFormats:      []string{},
		ExportFormats:      []string{},
	}
	if profile == nil {
		return c
	}
	c.SymbolSupport = orEmpty(profile.SupportedSymbols)
	c.ImportFormats = orEmpty(profile.ImportFormats)
	c.ExportFormats = orEmpty(profile.ExportFormats)
	if symbolSet != "" {
		supported := slices.ContainsFunc(profile.SupportedSymbols, func(s string) bool {
			return ir.SameName(s, symbolSet)
		})
		c.SymbolSetSupported = &supported
	}
	return c
}

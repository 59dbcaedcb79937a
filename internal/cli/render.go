package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/roach88/pageport/internal/ir"
)

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func renderConversion(w io.Writer, plan *ir.ConversionPlan) {
	if plan.Source != nil {
		fprintf(w, "Source: %s\n", describeRef(*plan.Source))
	}
	fprintf(w, "Target: %s\n", describeRef(plan.Target))
	fprintf(w, "Target grid: %s\n", plan.TargetGrid)

	renderList(w, "Conversion steps", plan.ConversionSteps, true)
	renderPages(w, plan.CustomPages)

	c := plan.Compatibility
	fprintf(w, "\nCompatibility:\n")
	fprintf(w, "  Symbol support: %s\n", joinOrNone(c.SymbolSupport))
	if c.RequestedSymbolSet != "" {
		supported := "unknown"
		if c.SymbolSetSupported != nil {
			supported = fmt.Sprintf("%t", *c.SymbolSetSupported)
		}
		fprintf(w, "  Requested symbol set: %s (supported: %s)\n", c.RequestedSymbolSet, supported)
	}
	fprintf(w, "  Grid adjustments: %s\n", joinOrNone(c.GridAdjustments))
	fprintf(w, "  Import formats: %s\n", joinOrNone(c.ImportFormats))
	fprintf(w, "  Export formats: %s\n", joinOrNone(c.ExportFormats))

	if len(plan.CatalogPreview) > 0 {
		fprintf(w, "\nCatalog preview:\n")
		for _, p := range plan.CatalogPreview {
			fprintf(w, "  - %s / %s (%s, %s)\n", p.System, p.Pageset, p.DefaultGrid, joinOrNone(p.SymbolLibraries))
		}
	}
}

func renderPortable(w io.Writer, plan *ir.PortablePlan) {
	fprintf(w, "Portable pageset: %s\n", plan.Name)
	fprintf(w, "Base grid: %s\n", plan.BaseGrid)
	renderList(w, "Portable notes", plan.PortableNotes, false)

	for _, sp := range plan.Systems {
		fprintf(w, "\n== %s (%s) ==\n", sp.System, sp.TargetGrid)
		fprintf(w, "Symbol support: %s\n", joinOrNone(sp.SymbolSupport))
		fprintf(w, "Import formats: %s\n", joinOrNone(sp.ImportFormats))
		fprintf(w, "Export formats: %s\n", joinOrNone(sp.ExportFormats))
		if len(sp.NotableFeatures) > 0 {
			fprintf(w, "Notable features: %s\n", strings.Join(sp.NotableFeatures, "; "))
		}
		renderList(w, "Creation steps", sp.CreationSteps, true)
		renderPages(w, sp.CustomPages)
		if len(sp.ReferencePagesets) > 0 {
			fprintf(w, "\nReference pagesets:\n")
			for _, p := range sp.ReferencePagesets {
				fprintf(w, "  - %s (%s)\n", p.Pageset, p.DefaultGrid)
			}
		}
	}
}

func renderPages(w io.Writer, pages []ir.GeneratedPage) {
	fprintf(w, "\nCustom pages:\n")
	for _, p := range pages {
		fprintf(w, "  - %s (%s, %s)\n", p.Name, p.Grid, p.SymbolSet)
		fprintf(w, "    %s\n", p.Layout)
		if len(p.SeededVocabulary) > 0 {
			fprintf(w, "    Vocabulary: %s\n", strings.Join(p.SeededVocabulary, ", "))
		}
		if a := p.Alphabet; a != nil && len(a.UppercasePreview) > 0 {
			fprintf(w, "    Alphabet (%s/%s): %s\n", a.LanguageCode, a.Script, strings.Join(a.UppercasePreview, " "))
		}
		for _, n := range p.Notes {
			fprintf(w, "    * %s\n", n)
		}
	}
}

func renderList(w io.Writer, title string, items []string, numbered bool) {
	if len(items) == 0 {
		return
	}
	fprintf(w, "\n%s:\n", title)
	for i, item := range items {
		if numbered {
			fprintf(w, "  %d. %s\n", i+1, item)
		} else {
			fprintf(w, "  - %s\n", item)
		}
	}
}

func describeRef(r ir.PagesetRef) string {
	s := r.System + " / " + r.Pageset
	if r.DefaultGrid != nil {
		s += fmt.Sprintf(" (%s)", r.DefaultGrid)
	}
	if !r.Catalogued {
		s += " [not catalogued]"
	}
	return s
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

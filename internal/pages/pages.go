// Package pages synthesizes the standard set of custom pages for a plan.
//
// Page order is part of the output contract: Alphabet & Spelling, Core
// Words, Quick Phrases & Navigation, Custom Fringe/Topics. Optional pages
// drop out without disturbing the others.
package pages

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/roach88/pageport/internal/alphabet"
	"github.com/roach88/pageport/internal/ir"
)

// Page names in render order.
const (
	NameAlphabet     = "Alphabet & Spelling"
	NameCoreWords    = "Core Words"
	NameQuickPhrases = "Quick Phrases & Navigation"
	NameCustomFringe = "Custom Fringe/Topics"
)

// Symbol set labels used when the caller has no preference.
const (
	SymbolTextOnly    = "Text-only"
	SymbolPCSOrSymbol = "PCS or SymbolStix"
)

// quickPhrasesMinRows keeps the quick phrases page renderable on very
// short targets.
const quickPhrasesMinRows = 3

// Options configure one synthesis call.
type Options struct {
	TargetGrid ir.GridSize

	// SymbolSet overrides every page's default symbol label when set.
	SymbolSet string

	// Nil means true; only an explicit false drops the page.
	IncludeAlphabet     *bool
	IncludeQuickPhrases *bool

	CustomVocabulary []string

	// An alphabet preview is resolved when either is set.
	AlphabetLanguage string
	AlphabetScript   string
}

func enabled(flag *bool) bool {
	return flag == nil || *flag
}

// Synthesizer builds custom pages. It holds no per-call state and is safe
// for concurrent use if its resolver is.
type Synthesizer struct {
	alphabets alphabet.Resolver
}

// New returns a Synthesizer. A nil resolver disables alphabet previews;
// alphabet pages are still emitted with their fixed guidance.
func New(alphabets alphabet.Resolver) *Synthesizer {
	return &Synthesizer{alphabets: alphabets}
}

// Build returns the ordered page list for opts. It never fails: each page
// is built independently and a failed alphabet lookup only adds a note to
// the alphabet page.
func (s *Synthesizer) Build(ctx context.Context, opts Options) []ir.GeneratedPage {
	out := make([]ir.GeneratedPage, 0, 4)

	if enabled(opts.IncludeAlphabet) {
		out = append(out, s.alphabetPage(ctx, opts))
	}
	out = append(out, coreWordsPage(opts))
	if enabled(opts.IncludeQuickPhrases) {
		out = append(out, quickPhrasesPage(opts))
	}
	if len(opts.CustomVocabulary) > 0 {
		out = append(out, customFringePage(opts))
	}
	return out
}

func symbolOr(opts Options, fallback string) string {
	if opts.SymbolSet != "" {
		return opts.SymbolSet
	}
	return fallback
}

func (s *Synthesizer) alphabetPage(ctx context.Context, opts Options) ir.GeneratedPage {
	page := ir.GeneratedPage{
		Name:      NameAlphabet,
		Grid:      opts.TargetGrid,
		SymbolSet: symbolOr(opts, SymbolTextOnly),
		Layout:    "Alphabet row plus core row (A-M / N-Z split) with space, delete, and clear",
		Notes: []string{
			"Place space and delete in consistent bottom-right positions to preserve motor planning.",
			"If word prediction is available, reserve top row for suggestions and maintain consistent height.",
		},
	}

	if s.alphabets == nil || (opts.AlphabetLanguage == "" && opts.AlphabetScript == "") {
		return page
	}

	lang := opts.AlphabetLanguage
	if lang == "" {
		lang = alphabet.DefaultLanguage
	}
	page.Alphabet = &ir.AlphabetPreview{LanguageCode: lang, Script: opts.AlphabetScript}

	layout, err := s.alphabets.Resolve(ctx, lang, opts.AlphabetScript)
	if err != nil {
		script := opts.AlphabetScript
		if script == "" {
			script = "default"
		}
		slog.Warn("alphabet lookup failed",
			"language", lang,
			"script", script,
			"error", err,
		)
		page.Notes = append(page.Notes, fmt.Sprintf("Alphabet lookup failed for %s/%s: %v", lang, script, err))
		return page
	}

	n := opts.TargetGrid.Columns
	page.Alphabet = &ir.AlphabetPreview{
		LanguageCode:     layout.Language,
		Script:           layout.Script,
		UppercasePreview: preview(layout.Uppercase, n),
		LowercasePreview: preview(layout.Lowercase, n),
		Digits:           preview(layout.Digits, n),
	}
	slog.Debug("alphabet resolved",
		"language", layout.Language,
		"script", layout.Script,
		"preview", n,
	)
	return page
}

// preview copies the first n glyphs.
func preview(glyphs []string, n int) []string {
	return slices.Clone(glyphs[:min(n, len(glyphs))])
}

func coreWordsPage(opts Options) ir.GeneratedPage {
	return ir.GeneratedPage{
		Name:      NameCoreWords,
		Grid:      opts.TargetGrid,
		SymbolSet: symbolOr(opts, SymbolPCSOrSymbol),
		Layout:    "High-frequency verbs, pronouns, helpers, descriptors; keep navigation bottom-left/bottom-right.",
		Notes: []string{
			"Mirror source core locations where possible to ease transition between systems.",
			"Color code by part of speech if the target system supports it (Fitzgerald or Modified Fitzgerald).",
		},
	}
}

func quickPhrasesPage(opts Options) ir.GeneratedPage {
	return ir.GeneratedPage{
		Name: NameQuickPhrases,
		Grid: ir.GridSize{
			Rows:    max(quickPhrasesMinRows, opts.TargetGrid.Rows-1),
			Columns: opts.TargetGrid.Columns,
		},
		SymbolSet: symbolOr(opts, SymbolTextOnly),
		Layout:    "Yes/No, stop/wait/help, greetings, and navigation buttons (home/back/search).",
		Notes: []string{
			"Pin navigation buttons to consistent corners across all custom pages.",
			"Group regulation/support phrases (stop, wait, help) in a single row for quick access.",
		},
	}
}

func customFringePage(opts Options) ir.GeneratedPage {
	return ir.GeneratedPage{
		Name:             NameCustomFringe,
		Grid:             opts.TargetGrid,
		SymbolSet:        symbolOr(opts, SymbolPCSOrSymbol),
		Layout:           "Auto-generated topic folders seeded from provided vocabulary.",
		SeededVocabulary: slices.Clone(opts.CustomVocabulary),
		Notes: []string{
			"Cluster nouns and places together; verbs/adjectives can be linked from the core page to reduce duplication.",
			"Add photo placeholders for people/places if the target system supports image import.",
		},
	}
}

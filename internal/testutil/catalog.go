package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/pageport/internal/catalog"
	"github.com/roach88/pageport/internal/ir"
)

// Fixture system and pageset names.
const (
	FixtureSystem       = "Fixture Talk"
	FixturePageset      = "Fixture Core 24"
	FixtureAltPageset   = "Fixture Keyboard"
	FixtureOpenSystem   = "Open Board"
	FixtureProcessor    = "Fixture DSP 2"
	FixtureManufacturer = "Fixture Audio"
)

// FixturePagesets returns a small pageset list: two for FixtureSystem,
// one for FixtureOpenSystem (which has no profile).
func FixturePagesets() []ir.PagesetEntry {
	return []ir.PagesetEntry{
		{
			System:          FixtureSystem,
			Pageset:         FixturePageset,
			Description:     "Fixture core layout.",
			DefaultGrid:     ir.GridSize{Rows: 4, Columns: 6},
			SymbolLibraries: []string{"PCS"},
			TypicalUseCases: []string{"Testing"},
			ConversionNotes: []string{"Keep the fixture home row."},
			LayoutStyle:     "Home row on top",
		},
		{
			System:          FixtureSystem,
			Pageset:         FixtureAltPageset,
			DefaultGrid:     ir.GridSize{Rows: 5, Columns: 8},
			SymbolLibraries: []string{"Text-only"},
			TypicalUseCases: []string{},
			ConversionNotes: []string{},
		},
		{
			System:          FixtureOpenSystem,
			Pageset:         "Open 40",
			DefaultGrid:     ir.GridSize{Rows: 5, Columns: 8},
			SymbolLibraries: []string{"Mulberry"},
			TypicalUseCases: []string{},
			ConversionNotes: []string{"Export as OBZ."},
			AccessNotes:     []string{"Works with switch scanning."},
		},
	}
}

// FixtureSystems returns one profile for FixtureSystem with a 2-6 x 3-8
// range.
func FixtureSystems() []ir.SystemProfile {
	return []ir.SystemProfile{{
		System:           FixtureSystem,
		GridRange:        ir.GridRange{MinRows: 2, MaxRows: 6, MinColumns: 3, MaxColumns: 8},
		SupportedSymbols: []string{"PCS", "Text-only"},
		ImportFormats:    []string{"CSV"},
		ExportFormats:    []string{"CSV", "PDF"},
		NotableFeatures:  []string{"Fixture feature"},
		ConversionTips:   []string{"Rebuild folders by hand."},
	}}
}

// FixtureProcessors returns one processor.
func FixtureProcessors() []ir.Processor {
	return []ir.Processor{{
		Model:          FixtureProcessor,
		Manufacturer:   FixtureManufacturer,
		MaxChannels:    2,
		MaxBitrateKbps: 128,
		OptimizedFor:   "Tests",
		SupportedTasks: []ir.ProcessorTask{{Name: "speech playback", Status: ir.TaskAvailable}},
		FileInputs:     []string{"WAV"},
	}}
}

// NewFixtureCatalog builds a catalog from the fixture records only.
// Panics if the fixtures are invalid.
func NewFixtureCatalog() *catalog.Catalog {
	cat, err := catalog.New(FixturePagesets(), FixtureSystems(), FixtureProcessors())
	if err != nil {
		panic(err)
	}
	return cat
}

// WriteCUE writes a CUE catalog file into dir and returns its path.
func WriteCUE(t testing.TB, dir, name, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/pageport/internal/ir"
)

// createTestStore creates a new store in a temp dir for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSnapshot returns a small snapshot with one record of each kind
// plus a second pageset to exercise ordering.
func createTestSnapshot() ir.CatalogSnapshot {
	return ir.CatalogSnapshot{
		Pagesets: []ir.PagesetEntry{
			{
				System:          "TouchChat",
				Pageset:         "WordPower 60 Basic",
				Description:     "High-frequency core.",
				DefaultGrid:     ir.GridSize{Rows: 6, Columns: 10},
				SymbolLibraries: []string{"SymbolStix"},
				TypicalUseCases: []string{},
				ConversionNotes: []string{"Keep pronouns on top."},
				LayoutStyle:     "Top-row pronouns",
			},
			{
				System:          "TouchChat",
				Pageset:         "MultiChat 15",
				DefaultGrid:     ir.GridSize{Rows: 3, Columns: 5},
				SymbolLibraries: []string{"PCS"},
				TypicalUseCases: []string{"Emergent communicators"},
				ConversionNotes: []string{},
				AccessNotes:     []string{"Use keyguards."},
			},
		},
		Systems: []ir.SystemProfile{
			{
				System:           "TouchChat",
				GridRange:        ir.GridRange{MinRows: 2, MaxRows: 8, MinColumns: 4, MaxColumns: 12},
				SupportedSymbols: []string{"SymbolStix", "PCS"},
				ImportFormats:    []string{".mwz"},
				ExportFormats:    []string{".mwz"},
				NotableFeatures:  []string{},
				ConversionTips:   []string{"Export the profile."},
			},
		},
		Processors: []ir.Processor{
			{
				Model:          "Helix-X2",
				Manufacturer:   "Acousto Labs",
				MaxChannels:    8,
				MaxBitrateKbps: 512,
				SupportedTasks: []ir.ProcessorTask{{Name: "Vocabulary planner", Status: ir.TaskAvailable}},
				FileInputs:     []string{"CSV"},
			},
		},
	}
}

package ir

import "fmt"

// GridSize is a rows x columns grid. It is a value type; copy, don't share.
type GridSize struct {
	Rows    int `json:"rows" yaml:"rows"`
	Columns int `json:"columns" yaml:"columns"`
}

// String renders the grid as "RxC".
func (g GridSize) String() string {
	return fmt.Sprintf("%dx%d", g.Rows, g.Columns)
}

// Cells returns the number of button locations in the grid.
func (g GridSize) Cells() int {
	return g.Rows * g.Columns
}

// DefaultGrid is used when neither a target nor a source catalog entry
// supplies a grid.
var DefaultGrid = GridSize{Rows: 6, Columns: 10}

// GridRange bounds the grids a vendor system can display.
// Invariant: MinRows <= MaxRows and MinColumns <= MaxColumns.
type GridRange struct {
	MinRows    int `json:"minRows"`
	MaxRows    int `json:"maxRows"`
	MinColumns int `json:"minColumns"`
	MaxColumns int `json:"maxColumns"`
}

// Contains reports whether g fits inside the range on both axes.
func (r GridRange) Contains(g GridSize) bool {
	return g.Rows >= r.MinRows && g.Rows <= r.MaxRows &&
		g.Columns >= r.MinColumns && g.Columns <= r.MaxColumns
}

// PagesetEntry describes one named vendor layout.
// Identity is the (System, Pageset) pair, compared case-insensitively.
type PagesetEntry struct {
	System          string   `json:"system"`
	Pageset         string   `json:"pageset"`
	Description     string   `json:"description"`
	DefaultGrid     GridSize `json:"defaultGrid"`
	SymbolLibraries []string `json:"symbolLibraries"`
	TypicalUseCases []string `json:"typicalUseCases"`
	ConversionNotes []string `json:"conversionNotes"`
	LayoutStyle     string   `json:"layoutStyle,omitempty"`
	AccessNotes     []string `json:"accessNotes,omitempty"`
}

// SystemProfile describes a vendor system's capabilities independent of
// any one pageset. System is the identity key (case-insensitive).
type SystemProfile struct {
	System           string    `json:"system"`
	GridRange        GridRange `json:"gridRange"`
	SupportedSymbols []string  `json:"supportedSymbols"`
	ImportFormats    []string  `json:"importFormats"`
	ExportFormats    []string  `json:"exportFormats"`
	NotableFeatures  []string  `json:"notableFeatures"`
	ConversionTips   []string  `json:"conversionTips"`
}

// Task readiness levels for processor tasks.
const (
	TaskAvailable     = "available"
	TaskPlanned       = "planned"
	TaskNeedsResearch = "needs-research"
)

// ValidTaskStatuses defines allowed processor task statuses.
var ValidTaskStatuses = map[string]bool{
	TaskAvailable:     true,
	TaskPlanned:       true,
	TaskNeedsResearch: true,
}

// ProcessorTask is one job a processor can run, with its readiness.
type ProcessorTask struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Processor is an audio processor catalog record.
type Processor struct {
	Model          string          `json:"model"`
	Manufacturer   string          `json:"manufacturer"`
	MaxChannels    int             `json:"maxChannels"`
	MaxBitrateKbps int             `json:"maxBitrateKbps"`
	OptimizedFor   string          `json:"optimizedFor"`
	SupportedTasks []ProcessorTask `json:"supportedTasks,omitempty"`
	FileInputs     []string        `json:"fileInputs,omitempty"`
}

// AlphabetPreview is the alphabet layout embedded in an alphabet page.
type AlphabetPreview struct {
	LanguageCode     string   `json:"languageCode"`
	Script           string   `json:"script,omitempty"`
	UppercasePreview []string `json:"uppercasePreview,omitempty"`
	LowercasePreview []string `json:"lowercasePreview,omitempty"`
	Digits           []string `json:"digits,omitempty"`
}

// GeneratedPage is one synthesized page of a plan.
type GeneratedPage struct {
	Name             string           `json:"name"`
	Grid             GridSize         `json:"grid"`
	SymbolSet        string           `json:"symbolSet"`
	Layout           string           `json:"layout"`
	Notes            []string         `json:"notes"`
	SeededVocabulary []string         `json:"seededVocabulary,omitempty"`
	Alphabet         *AlphabetPreview `json:"alphabet,omitempty"`
}

// PagesetRef describes the source or target side of a conversion.
// Resolved entries carry the catalog data; unresolved ones echo the
// requested strings.
type PagesetRef struct {
	System          string    `json:"system"`
	Pageset         string    `json:"pageset"`
	DefaultGrid     *GridSize `json:"defaultGrid,omitempty"`
	SymbolLibraries []string  `json:"symbolLibraries,omitempty"`
	LayoutStyle     string    `json:"layoutStyle,omitempty"`
	AccessNotes     []string  `json:"accessNotes,omitempty"`
	Catalogued      bool      `json:"catalogued"`
}

// Placeholder pageset names used when nothing is catalogued.
const (
	PagesetUnspecified = "(unspecified)"
	PagesetCustom      = "(custom)"
)

// Compatibility summarizes what the target system supports.
type Compatibility struct {
	SymbolSupport      []string `json:"symbolSupport"`
	RequestedSymbolSet string   `json:"requestedSymbolSet,omitempty"`
	SymbolSetSupported *bool    `json:"symbolSetSupported,omitempty"`
	GridAdjustments    []string `json:"gridAdjustments"`
	ImportFormats      []string `json:"importFormats"`
	ExportFormats      []string `json:"exportFormats"`
}

// CatalogPreview is a reduced catalog entry for display alongside a plan.
type CatalogPreview struct {
	System          string   `json:"system,omitempty"`
	Pageset         string   `json:"pageset"`
	DefaultGrid     GridSize `json:"defaultGrid"`
	SymbolLibraries []string `json:"symbolLibraries"`
	TypicalUseCases []string `json:"typicalUseCases"`
}

// ConversionPlan is the single source to single target report.
type ConversionPlan struct {
	Source          *PagesetRef      `json:"source,omitempty"`
	Target          PagesetRef       `json:"target"`
	TargetGrid      GridSize         `json:"targetGrid"`
	ConversionSteps []string         `json:"conversionSteps"`
	CustomPages     []GeneratedPage  `json:"customPages"`
	Compatibility   Compatibility    `json:"compatibility"`
	CatalogPreview  []CatalogPreview `json:"catalogPreview"`
}

// SystemPlan is the per-system slice of a portable plan.
type SystemPlan struct {
	System            string           `json:"system"`
	TargetGrid        GridSize         `json:"targetGrid"`
	SymbolSupport     []string         `json:"symbolSupport"`
	ImportFormats     []string         `json:"importFormats"`
	ExportFormats     []string         `json:"exportFormats"`
	NotableFeatures   []string         `json:"notableFeatures"`
	CreationSteps     []string         `json:"creationSteps"`
	CustomPages       []GeneratedPage  `json:"customPages"`
	ReferencePagesets []CatalogPreview `json:"referencePagesets"`
}

// PortablePlan is one base grid fanned out across several systems.
// Each system plan is clamped independently; there is no merged grid.
type PortablePlan struct {
	Name          string       `json:"name"`
	BaseGrid      GridSize     `json:"baseGrid"`
	PortableNotes []string     `json:"portableNotes"`
	Systems       []SystemPlan `json:"systems"`
}

// PageNames returns the page names in render order.
func PageNames(pages []GeneratedPage) []string {
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = p.Name
	}
	return names
}

// CatalogSnapshot is the serializable form of a catalog, in catalog order.
type CatalogSnapshot struct {
	Pagesets   []PagesetEntry  `json:"pagesets"`
	Systems    []SystemProfile `json:"systems"`
	Processors []Processor     `json:"processors"`
}

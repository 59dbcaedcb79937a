package ir

// ConvertRequest drives the single source to single target conversion.
// Pointer fields are optional; nil means "not supplied".
type ConvertRequest struct {
	SourceSystem        string   `json:"sourceSystem,omitempty" yaml:"sourceSystem,omitempty"`
	SourcePageset       string   `json:"sourcePageset,omitempty" yaml:"sourcePageset,omitempty"`
	TargetSystem        string   `json:"targetSystem" yaml:"targetSystem"`
	TargetPageset       string   `json:"targetPageset,omitempty" yaml:"targetPageset,omitempty"`
	TargetRows          *int     `json:"targetRows,omitempty" yaml:"targetRows,omitempty"`
	TargetColumns       *int     `json:"targetColumns,omitempty" yaml:"targetColumns,omitempty"`
	SymbolSet           string   `json:"symbolSet,omitempty" yaml:"symbolSet,omitempty"`
	IncludeAlphabet     *bool    `json:"includeAlphabet,omitempty" yaml:"includeAlphabet,omitempty"`
	IncludeQuickPhrases *bool    `json:"includeQuickPhrases,omitempty" yaml:"includeQuickPhrases,omitempty"`
	AlphabetLanguage    string   `json:"alphabetLanguage,omitempty" yaml:"alphabetLanguage,omitempty"`
	AlphabetScript      string   `json:"alphabetScript,omitempty" yaml:"alphabetScript,omitempty"`
	CustomVocabulary    []string `json:"customVocabulary,omitempty" yaml:"customVocabulary,omitempty"`
}

// HasGridOverride reports whether either grid dimension was supplied.
func (r ConvertRequest) HasGridOverride() bool {
	return r.TargetRows != nil || r.TargetColumns != nil
}

// DefaultPortableName names a portable pageset when the caller gives none.
const DefaultPortableName = "Custom Portable Pageset"

// PortableRequest drives the multi-target portable planner.
type PortableRequest struct {
	TargetSystems       []string `json:"targetSystems" yaml:"targetSystems"`
	PagesetName         string   `json:"pagesetName,omitempty" yaml:"pagesetName,omitempty"`
	BaseRows            *int     `json:"baseRows,omitempty" yaml:"baseRows,omitempty"`
	BaseColumns         *int     `json:"baseColumns,omitempty" yaml:"baseColumns,omitempty"`
	SymbolSet           string   `json:"symbolSet,omitempty" yaml:"symbolSet,omitempty"`
	Vocabulary          []string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`
	IncludeAlphabet     *bool    `json:"includeAlphabet,omitempty" yaml:"includeAlphabet,omitempty"`
	IncludeQuickPhrases *bool    `json:"includeQuickPhrases,omitempty" yaml:"includeQuickPhrases,omitempty"`
	AccessMethod        string   `json:"accessMethod,omitempty" yaml:"accessMethod,omitempty"`
	AlphabetLanguage    string   `json:"alphabetLanguage,omitempty" yaml:"alphabetLanguage,omitempty"`
	AlphabetScript      string   `json:"alphabetScript,omitempty" yaml:"alphabetScript,omitempty"`
}

// Int returns a pointer to v. Handy for building requests in code.
func Int(v int) *int { return &v }

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

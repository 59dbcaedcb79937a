package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/pageport/internal/ir"
)

// Catalog holds every record compiled from one CUE catalog value, in
// declaration order.
type Catalog struct {
	Pagesets   []ir.PagesetEntry
	Systems    []ir.SystemProfile
	Processors []ir.Processor
}

// CompileCatalog walks the pagesets, systems and processors lists of a
// unified catalog value. Missing lists are treated as empty.
// All record errors are collected; compilation does not stop at the first.
func CompileCatalog(v cue.Value) (*Catalog, []error) {
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}

	out := &Catalog{}
	var errs []error

	errs = append(errs, eachListItem(v, "pagesets", func(item cue.Value) error {
		entry, err := CompilePageset(item)
		if err != nil {
			return err
		}
		out.Pagesets = append(out.Pagesets, *entry)
		return nil
	})...)

	errs = append(errs, eachListItem(v, "systems", func(item cue.Value) error {
		profile, err := CompileSystem(item)
		if err != nil {
			return err
		}
		out.Systems = append(out.Systems, *profile)
		return nil
	})...)

	errs = append(errs, eachListItem(v, "processors", func(item cue.Value) error {
		proc, err := CompileProcessor(item)
		if err != nil {
			return err
		}
		out.Processors = append(out.Processors, *proc)
		return nil
	})...)

	return out, errs
}

func eachListItem(v cue.Value, field string, fn func(cue.Value) error) []error {
	listVal := v.LookupPath(cue.ParsePath(field))
	if !listVal.Exists() {
		return nil
	}
	iter, err := listVal.List()
	if err != nil {
		return []error{formatCUEError(err)}
	}
	var errs []error
	for iter.Next() {
		if err := fn(iter.Value()); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// CompilePageset parses one pageset struct into a PagesetEntry.
//
// The value is expected to look like:
//
//	{
//		system: "TouchChat"
//		pageset: "WordPower 60 Basic"
//		defaultGrid: {rows: 6, columns: 10}
//		symbolLibraries: ["SymbolStix"]
//		...
//	}
func CompilePageset(v cue.Value) (*ir.PagesetEntry, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	entry := &ir.PagesetEntry{}
	var err error

	if entry.System, err = requiredString(v, "system"); err != nil {
		return nil, err
	}
	if entry.Pageset, err = requiredString(v, "pageset"); err != nil {
		return nil, err
	}
	if entry.Description, err = optionalString(v, "description"); err != nil {
		return nil, err
	}

	gridVal := v.LookupPath(cue.ParsePath("defaultGrid"))
	if !gridVal.Exists() {
		return nil, &CompileError{
			Field:   "defaultGrid",
			Message: fmt.Sprintf("pageset %q: defaultGrid is required", entry.Pageset),
			Pos:     v.Pos(),
		}
	}
	if entry.DefaultGrid.Rows, err = requiredInt(gridVal, "rows"); err != nil {
		return nil, err
	}
	if entry.DefaultGrid.Columns, err = requiredInt(gridVal, "columns"); err != nil {
		return nil, err
	}

	if entry.SymbolLibraries, err = stringList(v, "symbolLibraries"); err != nil {
		return nil, err
	}
	if entry.TypicalUseCases, err = stringList(v, "typicalUseCases"); err != nil {
		return nil, err
	}
	if entry.ConversionNotes, err = stringList(v, "conversionNotes"); err != nil {
		return nil, err
	}
	if entry.LayoutStyle, err = optionalString(v, "layoutStyle"); err != nil {
		return nil, err
	}

	// accessNotes stays nil when absent so it is omitted from output
	if v.LookupPath(cue.ParsePath("accessNotes")).Exists() {
		if entry.AccessNotes, err = stringList(v, "accessNotes"); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// CompileSystem parses one system profile struct.
func CompileSystem(v cue.Value) (*ir.SystemProfile, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	profile := &ir.SystemProfile{}
	var err error

	if profile.System, err = requiredString(v, "system"); err != nil {
		return nil, err
	}

	rangeVal := v.LookupPath(cue.ParsePath("gridRange"))
	if !rangeVal.Exists() {
		return nil, &CompileError{
			Field:   "gridRange",
			Message: fmt.Sprintf("system %q: gridRange is required", profile.System),
			Pos:     v.Pos(),
		}
	}
	bounds := []struct {
		field string
		dst   *int
	}{
		{"minRows", &profile.GridRange.MinRows},
		{"maxRows", &profile.GridRange.MaxRows},
		{"minColumns", &profile.GridRange.MinColumns},
		{"maxColumns", &profile.GridRange.MaxColumns},
	}
	for _, b := range bounds {
		if *b.dst, err = requiredInt(rangeVal, b.field); err != nil {
			return nil, err
		}
	}

	lists := []struct {
		field string
		dst   *[]string
	}{
		{"supportedSymbols", &profile.SupportedSymbols},
		{"importFormats", &profile.ImportFormats},
		{"exportFormats", &profile.ExportFormats},
		{"notableFeatures", &profile.NotableFeatures},
		{"conversionTips", &profile.ConversionTips},
	}
	for _, l := range lists {
		if *l.dst, err = stringList(v, l.field); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

// CompileProcessor parses one processor struct.
func CompileProcessor(v cue.Value) (*ir.Processor, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	proc := &ir.Processor{}
	var err error

	if proc.Model, err = requiredString(v, "model"); err != nil {
		return nil, err
	}
	if proc.Manufacturer, err = optionalString(v, "manufacturer"); err != nil {
		return nil, err
	}
	if proc.MaxChannels, err = requiredInt(v, "maxChannels"); err != nil {
		return nil, err
	}
	if proc.MaxBitrateKbps, err = requiredInt(v, "maxBitrateKbps"); err != nil {
		return nil, err
	}
	if proc.OptimizedFor, err = optionalString(v, "optimizedFor"); err != nil {
		return nil, err
	}

	tasksVal := v.LookupPath(cue.ParsePath("supportedTasks"))
	if tasksVal.Exists() {
		iter, err := tasksVal.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name, err := requiredString(iter.Value(), "name")
			if err != nil {
				return nil, err
			}
			status, err := requiredString(iter.Value(), "status")
			if err != nil {
				return nil, err
			}
			proc.SupportedTasks = append(proc.SupportedTasks, ir.ProcessorTask{Name: name, Status: status})
		}
	}

	if v.LookupPath(cue.ParsePath("fileInputs")).Exists() {
		if proc.FileInputs, err = stringList(v, "fileInputs"); err != nil {
			return nil, err
		}
	}

	return proc, nil
}

func requiredString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", formatCUEError(err)
	}
	return s, nil
}

func requiredInt(v cue.Value, field string) (int, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return 0, &CompileError{
			Field:   field,
			Message: field + " is required",
			Pos:     v.Pos(),
		}
	}
	switch fv.IncompleteKind() {
	case cue.FloatKind, cue.NumberKind:
		return 0, &CompileError{
			Field:   field,
			Message: field + " must be an integer",
			Pos:     fv.Pos(),
		}
	}
	n, err := fv.Int64()
	if err != nil {
		return 0, formatCUEError(err)
	}
	return int(n), nil
}

// stringList returns an ordered, non-nil list. Absent fields become empty.
func stringList(v cue.Value, field string) ([]string, error) {
	out := []string{}
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return out, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out = append(out, s)
	}
	return out, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/pageport/internal/ir"
)

// Validation error codes (E100-E199)
const (
	// General validation errors (E100)
	ErrUnsupportedType = "E100" // unsupported record type for validation

	// PagesetEntry errors (E101-E109)
	ErrPagesetSystemEmpty = "E101" // system is required
	ErrPagesetNameEmpty   = "E102" // pageset name is required
	ErrGridNotPositive    = "E103" // grid dimension < 1
	ErrDuplicatePageset   = "E104" // duplicate (system, pageset) identity

	// SystemProfile errors (E110-E119)
	ErrSystemNameEmpty   = "E110" // system is required
	ErrInvalidGridRange  = "E111" // min > max or min < 1
	ErrDuplicateSystem   = "E112" // more than one profile per system
	ErrNoSymbolLibraries = "E113" // system lists no supported symbols

	// Processor errors (E120-E129)
	ErrProcessorModelEmpty = "E120" // model is required
	ErrDuplicateProcessor  = "E121" // duplicate model
	ErrInvalidTaskStatus   = "E122" // status not in ir.ValidTaskStatuses
	ErrNegativeCapacity    = "E123" // channels/bitrate < 0
)

// ValidationError represents a schema validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate validates compiled records against schema rules.
// Returns all errors found (does not fail-fast).
// Supports single records and whole catalogs; catalogs also get identity
// checks across records.
func Validate(v any) []ValidationError {
	switch rec := v.(type) {
	case *ir.PagesetEntry:
		return validatePageset(rec)
	case ir.PagesetEntry:
		return validatePageset(&rec)
	case *ir.SystemProfile:
		return validateSystem(rec)
	case ir.SystemProfile:
		return validateSystem(&rec)
	case *ir.Processor:
		return validateProcessor(rec)
	case ir.Processor:
		return validateProcessor(&rec)
	case *Catalog:
		return validateCatalog(rec)
	default:
		return []ValidationError{{
			Field:   "type",
			Message: fmt.Sprintf("unsupported record type: %T", v),
			Code:    ErrUnsupportedType,
		}}
	}
}

func validatePageset(entry *ir.PagesetEntry) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(entry.System) == "" {
		errs = append(errs, ValidationError{
			Field:   "system",
			Message: fmt.Sprintf("pageset %q: system is required and must be non-empty", entry.Pageset),
			Code:    ErrPagesetSystemEmpty,
		})
	}
	if strings.TrimSpace(entry.Pageset) == "" {
		errs = append(errs, ValidationError{
			Field:   "pageset",
			Message: "pageset name is required and must be non-empty",
			Code:    ErrPagesetNameEmpty,
		})
	}
	if entry.DefaultGrid.Rows < 1 || entry.DefaultGrid.Columns < 1 {
		errs = append(errs, ValidationError{
			Field:   "defaultGrid",
			Message: fmt.Sprintf("pageset %q: grid %s must be at least 1x1", entry.Pageset, entry.DefaultGrid),
			Code:    ErrGridNotPositive,
		})
	}

	return errs
}

func validateSystem(profile *ir.SystemProfile) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(profile.System) == "" {
		errs = append(errs, ValidationError{
			Field:   "system",
			Message: "system is required and must be non-empty",
			Code:    ErrSystemNameEmpty,
		})
	}

	r := profile.GridRange
	if r.MinRows < 1 || r.MinColumns < 1 || r.MinRows > r.MaxRows || r.MinColumns > r.MaxColumns {
		errs = append(errs, ValidationError{
			Field: "gridRange",
			Message: fmt.Sprintf("system %q: invalid grid range rows %d-%d, columns %d-%d",
				profile.System, r.MinRows, r.MaxRows, r.MinColumns, r.MaxColumns),
			Code: ErrInvalidGridRange,
		})
	}

	if len(profile.SupportedSymbols) == 0 {
		errs = append(errs, ValidationError{
			Field:   "supportedSymbols",
			Message: fmt.Sprintf("system %q: at least one supported symbol library is required", profile.System),
			Code:    ErrNoSymbolLibraries,
		})
	}

	return errs
}

func validateProcessor(proc *ir.Processor) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(proc.Model) == "" {
		errs = append(errs, ValidationError{
			Field:   "model",
			Message: "model is required and must be non-empty",
			Code:    ErrProcessorModelEmpty,
		})
	}
	if proc.MaxChannels < 0 || proc.MaxBitrateKbps < 0 {
		errs = append(errs, ValidationError{
			Field:   "capacity",
			Message: fmt.Sprintf("processor %q: channels and bitrate must be non-negative", proc.Model),
			Code:    ErrNegativeCapacity,
		})
	}
	for _, task := range proc.SupportedTasks {
		if !ir.ValidTaskStatuses[task.Status] {
			errs = append(errs, ValidationError{
				Field:   "supportedTasks.status",
				Message: fmt.Sprintf("processor %q: task %q has invalid status %q", proc.Model, task.Name, task.Status),
				Code:    ErrInvalidTaskStatus,
			})
		}
	}

	return errs
}

func validateCatalog(c *Catalog) []ValidationError {
	var errs []ValidationError

	seenPagesets := make(map[string]bool)
	for i := range c.Pagesets {
		entry := &c.Pagesets[i]
		errs = append(errs, validatePageset(entry)...)

		key := ir.FoldKey(entry.System) + "\x00" + ir.FoldKey(entry.Pageset)
		if seenPagesets[key] {
			errs = append(errs, ValidationError{
				Field:   "pageset",
				Message: fmt.Sprintf("duplicate pageset %q for system %q", entry.Pageset, entry.System),
				Code:    ErrDuplicatePageset,
			})
		}
		seenPagesets[key] = true
	}

	seenSystems := make(map[string]bool)
	for i := range c.Systems {
		profile := &c.Systems[i]
		errs = append(errs, validateSystem(profile)...)

		key := ir.FoldKey(profile.System)
		if seenSystems[key] {
			errs = append(errs, ValidationError{
				Field:   "system",
				Message: fmt.Sprintf("duplicate system profile %q", profile.System),
				Code:    ErrDuplicateSystem,
			})
		}
		seenSystems[key] = true
	}

	seenModels := make(map[string]bool)
	for i := range c.Processors {
		proc := &c.Processors[i]
		errs = append(errs, validateProcessor(proc)...)

		key := ir.FoldKey(proc.Model)
		if seenModels[key] {
			errs = append(errs, ValidationError{
				Field:   "model",
				Message: fmt.Sprintf("duplicate processor model %q", proc.Model),
				Code:    ErrDuplicateProcessor,
			})
		}
		seenModels[key] = true
	}

	return errs
}

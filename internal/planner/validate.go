package planner

import (
	"errors"
	"strings"

	"github.com/roach88/pageport/internal/ir"
)

// ValidateConvert checks a conversion request at the boundary.
// All problems are returned joined.
func ValidateConvert(req ir.ConvertRequest) error {
	var errs []error
	if strings.TrimSpace(req.TargetSystem) == "" {
		errs = append(errs, &ArgumentError{Field: "targetSystem", Message: "is required"})
	}
	errs = append(errs, positive("targetRows", req.TargetRows)...)
	errs = append(errs, positive("targetColumns", req.TargetColumns)...)
	return errors.Join(errs...)
}

// ValidatePortable checks a portable request at the boundary.
func ValidatePortable(req ir.PortableRequest) error {
	var errs []error
	if len(uniqueSystems(req.TargetSystems)) == 0 {
		errs = append(errs, &ArgumentError{Field: "targetSystems", Message: "must name at least one system"})
	}
	errs = append(errs, positive("baseRows", req.BaseRows)...)
	errs = append(errs, positive("baseColumns", req.BaseColumns)...)
	return errors.Join(errs...)
}

func positive(field string, v *int) []error {
	if v != nil && *v < 1 {
		return []error{&ArgumentError{Field: field, Message: "must be a positive integer"}}
	}
	return nil
}

// uniqueSystems trims names, drops blanks and removes case-insensitive
// duplicates, keeping the first spelling.
func uniqueSystems(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		key := ir.FoldKey(n)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, n)
	}
	return out
}

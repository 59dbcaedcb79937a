package queryir

import (
	"errors"
	"fmt"
	"slices"
)

// Validate checks that a query only names known tables and columns and
// uses supported nodes. All problems are returned joined.
//
// Validate is a pure function with no side effects.
func Validate(query Query) error {
	v := &validator{}
	v.validateQuery(query)
	return errors.Join(v.errs...)
}

// validator accumulates errors during traversal.
type validator struct {
	errs []error
}

func (v *validator) addError(format string, args ...any) {
	v.errs = append(v.errs, fmt.Errorf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.addError("nil query")
	case Select:
		v.validateSelect(query)
	case *Select:
		if query == nil {
			v.addError("nil query")
			return
		}
		v.validateSelect(*query)
	default:
		v.addError("unsupported query type: %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	columns, ok := TableColumns[sel.From]
	if !ok {
		v.addError("unknown table %q", sel.From)
		return
	}
	if sel.Limit < 0 {
		v.addError("limit must be non-negative, got %d", sel.Limit)
	}
	v.validatePredicate(sel.From, columns, sel.Filter)
}

func (v *validator) validatePredicate(table string, columns []string, p Predicate) {
	switch pred := p.(type) {
	case nil:
		// no filter
	case Equals:
		v.validateEquals(table, columns, pred)
	case *Equals:
		v.validateEquals(table, columns, *pred)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(table, columns, sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(table, columns, sub)
		}
	default:
		v.addError("unsupported predicate type: %T", p)
	}
}

func (v *validator) validateEquals(table string, columns []string, eq Equals) {
	if !slices.Contains(columns, eq.Field) {
		v.addError("unknown column %q for table %q", eq.Field, table)
	}
}

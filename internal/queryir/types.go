package queryir

// Snapshot tables.
const (
	TablePagesets   = "pagesets"
	TableSystems    = "systems"
	TableProcessors = "processors"
)

// Filterable columns. *_key columns hold ir.FoldKey of the display name.
const (
	ColumnSystem     = "system"
	ColumnSystemKey  = "system_key"
	ColumnPageset    = "pageset"
	ColumnPagesetKey = "pageset_key"
	ColumnModel      = "model"
	ColumnModelKey   = "model_key"
)

// TableColumns lists the filterable columns of each table.
var TableColumns = map[string][]string{
	TablePagesets:   {ColumnSystem, ColumnPageset, ColumnSystemKey, ColumnPagesetKey},
	TableSystems:    {ColumnSystem, ColumnSystemKey},
	TableProcessors: {ColumnModel, ColumnModelKey},
}

// Query represents an abstract read in the QueryIR.
//
// This is a sealed interface - only types in this package implement it.
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// Predicate represents a filter condition in the QueryIR.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Equals: column = literal
//   - And: all predicates must be true
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Select reads the records of one table in catalog order.
//
//	Select{
//	  From:   TablePagesets,
//	  Filter: Equals{Field: ColumnSystemKey, Value: ir.FoldKey("TouchChat")},
//	}
//
// Translates to SQL:
//
//	SELECT record FROM pagesets WHERE system_key = ? ORDER BY seq ASC
type Select struct {
	From   string    // snapshot table
	Filter Predicate // nil = every row
	Limit  int       // 0 = no limit
}

func (Select) queryNode() {}

// Equals compares a text column to a literal. Values are always bound as
// parameters, never interpolated.
type Equals struct {
	Field string
	Value string
}

func (Equals) predicateNode() {}

// And is a conjunction. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// BySystem selects the pagesets of one system.
func BySystem(systemKey string) Select {
	return Select{
		From:   TablePagesets,
		Filter: Equals{Field: ColumnSystemKey, Value: systemKey},
	}
}

// All selects every record of a table.
func All(table string) Select {
	return Select{From: table}
}

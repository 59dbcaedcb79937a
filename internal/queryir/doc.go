// Package queryir describes reads over the catalog snapshot tables.
//
// A query names one snapshot table and an optional filter. Backends
// (currently only querysql) compile queries to their own language; the
// IR keeps table and column names in one place so a backend never
// interpolates an identifier that did not come from this package.
//
//	[store read] → [Query IR] → [SQL Backend]
//
// Query and Predicate are sealed interfaces using the marker method
// pattern, so backends can switch over every node type exhaustively:
//
//	switch p := pred.(type) {
//	case Equals:
//	    // column = ?
//	case And:
//	    // conjunction
//	}
//
// Supported fragment:
//   - Select(from, filter): rows of one table in catalog order
//   - Predicates: Equals (text column against a literal), And
//
// Not supported: joins, OR, NULL comparisons, aggregates. Snapshot
// tables hold whole records, so anything richer is done in memory after
// decoding.
package queryir

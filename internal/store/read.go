package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/queryir"
	"github.com/roach88/pageport/internal/querysql"
)

// ErrNoCatalog is returned when no snapshot has been written.
var ErrNoCatalog = errors.New("no catalog snapshot stored")

// ReadCatalog returns the stored snapshot and its fingerprint.
// Records come back in the order they were written.
func (s *Store) ReadCatalog(ctx context.Context) (ir.CatalogSnapshot, string, error) {
	var fingerprint string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM meta WHERE key = ?
	`, metaFingerprint).Scan(&fingerprint)
	if errors.Is(err, sql.ErrNoRows) {
		return ir.CatalogSnapshot{}, "", ErrNoCatalog
	}
	if err != nil {
		return ir.CatalogSnapshot{}, "", fmt.Errorf("read fingerprint: %w", err)
	}

	var snap ir.CatalogSnapshot
	if snap.Pagesets, err = readRecords[ir.PagesetEntry](ctx, s.db, queryir.All(queryir.TablePagesets)); err != nil {
		return ir.CatalogSnapshot{}, "", err
	}
	if snap.Systems, err = readRecords[ir.SystemProfile](ctx, s.db, queryir.All(queryir.TableSystems)); err != nil {
		return ir.CatalogSnapshot{}, "", err
	}
	if snap.Processors, err = readRecords[ir.Processor](ctx, s.db, queryir.All(queryir.TableProcessors)); err != nil {
		return ir.CatalogSnapshot{}, "", err
	}
	return snap, fingerprint, nil
}

// CountRecords returns the number of stored pagesets, systems and
// processors.
func (s *Store) CountRecords(ctx context.Context) (pagesets, systems, processors int, err error) {
	counts := []*int{&pagesets, &systems, &processors}
	for i, table := range []string{"pagesets", "systems", "processors"} {
		if err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(counts[i]); err != nil {
			return 0, 0, 0, fmt.Errorf("count %s: %w", table, err)
		}
	}
	return pagesets, systems, processors, nil
}

// PagesetsBySystem returns the stored pagesets of one system in catalog
// order, matching the system name case-insensitively. It reads through
// the per-system index and does not verify the snapshot fingerprint.
func (s *Store) PagesetsBySystem(ctx context.Context, system string) ([]ir.PagesetEntry, error) {
	return readRecords[ir.PagesetEntry](ctx, s.db, queryir.BySystem(ir.FoldKey(system)))
}

// readRecords decodes every record a query selects, in seq order.
// Returns an empty slice (not nil) when nothing matches.
func readRecords[T any](ctx context.Context, db *sql.DB, q queryir.Select) ([]T, error) {
	table := q.From
	query, params, err := querysql.NewSQLCompiler().Compile(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table, err)
	}
	rows, err := db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		v, err := unmarshalRecord[T](record)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

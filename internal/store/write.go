package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/pageport/internal/ir"
)

const metaFingerprint = "catalog_fingerprint"

// WriteCatalog replaces the stored snapshot with snap in one transaction.
// Records keep their slice position as seq. fingerprint is stored
// alongside so readers can detect tampering or drift.
func (s *Store) WriteCatalog(ctx context.Context, snap ir.CatalogSnapshot, fingerprint string) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write catalog: begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"pagesets", "systems", "processors", "meta"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("write catalog: clear %s: %w", table, err)
		}
	}

	if err = writePagesets(ctx, tx, snap.Pagesets); err != nil {
		return err
	}
	if err = writeSystems(ctx, tx, snap.Systems); err != nil {
		return err
	}
	if err = writeProcessors(ctx, tx, snap.Processors); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
	`, metaFingerprint, fingerprint); err != nil {
		return fmt.Errorf("write catalog: fingerprint: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("write catalog: commit: %w", err)
	}
	return nil
}

func writePagesets(ctx context.Context, tx *sql.Tx, entries []ir.PagesetEntry) error {
	for i, e := range entries {
		record, err := marshalRecord(e)
		if err != nil {
			return fmt.Errorf("write pageset %q: %w", e.Pageset, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO pagesets (seq, system, pageset, system_key, pageset_key, record)
			VALUES (?, ?, ?, ?, ?, ?)
		`, i, e.System, e.Pageset, ir.FoldKey(e.System), ir.FoldKey(e.Pageset), record)
		if err != nil {
			return fmt.Errorf("write pageset %q: %w", e.Pageset, err)
		}
	}
	return nil
}

func writeSystems(ctx context.Context, tx *sql.Tx, profiles []ir.SystemProfile) error {
	for i, p := range profiles {
		record, err := marshalRecord(p)
		if err != nil {
			return fmt.Errorf("write system %q: %w", p.System, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO systems (seq, system, system_key, record)
			VALUES (?, ?, ?, ?)
		`, i, p.System, ir.FoldKey(p.System), record)
		if err != nil {
			return fmt.Errorf("write system %q: %w", p.System, err)
		}
	}
	return nil
}

func writeProcessors(ctx context.Context, tx *sql.Tx, procs []ir.Processor) error {
	for i, p := range procs {
		record, err := marshalRecord(p)
		if err != nil {
			return fmt.Errorf("write processor %q: %w", p.Model, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO processors (seq, model, model_key, record)
			VALUES (?, ?, ?, ?)
		`, i, p.Model, ir.FoldKey(p.Model), record)
		if err != nil {
			return fmt.Errorf("write processor %q: %w", p.Model, err)
		}
	}
	return nil
}

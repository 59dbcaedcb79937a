package catalog

import (
	"context"
	"fmt"

	"github.com/roach88/pageport/internal/ir"
)

// SnapshotReader loads a stored catalog. *store.Store satisfies it.
type SnapshotReader interface {
	ReadCatalog(ctx context.Context) (ir.CatalogSnapshot, string, error)
}

// SnapshotWriter persists a catalog. *store.Store satisfies it.
type SnapshotWriter interface {
	WriteCatalog(ctx context.Context, snap ir.CatalogSnapshot, fingerprint string) error
}

// Export writes every record and the catalog fingerprint to w.
func (c *Catalog) Export(ctx context.Context, w SnapshotWriter) error {
	fp, err := c.Fingerprint()
	if err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	if err := w.WriteCatalog(ctx, c.Snapshot(), fp); err != nil {
		return fmt.Errorf("export catalog: %w", err)
	}
	return nil
}

// FromSnapshot rebuilds a catalog from stored records. The rebuilt catalog
// must reproduce the stored fingerprint.
func FromSnapshot(ctx context.Context, r SnapshotReader) (*Catalog, error) {
	snap, stored, err := r.ReadCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	c, err := New(snap.Pagesets, snap.Systems, snap.Processors)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}

	fp, err := c.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	if fp != stored {
		return nil, fmt.Errorf("load catalog snapshot: fingerprint mismatch: stored %s, computed %s", stored, fp)
	}
	return c, nil
}

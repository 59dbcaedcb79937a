package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageport/internal/ir"
	"github.com/roach88/pageport/internal/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExportAndReload(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	cat := MustBuiltin()

	require.NoError(t, cat.Export(ctx, s))

	reloaded, err := FromSnapshot(ctx, s)
	require.NoError(t, err)

	assert.Equal(t, cat.Snapshot(), reloaded.Snapshot())

	want, _ := cat.FindOne("TouchChat", "")
	got, ok := reloaded.FindOne("touchchat", "")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestFromSnapshotEmptyStore(t *testing.T) {
	_, err := FromSnapshot(context.Background(), openStore(t))
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNoCatalog))
}

type fakeSnapshot struct {
	snap ir.CatalogSnapshot
	fp   string
}

func (f fakeSnapshot) ReadCatalog(context.Context) (ir.CatalogSnapshot, string, error) {
	return f.snap, f.fp, nil
}

func TestFromSnapshotFingerprintMismatch(t *testing.T) {
	_, err := FromSnapshot(context.Background(), fakeSnapshot{snap: MustBuiltin().Snapshot(), fp: "stale"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fingerprint mismatch")
}

func TestFromSnapshotInvalidRecords(t *testing.T) {
	snap := ir.CatalogSnapshot{Pagesets: []ir.PagesetEntry{{System: "X", Pageset: ""}}}
	_, err := FromSnapshot(context.Background(), fakeSnapshot{snap: snap})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog")
}

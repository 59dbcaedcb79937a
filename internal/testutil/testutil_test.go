package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pageport/internal/ir"
)

func TestSequence_NextIncrementsMonotonically(t *testing.T) {
	seq := NewSequence()
	assert.Equal(t, int64(0), seq.Current())

	assert.Equal(t, int64(1), seq.Next())
	assert.Equal(t, int64(2), seq.Next())
	assert.Equal(t, int64(2), seq.Current())

	seq.Reset()
	assert.Equal(t, int64(0), seq.Current())
	assert.Equal(t, int64(1), seq.Next())
}

func TestSequence_ThreadSafe(t *testing.T) {
	seq := NewSequence()
	const goroutines = 50
	const calls = 100

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < calls; j++ {
				seq.Next()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(goroutines*calls), seq.Current())
}

func TestFixedIDGenerator(t *testing.T) {
	gen := NewFixedIDGenerator("trace-123")
	assert.Equal(t, "trace-123", gen.Generate())
	assert.Equal(t, "trace-123", gen.Generate())

	assert.Equal(t, "test-trace-default", NewFixedIDGenerator("").Generate())
}

func TestSequenceIDGenerator(t *testing.T) {
	gen := NewSequenceIDGenerator("req")
	assert.Equal(t, "req-0001", gen.Generate())
	assert.Equal(t, "req-0002", gen.Generate())

	gen.Reset()
	assert.Equal(t, "req-0001", gen.Generate())
}

func TestNewFixtureCatalog(t *testing.T) {
	cat := NewFixtureCatalog()

	assert.Len(t, cat.FindBySystem(FixtureSystem), 2)
	entry, ok := cat.FindOne("", FixtureAltPageset)
	require.True(t, ok)
	assert.Equal(t, ir.GridSize{Rows: 5, Columns: 8}, entry.DefaultGrid)

	_, ok = cat.FindSystemProfile(FixtureOpenSystem)
	assert.False(t, ok)
	assert.Len(t, cat.Processors(), 1)
}

func TestFixturesAreFreshCopies(t *testing.T) {
	a := FixturePagesets()
	a[0].SymbolLibraries[0] = "changed"
	assert.Equal(t, "PCS", FixturePagesets()[0].SymbolLibraries[0])
}

func TestWriteCUE(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	path := WriteCUE(t, dir, "extra.cue", "package catalog\n")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package catalog\n", string(data))
}

package testutil

import "fmt"

// FixedIDGenerator returns the same trace id every time.
//
// CLI responses built with it are byte-identical across runs.
//
// Thread-safety: FixedIDGenerator is stateless and safe for concurrent use.
type FixedIDGenerator struct {
	id string
}

// NewFixedIDGenerator creates a fixed trace id generator.
// If id is empty, Generate() returns "test-trace-default".
func NewFixedIDGenerator(id string) *FixedIDGenerator {
	if id == "" {
		id = "test-trace-default"
	}
	return &FixedIDGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedIDGenerator) Generate() string {
	return g.id
}

// SequenceIDGenerator returns prefix-0001, prefix-0002, ... in order.
// Safe for concurrent use.
type SequenceIDGenerator struct {
	prefix string
	seq    *Sequence
}

// NewSequenceIDGenerator creates a generator numbering ids from 1.
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{prefix: prefix, seq: NewSequence()}
}

// Generate returns the next id.
func (g *SequenceIDGenerator) Generate() string {
	return fmt.Sprintf("%s-%04d", g.prefix, g.seq.Next())
}

// Reset restarts numbering at 1.
func (g *SequenceIDGenerator) Reset() {
	g.seq.Reset()
}

package cli

import "github.com/google/uuid"

// TraceIDGenerator produces the trace_id attached to every JSON response.
type TraceIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 trace ids.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
//
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (o *RootOptions) traceIDs() TraceIDGenerator {
	if o.IDs == nil {
		return UUIDv7Generator{}
	}
	return o.IDs
}

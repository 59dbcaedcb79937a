package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/pageport/internal/ir"
)

// marshalRecord converts a catalog record to canonical JSON TEXT.
func marshalRecord(v any) (string, error) {
	data, err := ir.MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(data), nil
}

// unmarshalRecord decodes a stored record. Unknown fields are rejected so
// a snapshot written by a newer schema fails loudly.
func unmarshalRecord[T any](data string) (T, error) {
	var out T
	dec := json.NewDecoder(strings.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, fmt.Errorf("unmarshal record: %w", err)
	}
	return out, nil
}

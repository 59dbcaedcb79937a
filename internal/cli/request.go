package cli

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// readRequest decodes a YAML (or JSON) request file into v, rejecting
// unknown fields so typos surface instead of silently using defaults.
func readRequest(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read request file: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to parse request file %s: %w", path, err)
	}
	return nil
}

package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/roach88/semreg/internal/reg"
)

// marshalDefinition converts a definition payload to canonical JSON TEXT for
// storage. Canonical serialization keeps stored bytes deterministic, so the
// hash of a read-back definition equals the hash of what was written.
func marshalDefinition(def map[string]any) (string, error) {
	data, err := reg.MarshalCanonical(def)
	if err != nil {
		return "", fmt.Errorf("marshal definition: %w", err)
	}
	return string(data), nil
}

// unmarshalDefinition parses stored JSON TEXT back into a definition map.
// Numbers decode as json.Number to avoid float64 precision loss and to keep
// the payload acceptable to the canonical encoder.
func unmarshalDefinition(data string) (map[string]any, error) {
	if data == "" || data == "{}" {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(strings.NewReader(data))
	dec.UseNumber()
	var def map[string]any
	if err := dec.Decode(&def); err != nil {
		return nil, fmt.Errorf("unmarshal definition: %w", err)
	}
	return def, nil
}

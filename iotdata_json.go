//go:build !no_json

package iotdata

import (
	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/jsonproj"
)

// ToJSON renders a decoded record as a JSON-shaped value.
func ToJSON(rec codec.Record) (map[string]any, error) {
	return jsonproj.ToJSON(rec)
}

// FromJSON parses a JSON-shaped value produced by ToJSON back into wire
// bytes, reproducing the original packet exactly.
func FromJSON(v any) ([]byte, error) {
	return jsonproj.FromJSON(v)
}

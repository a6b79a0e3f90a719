package field

import (
	"github.com/matthewgream/iotdata/bitstream"
)

// Descriptor is one row of the static FieldRegistry (spec §4.3): wire
// width (fixed, or computed from the in-progress Values for variable-
// width fields), and the encode/decode/JSON/print behaviour for the type.
//
// VariantMap references fields only by Type id; Descriptor is the only
// place that knows how a Type id's bits are laid out.
type Descriptor struct {
	Type Type
	Name string

	// Width is the fixed wire width in bits, or 0 if the field is
	// variable-width (use ComputeWidth instead).
	Width int

	// ComputeWidth returns the wire width in bits for a variable-width
	// field, given the value about to be encoded. Nil for fixed-width
	// fields.
	ComputeWidth func(v *Values) int

	Encode func(w *bitstream.Writer, v *Values) error
	Decode func(r *bitstream.Reader, v *Values) error

	// JSONEmit returns the value to marshal for this field (a scalar,
	// map, or struct — anything encoding/json accepts).
	JSONEmit func(v *Values) any
	// JSONApply parses a previously-emitted JSON value back into v.
	JSONApply func(v *Values, raw any) error

	// Print renders a one-line human-readable value for "Print" output.
	Print func(v *Values) string
}

// registry is indexed by Type id; registry[None] is the unused sentinel
// row. Populated by the package-level init in registry_*.go files via
// register().
var registry [numTypes]Descriptor

func register(d Descriptor) {
	registry[d.Type] = d
}

// lookup returns t's descriptor, or false if t has no registered row
// (None, or an id beyond the registry's bounds).
func lookup(t Type) (Descriptor, bool) {
	if t == None || int(t) >= len(registry) || registry[t].Name == "" {
		return Descriptor{}, false
	}

	return registry[t], true
}

// Lookup is the exported form of lookup, used by VariantMap, Encoder,
// Decoder and the JSON projection.
func Lookup(t Type) (Descriptor, bool) {
	return lookup(t)
}

// WireWidth returns the descriptor's wire width for the given in-progress
// Values, resolving ComputeWidth for variable-width fields.
func (d Descriptor) WireWidth(v *Values) int {
	if d.ComputeWidth != nil {
		return d.ComputeWidth(v)
	}

	return d.Width
}

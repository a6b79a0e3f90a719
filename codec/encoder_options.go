//go:build !no_encoder

package codec

import (
	"github.com/matthewgream/iotdata/field"
	"github.com/matthewgream/iotdata/internal/options"
	"github.com/matthewgream/iotdata/variant"
)

// Option configures an Encoder at construction time, the same
// functional-options shape the teacher's blob encoders use
// (internal/options.Option) specialised here for *Encoder. These are the
// constructor-time half of spec §6's "compile-time options": the truly
// compile-time exclusions (encoder/decoder/dump/print/json as
// independently linkable units) are Go build tags instead (encoder.go,
// decoder.go and this file's own `!no_encoder` guard), since Go has no
// runtime mechanism for shrinking a binary.
type Option = options.Option[*Encoder]

// WithDisableRangeChecks skips the post-set dry-run encode every field
// setter otherwise performs (spec §6: "disable range checks"). A
// resource-constrained encoder that already trusts its own sensor
// readings can use this to avoid paying for the scratch-buffer encode on
// every SetX call; an out-of-range value then survives until End, where
// the underlying field Encode still rejects it (packet-level failure,
// not the field-level retry spec §4.8 otherwise guarantees).
func WithDisableRangeChecks() Option {
	return options.NoError(func(e *Encoder) {
		e.disableRangeChecks = true
	})
}

// WithFieldSubset restricts an Encoder to only the named field types
// (spec §6: "select subsets of fields to exclude unused code"). A setter
// for any field.Type not in the subset fails checkSet with
// errs.ErrFieldRange instead of reaching the field registry at all. This
// implements the contract at the API boundary; it does not by itself
// dead-code-eliminate the excluded descriptors' Encode/Decode closures
// from the binary the way a build tag would (see DESIGN.md).
func WithFieldSubset(types ...field.Type) Option {
	return options.NoError(func(e *Encoder) {
		allowed := make(map[field.Type]bool, len(types))
		for _, t := range types {
			allowed[t] = true
		}
		e.allowedFields = allowed
	})
}

// WithVariantSet overrides the compiled-in four-variant table (spec §6:
// "select a variant-map set") with set for this Encoder's Begin calls.
// DecodeOption's WithDecodeVariantSet is the Decoder-side counterpart;
// the two must agree out of band, the same way two radio peers must
// already agree on a shared variant map (spec §6).
func WithVariantSet(set []variant.Entry) Option {
	return options.NoError(func(e *Encoder) {
		e.variantSet = set
	})
}

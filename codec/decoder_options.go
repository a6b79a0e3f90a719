//go:build !no_decoder

package codec

import (
	"github.com/matthewgream/iotdata/internal/options"
	"github.com/matthewgream/iotdata/variant"
)

// DecodeOption configures a single Decode call.
type DecodeOption = options.Option[*decodeConfig]

type decodeConfig struct {
	variantSet []variant.Entry
}

// WithDecodeVariantSet overrides the compiled-in variant table for one
// Decode call (spec §6: "select a variant-map set"), the Decoder-side
// counterpart of Encoder's WithVariantSet.
func WithDecodeVariantSet(set []variant.Entry) DecodeOption {
	return options.NoError(func(c *decodeConfig) {
		c.variantSet = set
	})
}

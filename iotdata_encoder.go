//go:build !no_encoder

package iotdata

import "github.com/matthewgream/iotdata/codec"

// NewEncoder returns an idle Encoder ready for Begin.
func NewEncoder(opts ...codec.Option) *codec.Encoder {
	return codec.NewEncoder(opts...)
}

//go:build !no_decoder

package iotdata

import "github.com/matthewgream/iotdata/codec"

// Decode parses one packet in a single shot.
func Decode(data []byte, opts ...codec.DecodeOption) (codec.Record, error) {
	return codec.Decode(data, opts...)
}

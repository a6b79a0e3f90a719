//go:build !no_dump

package iotdata

import (
	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/human"
)

// Dump renders a decoded record's raw wire bytes as an annotated hex
// dump, reusing buf's backing array when its capacity suffices.
func Dump(buf []byte, packet []byte, rec codec.Record) []byte {
	return human.Dump(buf, packet, rec)
}

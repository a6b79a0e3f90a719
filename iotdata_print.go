//go:build !no_print

package iotdata

import (
	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/human"
)

// Print renders a decoded record as a multi-line labelled report,
// reusing buf's backing array when its capacity suffices.
func Print(buf []byte, rec codec.Record) []byte {
	return human.Print(buf, rec)
}

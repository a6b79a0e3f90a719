// Package presence implements the variable-length, extension-chained
// presence bitmap of spec §4.5: byte 0 carries an EXT bit, a TLV bit, and
// 6 slot bits; every following byte carries an EXT bit and 7 slot bits.
// EXT=1 means another presence byte follows; a slot's bit is set iff
// that slot's field was encoded.
package presence

import (
	"fmt"

	"github.com/matthewgream/iotdata/errs"
)

const (
	extBit = 0x80
	tlvBit = 0x40
)

// slotsInByte returns how many slot bits byte index i (0-based) carries.
func slotsInByte(i int) int {
	if i == 0 {
		return 6
	}

	return 7
}

// bytesNeeded returns the minimal presence-chain length covering the
// highest set slot index (highest == -1 means no slots set).
func bytesNeeded(highest int) int {
	if highest < 0 {
		return 1
	}
	if highest < 6 {
		return 1
	}

	return 2 + (highest-6)/7
}

// Encode builds the presence-chain bytes for setSlots (ascending slot
// indices whose field was encoded) and tlvPresent (whether a TLV block
// follows the field data).
//
// maxBytes is the variant's declared NumPresenceBytes; Encode fails with
// errs.ErrBufTooSmall if the slots set require more bytes than the
// variant declares (a schema/data mismatch, never expected in practice
// since VariantMap slot indices are always within its own declared
// capacity).
func Encode(setSlots []int, tlvPresent bool, maxBytes int) ([]byte, error) {
	highest := -1
	for _, s := range setSlots {
		if s > highest {
			highest = s
		}
	}

	n := bytesNeeded(highest)
	if n > maxBytes {
		return nil, fmt.Errorf("%w: presence chain needs %d bytes, variant declares %d", errs.ErrBufTooSmall, n, maxBytes)
	}

	out := make([]byte, n)
	set := make(map[int]bool, len(setSlots))
	for _, s := range setSlots {
		set[s] = true
	}

	slot := 0
	for b := 0; b < n; b++ {
		width := slotsInByte(b)
		for bit := 0; bit < width; bit++ {
			if set[slot] {
				out[b] |= 1 << uint(bit)
			}
			slot++
		}
		if b < n-1 {
			out[b] |= extBit
		}
	}
	if tlvPresent {
		out[0] |= tlvBit
	}

	return out, nil
}

// Decode consumes bytes one at a time from data, stopping at the first
// byte with EXT=0. maxBytes is the variant's declared NumPresenceBytes.
//
// Returns the ascending slot indices whose bit was set, whether the TLV
// flag (byte 0 only) was set, and how many bytes were consumed.
//
// Fails with errs.ErrDecodeTruncated if data runs out before EXT=0, or
// errs.ErrDecodePresence if the chain would exceed maxBytes.
func Decode(data []byte, maxBytes int) (setSlots []int, tlvPresent bool, consumed int, err error) {
	slot := 0
	for b := 0; ; b++ {
		if b >= maxBytes {
			return nil, false, 0, fmt.Errorf("%w: exceeds declared %d presence bytes", errs.ErrDecodePresence, maxBytes)
		}
		if b >= len(data) {
			return nil, false, 0, errs.ErrDecodeTruncated
		}

		byt := data[b]
		width := slotsInByte(b)
		for bit := 0; bit < width; bit++ {
			if byt&(1<<uint(bit)) != 0 {
				setSlots = append(setSlots, slot)
			}
			slot++
		}
		if b == 0 && byt&tlvBit != 0 {
			tlvPresent = true
		}

		if byt&extBit == 0 {
			return setSlots, tlvPresent, b + 1, nil
		}
	}
}

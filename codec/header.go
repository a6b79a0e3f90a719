// Package codec implements the packet-level assembly spec §4.1-4.2
// describes: the fixed header, the Encoder state machine, the single-shot
// Decoder, and the cheap Peek used for deduplication.
package codec

import (
	"fmt"

	"github.com/matthewgream/iotdata/errs"
)

// HeaderLen is the fixed header size in bytes.
const HeaderLen = 4

// MaxPacketLen is the protocol cap on total packet size (spec §4.1).
const MaxPacketLen = 255

// MinPacketLen is the smallest valid packet: header plus one presence
// byte, no fields.
const MinPacketLen = HeaderLen + 1

// MaxStation is the largest value the 12-bit station field may carry.
const MaxStation = 1<<12 - 1

// header is the 32-bit variant:4|station:12|sequence:16 record.
type header struct {
	Variant  int
	Station  int
	Sequence int
}

// encodeHeader packs h into exactly HeaderLen bytes, big-endian over the
// bitstream.
//
// Fails with errs.ErrHdrStationRange if Station exceeds MaxStation; the
// caller is responsible for rejecting Variant == variant.ReservedID
// before calling (Begin does this).
func encodeHeader(h header) ([HeaderLen]byte, error) {
	var out [HeaderLen]byte
	if h.Station < 0 || h.Station > MaxStation {
		return out, fmt.Errorf("%w: %d", errs.ErrHdrStationRange, h.Station)
	}

	word := uint32(h.Variant&0xF)<<28 | uint32(h.Station&0xFFF)<<16 | uint32(h.Sequence&0xFFFF)
	out[0] = byte(word >> 24)
	out[1] = byte(word >> 16)
	out[2] = byte(word >> 8)
	out[3] = byte(word)

	return out, nil
}

// decodeHeader unpacks the first HeaderLen bytes of data.
//
// Fails with errs.ErrDecodeShort if data is shorter than HeaderLen.
func decodeHeader(data []byte) (header, error) {
	if len(data) < HeaderLen {
		return header{}, fmt.Errorf("%w: %d bytes", errs.ErrDecodeShort, len(data))
	}

	word := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])

	return header{
		Variant:  int(word >> 28 & 0xF),
		Station:  int(word >> 16 & 0xFFF),
		Sequence: int(word & 0xFFFF),
	}, nil
}

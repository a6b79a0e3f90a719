// Package iotdata provides a compact, bit-packed binary wire format for
// telemetry packets sent by battery-powered LoRa/LPWAN sensor nodes.
//
// A packet carries a fixed 4-byte header (variant, station, sequence)
// followed by a presence bitmap and a field-data body whose layout is
// entirely determined by the packet's declared variant: the wire format
// has no self-describing field tags, so nodes spend no bits telling the
// gateway what it already knows from the variant id.
//
// # Core features
//
//   - Four built-in variants (weather_full, weather_compact, soil_probe,
//     camera_trap), each a fixed ordered list of fields
//   - Bit-level field packing via quantisation (affine/step) rather than
//     raw floats, so a field costs only as many bits as its precision needs
//   - An extension-chained presence bitmap: a node omits fields it has
//     nothing to report rather than encoding a sentinel value
//   - Optional TLV metadata trailer for slow-changing or diagnostic data
//     that doesn't deserve a dedicated field
//   - A self-describing, optionally compressed image field for camera-trap
//     variants
//   - A lossless JSON projection: decode, marshal, unmarshal, re-encode
//     reproduces the original bytes exactly
//
// # Basic usage
//
// Encoding a packet:
//
//	e := codec.NewEncoder()
//	if err := e.Begin(0, station, sequence); err != nil { ... }
//	if err := e.SetBattery(87, true); err != nil { ... }
//	if err := e.SetEnvironment(21.5, 1013, 55); err != nil { ... }
//	packet, err := e.End()
//
// Decoding and projecting to JSON:
//
//	rec, err := codec.Decode(packet)
//	obj, err := jsonproj.ToJSON(rec)
//
// # Package structure
//
// This file documents the module as a whole; iotdata.go itself only
// re-exports the handful of entry points a caller reaches for first.
// For the full API, use the subpackages directly:
//
//   - codec: Encoder/Decoder, the packet header, and Peek
//   - field: the per-field-type descriptor registry and typed values
//   - variant: the four built-in variant layouts
//   - quant: affine/step quantisers shared by field descriptors
//   - presence: the extension-chained presence bitmap codec
//   - tlv: the optional metadata trailer and its reserved entry types
//   - image: the self-describing image field and its RLE/LZSS codecs
//   - jsonproj: the lossless JSON projection
//   - human: Print/Dump text renderings of a decoded packet
//   - dedup: a fixed-capacity (station, sequence) duplicate filter
//   - compress: JSON-payload compression for a publishing collaborator
package iotdata

import (
	"github.com/matthewgream/iotdata/codec"
	"github.com/matthewgream/iotdata/dedup"
)

// Peek reads only the fixed header, without validating or decoding the
// rest of the packet. Useful for routing or dedup filtering before the
// full variant layout is known to be valid.
func Peek(data []byte) (variantID, station, sequence int, err error) {
	return codec.Peek(data)
}

// NewDedupWindow returns a fixed-capacity (station, sequence) duplicate
// filter suitable for a gateway sitting behind a lossy radio link.
func NewDedupWindow(capacity int) *dedup.Window {
	return dedup.NewWindow(capacity)
}

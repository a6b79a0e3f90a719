// Package tlv implements the optional metadata block of spec §4.6: an
// append-only list of (type, format, payload) entries, flagged by bit 6
// of presence byte 0, plus the six typed helpers the library reserves
// type codes 0x01..0x06 for.
package tlv

// Format selects how an entry's payload is packed.
type Format uint8

const (
	FormatRaw    Format = 0
	FormatString Format = 1
)

// Reserved type codes (spec §4.6). Application-defined entries should use
// codes above Userdata and below 64.
const (
	TypeVersion    uint8 = 0x01
	TypeStatus     uint8 = 0x02
	TypeHealth     uint8 = 0x03
	TypeConfig     uint8 = 0x04
	TypeDiagnostic uint8 = 0x05
	TypeUserdata   uint8 = 0x06
)

// MaxEntries is the per-packet TLV cap (spec §4.6); an attempt to add a
// 9th entry fails with errs.ErrTLVFull.
const MaxEntries = 8

// MaxRawLen is the largest raw payload length in bytes.
const MaxRawLen = 255

// MaxStrLen is the largest string payload length in 6-bit characters.
const MaxStrLen = 255

// Entry is one TLV metadata entry.
//
// Exactly one of Raw or Str is meaningful, selected by Format. Both
// fields are exported so typed helpers (NewStatus, ParseVersion, ...)
// can build and read entries without a second accessor layer.
type Entry struct {
	Type   uint8
	Format Format
	Raw    []byte // valid when Format == FormatRaw
	Str    string // valid when Format == FormatString
}

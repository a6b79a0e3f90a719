// Package errs defines the sentinel errors returned across the codec.
//
// Every family in the error taxonomy gets one sentinel. Call sites wrap it
// with fmt.Errorf("%w: ...") to add the offending value; callers compare
// with errors.Is against the sentinel, never against the formatted string.
package errs

import "errors"

// Context errors: encoder state-machine violations.
var (
	ErrCtxNotBegun     = errors.New("encoder: not begun")
	ErrCtxAlreadyEnded = errors.New("encoder: already ended")
	ErrDuplicateField  = errors.New("encoder: duplicate field")
)

// Buffer errors.
var (
	ErrBufNil       = errors.New("buffer: nil")
	ErrBufTooSmall  = errors.New("buffer: too small")
)

// Header errors.
var (
	ErrHdrVariantReserved = errors.New("header: variant 15 is reserved")
	ErrHdrVariantUnknown  = errors.New("header: variant unknown to map")
	ErrHdrStationRange    = errors.New("header: station out of range")
)

// Field errors.
var (
	ErrFieldRange = errors.New("field: value out of range")
)

// TLV errors.
var (
	ErrTLVTypeRange     = errors.New("tlv: type out of range")
	ErrTLVDataNil       = errors.New("tlv: data is nil")
	ErrTLVLengthRange   = errors.New("tlv: length out of range")
	ErrTLVFull          = errors.New("tlv: table full")
	ErrTLVKVMismatch    = errors.New("tlv: key/value count mismatch")
	ErrTLVStrCharInvalid = errors.New("tlv: invalid 6-bit string character")
)

// Image errors.
var (
	ErrImageEnumRange = errors.New("image: enum value out of range")
	ErrImageDataNil   = errors.New("image: data is nil")
	ErrImageLenRange  = errors.New("image: length out of range")
)

// Decode errors.
var (
	ErrDecodeShort     = errors.New("decode: buffer too short")
	ErrDecodeTruncated = errors.New("decode: truncated field")
	ErrDecodeVariant   = errors.New("decode: reserved variant")
	ErrDecodePresence  = errors.New("decode: presence chain malformed")
)

// JSON errors.
var (
	ErrJSONParse        = errors.New("json: parse failure")
	ErrJSONMissingField = errors.New("json: missing required field")
)

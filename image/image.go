// Package image implements the self-describing image field of spec §4.7:
// a small control header (pixel format, size tier, compression tier,
// flags, payload length) followed by the payload bytes, plus the two
// compressors — RLE and a small-window LZSS variant — that a payload may
// be compressed with.
package image

import (
	"fmt"

	"github.com/matthewgream/iotdata/bitstream"
	"github.com/matthewgream/iotdata/errs"
)

// PixelFormat selects the bit depth of a pixel.
type PixelFormat uint8

const (
	Bilevel PixelFormat = 0 // 1 bit per pixel
	Grey4   PixelFormat = 1 // 2 bits per pixel, 4 grey levels
	Grey16  PixelFormat = 2 // 4 bits per pixel, 16 grey levels
)

func (p PixelFormat) bitsPerPixel() int {
	switch p {
	case Bilevel:
		return 1
	case Grey4:
		return 2
	case Grey16:
		return 4
	default:
		return 0
	}
}

// SizeTier selects one of three fixed resolutions.
type SizeTier uint8

const (
	Size24x18 SizeTier = 0
	Size48x32 SizeTier = 1
	Size64x48 SizeTier = 2
)

func (s SizeTier) dims() (w, h int) {
	switch s {
	case Size24x18:
		return 24, 18
	case Size48x32:
		return 48, 32
	case Size64x48:
		return 64, 48
	default:
		return 0, 0
	}
}

// Compression selects how Data is packed on the wire.
type Compression uint8

const (
	CompressionRaw        Compression = 0
	CompressionRLE        Compression = 1
	CompressionHeatshrink Compression = 2
)

// Flag bits. Bits 2..3 are reserved.
const (
	FlagInvert   uint8 = 0x1
	FlagFragment uint8 = 0x2
)

const maxDataLen = 254

// Value is a decoded (or pending-encode) image field.
type Value struct {
	PixelFormat PixelFormat
	SizeTier    SizeTier
	Compression Compression
	Flags       uint8
	Data        []byte // wire-encoded payload, already compressed if Compression != Raw
}

// PixelBufferSize returns the uncompressed pixel-buffer size in bytes for
// format/tier, or an error if either enum value is out of range (3 is
// reserved for both axes, spec §4.7).
func PixelBufferSize(format PixelFormat, tier SizeTier) (int, error) {
	bpp := format.bitsPerPixel()
	if bpp == 0 {
		return 0, fmt.Errorf("%w: pixel_format %d", errs.ErrImageEnumRange, format)
	}
	w, h := tier.dims()
	if w == 0 {
		return 0, fmt.Errorf("%w: size_tier %d", errs.ErrImageEnumRange, tier)
	}

	return (w*h*bpp + 7) / 8, nil
}

// NewFromPixels builds a Value by compressing a raw pixel buffer with the
// requested compression tier.
//
// pixels must be exactly PixelBufferSize(format, tier) bytes long. The
// resulting Value.Data must be no more than 254 bytes; if the chosen
// compression does not bring the payload under that cap, NewFromPixels
// returns errs.ErrImageLenRange (callers should pick a stronger
// compression tier or a smaller size tier).
func NewFromPixels(format PixelFormat, tier SizeTier, compression Compression, flags uint8, pixels []byte) (Value, error) {
	want, err := PixelBufferSize(format, tier)
	if err != nil {
		return Value{}, err
	}
	if pixels == nil {
		return Value{}, errs.ErrImageDataNil
	}
	if len(pixels) != want {
		return Value{}, fmt.Errorf("%w: pixel buffer is %d bytes, want %d", errs.ErrImageLenRange, len(pixels), want)
	}

	var data []byte
	switch compression {
	case CompressionRaw:
		data = pixels
	case CompressionRLE:
		data = RLECompress(pixels)
	case CompressionHeatshrink:
		data = WindowCompress(pixels)
	default:
		return Value{}, fmt.Errorf("%w: compression %d", errs.ErrImageEnumRange, compression)
	}

	if len(data) > maxDataLen {
		return Value{}, fmt.Errorf("%w: compressed length %d exceeds %d", errs.ErrImageLenRange, len(data), maxDataLen)
	}

	return Value{PixelFormat: format, SizeTier: tier, Compression: compression, Flags: flags, Data: data}, nil
}

// DecodedPixels reverses the compression tier, returning the raw pixel
// buffer of PixelBufferSize(PixelFormat, SizeTier) bytes.
func (v Value) DecodedPixels() ([]byte, error) {
	want, err := PixelBufferSize(v.PixelFormat, v.SizeTier)
	if err != nil {
		return nil, err
	}

	switch v.Compression {
	case CompressionRaw:
		if len(v.Data) != want {
			return nil, fmt.Errorf("%w: raw payload is %d bytes, want %d", errs.ErrImageLenRange, len(v.Data), want)
		}

		return v.Data, nil
	case CompressionRLE:
		return RLEDecompress(v.Data, want)
	case CompressionHeatshrink:
		return WindowDecompress(v.Data, want)
	default:
		return nil, fmt.Errorf("%w: compression %d", errs.ErrImageEnumRange, v.Compression)
	}
}

// ComputeWidth returns the field's total wire width in bits: the 18-bit
// control header plus 8 bits per payload byte.
func (v Value) ComputeWidth() int {
	return 18 + 8*len(v.Data)
}

// Encode packs the control header and payload onto w.
func (v Value) Encode(w *bitstream.Writer) error {
	if v.PixelFormat > 2 {
		return fmt.Errorf("%w: pixel_format %d", errs.ErrImageEnumRange, v.PixelFormat)
	}
	if v.SizeTier > 2 {
		return fmt.Errorf("%w: size_tier %d", errs.ErrImageEnumRange, v.SizeTier)
	}
	if v.Compression > 2 {
		return fmt.Errorf("%w: compression %d", errs.ErrImageEnumRange, v.Compression)
	}
	if v.Data == nil {
		return errs.ErrImageDataNil
	}
	if len(v.Data) > maxDataLen {
		return fmt.Errorf("%w: length %d", errs.ErrImageLenRange, len(v.Data))
	}

	if err := w.Put(uint32(v.PixelFormat), 2); err != nil {
		return err
	}
	if err := w.Put(uint32(v.SizeTier), 2); err != nil {
		return err
	}
	if err := w.Put(uint32(v.Compression), 2); err != nil {
		return err
	}
	if err := w.Put(uint32(v.Flags), 4); err != nil {
		return err
	}
	if err := w.Put(uint32(len(v.Data)), 8); err != nil {
		return err
	}
	for _, b := range v.Data {
		if err := w.Put(uint32(b), 8); err != nil {
			return err
		}
	}

	return nil
}

// Decode unpacks a Value from r.
func Decode(r *bitstream.Reader) (Value, error) {
	pf, err := r.Get(2)
	if err != nil {
		return Value{}, err
	}
	st, err := r.Get(2)
	if err != nil {
		return Value{}, err
	}
	cm, err := r.Get(2)
	if err != nil {
		return Value{}, err
	}
	fl, err := r.Get(4)
	if err != nil {
		return Value{}, err
	}
	length, err := r.Get(8)
	if err != nil {
		return Value{}, err
	}

	data := make([]byte, length)
	for i := range data {
		b, err := r.Get(8)
		if err != nil {
			return Value{}, err
		}
		data[i] = byte(b)
	}

	return Value{
		PixelFormat: PixelFormat(pf),
		SizeTier:    SizeTier(st),
		Compression: Compression(cm),
		Flags:       uint8(fl),
		Data:        data,
	}, nil
}

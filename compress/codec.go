// Package compress provides compression codecs for outbound JSON
// payloads: a gateway collaborator (spec §6) may compress a decoded
// packet's JSON projection before publishing it to a downstream topic,
// trading CPU for bandwidth on the backhaul link the radio gateway sits
// in front of.
package compress

import "fmt"

// CompressionType selects an algorithm for Compress/Decompress.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Compressor compresses a byte payload.
type Compressor interface {
	// Compress compresses data and returns a newly allocated, caller-owned
	// result. The input is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor.
type Decompressor interface {
	// Decompress decompresses data and returns a newly allocated,
	// caller-owned result.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression operation, for gateway
// metrics/logging.
type CompressionStats struct {
	Algorithm      CompressionType
	OriginalSize   int64
	CompressedSize int64
}

// CompressionRatio returns CompressedSize/OriginalSize; 0 if OriginalSize
// is 0.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec builds a Codec for the requested algorithm.
func CreateCodec(compressionType CompressionType) (Codec, error) {
	switch compressionType {
	case CompressionNone:
		return NewNoOpCompressor(), nil
	case CompressionZstd:
		return NewZstdCompressor(), nil
	case CompressionS2:
		return NewS2Compressor(), nil
	case CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("compress: invalid compression type %d", compressionType)
	}
}

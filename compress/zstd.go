package compress

// ZstdCompressor provides Zstandard compression for outbound JSON payloads.
//
// This compressor favors ratio over speed, making it the right choice on a
// gateway's backhaul link when the radio side is the bottleneck rather than
// the CPU: battery/environment telemetry JSON compresses well since field
// names and variant labels repeat across every packet.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

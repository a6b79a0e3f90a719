// Package compress provides compression codecs for outbound telemetry
// payloads.
//
// A gateway collaborator sits between packet decoding and publication: it
// decodes a wire packet (codec), projects it to JSON (jsonproj), then
// hands the marshalled bytes to a Codec here before writing them to a
// downstream transport. None of the wire codec itself depends on this
// package — compression is strictly a publish-time concern, applied (or
// not) per deployment.
//
// # Overview
//
// Four algorithms are available, selected by CompressionType:
//   - None: no compression, zero CPU cost
//   - Zstd: best ratio, moderate speed — good for bandwidth-constrained backhaul
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression, moderate ratio
//
// # Architecture
//
// The package defines three interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec builds a Codec from a CompressionType, so a gateway can make
// the choice configurable without a type switch at every call site.
//
// # Choosing an algorithm
//
// JSON payloads from this package's callers are small (one packet's worth
// of fields, at most a few hundred bytes, or a few KB for an image
// variant's projection) and bursty, not a steady high-throughput stream.
// That favors S2 or LZ4 for routine traffic and Zstd when a deployment is
// genuinely bandwidth-starved (e.g. a shared LoRaWAN backhaul). None is
// appropriate for local/trusted links where compression only adds
// latency for no gain.
//
// # Thread safety
//
// All codec implementations are safe for concurrent use. LZ4 and Zstd
// pool their underlying encoder/decoder state internally.
package compress

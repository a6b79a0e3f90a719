package image

import "github.com/matthewgream/iotdata/bitstream"

// Window implements a small-window LZSS-style compressor, the scheme
// spec §4.7 calls "heatshrink" and leaves the implementer to fix:
//
//   - lookback window: 8 bits -> offsets 1..256 bytes behind the cursor
//   - lookahead: 4 bits -> match lengths 4..19 bytes (code+4)
//   - match token:   1 | offset-1:8 | length-4:4   (13 bits)
//   - literal token: 0 | byte:8                    (9 bits)
//
// Encoder and decoder must agree on these constants; they are fixed here
// as untyped constants rather than exposed as configuration, so two
// builds of this package can never silently disagree.
const (
	windowSize    = 256
	minMatchLen   = 4
	maxMatchLen   = 19 // minMatchLen + 2^4 - 1
	lookaheadBits = 4
	offsetBits    = 8
)

// WindowCompress compresses data with the window/lookahead parameters
// documented on this file. It never fails; pathological input simply
// fails to compress well, same as RLECompress.
func WindowCompress(data []byte) []byte {
	// Worst case: every byte becomes a 9-bit literal.
	scratch := make([]byte, (len(data)*9+7)/8+1)
	w := bitstream.NewWriter(scratch)

	i := 0
	for i < len(data) {
		bestLen, bestOff := findMatch(data, i)
		if bestLen >= minMatchLen {
			_ = w.Put(1, 1)
			_ = w.Put(uint32(bestOff-1), offsetBits)
			_ = w.Put(uint32(bestLen-minMatchLen), lookaheadBits)
			i += bestLen
		} else {
			_ = w.Put(0, 1)
			_ = w.Put(uint32(data[i]), 8)
			i++
		}
	}

	return w.Bytes()
}

// findMatch looks backward from pos (up to windowSize bytes) for the
// longest run matching the bytes starting at pos, capped at maxMatchLen.
// Returns (0, 0) if no match of at least minMatchLen is found.
func findMatch(data []byte, pos int) (length, offset int) {
	limit := pos - windowSize
	if limit < 0 {
		limit = 0
	}

	bestLen, bestOff := 0, 0
	for start := pos - 1; start >= limit; start-- {
		l := 0
		maxL := len(data) - pos
		if maxL > maxMatchLen {
			maxL = maxMatchLen
		}
		for l < maxL && data[start+l] == data[pos+l] {
			l++
		}
		if l > bestLen {
			bestLen = l
			bestOff = pos - start
		}
	}
	if bestLen < minMatchLen {
		return 0, 0
	}

	return bestLen, bestOff
}

// WindowDecompress reverses WindowCompress, stopping once wantLen bytes
// have been produced (trailing pad bits in the compressed stream, if
// any, are never interpreted as a token).
func WindowDecompress(data []byte, wantLen int) ([]byte, error) {
	r := bitstream.NewReader(data, len(data))
	out := make([]byte, 0, wantLen)

	for len(out) < wantLen {
		ctrl, err := r.Get(1)
		if err != nil {
			return nil, err
		}
		if ctrl == 0 {
			b, err := r.Get(8)
			if err != nil {
				return nil, err
			}
			out = append(out, byte(b))

			continue
		}

		off, err := r.Get(offsetBits)
		if err != nil {
			return nil, err
		}
		ln, err := r.Get(lookaheadBits)
		if err != nil {
			return nil, err
		}
		offset := int(off) + 1
		length := int(ln) + minMatchLen

		start := len(out) - offset
		for k := 0; k < length; k++ {
			out = append(out, out[start+k])
		}
	}

	return out[:wantLen], nil
}

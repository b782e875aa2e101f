package decoding

import (
	"github.com/dsnet/golib/errs"

	"github.com/david13pod/antPolarCodes/encoding"
)

// Detector lets a decoder pick among multiple candidate information-bit
// vectors, the way an outer CRC or parity check selects a path out of an
// SCL list or validates a single Fast-SSC/depth-first result.
type Detector interface {
	// Check reports whether infoBits is an acceptable information vector.
	Check(infoBits []byte) bool
}

// extractInfoBits returns the non-frozen bits of a full codeword, in
// ascending index order.
func extractInfoBits(bits []byte, frozen []bool) []byte {
	out := make([]byte, 0, len(bits))
	for i, b := range bits {
		if !frozen[i] {
			out = append(out, b)
		}
	}
	return out
}

func frozenMask(n int, frozenIdx []int) []bool {
	mask := make([]bool, n)
	for _, f := range frozenIdx {
		mask[f] = true
	}
	return mask
}

// informationBits extracts the true information-bit vector from a decoded
// codeword (the Combine step's output, in the X domain). Systematic codes
// need no correction: by construction their non-frozen X positions already
// equal the original information bits verbatim. Non-systematic codes need
// one more application of the (self-inverse) Arikan transform to shift the
// Combine'd codeword back to the leaf-decision (U) domain before masking;
// see encoding.Transform.
func informationBits(bits []byte, frozen []bool, systematic bool) []byte {
	if !systematic {
		bits = encoding.Transform(bits)
	}
	return extractInfoBits(bits, frozen)
}

// packBits packs one-byte-per-bit values MSB-first into out, 8 per byte.
func packBits(info, out []byte) {
	for i := range out {
		out[i] = 0
	}
	for i, b := range info {
		if b != 0 {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
}

// InfoBitsPacked recovers the information bits of a decoded codeword (as
// returned by any of this package's decoders) and packs them MSB-first into
// out, for callers that work with the external wire format rather than
// one-byte-per-bit slices. out must hold exactly ⌈K/8⌉ bytes.
func InfoBitsPacked(bits []byte, frozenIdx []int, systematic bool, out []byte) {
	info := informationBits(bits, frozenMask(len(bits), frozenIdx), systematic)
	errs.Assert(len(out) == (len(info)+7)/8, errLengthMismatch)
	packBits(info, out)
}

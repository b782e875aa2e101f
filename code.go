// Package polarcode is a self-contained polar code encoder/decoder library:
// Bhattacharyya-parameter code construction, systematic and non-systematic
// Arikan-transform encoding, and Fast-SSC, SCL, depth-first and adaptive
// decoding, shared across a soft (float64) and a char (saturating int8) LLR
// representation.
package polarcode

import (
	"github.com/david13pod/antPolarCodes/construct"
	"github.com/david13pod/antPolarCodes/encoding"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "polarcode: " + string(e) }

var (
	// ErrInvalidBlockLength is returned when N is not a power of two, or
	// is smaller than 2.
	ErrInvalidBlockLength = Error("block length must be a power of two and at least 2")
	// ErrInvalidInformationLength is returned when K does not satisfy
	// 0 < K < N.
	ErrInvalidInformationLength = Error("information length must satisfy 0 < K < N")
)

// Code is a configured polar code: a block length, an information length, a
// design SNR used to rank synthetic channel reliability, and a systematic
// flag, together with the frozen-bit set and encoder derived from them.
type Code struct {
	n, k        int
	designSNRdB float64
	systematic  bool
	frozen      []int
	enc         *encoding.Encoder
}

// NewCode builds a polar code of block length n and information length k,
// using the Bhattacharyya-parameter construction at the given design SNR
// (in dB) to choose the frozen set.
func NewCode(n, k int, designSNRdB float64, systematic bool) (*Code, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, ErrInvalidBlockLength
	}
	if k <= 0 || k >= n {
		return nil, ErrInvalidInformationLength
	}
	frozen, err := construct.Frozen(n, k, designSNRdB)
	if err != nil {
		return nil, err
	}
	enc, err := encoding.New(n, frozen, systematic)
	if err != nil {
		return nil, err
	}
	return &Code{n: n, k: k, designSNRdB: designSNRdB, systematic: systematic, frozen: frozen, enc: enc}, nil
}

// N reports the block length.
func (c *Code) N() int { return c.n }

// K reports the information length.
func (c *Code) K() int { return c.k }

// Systematic reports whether this code encodes in systematic form.
func (c *Code) Systematic() bool { return c.systematic }

// Frozen returns the sorted, ascending frozen-bit indices.
func (c *Code) Frozen() []int { return append([]int(nil), c.frozen...) }

// Encode maps k information bits (one byte per bit) to an n-bit codeword.
func (c *Code) Encode(info []byte) ([]byte, error) {
	return c.enc.Encode(info)
}

package polarcode

import "github.com/david13pod/antPolarCodes/decoding"

// ErrNotConfigured is reported when a decoder's Decode runs before
// SetSignal has loaded a signal into it. It is the same value the decoding
// package returns, re-exported so callers of this package can name every
// configuration-error case without importing decoding directly.
var ErrNotConfigured = decoding.ErrNotConfigured

// NewFastSSCDecoder builds a Fast-SSC decoder matching c's block length,
// frozen set and systematic flag. Go methods cannot themselves be generic,
// so the LLR representation T is supplied here rather than on Code.
func NewFastSSCDecoder[T any](c *Code, arith decoding.Arith[T]) *decoding.FastSSC[T] {
	return decoding.NewFastSSC(c.n, c.frozen, arith, c.systematic)
}

// NewSCLDecoder builds a Successive Cancellation List decoder matching c,
// with the given path list size.
func NewSCLDecoder[T any](c *Code, arith decoding.Arith[T], listSize int) *decoding.SCL[T] {
	return decoding.NewSCL(c.n, c.frozen, arith, listSize, c.systematic)
}

// NewDepthFirstDecoder builds a depth-first reliability-driven redecoder
// matching c, trying at most trialLimit re-decodes before falling back to the
// configuration with the highest summed leaf reliability seen (the first
// Fast-SSC pass included).
func NewDepthFirstDecoder[T any](c *Code, arith decoding.Arith[T], trialLimit int) *decoding.DepthFirst[T] {
	return decoding.NewDepthFirst(c.n, c.frozen, arith, trialLimit, c.systematic)
}

// NewAdaptiveDecoder builds an adaptive fast-then-list decoder matching c,
// falling back to an SCL decoder of the given list size.
func NewAdaptiveDecoder[T any](c *Code, arith decoding.Arith[T], listSize int) *decoding.Adaptive[T] {
	return decoding.NewAdaptive(c.n, c.frozen, arith, listSize, c.systematic)
}

// InfoBitsPacked recovers the packed information bytes (⌈K/8⌉ of them,
// MSB-first) from a codeword decoded by any of c's decoders.
func (c *Code) InfoBitsPacked(decoded []byte) []byte {
	out := make([]byte, (c.k+7)/8)
	decoding.InfoBitsPacked(decoded, c.frozen, c.systematic, out)
	return out
}

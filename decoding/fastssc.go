package decoding

import (
	"math"

	"github.com/dsnet/golib/errs"

	"github.com/david13pod/antPolarCodes/internal/pool"
	"github.com/david13pod/antPolarCodes/internal/tree"
)

// FastSSC is a Fast Simplified Successive Cancellation decoder: it walks the
// simplified decoding tree once, dispatching each node to a closed-form
// kernel (Zero, One, Rep/Half, SPC) where one applies and falling back to
// plain F/G recursion otherwise. ZeroR, ROne and ZeroSpc are deliberately not
// given dedicated kernels: in a scalar (non-SIMD) decoder they decide
// identically to the generic recursion through their retained children, so
// the fallback branch already covers them exactly.
type FastSSC[T any] struct {
	n          int
	frozen     []bool
	systematic bool
	root       *tree.Node
	arith      Arith[T]
	pool       *pool.Pool[T]

	signal    []T
	bits      []byte
	reliab    []float64
	signalSet bool
}

// NewFastSSC builds a Fast-SSC decoder for a block of length n with the
// given frozen-bit indices. systematic must match the encoder's own
// systematic flag: it controls how InfoBitsPacked recovers the information
// vector from the decoded codeword (see informationBits).
func NewFastSSC[T any](n int, frozenIdx []int, arith Arith[T], systematic bool) *FastSSC[T] {
	return &FastSSC[T]{
		n:          n,
		frozen:     frozenMask(n, frozenIdx),
		systematic: systematic,
		root:       tree.Compress(n, frozenIdx),
		arith:      arith,
		pool:       pool.New[T](),
	}
}

// SetSignal loads n channel LLRs to decode.
func (d *FastSSC[T]) SetSignal(llr []T) {
	errs.Assert(len(llr) == d.n, errLengthMismatch)
	d.signal = append(d.signal[:0], llr...)
	d.signalSet = true
}

// Decode runs the decoder over the most recently set signal and returns the
// full length-n decoded codeword (the Combine step's X-domain estimate, so a
// frozen index can hold 1; see informationBits). It fails with
// ErrNotConfigured if SetSignal has never been called.
func (d *FastSSC[T]) Decode() (bits []byte, err error) {
	defer errs.Recover(&err)
	errs.Assert(d.signalSet, ErrNotConfigured)
	bits, _ = d.decodeWithOverrides(nil)
	d.bits = bits
	return bits, nil
}

// leafInfo is one depth-first-registering leaf's position in decode order
// (assigned deterministically by a pre-order walk of the simplified tree,
// so the same id addresses the same leaf across repeat decodes of the same
// tree) and its scalar reliability.
type leafInfo struct {
	id  int
	rel float64
}

// decodeWithOverrides runs a full decode from the root, applying overrides
// at the leaf ids they name (option 1, the "swap weakest" alternative;
// absent or option 0 is the ordinary closed-form decision) and returns both
// the decoded codeword and the ordered list of registering leaves (One,
// Rep, Half, SPC) with their post-decode reliability, for DepthFirst's use.
// Zero leaves never register: they carry no information and are never a
// flip candidate.
func (d *FastSSC[T]) decodeWithOverrides(overrides map[int]byte) ([]byte, []leafInfo) {
	bits := make([]byte, d.n)
	reliab := make([]float64, d.n)
	counter := 0
	var leaves []leafInfo
	d.decode(d.root, d.signal, bits, reliab, overrides, &counter, &leaves)
	d.reliab = reliab
	return bits, leaves
}

// InfoBitsPacked packs the most recently decoded information bits (frozen
// bits skipped) into out, MSB-first within each byte.
func (d *FastSSC[T]) InfoBitsPacked(out []byte) {
	info := informationBits(d.bits, d.frozen, d.systematic)
	errs.Assert(len(out) == (len(info)+7)/8, errLengthMismatch)
	packBits(info, out)
}

// SoftOutput writes the per-position soft decision of the most recent
// Decode into out: the magnitude is the deciding kernel's confidence for
// that slot and the sign carries the decided bit (negative means 1),
// matching the input LLR sign convention.
func (d *FastSSC[T]) SoftOutput(out []float64) {
	errs.Assert(len(out) == d.n, errLengthMismatch)
	for i, r := range d.reliab {
		if d.bits[i] != 0 {
			r = -r
		}
		out[i] = r
	}
}

// registerLeaf assigns the next leaf id (in pre-order decode sequence),
// applies overrides[id] if present (any nonzero value selects option 1),
// and appends the leaf's reliability to *leaves, returning the chosen
// option so the caller's kernel can act on it.
func registerLeaf(overrides map[int]byte, counter *int, leaves *[]leafInfo, rel float64) byte {
	id := *counter
	*counter++
	if leaves != nil {
		*leaves = append(*leaves, leafInfo{id: id, rel: rel})
	}
	return overrides[id]
}

func (d *FastSSC[T]) decode(node *tree.Node, llr []T, bitsOut []byte, relOut []float64, overrides map[int]byte, counter *int, leaves *[]leafInfo) {
	switch node.Tag {
	case tree.Zero:
		for i := 0; i < node.Length; i++ {
			bitsOut[i] = 0
			relOut[i] = math.MaxFloat64
		}
	case tree.One:
		minAbs := math.MaxFloat64
		minIdx := 0
		for i, v := range llr {
			bitsOut[i] = d.arith.Hard(v)
			relOut[i] = math.Abs(d.arith.ToFloat64(v))
			if relOut[i] < minAbs {
				minAbs = relOut[i]
				minIdx = i
			}
		}
		// Option 1 ("swap weakest"): flip only the least-reliable bit
		// of this leaf, leaving every other hard decision as decoded.
		if registerLeaf(overrides, counter, leaves, minAbs) != 0 {
			bitsOut[minIdx] ^= 1
		}
	case tree.Rep:
		sum := 0.0
		for _, v := range llr {
			sum += d.arith.ToFloat64(v)
		}
		bit := byte(0)
		if sum < 0 {
			bit = 1
		}
		mag := math.Abs(sum)
		if registerLeaf(overrides, counter, leaves, mag) != 0 {
			bit ^= 1
		}
		for i := range bitsOut {
			bitsOut[i] = bit
			relOut[i] = mag
		}
	case tree.Half:
		// Half is Rep specialized to length 2: the left child is frozen
		// (known 0), so the single information bit's combined LLR is the
		// plain sum of the two received values, not a min-sum F combine.
		sum := d.arith.ToFloat64(llr[0]) + d.arith.ToFloat64(llr[1])
		bit := byte(0)
		if sum < 0 {
			bit = 1
		}
		mag := math.Abs(sum)
		if registerLeaf(overrides, counter, leaves, mag) != 0 {
			bit ^= 1
		}
		bitsOut[0], bitsOut[1] = bit, bit
		relOut[0], relOut[1] = mag, mag
	case tree.SPC:
		parity := byte(0)
		i1, i2 := 0, 1
		abs1, abs2 := math.MaxFloat64, math.MaxFloat64
		for i, v := range llr {
			b := d.arith.Hard(v)
			bitsOut[i] = b
			parity ^= b
			relOut[i] = math.Abs(d.arith.ToFloat64(v))
			switch {
			case relOut[i] < abs1:
				i2, abs2 = i1, abs1
				i1, abs1 = i, relOut[i]
			case relOut[i] < abs2:
				i2, abs2 = i, relOut[i]
			}
		}
		// The registered reliability is the second-smallest |in[i]| if
		// parity had to be corrected (the smallest was consumed by the
		// correction flip), else the smallest.
		rel := abs1
		if parity != 0 {
			rel = abs2
		}
		// Option 1 enumerates the other parity-consistent candidate: if
		// the default already flipped i1 to fix odd parity, flip i2
		// instead (and leave i1 at its hard decision); if parity was
		// already even, flip both i1 and i2 (the next-cheapest pattern
		// that still sums to even parity).
		opt := registerLeaf(overrides, counter, leaves, rel)
		switch {
		case parity != 0 && opt != 0:
			bitsOut[i2] ^= 1
		case parity != 0:
			bitsOut[i1] ^= 1
		case opt != 0:
			bitsOut[i1] ^= 1
			bitsOut[i2] ^= 1
		}
	default:
		half := node.Length / 2
		upperH := d.pool.Allocate(half)
		defer upperH.Release()
		upper := upperH.Data()
		for i := 0; i < half; i++ {
			upper[i] = d.arith.F(llr[i], llr[i+half])
		}
		leftBits, leftRel := bitsOut[:half], relOut[:half]
		d.decode(node.Left, upper, leftBits, leftRel, overrides, counter, leaves)

		lowerH := d.pool.Allocate(half)
		defer lowerH.Release()
		lower := lowerH.Data()
		for i := 0; i < half; i++ {
			lower[i] = d.arith.G(llr[i], llr[i+half], leftBits[i])
		}
		rightBits, rightRel := bitsOut[half:], relOut[half:]
		d.decode(node.Right, lower, rightBits, rightRel, overrides, counter, leaves)

		for i := 0; i < half; i++ {
			bitsOut[i] = leftBits[i] ^ rightBits[i]
		}
	}
}

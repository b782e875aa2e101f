package decoding

// Adaptive tries a cheap Fast-SSC pass first and only falls back to the
// (much more expensive) SCL list decoder when the fast result fails an
// outer check, the "fast-then-list" strategy used when most frames decode
// correctly on the first, cheap pass.
type Adaptive[T any] struct {
	fast       *FastSSC[T]
	scl        *SCL[T]
	frozen     []bool
	systematic bool
}

// NewAdaptive builds an adaptive decoder for a block of length n with the
// given frozen-bit indices, falling back to an SCL decoder of the given
// list size. systematic must match the encoder's own systematic flag; see
// informationBits.
func NewAdaptive[T any](n int, frozenIdx []int, arith Arith[T], listSize int, systematic bool) *Adaptive[T] {
	return &Adaptive[T]{
		fast:       NewFastSSC(n, frozenIdx, arith, systematic),
		scl:        NewSCL(n, frozenIdx, arith, listSize, systematic),
		frozen:     frozenMask(n, frozenIdx),
		systematic: systematic,
	}
}

// Decode runs Fast-SSC and returns its result immediately if it satisfies
// det; otherwise it falls back to the SCL decoder.
func (a *Adaptive[T]) Decode(signal []T, det Detector) []byte {
	a.fast.SetSignal(signal)
	bits, err := a.fast.Decode()
	if err == nil && (det == nil || det.Check(informationBits(bits, a.frozen, a.systematic))) {
		return bits
	}
	return a.scl.DecodeWithDetector(signal, det)
}

// Package encoding implements the Arikan polar transform: the encoder half
// of the library, turning a length-N vector of frozen/information bits into
// a polar codeword, optionally in systematic form.
package encoding

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "encoding: " + string(e) }

// Encoder applies the length-N Arikan transform G_N = F^⊗log2(N) to a block
// of frozen and information bits.
type Encoder struct {
	n          int
	frozen     []bool
	systematic bool
}

// New builds an encoder for a block of length n with the given frozen-bit
// indices. n must be a power of two.
func New(n int, frozenIdx []int, systematic bool) (*Encoder, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, Error("N must be a power of two and at least 2")
	}
	frozen := make([]bool, n)
	for _, f := range frozenIdx {
		if f < 0 || f >= n {
			return nil, Error("frozen index out of range")
		}
		frozen[f] = true
	}
	return &Encoder{n: n, frozen: frozen, systematic: systematic}, nil
}

// Encode maps information bits to a length-N codeword (one byte per bit,
// values 0/1, in and out). info must hold exactly N - len(frozenIdx) bits, in
// ascending non-frozen index order.
func (e *Encoder) Encode(info []byte) ([]byte, error) {
	k := e.n - countFrozen(e.frozen)
	if len(info) != k {
		return nil, Error("information vector has the wrong length")
	}

	u := make([]byte, e.n)
	idx := 0
	for i := 0; i < e.n; i++ {
		if !e.frozen[i] {
			u[i] = info[idx]
			idx++
		}
	}

	x := transform(u)
	if !e.systematic {
		return x, nil
	}

	// Systematic encoding: zero the frozen positions of the transformed
	// codeword and transform again. Since the Arikan transform is an
	// involution (G_N * G_N = I over GF(2)), this yields a codeword whose
	// information positions equal the original info bits verbatim while
	// the frozen positions still decode consistently.
	for i := 0; i < e.n; i++ {
		if e.frozen[i] {
			x[i] = 0
		}
	}
	return transform(x), nil
}

// Transform applies the length-N Arikan butterfly G_N to u and returns the
// result over a fresh copy. It is its own inverse over GF(2)
// (Transform(Transform(x)) == x for any x), which is what lets a
// non-systematic decoder recover the information-bit vector from a decoded
// codeword: the Fast-SSC/SCL Combine step builds up the codeword estimate
// from the tree's leaf (information/frozen) decisions exactly the way this
// function does, so running it once more on that codeword lands back on
// the leaf-decision (U) domain, whose frozen-masked positions are then the
// original information bits.
func Transform(u []byte) []byte { return transform(u) }

// transform computes x = u * G_N in place over a copy, via the standard
// butterfly recursion (equivalent to log2(N) passes of XOR-combine).
func transform(u []byte) []byte {
	x := append([]byte(nil), u...)
	n := len(x)
	for step := 1; step < n; step *= 2 {
		for block := 0; block < n; block += 2 * step {
			for i := 0; i < step; i++ {
				a, b := block+i, block+i+step
				x[a] ^= x[b]
			}
		}
	}
	return x
}

func countFrozen(frozen []bool) int {
	n := 0
	for _, f := range frozen {
		if f {
			n++
		}
	}
	return n
}

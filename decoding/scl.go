package decoding

import (
	"math"
	"sort"

	"github.com/dsnet/golib/errs"

	"github.com/david13pod/antPolarCodes/internal/tree"
)

// SCL is a Successive Cancellation List decoder. It forks at every
// information leaf of the simplified tree and keeps the listSize
// lowest-metric paths, pruning immediately after each fork.
//
// Rep, Half and SPC leaves get the same dedicated, single-fork-per-subtree
// kernels FastSSC uses: each incoming path forks into exactly two
// candidates, costed by the sum of per-slot penalties, and the list is
// pruned once at the leaf boundary. Decomposing one of these subtrees bit
// by bit through its retained children instead, the way the generic
// recursive case does for everything else, is not an equivalent
// reformulation of the same quantity: it prunes the list at every individual
// slot rather than once per leaf, and it computes a path's cost from a
// single recombined LLR per bit rather than the sum of per-slot penalties
// the closed-form kernels use, which is a different number in general (e.g.
// raw LLRs [5,-5] deciding bit 0: the summed-penalty formula gives
// max(0,5)+max(0,-5)=5, a single recombined-LLR penalty gives 0). Only a
// bare Rate-1 leaf of length 1, and a length > 1 One subtree decomposed
// through its retained children, fork bit by bit. Zero subtrees still
// short-circuit (no bit of a Zero subtree can ever be wrong, so forking
// over them wastes list capacity on a single deterministic hypothesis).
type SCL[T any] struct {
	n          int
	frozen     []bool
	systematic bool
	root       *tree.Node
	arith      Arith[T]
	listSize   int
}

// NewSCL builds an SCL decoder for a block of length n with the given
// frozen-bit indices and a path list capped at listSize. systematic must
// match the encoder's own systematic flag; see informationBits.
func NewSCL[T any](n int, frozenIdx []int, arith Arith[T], listSize int, systematic bool) *SCL[T] {
	errs.Assert(listSize > 0, Error("list size must be positive"))
	return &SCL[T]{
		n:          n,
		frozen:     frozenMask(n, frozenIdx),
		systematic: systematic,
		root:       tree.Compress(n, frozenIdx),
		arith:      arith,
		listSize:   listSize,
	}
}

type scPath[T any] struct {
	bits   []byte
	metric float64
}

func (p *scPath[T]) clone() *scPath[T] {
	nb := make([]byte, len(p.bits))
	copy(nb, p.bits)
	return &scPath[T]{bits: nb, metric: p.metric}
}

// Decode returns the single lowest-metric surviving path's codeword.
func (d *SCL[T]) Decode(signal []T) []byte {
	return d.DecodeWithDetector(signal, nil)
}

// DecodeWithDetector returns the lowest-metric path whose information bits
// satisfy det, or the lowest-metric path overall if det is nil or no path
// satisfies it.
func (d *SCL[T]) DecodeWithDetector(signal []T, det Detector) []byte {
	errs.Assert(len(signal) == d.n, errLengthMismatch)
	init := &scPath[T]{bits: make([]byte, d.n)}
	paths, _ := d.decode(d.root, 0, [][]T{signal}, []*scPath[T]{init})

	sort.SliceStable(paths, func(i, j int) bool { return paths[i].metric < paths[j].metric })
	if det != nil {
		for _, p := range paths {
			if det.Check(informationBits(p.bits, d.frozen, d.systematic)) {
				return p.bits
			}
		}
	}
	return paths[0].bits
}

// decode walks node, forking the given paths at every information leaf and
// pruning to d.listSize after each fork. It returns the resulting path list
// together with parentIdx, a slice the same length as the result mapping
// each returned path back to its index in the input paths/llr slices.
func (d *SCL[T]) decode(node *tree.Node, offset int, llr [][]T, paths []*scPath[T]) ([]*scPath[T], []int) {
	switch node.Tag {
	case tree.Zero:
		for i, p := range paths {
			for j := 0; j < node.Length; j++ {
				p.bits[offset+j] = 0
			}
			p.metric += d.zeroPenalty(llr[i])
		}
		return paths, identity(len(paths))
	case tree.Rep, tree.Half:
		return d.forkRepLeaf(node.Length, offset, llr, paths)
	case tree.SPC:
		return d.forkSPCLeaf(node.Length, offset, llr, paths)
	}
	if node.Length == 1 {
		return d.forkLeaf(offset, llr, paths)
	}

	half := node.Length / 2
	upper := make([][]T, len(paths))
	for i, l := range llr {
		u := make([]T, half)
		for j := 0; j < half; j++ {
			u[j] = d.arith.F(l[j], l[j+half])
		}
		upper[i] = u
	}
	leftPaths, leftParent := d.decode(node.Left, offset, upper, paths)

	lower := make([][]T, len(leftPaths))
	for i, pi := range leftParent {
		l := llr[pi]
		lo := make([]T, half)
		for j := 0; j < half; j++ {
			lo[j] = d.arith.G(l[j], l[j+half], leftPaths[i].bits[offset+j])
		}
		lower[i] = lo
	}
	rightPaths, rightParent := d.decode(node.Right, offset+half, lower, leftPaths)

	for _, p := range rightPaths {
		for j := 0; j < half; j++ {
			p.bits[offset+j] ^= p.bits[offset+half+j]
		}
	}

	composed := make([]int, len(rightPaths))
	for i, li := range rightParent {
		composed[i] = leftParent[li]
	}
	return rightPaths, composed
}

// scCandidate is one forked-off path awaiting the list-wide metric sort, and
// the index of the incoming path it was cloned from (for parent tracking).
type scCandidate[T any] struct {
	path   *scPath[T]
	parent int
}

// prune sorts cands ascending by metric and keeps the best d.listSize,
// splitting the survivors back into the (paths, parentIdx) shape decode's
// callers expect.
func (d *SCL[T]) prune(cands []scCandidate[T]) ([]*scPath[T], []int) {
	sort.SliceStable(cands, func(a, b int) bool { return cands[a].path.metric < cands[b].path.metric })
	if len(cands) > d.listSize {
		cands = cands[:d.listSize]
	}
	newPaths := make([]*scPath[T], len(cands))
	parent := make([]int, len(cands))
	for i, c := range cands {
		newPaths[i] = c.path
		parent[i] = c.parent
	}
	return newPaths, parent
}

func (d *SCL[T]) forkLeaf(offset int, llr [][]T, paths []*scPath[T]) ([]*scPath[T], []int) {
	cands := make([]scCandidate[T], 0, len(paths)*2)
	for i, p := range paths {
		v := llr[i][0]
		for bit := byte(0); bit < 2; bit++ {
			np := p.clone()
			np.bits[offset] = bit
			np.metric += d.arith.Penalty(v, bit)
			cands = append(cands, scCandidate[T]{np, i})
		}
	}
	return d.prune(cands)
}

// forkRepLeaf forks every incoming path into the two candidate codewords of
// a Rep/Half subtree: bit 0 applied to every slot, and bit 1 applied to
// every slot, costed by the sum of per-slot penalties for that bit.
func (d *SCL[T]) forkRepLeaf(length, offset int, llr [][]T, paths []*scPath[T]) ([]*scPath[T], []int) {
	cands := make([]scCandidate[T], 0, len(paths)*2)
	for i, p := range paths {
		l := llr[i]
		for bit := byte(0); bit < 2; bit++ {
			np := p.clone()
			penalty := 0.0
			for j := 0; j < length; j++ {
				np.bits[offset+j] = bit
				penalty += d.arith.Penalty(l[j], bit)
			}
			np.metric += penalty
			cands = append(cands, scCandidate[T]{np, i})
		}
	}
	return d.prune(cands)
}

// forkSPCLeaf forks every incoming path into the two cheapest
// parity-consistent candidates: the natural hard decision (flipped at the
// lowest-magnitude slot if its parity is odd) and the next-cheapest
// parity-consistent alternative, mirroring the two options FastSSC's own
// SPC leaf kernel considers.
func (d *SCL[T]) forkSPCLeaf(length, offset int, llr [][]T, paths []*scPath[T]) ([]*scPath[T], []int) {
	cands := make([]scCandidate[T], 0, len(paths)*2)
	for i, p := range paths {
		l := llr[i]
		hard := make([]byte, length)
		parity := byte(0)
		i1, i2 := 0, 1
		abs1, abs2 := math.MaxFloat64, math.MaxFloat64
		for j := 0; j < length; j++ {
			hard[j] = d.arith.Hard(l[j])
			parity ^= hard[j]
			mag := math.Abs(d.arith.ToFloat64(l[j]))
			switch {
			case mag < abs1:
				i2, abs2 = i1, abs1
				i1, abs1 = j, mag
			case mag < abs2:
				i2, abs2 = j, mag
			}
		}

		for opt := 0; opt < 2; opt++ {
			np := p.clone()
			copy(np.bits[offset:offset+length], hard)
			var penalty float64
			switch {
			case parity != 0 && opt == 0:
				np.bits[offset+i1] ^= 1
				penalty = abs1
			case parity != 0:
				np.bits[offset+i2] ^= 1
				penalty = abs2
			case opt == 0:
				penalty = 0
			default:
				np.bits[offset+i1] ^= 1
				np.bits[offset+i2] ^= 1
				penalty = abs1 + abs2
			}
			np.metric += penalty
			cands = append(cands, scCandidate[T]{np, i})
		}
	}
	return d.prune(cands)
}

// zeroPenalty accumulates the frozen-leaf path-metric cost max(0, -in[i])
// over every individual bit of an all-Zero subtree, descending via the same
// F/G combine the generic recursion would use with every decided bit fixed
// at 0 (G's (1-2u) term is then always +1, i.e. plain addition), without
// allocating per-path bit buffers no decoder here ever needs to read.
func (d *SCL[T]) zeroPenalty(llr []T) float64 {
	if len(llr) == 1 {
		v := d.arith.ToFloat64(llr[0])
		if v < 0 {
			return -v
		}
		return 0
	}
	half := len(llr) / 2
	upper := make([]T, half)
	lower := make([]T, half)
	for i := 0; i < half; i++ {
		upper[i] = d.arith.F(llr[i], llr[i+half])
		lower[i] = d.arith.G(llr[i], llr[i+half], 0)
	}
	return d.zeroPenalty(upper) + d.zeroPenalty(lower)
}

func identity(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

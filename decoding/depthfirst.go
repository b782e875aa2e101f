package decoding

import "sort"

// DepthFirst augments a single Fast-SSC pass with a reliability-ranked
// redecode loop: every Rate-1, Repetition, Half and SPC leaf registers a
// scalar reliability during decode. On CRC failure, the weakest leaves are
// retried with their alternate option (the "next most likely" decision for
// that leaf kind), accumulating flips across trials rather than trying each
// in isolation: a single-bit transmission error can land on a leaf that by
// itself looks reliable, only becoming the weakest decision once an
// earlier, genuinely weak leaf has already been flipped. So the search
// explores combinations of flips, not just single ones, each a full
// re-decode from the root: flipping a leaf's decision changes every
// downstream G-combine and bit decision along the path to the root, so
// patching the final output bits directly (without redeciding what follows)
// would not reproduce what the tree actually decodes to.
type DepthFirst[T any] struct {
	fast       *FastSSC[T]
	frozen     []bool
	systematic bool
	trialLimit int
}

// NewDepthFirst builds a depth-first redecoder for a block of length n with
// the given frozen-bit indices, trying at most trialLimit re-decodes before
// falling back to the best-scoring configuration seen. systematic must
// match the encoder's own systematic flag; see informationBits.
func NewDepthFirst[T any](n int, frozenIdx []int, arith Arith[T], trialLimit int, systematic bool) *DepthFirst[T] {
	return &DepthFirst[T]{
		fast:       NewFastSSC(n, frozenIdx, arith, systematic),
		frozen:     frozenMask(n, frozenIdx),
		systematic: systematic,
		trialLimit: trialLimit,
	}
}

// Decode runs an initial Fast-SSC pass and, if its information bits fail
// det, searches combinations of leaf flips (ranked weakest leaf first,
// cascading into deeper combinations when a single flip isn't enough)
// until either a combination satisfies det or the trial budget is spent.
func (d *DepthFirst[T]) Decode(signal []T, det Detector) []byte {
	d.fast.SetSignal(signal)
	bits, leaves := d.fast.decodeWithOverrides(nil)

	if det == nil || det.Check(informationBits(bits, d.frozen, d.systematic)) {
		return bits
	}

	ranked := append([]leafInfo(nil), leaves...)
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].rel < ranked[b].rel })

	s := &cascadeSearch[T]{
		d:         d,
		det:       det,
		ranked:    ranked,
		budget:    d.trialLimit,
		bestBits:  bits,
		bestScore: sumReliability(leaves),
	}
	if found, ok := s.search(nil, 0); ok {
		return found
	}
	return s.bestBits
}

// cascadeSearch explores, depth first and in ascending-reliability order,
// every growing sequence of flipped leaf ids: trying a single flip, then
// that flip combined with the next-weakest leaf, and so on: up to budget
// total re-decodes, keeping track of the best-scoring configuration seen in
// case none of them satisfies det.
type cascadeSearch[T any] struct {
	d      *DepthFirst[T]
	det    Detector
	ranked []leafInfo

	budget    int
	bestBits  []byte
	bestScore float64
}

// search tries flipping ranked[start:] one at a time, each combined with
// the flips already named in overrides, recursing into the survivor to
// reach deeper combinations. It returns the first passing decode found, or
// (nil, false) once the trial budget is exhausted.
func (s *cascadeSearch[T]) search(overrides map[int]byte, start int) ([]byte, bool) {
	for i := start; i < len(s.ranked) && s.budget > 0; i++ {
		s.budget--

		trialOverrides := make(map[int]byte, len(overrides)+1)
		for id, opt := range overrides {
			trialOverrides[id] = opt
		}
		trialOverrides[s.ranked[i].id] = 1

		trial, trialLeaves := s.d.fast.decodeWithOverrides(trialOverrides)
		if s.det.Check(informationBits(trial, s.d.frozen, s.d.systematic)) {
			return trial, true
		}
		if score := sumReliability(trialLeaves); score > s.bestScore {
			s.bestScore, s.bestBits = score, trial
		}

		if found, ok := s.search(trialOverrides, i+1); ok {
			return found, true
		}
	}
	return nil, false
}

func sumReliability(leaves []leafInfo) float64 {
	sum := 0.0
	for _, l := range leaves {
		sum += l.rel
	}
	return sum
}

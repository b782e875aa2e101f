// Package tree builds the simplified polar decoding tree: a full binary
// tree of depth log2(N) whose every node is tagged with the specialized
// sub-code it represents, computed bottom-up from the frozen-bit set.
package tree

// Tag classifies a node's decoding kernel.
type Tag int

const (
	// Zero is an all-frozen subtree: every output bit is 0.
	Zero Tag = iota
	// One is an all-information subtree: every output bit is a hard
	// decision of its input LLR.
	One
	// Rep is a repetition code: a single information bit repeated across
	// every slot.
	Rep
	// SPC is a single-parity-check code: every bit but one carries
	// information, with even parity enforced.
	SPC
	// Half is Rep specialized to length 2 (the leaf-pair Zero/One merge).
	Half
	// ZeroR is a subtree whose left half is Zero and whose right half is
	// a non-trivial node.
	ZeroR
	// ROne is a subtree whose right half is One and whose left half is any
	// tag other than One (a Zero left half included, once length > 2).
	ROne
	// ZeroSpc is ZeroR specialized to a right half tagged SPC.
	ZeroSpc
	// Generic is the fallback: no closed-form shortcut applies.
	Generic
)

func (t Tag) String() string {
	switch t {
	case Zero:
		return "Zero"
	case One:
		return "One"
	case Rep:
		return "Rep"
	case SPC:
		return "SPC"
	case Half:
		return "Half"
	case ZeroR:
		return "ZeroR"
	case ROne:
		return "ROne"
	case ZeroSpc:
		return "ZeroSpc"
	case Generic:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Node is one node of the simplified decoding tree. Left and Right are
// populated for every node of Length > 1, regardless of Tag, including the
// closed-form tags (Zero, One, Rep, Half, SPC), whose decoders are free to
// ignore them. This lets a decoder that needs finer-grained access (SCL,
// decomposing a long One run bit by bit) walk the full tree, while a
// decoder that only wants the closed-form shortcut (FastSSC) can dispatch on
// Tag alone.
type Node struct {
	Tag    Tag
	Length int
	Left   *Node
	Right  *Node
}

// Compress builds the simplified decoding tree for a block of length n given
// the sorted, ascending frozen-bit index set.
func Compress(n int, frozen []int) *Node {
	isFrozen := make([]bool, n)
	for _, f := range frozen {
		isFrozen[f] = true
	}
	return build(isFrozen, 0, n)
}

func build(frozen []bool, lo, length int) *Node {
	if length == 1 {
		if frozen[lo] {
			return &Node{Tag: Zero, Length: 1}
		}
		return &Node{Tag: One, Length: 1}
	}
	half := length / 2
	left := build(frozen, lo, half)
	right := build(frozen, lo+half, half)
	return merge(left, right, length)
}

// merge computes the tag for a node given its two already-tagged children,
// most specific pattern first: ZeroSpc must be checked before ZeroR, which
// would otherwise shadow it.
func merge(left, right *Node, length int) *Node {
	n := &Node{Length: length, Left: left, Right: right}
	switch {
	case left.Tag == Zero && right.Tag == Zero:
		n.Tag = Zero
	case left.Tag == One && right.Tag == One:
		n.Tag = One
	case length == 2 && left.Tag == Zero && right.Tag == One:
		n.Tag = Half
	case (left.Tag == Half || left.Tag == SPC) && right.Tag == One:
		n.Tag = SPC
	case left.Tag == Zero && (right.Tag == Half || right.Tag == Rep):
		n.Tag = Rep
	case right.Tag == One && left.Tag != One:
		n.Tag = ROne
	case left.Tag == Zero && right.Tag == SPC && length >= 4:
		n.Tag = ZeroSpc
	case left.Tag == Zero && right.Tag != Zero:
		n.Tag = ZeroR
	default:
		n.Tag = Generic
	}
	return n
}

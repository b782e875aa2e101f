// Package container implements the three interchangeable length-N bit stores
// used to move data in and out of the polar decoders: a soft (float64) LLR
// store, a signed-byte (int8) LLR store, and a packed-bit store matching the
// external wire format directly.
//
// All three share one packed-bit contract (big-endian within each byte, MSB
// first) implemented once against the small bitSlots interface below, on top
// of github.com/dsnet/golib/bits for the in-byte addressing.
package container

import (
	"github.com/dsnet/golib/bits"
	"github.com/dsnet/golib/errs"
)

// Container is the common bit-level contract every store satisfies.
type Container interface {
	// Len reports the number of logical bits the container holds.
	Len() int

	// InsertPacked reads ⌈N/8⌉ bytes, MSB-first within each byte, and
	// populates every slot.
	InsertPacked(data []byte)

	// InsertPackedInformation reads ⌈K/8⌉ bytes where K = Len()-len(frozen)
	// and populates only the non-frozen slots, in ascending index order.
	// Frozen slots are set to the zero element.
	InsertPackedInformation(data []byte, frozen []int)

	// GetPacked is the inverse of InsertPacked.
	GetPacked(out []byte)

	// GetPackedInformation is the inverse of InsertPackedInformation.
	GetPackedInformation(out []byte, frozen []int)

	// ResetFrozen forces every slot named in frozen to the zero element.
	ResetFrozen(frozen []int)
}

// LLRContainer is a Container that additionally accepts raw LLR values, for
// use as a decoder's input store.
type LLRContainer interface {
	Container

	// InsertLLR loads N real-valued LLRs. Implementations that cannot
	// represent the full range (CharContainer) saturate.
	InsertLLR(src []float64)
}

// bitSlots is the minimal per-container primitive the shared packing helpers
// need: addressable 0/1 slots.
type bitSlots interface {
	Len() int
	SetBit(i int, bit byte)
	GetBit(i int) byte
}

func packedLen(n int) int { return (n + 7) / 8 }

// wireBit maps this package's external big-endian, MSB-first logical bit
// index (byte i/8, bit 7-i%8 is logical bit i) onto golib/bits's own
// position numbering, which addresses the least significant bit of the
// first byte as position 0. Complementing the in-byte offset converts one
// numbering into the other.
func wireBit(i int) int {
	return i/8*8 + (7 - i%8)
}

// getBitFromPacked reads logical bit i (0 or 1) from a big-endian,
// MSB-first packed byte slice.
func getBitFromPacked(data []byte, i int) byte {
	if bits.Get(data, wireBit(i)) {
		return 1
	}
	return 0
}

// setBitInPacked writes logical bit i into a big-endian, MSB-first packed
// byte slice.
func setBitInPacked(data []byte, i int, bit byte) {
	bits.Set(data, bit != 0, wireBit(i))
}

func insertPacked(s bitSlots, data []byte) {
	n := s.Len()
	errs.Assert(len(data) == packedLen(n), errSizeMismatch)
	for i := 0; i < n; i++ {
		s.SetBit(i, getBitFromPacked(data, i))
	}
}

func getPacked(s bitSlots, out []byte) {
	n := s.Len()
	errs.Assert(len(out) == packedLen(n), errSizeMismatch)
	for i := range out {
		out[i] = 0
	}
	for i := 0; i < n; i++ {
		setBitInPacked(out, i, s.GetBit(i))
	}
}

func isFrozen(frozen []int, i int) bool {
	// frozen is short (N-K entries) and sorted; linear scan keeps this
	// helper allocation-free and is fast enough at the block sizes these
	// containers target.
	for _, f := range frozen {
		if f == i {
			return true
		}
		if f > i {
			break
		}
	}
	return false
}

func insertPackedInformation(s bitSlots, data []byte, frozen []int) {
	n := s.Len()
	k := n - len(frozen)
	errs.Assert(len(data) == packedLen(k), errSizeMismatch)
	infoIdx := 0
	for i := 0; i < n; i++ {
		if isFrozen(frozen, i) {
			s.SetBit(i, 0)
			continue
		}
		s.SetBit(i, getBitFromPacked(data, infoIdx))
		infoIdx++
	}
}

func getPackedInformation(s bitSlots, out []byte, frozen []int) {
	n := s.Len()
	k := n - len(frozen)
	errs.Assert(len(out) == packedLen(k), errSizeMismatch)
	for i := range out {
		out[i] = 0
	}
	infoIdx := 0
	for i := 0; i < n; i++ {
		if isFrozen(frozen, i) {
			continue
		}
		setBitInPacked(out, infoIdx, s.GetBit(i))
		infoIdx++
	}
}

func resetFrozen(s bitSlots, frozen []int) {
	for _, f := range frozen {
		s.SetBit(f, 0)
	}
}

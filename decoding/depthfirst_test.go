package decoding

import (
	"bytes"
	"testing"

	"github.com/david13pod/antPolarCodes/construct"
	"github.com/david13pod/antPolarCodes/encoding"
)

func TestDepthFirstAcceptsFirstPassWhenDetectorIsSatisfied(t *testing.T) {
	const n, k = 8, 4
	frozen, err := construct.Frozen(n, k, 0)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	info := []byte{0, 1, 1, 0}
	codeword, err := enc.Encode(info)
	if err != nil {
		t.Fatal(err)
	}
	signal := bitsToLLR(codeword, 10)

	df := NewDepthFirst(n, frozen, Float64Arith{}, n, false)
	got := df.Decode(signal, wantDetector{want: info})
	if !bytes.Equal(got, codeword) {
		t.Fatalf("Decode() = %v, want %v (no flips should have been needed)", got, codeword)
	}
}

func TestDepthFirstFindsTargetAmongAllSingleFlips(t *testing.T) {
	// A clean, unambiguous signal decodes exactly via Fast-SSC (the closed
	// forms are exact, not approximate). The tree (frozen {0,1,2,4}) has two
	// registering leaves, a Rep and an SPC. Pick as detector target the
	// result of flipping the SPC leaf alone: with all its inputs at equal
	// magnitude, its alternate option flips its first two slots, which in
	// the information domain changes info[1] only. A trial budget at least
	// as large as the number of leaves is guaranteed to try that single
	// flip.
	const n, k = 8, 4
	frozen, err := construct.Frozen(n, k, 0)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	info := []byte{1, 0, 0, 1}
	codeword, err := enc.Encode(info)
	if err != nil {
		t.Fatal(err)
	}
	signal := bitsToLLR(codeword, 10)

	target := append([]byte(nil), info...)
	target[1] ^= 1

	df := NewDepthFirst(n, frozen, Float64Arith{}, n, false)
	got := df.Decode(signal, wantDetector{want: target})

	frozenMaskFor := frozenMask(n, frozen)
	if gotInfo := informationBits(got, frozenMaskFor, false); !bytes.Equal(gotInfo, target) {
		t.Fatalf("DepthFirst failed to reach target %v, got %v", target, gotInfo)
	}
}

func TestDepthFirstRecoversWrongSPCDecisionOnSecondTrial(t *testing.T) {
	// N=8 with only bit 0 frozen compresses to a single SPC node covering
	// the whole block. Receiving the two least-confident positions with the
	// wrong sign leaves the hard decision at even parity, so the first pass
	// sees nothing to correct and hands back a two-bit-wrong codeword. The
	// SPC leaf's alternate option is exactly the next-cheapest
	// parity-consistent pattern: flipping both of those weakest slots, so
	// a budget of two trials must recover the transmitted frame.
	const n, k = 8, 7
	frozen := []int{0}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	info := []byte{1, 0, 1, 1, 0, 1, 0}
	codeword, err := enc.Encode(info)
	if err != nil {
		t.Fatal(err)
	}
	signal := bitsToLLR(codeword, 10)

	flipWeak := func(pos int, mag float64) {
		if codeword[pos] == 0 {
			signal[pos] = -mag
		} else {
			signal[pos] = mag
		}
	}
	flipWeak(2, 1)
	flipWeak(5, 2)

	fast := NewFastSSC(n, frozen, Float64Arith{}, false)
	fast.SetSignal(signal)
	firstPass, err := fast.Decode()
	if err != nil {
		t.Fatal(err)
	}
	frozenMaskFor := frozenMask(n, frozen)
	if bytes.Equal(informationBits(firstPass, frozenMaskFor, false), info) {
		t.Fatal("first pass unexpectedly corrected the even-parity double error")
	}

	df := NewDepthFirst(n, frozen, Float64Arith{}, 2, false)
	got := df.Decode(signal, wantDetector{want: info})
	if gotInfo := informationBits(got, frozenMaskFor, false); !bytes.Equal(gotInfo, info) {
		t.Fatalf("DepthFirst(trialLimit=2) info = %v, want %v", gotInfo, info)
	}
}

func TestDepthFirstFallsBackWhenNoFlipSatisfiesDetector(t *testing.T) {
	const n, k = 8, 4
	frozen, err := construct.Frozen(n, k, 0)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	info := []byte{1, 1, 0, 0}
	codeword, err := enc.Encode(info)
	if err != nil {
		t.Fatal(err)
	}
	signal := bitsToLLR(codeword, 10)

	// A detector that rejects everything forces every trial to fail; Decode
	// must fall back to the highest-scoring configuration rather than panic
	// or return garbage. On this clean signal no flipped configuration has a
	// higher summed reliability than the first pass, so that is the
	// original, zero-flip result.
	df := NewDepthFirst(n, frozen, Float64Arith{}, n, false)
	got := df.Decode(signal, alwaysRejectDetector{})
	if !bytes.Equal(got, codeword) {
		t.Fatalf("fallback Decode() = %v, want original %v", got, codeword)
	}
}

type alwaysRejectDetector struct{}

func (alwaysRejectDetector) Check(info []byte) bool { return false }

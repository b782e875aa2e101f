package decoding

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/david13pod/antPolarCodes/construct"
	"github.com/david13pod/antPolarCodes/encoding"
)

// wantDetector is a test double standing in for a real outer check (a CRC,
// in a production caller): it simply compares against a known-correct
// information vector, which is exactly what's needed to test whether the
// decoders' own path-selection logic finds the right path.
type wantDetector struct{ want []byte }

func (w wantDetector) Check(info []byte) bool { return bytes.Equal(info, w.want) }

func TestSCLListSizeOneMatchesFastSSC(t *testing.T) {
	const n, k = 16, 8
	frozen, err := construct.Frozen(n, k, 1)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	info := []byte{1, 0, 1, 1, 0, 1, 0, 0}
	codeword, err := enc.Encode(info)
	if err != nil {
		t.Fatal(err)
	}
	signal := bitsToLLR(codeword, 10)

	fast := NewFastSSC(n, frozen, Float64Arith{}, false)
	fast.SetSignal(signal)
	fastBits, err := fast.Decode()
	if err != nil {
		t.Fatal(err)
	}

	scl := NewSCL(n, frozen, Float64Arith{}, 1, false)
	sclBits := scl.Decode(signal)

	if !bytes.Equal(fastBits, sclBits) {
		t.Fatalf("SCL(listSize=1) = %v, FastSSC = %v; want equal", sclBits, fastBits)
	}
}

func TestSCLExhaustiveListFindsAnyInfoPattern(t *testing.T) {
	// With a list size no smaller than 2^K, pruning never discards a path:
	// the candidate count after forking every one of the K information
	// leaves is exactly 2^K, so the path matching any given information
	// pattern is guaranteed to survive to the end regardless of the
	// signal. This makes the test independent of decoder numerics: it
	// checks the fork/prune bookkeeping is exhaustive and correct, not
	// that a particular noise realization gets corrected.
	//
	// This only holds when every information leaf the tree compresses to
	// forks over its full degree of freedom: Rep/Half leaves always carry
	// exactly one information bit regardless of length and One subtrees are
	// decomposed into length-1 leaves, so forking two candidates is already
	// exhaustive for them (Zero leaves carry none and never fork), but an SPC
	// leaf of length m carries m-1 information bits while the SPC kernel
	// only forks its two cheapest parity-consistent candidates (matching
	// real SCL practice, not a full 2^(m-1) enumeration). So N=4/K=2 is chosen
	// here specifically because its compressed tree (frozen {0,1}) bottoms
	// out in Zero/One leaves only, with no SPC node to make some patterns
	// unreachable at any list size.
	const n, k = 4, 2
	frozen, err := construct.Frozen(n, k, 0)
	if err != nil {
		t.Fatal(err)
	}
	scl := NewSCL(n, frozen, Float64Arith{}, 1<<k, false)

	// A deliberately uninformative, uniform signal: no individual bit's
	// sign or magnitude favors any particular decoding.
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 0.1
	}

	for info0 := byte(0); info0 < 2; info0++ {
		for info1 := byte(0); info1 < 2; info1++ {
			want := []byte{info0, info1}
			got := scl.DecodeWithDetector(signal, wantDetector{want: want})
			frozenMaskFor := frozenMask(n, frozen)
			if gotInfo := informationBits(got, frozenMaskFor, false); !bytes.Equal(gotInfo, want) {
				t.Fatalf("exhaustive SCL failed to surface info pattern %v, got %v", want, gotInfo)
			}
		}
	}
}

func TestSCLSPCForksTwoCheapestParityConsistentCandidates(t *testing.T) {
	// N=8/K=3 (frozen {0,1,2,3,4}) compresses entirely to a single SPC leaf
	// of length 4 covering all 3 information bits (root tag ZeroSpc, whose
	// Zero half is free and whose SPC half carries every non-frozen bit).
	// With the two-candidate fork enumeration, only the two lowest-cost parity
	// candidates ever survive regardless of list size, so an arbitrary
	// 3-bit information pattern is reachable only when it happens to be
	// one of those two per signal: this test checks the one pattern that
	// is always reachable (the strong all-positive signal's own all-zero hard decision, with even
	// parity and so zero flips) actually comes back as the best path.
	const n, k = 8, 3
	frozen, err := construct.Frozen(n, k, 0)
	if err != nil {
		t.Fatal(err)
	}

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = 5
	}

	scl := NewSCL(n, frozen, Float64Arith{}, 1<<k, false)
	got := scl.Decode(signal)
	frozenMaskFor := frozenMask(n, frozen)
	gotInfo := informationBits(got, frozenMaskFor, false)
	want := []byte{0, 0, 0}
	if !bytes.Equal(gotInfo, want) {
		t.Fatalf("best SPC path = %v, want %v (strong positive LLRs decide all-0 with even parity)", gotInfo, want)
	}
}

func TestSCLRecoversWeakenedLastInformationBit(t *testing.T) {
	// N=16, K=8 at 5 dB, all-ones information byte. The codeword bit at the
	// largest information index is received with the wrong sign but only
	// unit magnitude against a base magnitude of 10: the correct path pays
	// at most 1 in metric for disagreeing with that one weak observation,
	// while any competing path must contradict a strong decision (cost 9 or
	// more) somewhere, so a list of 4 always carries the true path to the
	// end and ranks it first.
	const n, k = 16, 8
	frozen, err := construct.Frozen(n, k, 5)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	info := []byte{1, 1, 1, 1, 1, 1, 1, 1} // 0xFF
	codeword, err := enc.Encode(info)
	if err != nil {
		t.Fatal(err)
	}
	signal := bitsToLLR(codeword, 10)

	frozenMaskFor := frozenMask(n, frozen)
	weakest := -1
	for i := n - 1; i >= 0; i-- {
		if !frozenMaskFor[i] {
			weakest = i
			break
		}
	}
	if codeword[weakest] == 0 {
		signal[weakest] = -1
	} else {
		signal[weakest] = 1
	}

	scl := NewSCL(n, frozen, Float64Arith{}, 4, false)
	got := scl.Decode(signal)
	if gotInfo := informationBits(got, frozenMaskFor, false); !bytes.Equal(gotInfo, info) {
		t.Fatalf("SCL(L=4) info = %v, want all ones", gotInfo)
	}
}

func TestSCLSeededNoiseRoundTrip(t *testing.T) {
	// A deterministic stand-in for a Monte-Carlo block-error run: N=1024,
	// K=512 at 5 dB design SNR, a handful of random frames through an AWGN
	// channel quiet enough (sigma well below the unit BPSK amplitude) that
	// no channel LLR sign can realistically flip, decoded with a list of 8.
	// The seed pins the noise, so the test is exact rather than statistical.
	const (
		n, k  = 1024, 512
		sigma = 0.1
	)
	frozen, err := construct.Frozen(n, k, 5)
	if err != nil {
		t.Fatal(err)
	}
	enc, err := encoding.New(n, frozen, false)
	if err != nil {
		t.Fatal(err)
	}
	frozenMaskFor := frozenMask(n, frozen)
	scl := NewSCL(n, frozen, Float64Arith{}, 8, false)

	rng := rand.New(rand.NewSource(1))
	for frame := 0; frame < 3; frame++ {
		info := make([]byte, k)
		for i := range info {
			info[i] = byte(rng.Intn(2))
		}
		codeword, err := enc.Encode(info)
		if err != nil {
			t.Fatal(err)
		}

		signal := make([]float64, n)
		for i, b := range codeword {
			tx := 1.0
			if b != 0 {
				tx = -1.0
			}
			rx := tx + rng.NormFloat64()*sigma
			signal[i] = 2 * rx / (sigma * sigma)
		}

		got := scl.Decode(signal)
		if gotInfo := informationBits(got, frozenMaskFor, false); !bytes.Equal(gotInfo, info) {
			t.Fatalf("frame %d: SCL(L=8) failed to recover seeded-noise frame", frame)
		}
	}
}

func TestSCLFallsBackToBestMetricWithoutDetector(t *testing.T) {
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

	scl := NewSCL(n, frozen, Float64Arith{}, 4, false)
	got := scl.Decode(signal)
	if !bytes.Equal(got, codeword) {
		t.Fatalf("Decode() = %v, want %v", got, codeword)
	}
}

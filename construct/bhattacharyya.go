// Package construct builds polar code frozen sets from a Bhattacharyya-
// parameter estimate of each synthetic channel's reliability.
package construct

import (
	"math"
	"math/bits"
	"sort"

	"github.com/david13pod/antPolarCodes/internal"
)

// Error is the wrapper type for errors specific to this package.
type Error string

func (e Error) Error() string { return "construct: " + string(e) }

// Frozen returns the N-K indices (sorted ascending) of the least reliable
// synthetic channels for a block of length n, information length k, and
// design SNR in dB, using the Bhattacharyya-parameter recursion.
func Frozen(n, k int, designSNRdB float64) ([]int, error) {
	if n < 2 || n&(n-1) != 0 {
		return nil, Error("N must be a power of two and at least 2")
	}
	if k <= 0 || k >= n {
		return nil, Error("K must satisfy 0 < K < N")
	}

	levels := bits.Len(uint(n)) - 1 // n == 1<<levels

	s := math.Pow(10, designSNRdB/10) * (float64(k) / float64(n))
	z := make([]float64, n)
	z[0] = -s
	for l := 0; l < levels; l++ {
		span := 1 << l
		for j := 0; j < span; j++ {
			zj := z[j]
			z[j+span] = 2 * zj
			z[j] = logDomainDiff(math.Ln2+zj, 2*zj)
		}
	}

	// Bit-reversal permutation (levels-bit indices).
	permuted := make([]float64, n)
	for i, v := range z {
		permuted[int(internal.ReverseUint32N(uint32(i), uint(levels)))] = v
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return permuted[idx[a]] < permuted[idx[b]]
	})

	frozen := append([]int(nil), idx[k:]...)
	sort.Ints(frozen)
	return frozen, nil
}

// logDomainDiff computes ln(e^a - e^b) as a + ln(1 - e^(b-a)), keeping the
// Bhattacharyya recursion in the log domain where it stays numerically sane.
func logDomainDiff(a, b float64) float64 {
	return a + math.Log1p(-math.Exp(b-a))
}

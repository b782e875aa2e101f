package decoding

import "math"

// Arith abstracts the LLR arithmetic a decoder needs over its chosen
// representation T, so FastSSC, SCL, DepthFirst and Adaptive can share one
// recursive implementation across both the soft (float64) and char (int8,
// saturating) domains. See container.SoftContainer and container.CharContainer
// for the matching external storage types.
type Arith[T any] interface {
	// F is the min-sum upper-branch combine: sign(a)*sign(b)*min(|a|,|b|).
	F(a, b T) T
	// G is the lower-branch combine given the already-decided upper bit:
	// b+a when bit==0, b-a when bit==1.
	G(a, b T, bit byte) T
	// Hard returns the sign-based hard decision of a (negative means 1).
	Hard(a T) byte
	// ToFloat64 widens a to float64 for reliability bookkeeping (SCL path
	// metrics, depth-first reliability ordering).
	ToFloat64(a T) float64
	// FromFloat64 narrows a float64 result back to T, saturating if T's
	// range is narrower (Int8Arith).
	FromFloat64(x float64) T
	// Penalty is the path-metric cost of deciding bit against a: zero if
	// Hard(a) already agrees with bit, else the magnitude of a.
	Penalty(a T, bit byte) float64
}

// Float64Arith implements Arith over raw float64 LLRs.
type Float64Arith struct{}

func (Float64Arith) F(a, b float64) float64 {
	sign := 1.0
	if (a < 0) != (b < 0) {
		sign = -1.0
	}
	return sign * math.Min(math.Abs(a), math.Abs(b))
}

func (Float64Arith) G(a, b float64, bit byte) float64 {
	if bit == 0 {
		return b + a
	}
	return b - a
}

func (Float64Arith) Hard(a float64) byte {
	if a < 0 {
		return 1
	}
	return 0
}

func (Float64Arith) ToFloat64(a float64) float64   { return a }
func (Float64Arith) FromFloat64(x float64) float64 { return x }

func (f Float64Arith) Penalty(a float64, bit byte) float64 {
	if f.Hard(a) == bit {
		return 0
	}
	return math.Abs(a)
}

var _ Arith[float64] = Float64Arith{}

// Int8Arith implements Arith over saturating int8 LLRs, matching
// container.CharContainer's representation.
type Int8Arith struct{}

func clampToInt8(x int) int8 {
	if x > 127 {
		return 127
	}
	if x < -128 {
		return -128
	}
	return int8(x)
}

func (Int8Arith) F(a, b int8) int8 {
	ai, bi := int(a), int(b)
	absA, absB := ai, bi
	if absA < 0 {
		absA = -absA
	}
	if absB < 0 {
		absB = -absB
	}
	m := absA
	if absB < m {
		m = absB
	}
	sign := 1
	if (ai < 0) != (bi < 0) {
		sign = -1
	}
	return clampToInt8(sign * m)
}

func (Int8Arith) G(a, b int8, bit byte) int8 {
	ai, bi := int(a), int(b)
	if bit == 0 {
		return clampToInt8(bi + ai)
	}
	return clampToInt8(bi - ai)
}

func (Int8Arith) Hard(a int8) byte {
	if a < 0 {
		return 1
	}
	return 0
}

func (Int8Arith) ToFloat64(a int8) float64 { return float64(a) }

func (Int8Arith) FromFloat64(x float64) int8 {
	return clampToInt8(int(math.RoundToEven(x)))
}

func (i Int8Arith) Penalty(a int8, bit byte) float64 {
	if i.Hard(a) == bit {
		return 0
	}
	return math.Abs(float64(a))
}

var _ Arith[int8] = Int8Arith{}

package container

import "math"

// CharContainer stores N log-likelihood-ratios as signed bytes. Decided
// slots hold the mask form: 0x00 (logical 0) or 0xFF / -1 (logical 1).
type CharContainer struct {
	Data []int8
}

// NewCharContainer allocates a container for n bits, all initialized to 0
// (logical 0).
func NewCharContainer(n int) *CharContainer {
	return &CharContainer{Data: make([]int8, n)}
}

func (c *CharContainer) Len() int { return len(c.Data) }

func (c *CharContainer) GetBit(i int) byte {
	if c.Data[i] < 0 {
		return 1
	}
	return 0
}

func (c *CharContainer) SetBit(i int, bit byte) {
	if bit != 0 {
		c.Data[i] = -1 // 0xFF
	} else {
		c.Data[i] = 0
	}
}

// InsertLLR saturates each input to [-128, 127] with round-to-nearest
// ties-to-even before truncating to int8.
func (c *CharContainer) InsertLLR(src []float64) {
	if len(src) != len(c.Data) {
		panic(Error("InsertLLR: length mismatch"))
	}
	for i, x := range src {
		c.Data[i] = saturateToInt8(x)
	}
}

func saturateToInt8(x float64) int8 {
	r := math.RoundToEven(x)
	switch {
	case r > 127:
		return 127
	case r < -128:
		return -128
	default:
		return int8(r)
	}
}

func (c *CharContainer) InsertPacked(data []byte) { insertPacked(c, data) }
func (c *CharContainer) GetPacked(out []byte)     { getPacked(c, out) }
func (c *CharContainer) ResetFrozen(frozen []int) { resetFrozen(c, frozen) }
func (c *CharContainer) InsertPackedInformation(data []byte, frozen []int) {
	insertPackedInformation(c, data, frozen)
}
func (c *CharContainer) GetPackedInformation(out []byte, frozen []int) {
	getPackedInformation(c, out, frozen)
}

var (
	_ Container    = (*CharContainer)(nil)
	_ LLRContainer = (*CharContainer)(nil)
)

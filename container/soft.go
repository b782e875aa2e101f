package container

import "math"

// SoftContainer stores N real-valued log-likelihood-ratios. Once a slot has
// been decided (via SetBit, from a decoder's hard decision), its sign bit
// alone carries the data bit: -0.0 is logical 1, +0.0 is logical 0, so bit
// state and LLR state share one representation.
type SoftContainer struct {
	Data []float64
}

// NewSoftContainer allocates a container for n bits, all initialized to +0
// (logical 0).
func NewSoftContainer(n int) *SoftContainer {
	return &SoftContainer{Data: make([]float64, n)}
}

func (c *SoftContainer) Len() int { return len(c.Data) }

func (c *SoftContainer) GetBit(i int) byte {
	if math.Signbit(c.Data[i]) {
		return 1
	}
	return 0
}

func (c *SoftContainer) SetBit(i int, bit byte) {
	if bit != 0 {
		c.Data[i] = math.Copysign(0, -1)
	} else {
		c.Data[i] = math.Copysign(0, 1)
	}
}

func (c *SoftContainer) InsertLLR(src []float64) {
	n := len(c.Data)
	if len(src) != n {
		panic(Error("InsertLLR: length mismatch"))
	}
	copy(c.Data, src)
}

func (c *SoftContainer) InsertPacked(data []byte) { insertPacked(c, data) }
func (c *SoftContainer) GetPacked(out []byte)     { getPacked(c, out) }
func (c *SoftContainer) ResetFrozen(frozen []int) { resetFrozen(c, frozen) }
func (c *SoftContainer) InsertPackedInformation(data []byte, frozen []int) {
	insertPackedInformation(c, data, frozen)
}
func (c *SoftContainer) GetPackedInformation(out []byte, frozen []int) {
	getPackedInformation(c, out, frozen)
}

var (
	_ Container    = (*SoftContainer)(nil)
	_ LLRContainer = (*SoftContainer)(nil)
)

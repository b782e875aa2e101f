package container

// PackedContainer stores N bits packed 8-per-byte, big-endian (MSB first),
// identical to the external wire format, so InsertPacked/GetPacked are
// direct copies, not bit-by-bit walks.
type PackedContainer struct {
	Data []byte
	n    int
}

// NewPackedContainer allocates a container for n bits.
func NewPackedContainer(n int) *PackedContainer {
	return &PackedContainer{Data: make([]byte, packedLen(n)), n: n}
}

func (c *PackedContainer) Len() int { return c.n }

func (c *PackedContainer) GetBit(i int) byte { return getBitFromPacked(c.Data, i) }

func (c *PackedContainer) SetBit(i int, bit byte) { setBitInPacked(c.Data, i, bit) }

func (c *PackedContainer) InsertPacked(data []byte) {
	if len(data) != len(c.Data) {
		panic(Error("InsertPacked: length mismatch"))
	}
	copy(c.Data, data)
}

func (c *PackedContainer) GetPacked(out []byte) {
	if len(out) != len(c.Data) {
		panic(Error("GetPacked: length mismatch"))
	}
	copy(out, c.Data)
}

func (c *PackedContainer) ResetFrozen(frozen []int) { resetFrozen(c, frozen) }

func (c *PackedContainer) InsertPackedInformation(data []byte, frozen []int) {
	insertPackedInformation(c, data, frozen)
}

func (c *PackedContainer) GetPackedInformation(out []byte, frozen []int) {
	getPackedInformation(c, out, frozen)
}

var _ Container = (*PackedContainer)(nil)

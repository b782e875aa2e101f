package polarcode

import (
	"github.com/david13pod/antPolarCodes/container"
	"github.com/david13pod/antPolarCodes/decoding"
)

// EncodeToContainer encodes info and packs the resulting codeword into a
// fresh PackedContainer, the external wire-format representation.
func (c *Code) EncodeToContainer(info []byte) (*container.PackedContainer, error) {
	codeword, err := c.Encode(info)
	if err != nil {
		return nil, err
	}
	pc := container.NewPackedContainer(c.n)
	for i, bit := range codeword {
		pc.SetBit(i, bit)
	}
	return pc, nil
}

// DecodeSoft runs a Fast-SSC decode directly against a SoftContainer's
// float64 LLRs.
func DecodeSoft(c *Code, soft *container.SoftContainer) ([]byte, error) {
	dec := NewFastSSCDecoder(c, decoding.Float64Arith{})
	dec.SetSignal(soft.Data)
	return dec.Decode()
}

// DecodeChar runs a Fast-SSC decode directly against a CharContainer's
// saturating int8 LLRs.
func DecodeChar(c *Code, ch *container.CharContainer) ([]byte, error) {
	dec := NewFastSSCDecoder(c, decoding.Int8Arith{})
	dec.SetSignal(ch.Data)
	return dec.Decode()
}

package lcd

import "github.com/thelolagemann/lr35902/pkg/bits"

// Palette maps the 4 colour indexes of a tile to a shade (0-3),
// decoded from one of BGP, OBP0 or OBP1.
type Palette [4]uint8

// Write decomposes value into its four 2-bit slots.
func (p *Palette) Write(value uint8) {
	for i := range p {
		p[i] = bits.Pair(value, uint8(i*2))
	}
}

// Read composes the register value from the slots.
func (p *Palette) Read() uint8 {
	var v uint8
	for i := range p {
		v |= (p[i] & 0x03) << (i * 2)
	}
	return v
}

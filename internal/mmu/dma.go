package mmu

import "github.com/thelolagemann/lr35902/internal/types"

// OAMSize is the number of bytes copied by an OAM DMA transfer.
const OAMSize = 0xA0

// dma copies OAMSize bytes from source<<8 into OAM. The transfer
// completes within the triggering write.
func (m *MMU) dma(source uint8) {
	from := uint16(source) << 8
	for i := uint16(0); i < OAMSize; i++ {
		m.raw[types.OAM+i] = m.Read(from + i)
	}
}

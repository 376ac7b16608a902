package mmu

import (
	"github.com/thelolagemann/lr35902/internal/types"
	"github.com/thelolagemann/lr35902/pkg/bits"
)

// TimerControl is the decoded TAC register.
//
//	Bit 2   - Timer Enable
//	Bit 1-0 - Input Clock Select (4096, 262144, 65536, 16384 Hz)
type TimerControl struct {
	Enabled bool
	Clock   uint8
}

func (t *TimerControl) write(v uint8) {
	t.Enabled = bits.Test(v, 2)
	t.Clock = v & 0x03
}

// Frequency returns the selected input clock in Hz.
func (t TimerControl) Frequency() int {
	return [4]int{4096, 262144, 65536, 16384}[t.Clock]
}

// writeIO applies a write to 0xFF00 - 0xFFFF.
func (m *MMU) writeIO(address uint16, value uint8) {
	switch address {
	case types.P1:
		if m.Input != nil {
			m.Input.Write(value)
			return
		}
		m.raw[address] = value
	case types.DIV:
		// writing any value resets the counter
		m.raw[address] = 0
		if m.Divider != nil {
			m.Divider.ResetDivider()
		}
	case types.LY:
		m.raw[address] = 0
	case types.SC:
		m.raw[address] = value | 0x7E
		if value&0x81 == 0x81 && m.Link != nil {
			// internal clock, the transfer completes immediately
			m.raw[types.SB] = m.Link.Transfer(m.raw[types.SB])
			m.raw[address] &^= types.Bit7
			m.raw[types.IF] |= types.Bit3
		}
	case types.TAC:
		m.Timer.write(value)
		m.raw[address] = value
	case types.IF, types.IE:
		m.raw[address] = value & types.InterruptMask
	case types.LCDC:
		if m.LCD.Write(value) {
			m.raw[types.LY] = 0
		}
		m.raw[address] = value
	case types.STAT:
		m.Status.Write(value)
		m.raw[address] = m.Status.Read()
	case types.DMA:
		m.dma(value)
		m.raw[address] = value
	case types.BGP:
		m.BGP.Write(value)
		m.raw[address] = value
	case types.OBP0:
		m.OBP0.Write(value)
		m.raw[address] = value
	case types.OBP1:
		m.OBP1.Write(value)
		m.raw[address] = value
	default:
		m.raw[address] = value
	}
}

type register struct {
	address uint16
	value   uint8
}

// powerUp is the register state left behind by the boot ROM.
var powerUp = []register{
	{types.P1, 0xFF},
	{types.DIV, 0xAF},
	{types.TIMA, 0x00},
	{types.TMA, 0x00},
	{types.TAC, 0xF8},
	{types.IF, 0x00},
	{types.NR10, 0x80},
	{types.NR11, 0xBF},
	{types.NR12, 0xF3},
	{types.NR14, 0xBF},
	{types.NR21, 0x3F},
	{types.NR22, 0x00},
	{types.NR24, 0xBF},
	{types.NR30, 0x7F},
	{types.NR31, 0xFF},
	{types.NR32, 0x9F},
	{types.NR33, 0xBF},
	{types.NR41, 0xFF},
	{types.NR42, 0x00},
	{types.NR43, 0x00},
	{types.NR44, 0xBF},
	{types.NR50, 0x77},
	{types.NR51, 0xF3},
	{types.NR52, 0xF1},
	{types.LCDC, 0x91},
	{types.SCY, 0x00},
	{types.SCX, 0x00},
	{types.LY, 0x00},
	{types.LYC, 0x00},
	{types.BGP, 0xFC},
	{types.OBP0, 0xFF},
	{types.OBP1, 0xFF},
	{types.WY, 0x00},
	{types.WX, 0x00},
	{types.IE, 0x00},
}

// Package mmu provides a memory management unit for the Game Boy. The
// MMU owns the 64kB address space and the cartridge bank controller,
// and applies the side effects of writes to the hardware registers.
package mmu

import (
	"github.com/thelolagemann/lr35902/internal/cartridge"
	"github.com/thelolagemann/lr35902/internal/lcd"
	"github.com/thelolagemann/lr35902/internal/types"
	"github.com/thelolagemann/lr35902/pkg/log"
)

// IOBus is the interface the CPU and interrupt controller use to
// access memory.
type IOBus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Input receives writes to, and answers reads of, the P1 register.
type Input interface {
	Read() uint8
	Write(value uint8)
}

// Divider is notified when the CPU writes to DIV.
type Divider interface {
	ResetDivider()
}

// Link is the device on the other end of the serial port. Transfer
// shifts out a byte and returns the byte shifted in.
type Link interface {
	Transfer(out uint8) uint8
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory.
type MMU struct {
	// 0x8000 - 0xFFFF, the cartridge answers reads below 0x8000
	raw [0x10000]uint8

	// 0x0000 - 0x7FFF - ROM (32kB)
	Cart cartridge.Cartridge

	// 0xFF00 - P1, nil leaves P1 as plain memory
	Input Input

	// decoded display registers, for the renderer
	LCD    lcd.Controller
	Status lcd.Status
	BGP    lcd.Palette
	OBP0   lcd.Palette
	OBP1   lcd.Palette
	Dirty  lcd.Dirty

	// decoded TAC, for the timer
	Timer TimerControl

	// 0xFF04 - DIV, nil leaves DIV as a plain register
	Divider Divider
	// 0xFF01 - 0xFF02 - SB/SC, nil leaves the port unconnected
	Link Link

	Log log.Logger
}

var _ IOBus = (*MMU)(nil)

// NewMMU returns a new MMU mapping cart, reset to the power-up state.
func NewMMU(cart cartridge.Cartridge, input Input) *MMU {
	m := &MMU{
		Cart:  cart,
		Input: input,
		Log:   log.NewNullLogger(),
	}
	m.Reset()

	return m
}

// Read returns the value at the given address. Reads have no side
// effects.
func (m *MMU) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return m.Cart.Read(address)
	case address == types.P1 && m.Input != nil:
		return m.Input.Read()
	case address == types.STAT:
		return m.Status.Read()
	}
	return m.raw[address]
}

// Read16 returns the little-endian word at address.
func (m *MMU) Read16(address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write writes value to address. The address decides how the write
// is applied, in order: bank controller commands, hardware registers,
// video RAM dirty tracking, work RAM echo and plain storage.
func (m *MMU) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		m.writeCart(address, value)
	case address >= types.IORegisters:
		m.writeIO(address, value)
	case address < 0x9800:
		if m.raw[address] != value {
			m.Dirty.MarkTile(address)
			m.raw[address] = value
		}
	case address < 0xA000:
		if m.raw[address] != value {
			m.Dirty.MarkTileMap(address)
			m.raw[address] = value
		}
	case address >= types.InternalRAM && address < 0xDE00:
		m.raw[address] = value
		m.raw[address+types.EchoDistance] = value
	case address >= types.EchoRAM && address < types.OAM:
		m.raw[address] = value
		m.raw[address-types.EchoDistance] = value
	default:
		m.raw[address] = value
	}
}

func (m *MMU) writeCart(address uint16, value uint8) {
	if !m.Cart.Banked() {
		m.Log.Debugf("mmu: ignored ROM write 0x%02X to 0x%04X", value, address)
		return
	}

	bank := m.Cart.ROMBank()
	m.Cart.Write(address, value)
	if nb := m.Cart.ROMBank(); nb != bank {
		m.Log.Debugf("mmu: switched ROM bank %d -> %d", bank, nb)
	}
}

// Set stores value at address without applying any side effects. It
// is used by collaborators that own a register, such as the timer
// counting DIV and TIMA.
func (m *MMU) Set(address uint16, value uint8) {
	if address < 0x8000 {
		return
	}
	m.raw[address] = value
}

// ROMBank returns the bank mapped at 0x4000 - 0x7FFF.
func (m *MMU) ROMBank() int {
	return m.Cart.ROMBank()
}

// Reset clears memory and replays the power-up register writes.
func (m *MMU) Reset() {
	m.raw = [0x10000]uint8{}
	m.LCD = lcd.Controller{}
	m.Status = lcd.Status{}
	m.Dirty.Clear()
	m.Timer = TimerControl{}

	for _, r := range powerUp {
		m.Write(r.address, r.value)
	}
}

var _ types.Stater = (*MMU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - memory 0x8000 - 0xFFFF ([]byte)
//   - STAT (uint8)
//   - cartridge bank controller
func (m *MMU) Load(s *types.State) {
	s.ReadData(m.raw[0x8000:])
	status := s.Read8()
	m.Cart.Load(s)

	// decode the cached register views from memory
	m.LCD.Write(m.raw[types.LCDC])
	m.Status.Write(status)
	m.Status.Coincidence = status&types.Bit2 != 0
	m.Status.Mode = status & 0x03
	m.BGP.Write(m.raw[types.BGP])
	m.OBP0.Write(m.raw[types.OBP0])
	m.OBP1.Write(m.raw[types.OBP1])
	m.Timer.write(m.raw[types.TAC])
	m.Dirty.Clear()
}

// Save implements the types.Stater interface.
func (m *MMU) Save(s *types.State) {
	s.WriteData(m.raw[0x8000:])
	s.Write8(m.Status.Read())
	m.Cart.Save(s)
}

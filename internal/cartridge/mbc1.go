package cartridge

import "github.com/thelolagemann/lr35902/internal/types"

// MemoryBankedCartridge1 represents an MBC1 cartridge. Writes to the ROM
// area select which 16kB bank is visible at 0x4000 - 0x7FFF, and the
// addressing mode.
//
//	0x2000 - 0x3FFF - ROM bank number, lower 5 bits
//	0x4000 - 0x5FFF - upper 2 bits of the ROM bank (mode 0)
//	0x6000 - 0x7FFF - banking mode select
//
// External RAM lives in bus memory; its enable and bank registers
// are accepted and ignored.
type MemoryBankedCartridge1 struct {
	baseCartridge

	romBank uint32
	upper   uint8
	lower   uint8
	mode    uint8

	banks uint32
}

// NewMemoryBankedCartridge1 returns a new MemoryBankedCartridge1 cartridge.
func NewMemoryBankedCartridge1(base baseCartridge) *MemoryBankedCartridge1 {
	m := &MemoryBankedCartridge1{
		baseCartridge: base,
		lower:         1,
		banks:         uint32(len(base.rom) / 0x4000),
	}
	m.updateRomBank()
	return m
}

// Read returns the value from the fixed bank or the selected bank.
func (m *MemoryBankedCartridge1) Read(address uint16) uint8 {
	if address < 0x4000 {
		return m.rom[address] // first bank is always fixed
	}
	return m.rom[uint32(address&0x3FFF)+m.romBank*0x4000]
}

// Write interprets the write as a controller command.
func (m *MemoryBankedCartridge1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		// RAM enable, external RAM is always mapped
	case address < 0x4000:
		m.lower = value & 0x1F
		m.updateRomBank()
	case address < 0x6000:
		m.upper = value & 0x03
		m.updateRomBank()
	case address < 0x8000:
		m.mode = value & 0x01
		m.updateRomBank()
	}
}

// updateRomBank recomputes the mapped bank. A lower bank number of 0
// selects 1, so banks 0x00, 0x20, 0x40 and 0x60 are never visible here.
func (m *MemoryBankedCartridge1) updateRomBank() {
	lower := m.lower
	if lower == 0 {
		lower = 1
	}
	bank := uint32(lower)
	if m.mode == 0 {
		bank |= uint32(m.upper) << 5
	}
	m.romBank = bank % m.banks
}

func (m *MemoryBankedCartridge1) Banked() bool { return true }

func (m *MemoryBankedCartridge1) ROMBank() int { return int(m.romBank) }

// Mode returns the addressing mode, 0 for ROM banking and 1 for RAM banking.
func (m *MemoryBankedCartridge1) Mode() uint8 { return m.mode }

var _ types.Stater = (*MemoryBankedCartridge1)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - lower (uint8)
//   - upper (uint8)
//   - mode (uint8)
func (m *MemoryBankedCartridge1) Load(s *types.State) {
	m.lower = s.Read8()
	m.upper = s.Read8()
	m.mode = s.Read8()
	m.updateRomBank()
}

// Save implements the types.Stater interface.
func (m *MemoryBankedCartridge1) Save(s *types.State) {
	s.Write8(m.lower)
	s.Write8(m.upper)
	s.Write8(m.mode)
}

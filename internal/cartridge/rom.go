package cartridge

import "github.com/thelolagemann/lr35902/internal/types"

// ROMCartridge represents a ROM cartridge. This cartridge type is the simplest
// cartridge type and has no MBC; both ROM banks are fixed.
type ROMCartridge struct {
	baseCartridge
}

// NewROMCartridge returns a new ROM cartridge.
func NewROMCartridge(base baseCartridge) *ROMCartridge {
	return &ROMCartridge{baseCartridge: base}
}

// Read returns the value at the given address.
func (r *ROMCartridge) Read(address uint16) uint8 {
	return r.rom[address]
}

// Write is a no-op, as there is no controller to receive it.
func (r *ROMCartridge) Write(uint16, uint8) {}

func (r *ROMCartridge) Banked() bool { return false }

func (r *ROMCartridge) ROMBank() int { return 1 }

// Load does nothing, as ROM is read-only.
func (r *ROMCartridge) Load(*types.State) {}

// Save does nothing, as ROM is read-only.
func (r *ROMCartridge) Save(*types.State) {}

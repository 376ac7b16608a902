package gameboy

import (
	"github.com/thelolagemann/lr35902/internal/cpu"
	"github.com/thelolagemann/lr35902/internal/types"
)

// Snapshot is a copy of the emulator state for inspection.
type Snapshot struct {
	cpu.Snapshot
	IE, IF uint8
	Bank   int
	Cycles uint64
}

// Snapshot returns a copy of the current state.
func (g *GameBoy) Snapshot() Snapshot {
	return Snapshot{
		Snapshot: g.CPU.Snapshot(),
		IE:       g.MMU.Read(types.IE),
		IF:       g.MMU.Read(types.IF),
		Bank:     g.MMU.ROMBank(),
		Cycles:   g.cycles,
	}
}

package cpu

// Snapshot is a copy of the CPU state at an instruction boundary.
type Snapshot struct {
	PC, SP    uint16
	A, F      uint8
	B, C      uint8
	D, E      uint8
	H, L      uint8
	Zero      bool
	Subtract  bool
	HalfCarry bool
	Carry     bool
	IME       bool
	Halted    bool
	Calls     []uint16
}

// Snapshot returns a copy of the current CPU state.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		PC:        c.PC,
		SP:        c.SP,
		A:         c.A,
		F:         c.F,
		B:         c.B,
		C:         c.C,
		D:         c.D,
		E:         c.E,
		H:         c.H,
		L:         c.L,
		Zero:      c.isFlagSet(FlagZero),
		Subtract:  c.isFlagSet(FlagSubtract),
		HalfCarry: c.isFlagSet(FlagHalfCarry),
		Carry:     c.isFlagSet(FlagCarry),
		IME:       c.IME,
		Halted:    c.Halted(),
		Calls:     c.Calls(),
	}
}

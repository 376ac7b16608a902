package cpu

import (
	"testing"
)

// flags builds an F value.
func flags(zero, subtract, halfCarry, carry bool) uint8 {
	var f uint8
	if zero {
		f |= 1 << FlagZero
	}
	if subtract {
		f |= 1 << FlagSubtract
	}
	if halfCarry {
		f |= 1 << FlagHalfCarry
	}
	if carry {
		f |= 1 << FlagCarry
	}
	return f
}

func TestInstruction_ADD(t *testing.T) {
	c, mem := newTestCPU()
	mem[0x0100] = 0x80 // ADD A, B

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.PC = 0x0100
			c.A, c.B, c.F = uint8(a), uint8(b), 0
			step(t, c)

			sum := a + b
			want := flags(uint8(sum) == 0, false, a&0xF+b&0xF > 0xF, sum > 0xFF)
			if c.A != uint8(sum) || c.F != want {
				t.Fatalf("ADD 0x%02X + 0x%02X: expected A=0x%02X F=0x%02X, got A=0x%02X F=0x%02X", a, b, uint8(sum), want, c.A, c.F)
			}
		}
	}
}

func TestInstruction_SUB(t *testing.T) {
	c, mem := newTestCPU()
	mem[0x0100] = 0x90 // SUB B

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			c.PC = 0x0100
			c.A, c.B, c.F = uint8(a), uint8(b), 0
			step(t, c)

			diff := a - b
			want := flags(uint8(diff) == 0, true, a&0xF < b&0xF, diff < 0)
			if c.A != uint8(diff) || c.F != want {
				t.Fatalf("SUB 0x%02X - 0x%02X: expected A=0x%02X F=0x%02X, got A=0x%02X F=0x%02X", a, b, uint8(diff), want, c.A, c.F)
			}
		}
	}
}

func TestInstruction_ALU(t *testing.T) {
	tests := []struct {
		name    string
		opcode  uint8
		a, b, f uint8
		wantA   uint8
		wantF   uint8
	}{
		{"ADC A, B with carry", 0x88, 0x0E, 0x01, flags(false, false, false, true), 0x10, flags(false, false, true, false)},
		{"ADC A, B overflow", 0x88, 0xFF, 0x00, flags(false, false, false, true), 0x00, flags(true, false, true, true)},
		{"SBC A, B with carry", 0x98, 0x10, 0x0F, flags(false, false, false, true), 0x00, flags(true, true, true, false)},
		{"AND B", 0xA0, 0xF0, 0x0F, 0, 0x00, flags(true, false, true, false)},
		{"XOR B", 0xA8, 0xFF, 0x0F, 0, 0xF0, 0},
		{"OR B", 0xB0, 0x00, 0x00, 0, 0x00, flags(true, false, false, false)},
		{"CP B equal", 0xB8, 0x42, 0x42, 0, 0x42, flags(true, true, false, false)},
		{"CP B borrow", 0xB8, 0x10, 0x20, 0, 0x10, flags(false, true, false, true)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode)
			c.A, c.B, c.F = tt.a, tt.b, tt.f

			step(t, c)

			if c.A != tt.wantA {
				t.Errorf("Expected A to be 0x%02X, got 0x%02X", tt.wantA, c.A)
			}
			if c.F != tt.wantF {
				t.Errorf("Expected F to be 0x%02X, got 0x%02X", tt.wantF, c.F)
			}
		})
	}
}

func TestInstruction_IncrementDecrement(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		value  uint8
		f      uint8
		want   uint8
		wantF  uint8
	}{
		{"INC B wraps", 0x04, 0xFF, 0, 0x00, flags(true, false, true, false)},
		{"INC B half carry", 0x04, 0x0F, 0, 0x10, flags(false, false, true, false)},
		{"INC B keeps carry", 0x04, 0x41, flags(false, false, false, true), 0x42, flags(false, false, false, true)},
		{"DEC B wraps", 0x05, 0x00, 0, 0xFF, flags(false, true, true, false)},
		{"DEC B to zero", 0x05, 0x01, 0, 0x00, flags(true, true, false, false)},
		{"DEC B keeps carry", 0x05, 0x10, flags(false, false, false, true), 0x0F, flags(false, true, true, true)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode)
			c.B, c.F = tt.value, tt.f

			step(t, c)

			if c.B != tt.want {
				t.Errorf("Expected B to be 0x%02X, got 0x%02X", tt.want, c.B)
			}
			if c.F != tt.wantF {
				t.Errorf("Expected F to be 0x%02X, got 0x%02X", tt.wantF, c.F)
			}
		})
	}

	t.Run("INC (HL)", func(t *testing.T) {
		c, mem := newTestCPU(0x34)
		c.HL.SetUint16(0xC000)
		mem[0xC000] = 0x42

		if cycles := step(t, c); cycles != 12 {
			t.Errorf("Expected 12 cycles, got %d", cycles)
		}
		if mem[0xC000] != 0x43 {
			t.Errorf("Expected memory at 0xC000 to be 0x43, got 0x%02X", mem[0xC000])
		}
	})
	t.Run("INC BC wraps", func(t *testing.T) {
		c, _ := newTestCPU(0x03)
		c.BC.SetUint16(0xFFFF)
		c.F = 0

		step(t, c)

		if c.BC.Uint16() != 0 || c.F != 0 {
			t.Errorf("Expected BC=0x0000 with flags untouched, got 0x%04X F=0x%02X", c.BC.Uint16(), c.F)
		}
	})
}

// daaReference adjusts a after a BCD operation, deriving a single
// correction from the incoming flags.
func daaReference(a uint8, subtract, halfCarry, carry bool) (uint8, bool) {
	var correction uint8
	if halfCarry || (!subtract && a&0x0F > 0x09) {
		correction |= 0x06
	}
	if carry || (!subtract && a > 0x99) {
		correction |= 0x60
		carry = true
	}
	if subtract {
		return a - correction, carry
	}
	return a + correction, carry
}

func TestInstruction_DAA(t *testing.T) {
	t.Run("0x0F with half carry", func(t *testing.T) {
		c, _ := newTestCPU(0x27)
		c.A, c.F = 0x0F, flags(false, false, true, false)

		step(t, c)

		if c.A != 0x15 || c.F != 0 {
			t.Errorf("Expected A=0x15 F=0x00, got A=0x%02X F=0x%02X", c.A, c.F)
		}
	})
	t.Run("BCD addition", func(t *testing.T) {
		// 0x45 + 0x38 = 0x83 in BCD
		c, _ := newTestCPU(0x80, 0x27)
		c.A, c.B = 0x45, 0x38

		step(t, c)
		step(t, c)

		if c.A != 0x83 {
			t.Errorf("Expected A=0x83, got 0x%02X", c.A)
		}
	})
	t.Run("reference table", func(t *testing.T) {
		c, mem := newTestCPU()
		mem[0x0100] = 0x27

		for a := 0; a < 256; a++ {
			for f := 0; f < 8; f++ {
				subtract, halfCarry, carry := f&4 != 0, f&2 != 0, f&1 != 0

				c.PC = 0x0100
				c.A, c.F = uint8(a), flags(false, subtract, halfCarry, carry)
				step(t, c)

				wantA, wantC := daaReference(uint8(a), subtract, halfCarry, carry)
				wantF := flags(wantA == 0, subtract, false, wantC)
				if c.A != wantA || c.F != wantF {
					t.Fatalf("DAA A=0x%02X N=%t H=%t C=%t: expected A=0x%02X F=0x%02X, got A=0x%02X F=0x%02X",
						a, subtract, halfCarry, carry, wantA, wantF, c.A, c.F)
				}
			}
		}
	})
}

func TestInstruction_AddHL(t *testing.T) {
	tests := []struct {
		name   string
		hl, bc uint16
		f      uint8
		want   uint16
		wantF  uint8
	}{
		{"carry from bit 11", 0x0FFF, 0x0001, 0, 0x1000, flags(false, false, true, false)},
		{"no carry from bit 7", 0x00FF, 0x0001, 0, 0x0100, 0},
		{"carry from bit 15 keeps Z", 0xFFFF, 0x0001, flags(true, true, false, false), 0x0000, flags(true, false, true, true)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(0x09)
			c.HL.SetUint16(tt.hl)
			c.BC.SetUint16(tt.bc)
			c.F = tt.f

			if cycles := step(t, c); cycles != 8 {
				t.Errorf("Expected 8 cycles, got %d", cycles)
			}
			if c.HL.Uint16() != tt.want {
				t.Errorf("Expected HL to be 0x%04X, got 0x%04X", tt.want, c.HL.Uint16())
			}
			if c.F != tt.wantF {
				t.Errorf("Expected F to be 0x%02X, got 0x%02X", tt.wantF, c.F)
			}
		})
	}
}

func TestInstruction_StackPointerOffset(t *testing.T) {
	t.Run("ADD SP, s8", func(t *testing.T) {
		c, _ := newTestCPU(0xE8, 0x08)
		c.SP = 0xFFF8

		if cycles := step(t, c); cycles != 16 {
			t.Errorf("Expected 16 cycles, got %d", cycles)
		}
		if c.SP != 0x0000 {
			t.Errorf("Expected SP to be 0x0000, got 0x%04X", c.SP)
		}
		if want := flags(false, false, true, true); c.F != want {
			t.Errorf("Expected F to be 0x%02X, got 0x%02X", want, c.F)
		}
	})
	t.Run("LD HL, SP+s8 negative", func(t *testing.T) {
		c, _ := newTestCPU(0xF8, 0xFE)
		c.SP = 0x0005

		if cycles := step(t, c); cycles != 12 {
			t.Errorf("Expected 12 cycles, got %d", cycles)
		}
		if c.HL.Uint16() != 0x0003 || c.SP != 0x0005 {
			t.Errorf("Expected HL=0x0003 SP=0x0005, got HL=0x%04X SP=0x%04X", c.HL.Uint16(), c.SP)
		}
		if want := flags(false, false, true, true); c.F != want {
			t.Errorf("Expected F to be 0x%02X, got 0x%02X", want, c.F)
		}
	})
	t.Run("ADD SP, s8 without carries", func(t *testing.T) {
		c, _ := newTestCPU(0xE8, 0xFF)
		c.SP = 0xD000

		step(t, c)

		if c.SP != 0xCFFF || c.F != 0 {
			t.Errorf("Expected SP=0xCFFF F=0x00, got SP=0x%04X F=0x%02X", c.SP, c.F)
		}
	})
}

func TestInstruction_FlagOperations(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a, f   uint8
		wantA  uint8
		wantF  uint8
	}{
		{"CPL", 0x2F, 0x35, 0, 0xCA, flags(false, true, true, false)},
		{"SCF", 0x37, 0, flags(true, true, true, false), 0, flags(true, false, false, true)},
		{"CCF set", 0x3F, 0, flags(false, true, true, false), 0, flags(false, false, false, true)},
		{"CCF clear", 0x3F, 0, flags(true, false, false, true), 0, flags(true, false, false, false)},
		{"RLCA clears Z", 0x07, 0x80, flags(true, false, false, false), 0x01, flags(false, false, false, true)},
		{"RRA through carry", 0x1F, 0x01, flags(false, false, false, true), 0x80, flags(false, false, false, true)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCPU(tt.opcode)
			c.A, c.F = tt.a, tt.f

			step(t, c)

			if c.A != tt.wantA || c.F != tt.wantF {
				t.Errorf("Expected A=0x%02X F=0x%02X, got A=0x%02X F=0x%02X", tt.wantA, tt.wantF, c.A, c.F)
			}
		})
	}
}

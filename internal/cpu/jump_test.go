package cpu

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInstruction_BranchTimings(t *testing.T) {
	zero := flags(true, false, false, false)
	tests := []struct {
		name       string
		program    []uint8
		f          uint8
		wantCycles int
		wantPC     uint16
	}{
		{"JR r8", []uint8{0x18, 0x05}, 0, 12, 0x0107},
		{"JR r8 backwards", []uint8{0x18, 0xFE}, 0, 12, 0x0100},
		{"JR NZ, r8 taken", []uint8{0x20, 0x05}, 0, 12, 0x0107},
		{"JR NZ, r8 not taken", []uint8{0x20, 0x05}, zero, 8, 0x0102},
		{"JP a16", []uint8{0xC3, 0x50, 0x01}, 0, 16, 0x0150},
		{"JP Z, a16 taken", []uint8{0xCA, 0x50, 0x01}, zero, 16, 0x0150},
		{"JP Z, a16 not taken", []uint8{0xCA, 0x50, 0x01}, 0, 12, 0x0103},
		{"CALL a16", []uint8{0xCD, 0x00, 0x02}, 0, 24, 0x0200},
		{"CALL NC, a16 taken", []uint8{0xD4, 0x00, 0x02}, 0, 24, 0x0200},
		{"CALL C, a16 not taken", []uint8{0xDC, 0x00, 0x02}, 0, 12, 0x0103},
		{"RET", []uint8{0xC9}, 0, 16, 0x0300},
		{"RET Z taken", []uint8{0xC8}, zero, 20, 0x0300},
		{"RET NZ not taken", []uint8{0xC0}, zero, 8, 0x0101},
		{"RETI", []uint8{0xD9}, 0, 16, 0x0300},
		{"RST 38H", []uint8{0xFF}, 0, 16, 0x0038},
		{"JP HL", []uint8{0xE9}, 0, 4, 0x4000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, mem := newTestCPU(tt.program...)
			c.F = tt.f
			c.HL.SetUint16(0x4000)
			// return address for RET
			c.SP = 0xFFFC
			mem[0xFFFC], mem[0xFFFD] = 0x00, 0x03

			if cycles := step(t, c); cycles != tt.wantCycles {
				t.Errorf("Expected %d cycles, got %d", tt.wantCycles, cycles)
			}
			if c.PC != tt.wantPC {
				t.Errorf("Expected PC to be 0x%04X, got 0x%04X", tt.wantPC, c.PC)
			}
		})
	}
}

func TestInstruction_CallReturn(t *testing.T) {
	// 0x0100: CALL 0x0200
	// 0x0200: RET
	c, mem := newTestCPU(0xCD, 0x00, 0x02)
	mem[0x0200] = 0xC9

	step(t, c)
	if c.SP != 0xFFFC {
		t.Fatalf("Expected SP to be 0xFFFC, got 0x%04X", c.SP)
	}
	if mem[0xFFFD] != 0x01 || mem[0xFFFC] != 0x03 {
		t.Errorf("Expected return address 0x0103 on the stack, got 0x%02X%02X", mem[0xFFFD], mem[0xFFFC])
	}

	step(t, c)
	if c.PC != 0x0103 || c.SP != 0xFFFE {
		t.Errorf("Expected PC=0x0103 SP=0xFFFE, got PC=0x%04X SP=0x%04X", c.PC, c.SP)
	}
}

func TestInstruction_RETI(t *testing.T) {
	c, mem := newTestCPU(0xD9)
	c.SP = 0xFFFC
	mem[0xFFFC], mem[0xFFFD] = 0x50, 0x01

	step(t, c)

	if !c.IME {
		t.Error("Expected RETI to enable interrupts")
	}
	if c.PC != 0x0150 {
		t.Errorf("Expected PC to be 0x0150, got 0x%04X", c.PC)
	}
}

func TestInstruction_CallHistory(t *testing.T) {
	// 0x0100: CALL C, 0x0200 (not taken)
	// 0x0103: RST 08H
	// 0x0008: CALL 0x0300
	c, mem := newTestCPU(0xDC, 0x00, 0x02, 0xCF)
	mem[0x0008], mem[0x0009], mem[0x000A] = 0xCD, 0x00, 0x03
	c.F = 0

	for i := 0; i < 3; i++ {
		step(t, c)
	}

	if diff := cmp.Diff([]uint16{0x0008, 0x0103, 0x0100}, c.Calls()); diff != "" {
		t.Errorf("call sites mismatch (-want +got):\n%s", diff)
	}
	if c.PC != 0x0300 {
		t.Errorf("Expected PC to be 0x0300, got 0x%04X", c.PC)
	}
}

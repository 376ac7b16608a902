package cpu

import (
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/go-cmp/cmp"

	"github.com/thelolagemann/lr35902/internal/types"
)

// memory is a flat 64KiB bus.
type memory [0x10000]uint8

func (m *memory) Read(address uint16) uint8 {
	return m[address]
}

func (m *memory) Write(address uint16, value uint8) {
	m[address] = value
}

// newTestCPU returns a CPU in the power-up state, with program loaded
// at 0x0100.
func newTestCPU(program ...uint8) (*CPU, *memory) {
	mem := &memory{}
	copy(mem[0x100:], program)
	return NewCPU(mem, WithHistory(DefaultHistorySize)), mem
}

// step executes a single instruction, failing the test on a fault.
func step(t *testing.T, c *CPU) int {
	t.Helper()
	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("unexpected fault: %v", err)
	}
	return cycles
}

func TestCPU_PowerUp(t *testing.T) {
	c, _ := newTestCPU()

	want := Snapshot{
		PC: 0x0100, SP: 0xFFFE,
		A: 0x01, F: 0xB0,
		B: 0x00, C: 0x13,
		D: 0x00, E: 0xD8,
		H: 0x01, L: 0x4D,
		Zero: true, HalfCarry: true, Carry: true,
		Calls: []uint16{},
	}
	if diff := cmp.Diff(want, c.Snapshot()); diff != "" {
		t.Errorf("power-up state mismatch (-want +got):\n%s", diff)
	}
}

func TestCPU_PowerUpNOP(t *testing.T) {
	c, _ := newTestCPU(0x00)
	before := c.Snapshot()

	if cycles := step(t, c); cycles != 0 {
		t.Errorf("Expected NOP to take 0 cycles, got %d", cycles)
	}

	before.PC = 0x0101
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("NOP changed state (-want +got):\n%s", diff)
	}
}

func TestCPU_HaltWithoutIME(t *testing.T) {
	c, _ := newTestCPU(0x76)

	_, err := c.Step()
	if !errors.Is(err, ErrHaltWithoutIME) {
		t.Fatalf("Expected ErrHaltWithoutIME, got %v", err)
	}

	var fault *Fault
	if !errors.As(err, &fault) {
		t.Fatalf("Expected a *Fault, got %T", err)
	}
	if fault.PC != 0x0100 || fault.Opcode != 0x76 {
		t.Errorf("Expected fault at 0x0100 with opcode 0x76, got 0x%04X with 0x%02X", fault.PC, fault.Opcode)
	}

	// the CPU stays faulted
	if _, again := c.Step(); again != err {
		t.Errorf("Expected the same fault on the next step, got %v", again)
	}
	if c.PC != 0x0101 {
		t.Errorf("Expected PC to stay at 0x0101, got 0x%04X", c.PC)
	}
}

func TestCPU_Halt(t *testing.T) {
	c, _ := newTestCPU(0xFB, 0x76, 0x00)

	step(t, c) // EI
	if !c.InterruptsEnabled() {
		t.Fatal("Expected EI to enable interrupts immediately")
	}
	step(t, c) // HALT
	if !c.Halted() || c.Stopped() {
		t.Fatal("Expected CPU to be halted")
	}

	for i := 0; i < 3; i++ {
		if cycles := step(t, c); cycles != 4 {
			t.Errorf("Expected halted step to take 4 cycles, got %d", cycles)
		}
	}
	if c.PC != 0x0102 {
		t.Errorf("Expected PC to stay at 0x0102 while halted, got 0x%04X", c.PC)
	}

	c.Resume()
	step(t, c)
	if c.PC != 0x0103 {
		t.Errorf("Expected PC 0x0103 after resuming, got 0x%04X", c.PC)
	}
}

func TestCPU_Stop(t *testing.T) {
	c, _ := newTestCPU(0x10, 0x00, 0x00)

	if cycles := step(t, c); cycles != 4 {
		t.Errorf("Expected STOP to take 4 cycles, got %d", cycles)
	}
	if c.PC != 0x0102 {
		t.Errorf("Expected STOP to consume its padding byte, PC = 0x%04X", c.PC)
	}
	if !c.Stopped() || !c.Halted() {
		t.Fatal("Expected CPU to be stopped")
	}
	if cycles := step(t, c); cycles != 4 || c.PC != 0x0102 {
		t.Errorf("Expected an idle step, got %d cycles at 0x%04X", cycles, c.PC)
	}

	c.Resume()
	step(t, c)
	if c.PC != 0x0103 {
		t.Errorf("Expected PC 0x0103 after resuming, got 0x%04X", c.PC)
	}
}

func TestCPU_UnimplementedOpcode(t *testing.T) {
	for _, opcode := range unassignedOpcodes {
		opcode := opcode
		t.Run(InstructionSet[opcode].Name(), func(t *testing.T) {
			// CALL 0x0200, then the unassigned opcode at 0x0200
			c, mem := newTestCPU(0xCD, 0x00, 0x02)
			mem[0x0200] = opcode

			step(t, c)
			_, err := c.Step()

			var fault *Fault
			if !errors.As(err, &fault) {
				t.Fatalf("Expected a *Fault, got %v", err)
			}
			if !errors.Is(err, ErrUnimplementedOpcode) {
				t.Errorf("Expected ErrUnimplementedOpcode, got %v", fault.Err)
			}
			want := &Fault{Err: ErrUnimplementedOpcode, PC: 0x0200, Opcode: opcode, Calls: []uint16{0x0100}}
			if diff := cmp.Diff(*want, *fault, cmp.Comparer(func(a, b error) bool { return a == b })); diff != "" {
				t.Errorf("fault mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFault_Error(t *testing.T) {
	f := &Fault{Err: ErrUnimplementedOpcode, PC: 0x0200, Opcode: 0xD3, Calls: []uint16{0x0150, 0x0100}}

	want := "unimplemented opcode: opcode 0xD3 at 0x0200 (calls: 0x0150 0x0100)"
	if got := f.Error(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestCPU_CallHistoryDisabled(t *testing.T) {
	mem := &memory{}
	copy(mem[0x100:], []uint8{0xCD, 0x00, 0x02})
	c := NewCPU(mem)

	step(t, c)
	if calls := c.Calls(); calls != nil {
		t.Errorf("Expected no call history, got %v", calls)
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(3)
	for _, site := range []uint16{0x100, 0x200, 0x300, 0x400} {
		h.Record(site)
	}

	if diff := cmp.Diff([]uint16{0x400, 0x300, 0x200}, h.Sites()); diff != "" {
		t.Errorf("sites mismatch (-want +got):\n%s", diff)
	}
	if h.Len() != 3 {
		t.Errorf("Expected 3 sites, got %d", h.Len())
	}

	h.Reset()
	if h.Len() != 0 || len(h.Sites()) != 0 {
		t.Errorf("Expected history to be empty after reset")
	}
}

func TestCPU_State(t *testing.T) {
	c, mem := newTestCPU()
	c.A, c.F, c.B, c.C = 0x12, 0x50, 0x34, 0x56
	c.D, c.E, c.H, c.L = 0x78, 0x9A, 0xBC, 0xDE
	c.SP, c.PC = 0xC000, 0x0150
	c.IME = true
	c.mode = ModeHalt

	s := types.NewState()
	c.Save(s)

	restored := NewCPU(mem)
	restored.Load(types.StateFromBytes(s.Bytes()))

	want := c.Snapshot()
	want.Calls = nil
	if diff := cmp.Diff(want, restored.Snapshot()); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}
}

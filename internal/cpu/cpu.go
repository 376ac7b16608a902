// Package cpu implements the Sharp LR35902 processor. The CPU executes
// one instruction per Step, accessing memory only through the bus it
// was created with.
package cpu

import (
	"github.com/thelolagemann/lr35902/internal/types"
)

const (
	// ClockSpeed is the clock speed of the CPU.
	ClockSpeed = 4194304

	// haltCycles is the cost of a step while halted or stopped.
	haltCycles = 4
)

// Bus is the memory the CPU reads and writes.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

type mode = uint8

const (
	// ModeNormal is the normal CPU mode.
	ModeNormal mode = iota
	// ModeHalt is the halt CPU mode, entered by HALT.
	ModeHalt
	// ModeStop is the stop CPU mode, entered by STOP.
	ModeStop
)

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	// IME is the interrupt master enable flag.
	IME bool

	bus  Bus
	mode mode

	// cycles taken by the current instruction beyond its base cost
	extra int
	// set by an instruction that cannot continue
	fault *Fault

	// current instruction
	opcode   uint8
	opcodePC uint16

	history *History
}

// Opt configures a CPU.
type Opt func(c *CPU)

// WithHistory enables a call site history of the given size.
func WithHistory(size int) Opt {
	return func(c *CPU) {
		c.history = NewHistory(size)
	}
}

// NewCPU creates a new CPU instance with the given bus, in the
// power-up state.
func NewCPU(bus Bus, opts ...Opt) *CPU {
	c := &CPU{
		Registers: Registers{},
		bus:       bus,
	}
	// create register pairs
	c.BC = &RegisterPair{&c.B, &c.C}
	c.DE = &RegisterPair{&c.D, &c.E}
	c.HL = &RegisterPair{&c.H, &c.L}
	c.AF = &RegisterPair{&c.A, &c.F}

	for _, opt := range opts {
		opt(c)
	}
	c.Reset()

	return c
}

// Reset sets the registers to the values left by the boot ROM.
func (c *CPU) Reset() {
	c.AF.SetUint16(0x01B0)
	c.BC.SetUint16(0x0013)
	c.DE.SetUint16(0x00D8)
	c.HL.SetUint16(0x014D)
	c.SP = 0xFFFE
	c.PC = 0x0100
	c.IME = false
	c.mode = ModeNormal
	c.fault = nil
	if c.history != nil {
		c.history.Reset()
	}
}

// Step executes the next instruction and returns the number of clock
// cycles it took. A halted or stopped CPU fetches nothing and reports
// 4 cycles. Once a fault is returned, the CPU stays faulted until Reset.
func (c *CPU) Step() (int, error) {
	if c.fault != nil {
		return 0, c.fault
	}
	if c.mode != ModeNormal {
		return haltCycles, nil
	}

	c.opcodePC = c.PC
	c.opcode = c.readOperand()
	c.extra = 0

	instruction := InstructionSet[c.opcode]
	if c.opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	}
	instruction.fn(c)

	if c.fault != nil {
		return 0, c.fault
	}
	return int(instruction.cycles) + c.extra, nil
}

// raise faults the CPU at the current instruction.
func (c *CPU) raise(err error) {
	c.fault = &Fault{
		Err:    err,
		PC:     c.opcodePC,
		Opcode: c.opcode,
		Calls:  c.Calls(),
	}
}

// Fault returns the fault the CPU stopped on, or nil.
func (c *CPU) Fault() *Fault {
	return c.fault
}

// readOperand reads the byte at PC and advances PC.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads the little-endian word at PC and advances PC.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return uint16(c.readOperand())<<8 | uint16(low)
}

// push pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) push(value uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(value>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(value))
}

// pop pops a 16 bit value off the stack, low byte first.
func (c *CPU) pop() uint16 {
	low := c.bus.Read(c.SP)
	c.SP++
	high := c.bus.Read(c.SP)
	c.SP++
	return uint16(high)<<8 | uint16(low)
}

// Call pushes PC onto the stack and jumps to address.
func (c *CPU) Call(address uint16) {
	c.push(c.PC)
	c.PC = address
}

// InterruptsEnabled returns the interrupt master enable flag.
func (c *CPU) InterruptsEnabled() bool {
	return c.IME
}

// DisableInterrupts clears the interrupt master enable flag.
func (c *CPU) DisableInterrupts() {
	c.IME = false
}

// Halted returns true if the CPU is halted or stopped.
func (c *CPU) Halted() bool {
	return c.mode != ModeNormal
}

// Stopped returns true if the CPU was stopped by STOP.
func (c *CPU) Stopped() bool {
	return c.mode == ModeStop
}

// Resume leaves the halted or stopped state.
func (c *CPU) Resume() {
	c.mode = ModeNormal
}

// Calls returns the recorded call sites, newest first, or nil if call
// history is disabled.
func (c *CPU) Calls() []uint16 {
	if c.history == nil {
		return nil
	}
	return c.history.Sites()
}

// recordCall records the current instruction as a call site.
func (c *CPU) recordCall() {
	if c.history != nil {
		c.history.Record(c.opcodePC)
	}
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - A, F, B, C, D, E, H, L (uint8)
//   - SP, PC (uint16)
//   - IME (bool)
//   - mode (uint8)
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.IME = s.ReadBool()
	c.mode = s.Read8()
	if c.mode > ModeStop {
		c.mode = ModeNormal
	}
	c.fault = nil
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.IME)
	s.Write8(c.mode)
}

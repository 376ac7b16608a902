// Package interrupts implements the interrupt controller. It keeps no
// registers of its own: IE and IF are read from and written to the
// memory bus, and dispatch is performed through the CPU's public
// surface.
package interrupts

import (
	"github.com/thelolagemann/lr35902/internal/types"
)

const (
	// VBlankFlag is the VBlank interrupt flag (bit 0),
	// which is requested every time the PPU enters
	// VBlank mode (lcd.VBlank).
	VBlankFlag = types.Bit0
	// LCDFlag is the LCD interrupt flag (bit 1), which
	// is requested by the LCD STAT register (types.STAT),
	// when certain conditions are met.
	LCDFlag = types.Bit1
	// TimerFlag is the Timer interrupt flag (bit 2),
	// which is requested when the timer overflows,
	// (types.TIMA > 0xFF).
	TimerFlag = types.Bit2
	// SerialFlag is the Serial interrupt flag (bit 3),
	// which is requested when a serial transfer is
	// completed.
	SerialFlag = types.Bit3
	// JoypadFlag is the Joypad interrupt Flag (bit 4),
	// which is requested when any of types.P1 bits 0-3
	// go from high to low, if the corresponding select
	// bit (types.P1 bit 4 or 5) is set to 0.
	JoypadFlag = types.Bit4
)

// DispatchCycles is the number of clock cycles consumed by
// dispatching an interrupt.
const DispatchCycles = 20

// Bus is the memory the controller reads IE and IF from.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// CPU is the part of the processor the controller drives.
type CPU interface {
	// InterruptsEnabled returns the interrupt master enable flag (IME).
	InterruptsEnabled() bool
	// DisableInterrupts clears IME.
	DisableInterrupts()
	// Halted returns true while the CPU is halted or stopped.
	Halted() bool
	// Resume leaves the halted or stopped state.
	Resume()
	// Call pushes PC and jumps to address.
	Call(address uint16)
}

// State is the dispatch state of the controller.
type State uint8

const (
	// Idle is the state between instruction boundaries.
	Idle State = iota
	// Dispatching is the state while a vector is being entered.
	Dispatching
)

func (s State) String() string {
	if s == Dispatching {
		return "dispatching"
	}
	return "idle"
}

// Controller is the interrupt controller.
//
// When an interrupt is requested, the corresponding bit in IF is
// set. When an interrupt is enabled, the corresponding bit in IE is
// set. When an interrupt is requested and enabled, and the IME is set,
// the CPU will jump to the interrupt vector, and the corresponding
// bit in IF will be cleared.
type Controller struct {
	bus   Bus
	state State

	// Dispatched counts the interrupts serviced per source.
	Dispatched [5]uint64
}

// New returns a new Controller reading IE and IF through bus.
func New(bus Bus) *Controller {
	return &Controller{bus: bus}
}

// State returns the current dispatch state.
func (c *Controller) State() State {
	return c.state
}

// Request requests the specified interrupt, by setting
// the corresponding bit in IF.
func (c *Controller) Request(flag uint8) {
	c.bus.Write(types.IF, c.bus.Read(types.IF)|flag)
}

// Pending returns the interrupts that are both requested and enabled.
func (c *Controller) Pending() uint8 {
	return c.bus.Read(types.IE) & c.bus.Read(types.IF) & types.InterruptMask
}

// Vector returns the highest priority pending interrupt and the
// address of its handler. Lower bits have higher priority.
func Vector(pending uint8) (flag uint8, address uint16, ok bool) {
	for i := uint8(0); i < 5; i++ {
		flag = 1 << i
		if pending&flag != 0 {
			return flag, uint16(0x0040 + i*8), true
		}
	}
	return 0, 0, false
}

// Service checks for pending interrupts at an instruction boundary. A
// pending interrupt always wakes a halted CPU; it is dispatched only
// when IME is set. Service returns the cycles consumed.
func (c *Controller) Service(cpu CPU) int {
	pending := c.Pending()
	if pending == 0 {
		return 0
	}

	if cpu.Halted() {
		cpu.Resume()
	}
	if !cpu.InterruptsEnabled() {
		return 0
	}

	c.state = Dispatching
	defer func() { c.state = Idle }()

	flag, address, _ := Vector(pending)
	cpu.DisableInterrupts()
	c.bus.Write(types.IF, c.bus.Read(types.IF)&^flag)
	cpu.Call(address)

	for i := range c.Dispatched {
		if flag == 1<<i {
			c.Dispatched[i]++
		}
	}

	return DispatchCycles
}

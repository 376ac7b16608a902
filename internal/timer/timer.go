// Package timer provides the DIV and TIMA counters. The timer runs
// beside the CPU, consuming the TAC register decoded by the bus and
// requesting the timer interrupt when TIMA overflows.
package timer

import (
	"github.com/thelolagemann/lr35902/internal/interrupts"
	"github.com/thelolagemann/lr35902/internal/mmu"
	"github.com/thelolagemann/lr35902/internal/types"
)

// Requester raises interrupt flags.
type Requester interface {
	Request(flag uint8)
}

// clockBits maps the TAC clock select to the bit of the system
// counter whose falling edge increments TIMA.
var clockBits = [4]uint16{
	1 << 9, // 4096 Hz
	1 << 3, // 262144 Hz
	1 << 5, // 65536 Hz
	1 << 7, // 16384 Hz
}

// Controller is the timer. DIV is the upper byte of a 16-bit system
// counter incremented every clock cycle.
type Controller struct {
	bus *mmu.MMU
	irq Requester

	div  uint16
	last bool
}

// New returns a timer counting in the registers of bus. The system
// counter starts from the current value of DIV.
func New(bus *mmu.MMU, irq Requester) *Controller {
	c := &Controller{
		bus: bus,
		irq: irq,
		div: uint16(bus.Read(types.DIV)) << 8,
	}
	c.last = c.selected()
	bus.Divider = c

	return c
}

// Tick advances the timer by the given number of clock cycles.
func (c *Controller) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		c.div++
		c.update()
	}
	c.bus.Set(types.DIV, uint8(c.div>>8))
}

// ResetDivider implements mmu.Divider. Clearing the counter may
// produce a falling edge on the selected bit.
func (c *Controller) ResetDivider() {
	c.div = 0
	c.update()
}

// Divider returns the full 16-bit system counter.
func (c *Controller) Divider() uint16 {
	return c.div
}

func (c *Controller) selected() bool {
	return c.bus.Timer.Enabled && c.div&clockBits[c.bus.Timer.Clock] != 0
}

// update increments TIMA on a falling edge of the selected bit. TAC is
// part of the edge detector, so disabling the timer or switching the
// clock can increment TIMA too.
func (c *Controller) update() {
	bit := c.selected()
	if c.last && !bit {
		c.increment()
	}
	c.last = bit
}

func (c *Controller) increment() {
	tima := c.bus.Read(types.TIMA) + 1
	if tima == 0 {
		tima = c.bus.Read(types.TMA)
		c.irq.Request(interrupts.TimerFlag)
	}
	c.bus.Set(types.TIMA, tima)
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - system counter (uint16)
//   - last edge (bool)
func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.last = s.ReadBool()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.WriteBool(c.last)
}

// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"github.com/thelolagemann/lr35902/internal/types"
	"github.com/thelolagemann/lr35902/pkg/bits"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// Requester raises interrupts on behalf of the joypad.
type Requester interface {
	Request(flag uint8)
}

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State holds a 1 for every pressed button, actions in the
	// lower nibble and directions in the upper nibble.
	State    uint8
	selected uint8
	irq      Requester
}

// New returns a new joypad state. irq may be nil.
func New(irq Requester) *State {
	return &State{
		selected: types.Bit4 | types.Bit5,
		irq:      irq,
	}
}

// Write stores the select bits written to P1.
func (s *State) Write(v uint8) {
	s.selected = v & (types.Bit4 | types.Bit5)
}

// Read returns the P1 register value for the current selection.
func (s *State) Read() uint8 {
	d := uint8(0)
	if s.selected&types.Bit4 == 0 {
		d |= s.State >> 4 & 0xf
	}
	if s.selected&types.Bit5 == 0 {
		d |= s.State & 0xf
	}

	return 0xC0 | s.selected | (d ^ 0xf)
}

// Press presses a button, requesting the joypad interrupt.
func (s *State) Press(button Button) {
	s.State = bits.Set(s.State, button)
	if s.irq != nil {
		s.irq.Request(types.Bit4)
	}
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State = bits.Reset(s.State, button)
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
	s.selected = st.Read8()
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
	st.Write8(s.selected)
}

package cpu

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

var (
	// ErrUnimplementedOpcode is reported when one of the unassigned
	// opcodes is executed.
	ErrUnimplementedOpcode = errors.New("unimplemented opcode")
	// ErrHaltWithoutIME is reported when HALT is executed while the
	// interrupt master enable flag is cleared.
	ErrHaltWithoutIME = errors.New("halt with interrupts disabled")
)

// Fault is a fatal execution error. Once a CPU has faulted, every
// subsequent Step returns the same Fault.
type Fault struct {
	Err    error
	PC     uint16 // address of the faulting opcode
	Opcode uint8
	// Calls holds the most recent call sites, newest first, if
	// call history is enabled.
	Calls []uint16
}

func (f *Fault) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: opcode 0x%02X at 0x%04X", f.Err, f.Opcode, f.PC)
	if len(f.Calls) > 0 {
		b.WriteString(" (calls:")
		for _, call := range f.Calls {
			fmt.Fprintf(&b, " 0x%04X", call)
		}
		b.WriteString(")")
	}
	return b.String()
}

func (f *Fault) Unwrap() error {
	return f.Err
}

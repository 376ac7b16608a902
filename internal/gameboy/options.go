package gameboy

import (
	"io"

	"github.com/thelolagemann/lr35902/pkg/log"
)

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// WithLogger sets the logger used by the GameBoy and its memory bus.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithCallHistory records the most recent size call sites, for
// diagnosing faults.
func WithCallHistory(size int) Opt {
	return func(gb *GameBoy) {
		gb.historySize = size
	}
}

// WithObserver calls fn with a snapshot at the end of every frame, on
// the goroutine running the emulation.
func WithObserver(fn func(Snapshot)) Opt {
	return func(gb *GameBoy) {
		gb.observer = fn
	}
}

// WithSerial connects a printer to the serial port, copying every byte
// the program transfers to w.
func WithSerial(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.serialOut = w
	}
}

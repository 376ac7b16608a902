package lcd

import "github.com/thelolagemann/lr35902/pkg/bits"

// Mode represents a mode of the LCD.
type Mode = uint8

const (
	// HBlank is the horizontal blanking mode.
	HBlank Mode = iota
	// VBlank is the vertical blanking mode.
	VBlank
	// OAM is the OAM search mode.
	OAM
	// VRAM is the pixel transfer mode.
	VRAM
)

// Status represents the LCD status register (0xFF41):
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag       (Mode 0-3)             (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
	// Coincidence and Mode are owned by the display.
	Coincidence bool
	Mode        Mode
}

// Write updates the writable interrupt select bits.
func (s *Status) Write(value uint8) {
	s.CoincidenceInterrupt = bits.Test(value, 6)
	s.OAMInterrupt = bits.Test(value, 5)
	s.VBlankInterrupt = bits.Test(value, 4)
	s.HBlankInterrupt = bits.Test(value, 3)
}

// Read returns the value of the status register.
func (s *Status) Read() uint8 {
	return bits.From(s.CoincidenceInterrupt, 6) |
		bits.From(s.OAMInterrupt, 5) |
		bits.From(s.VBlankInterrupt, 4) |
		bits.From(s.HBlankInterrupt, 3) |
		bits.From(s.Coincidence, 2) |
		s.Mode&0x03 |
		0x80 // bit 7 is always set
}

package types

// Bit is a single bit mask within a byte.
type Bit = uint8

const (
	Bit0 Bit = 1 << iota // 0b0000_0001
	Bit1                 // 0b0000_0010
	Bit2                 // 0b0000_0100
	Bit3                 // 0b0000_1000
	Bit4                 // 0b0001_0000
	Bit5                 // 0b0010_0000
	Bit6                 // 0b0100_0000
	Bit7                 // 0b1000_0000
)

// InterruptMask covers the 5 significant bits of IF and IE.
const InterruptMask uint8 = Bit0 | Bit1 | Bit2 | Bit3 | Bit4

// Package bits provides small helpers for working with the bits of a
// byte, as used when decomposing hardware registers.
package bits

// Val returns the value of the bit at the given index.
func Val(b uint8, i uint8) uint8 {
	return (b >> i) & 1
}

// Reset resets the bit at the given index.
func Reset(b, i uint8) uint8 {
	return b &^ (1 << i)
}

// Set sets the bit at the given index.
func Set(b, i uint8) uint8 {
	return b | (1 << i)
}

// Test tests the bit at the given index.
func Test(b, i uint8) bool {
	return (b>>i)&1 != 0
}

// Pair returns the 2-bit field starting at the given index.
func Pair(b, i uint8) uint8 {
	return (b >> i) & 0b11
}

// From returns 1 if v is set, 0 otherwise, shifted to index i.
func From(v bool, i uint8) uint8 {
	if v {
		return 1 << i
	}
	return 0
}

// Split returns the high and low bytes of a 16-bit value.
func Split(v uint16) (hi, lo uint8) {
	return uint8(v >> 8), uint8(v)
}

// Join combines a high and low byte into a 16-bit value.
func Join(hi, lo uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}

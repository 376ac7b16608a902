package cpu

// rotateLeft rotates n left by 1 bit, bit 7 moving into bit 0 and the
// carry flag.
//
//	RLC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRight rotates n right by 1 bit, bit 0 moving into bit 7 and
// the carry flag.
//
//	RRC n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRight(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n<<1 | c.carry()
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 0 data.
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n>>1 | c.carry()<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftLeftArithmetic shifts n left into the carry flag. Bit 0 is
// reset.
//
//	SLA n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) shiftLeftArithmetic(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightArithmetic shifts n right into the carry flag. Bit 7 is
// unchanged.
//
//	SRA n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) shiftRightArithmetic(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag. Bit 7 is
// reset.
//
//	SRL n
//	n = A, B, C, D, E, H, L, (HL)
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// swap the upper and lower nibbles of a byte
//
//	SWAP n
//	n = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	c.setFlags(n == 0, false, false, false)
	return n<<4 | n>>4
}

// testBit tests bit b of n.
//
//	BIT b, r
//	b = 0-7
//	r = A, B, C, D, E, H, L, (HL)
//
// Flags affected:
//
//	Z - Set if bit b of Register r is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(n uint8, b uint8) {
	c.setFlags(n&(1<<b) == 0, false, true, c.isFlagSet(FlagCarry))
}

// rotations holds the CB prefixed shift and rotate operations, in the
// order encoded by bits 3-5 of opcodes 0x00 - 0x3F.
var rotations = [8]struct {
	name string
	fn   func(c *CPU, n uint8) uint8
}{
	{"RLC", (*CPU).rotateLeft},
	{"RRC", (*CPU).rotateRight},
	{"RL", (*CPU).rotateLeftThroughCarry},
	{"RR", (*CPU).rotateRightThroughCarry},
	{"SLA", (*CPU).shiftLeftArithmetic},
	{"SRA", (*CPU).shiftRightArithmetic},
	{"SWAP", (*CPU).swap},
	{"SRL", (*CPU).shiftRightLogical},
}

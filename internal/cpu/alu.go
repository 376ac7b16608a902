package cpu

// add adds n, and the carry flag if carry is true, to the A Register.
//
//	ADD A, n
//	ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, carry bool) {
	var in uint8
	if carry {
		in = c.carry()
	}
	result := uint16(c.A) + uint16(n) + uint16(in)
	halfCarry := c.A&0xF+n&0xF+in > 0xF

	c.A = uint8(result)
	c.setFlags(c.A == 0, false, halfCarry, result > 0xFF)
}

// subtract returns A minus n, and the carry flag if carry is true,
// setting the flags accordingly.
//
// Used by:
//
//	SUB n
//	SBC A, n
//	CP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) subtract(n uint8, carry bool) uint8 {
	var in uint8
	if carry {
		in = c.carry()
	}
	result := int16(c.A) - int16(n) - int16(in)
	halfBorrow := int16(c.A&0xF)-int16(n&0xF)-int16(in) < 0

	c.setFlags(uint8(result) == 0, true, halfBorrow, result < 0)
	return uint8(result)
}

// and performs a bitwise AND operation on n and the A Register.
//
//	AND n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
//
//	OR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
//
//	XOR n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// alu applies the arithmetic or logic operation encoded in bits 3-5 of
// opcodes 0x80 - 0xBF and their d8 forms.
func (c *CPU) alu(op uint8, n uint8) {
	switch op {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.A = c.subtract(n, false)
	case 3:
		c.A = c.subtract(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	default:
		c.subtract(n, false) // CP
	}
}

var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from lower nibble.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, n&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, n&0xF == 0x0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHL adds the given value to the HL RegisterPair.
//
//	ADD HL, nn
//	nn = BC, DE, HL, SP
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(nn uint16) {
	hl := c.HL.Uint16()
	result := uint32(hl) + uint32(nn)
	c.setFlags(c.isFlagSet(FlagZero), false, hl&0xFFF+nn&0xFFF > 0xFFF, result > 0xFFFF)
	c.HL.SetUint16(uint16(result))
}

// addSPSigned returns SP plus the signed offset e.
//
//	ADD SP, e
//	LD HL, SP+e
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3 of the unsigned low byte sum.
//	C - Set if carry from bit 7 of the unsigned low byte sum.
func (c *CPU) addSPSigned(e uint8) uint16 {
	c.setFlags(false, false, c.SP&0xF+uint16(e&0xF) > 0xF, c.SP&0xFF+uint16(e) > 0xFF)
	return c.SP + uint16(int8(e))
}

// daa adjusts the A Register to a binary coded decimal after an
// addition or subtraction of two BCD values.
//
//	DAA
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Not affected.
//	H - Reset.
//	C - Set or reset according to operation.
func (c *CPU) daa() {
	if !c.isFlagSet(FlagSubtract) {
		if c.isFlagSet(FlagCarry) || c.A > 0x99 {
			c.A += 0x60
			c.setFlag(FlagCarry)
		}
		if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
			c.A += 0x06
		}
	} else if c.isFlagSet(FlagCarry) && c.isFlagSet(FlagHalfCarry) {
		c.A += 0x9a
	} else if c.isFlagSet(FlagCarry) {
		c.A += 0xa0
	} else if c.isFlagSet(FlagHalfCarry) {
		c.A += 0xfa
	}
	c.clearFlag(FlagHalfCarry)
	if c.A == 0 {
		c.setFlag(FlagZero)
	} else {
		c.clearFlag(FlagZero)
	}
}

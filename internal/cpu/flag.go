package cpu

type Flag = uint8

const (
	FlagZero      Flag = 7
	FlagSubtract  Flag = 6
	FlagHalfCarry Flag = 5
	FlagCarry     Flag = 4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= 1 << flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= 1 << flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&(1<<flag) != 0
}

// setFlags sets all four flags at once. The low nibble of F is
// always 0.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.setFlag(FlagZero)
	}
	if subtract {
		c.setFlag(FlagSubtract)
	}
	if halfCarry {
		c.setFlag(FlagHalfCarry)
	}
	if carry {
		c.setFlag(FlagCarry)
	}
}

// carry returns the carry flag as 0 or 1.
func (c *CPU) carry() uint8 {
	return (c.F >> FlagCarry) & 1
}

// condition is the branch condition encoded in bits 3-4 of the
// conditional control flow opcodes.
type condition uint8

const (
	conditionNZ condition = iota
	conditionZ
	conditionNC
	conditionC
)

var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// test returns true if the condition holds for the current flags.
func (c *CPU) test(cc condition) bool {
	switch cc {
	case conditionNZ:
		return !c.isFlagSet(FlagZero)
	case conditionZ:
		return c.isFlagSet(FlagZero)
	case conditionNC:
		return !c.isFlagSet(FlagCarry)
	default:
		return c.isFlagSet(FlagCarry)
	}
}

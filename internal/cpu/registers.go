package cpu

// Register represents a GB Register which is used to hold an 8-bit value.
// The CPU has 8 registers: A, B, C, D, E, H, L, and F. The F register is
// special in that it is used to hold the flags.
type Register = uint8

// RegisterPair represents a pair of GB Registers which is used to hold a 16-bit
// value. The CPU has 4 register pairs: AF, BC, DE, and HL.
type RegisterPair struct {
	High *Register
	Low  *Register
}

// Uint16 returns the value of the RegisterPair as an uint16.
func (r *RegisterPair) Uint16() uint16 {
	return uint16(*r.High)<<8 | uint16(*r.Low)
}

// SetUint16 sets the value of the RegisterPair to the given value.
func (r *RegisterPair) SetUint16(value uint16) {
	*r.High = uint8(value >> 8)
	*r.Low = uint8(value)
}

// Registers represents the GB CPU registers.
type Registers struct {
	A Register
	B Register
	C Register
	D Register
	E Register
	F Register
	H Register
	L Register

	BC *RegisterPair
	DE *RegisterPair
	HL *RegisterPair
	AF *RegisterPair
}

// operand is an 8-bit instruction operand, in the order the opcode
// encodes it in its low 3 bits.
type operand uint8

const (
	operandB operand = iota
	operandC
	operandD
	operandE
	operandH
	operandL
	operandHL // (HL), the byte addressed by HL
	operandA
)

var operandNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

func (o operand) String() string {
	return operandNames[o&7]
}

// get returns the value of the operand.
func (c *CPU) get(o operand) uint8 {
	switch o {
	case operandB:
		return c.B
	case operandC:
		return c.C
	case operandD:
		return c.D
	case operandE:
		return c.E
	case operandH:
		return c.H
	case operandL:
		return c.L
	case operandHL:
		return c.bus.Read(c.HL.Uint16())
	default:
		return c.A
	}
}

// set stores v in the operand.
func (c *CPU) set(o operand, v uint8) {
	switch o {
	case operandB:
		c.B = v
	case operandC:
		c.C = v
	case operandD:
		c.D = v
	case operandE:
		c.E = v
	case operandH:
		c.H = v
	case operandL:
		c.L = v
	case operandHL:
		c.bus.Write(c.HL.Uint16(), v)
	default:
		c.A = v
	}
}

// pair is a 16-bit register operand, in opcode order. Bits 4-5 of the
// opcode select SP for loads and arithmetic, and AF for the stack.
type pair uint8

const (
	pairBC pair = iota
	pairDE
	pairHL
	pairSP // AF for PUSH and POP
)

var (
	pairNames      = [4]string{"BC", "DE", "HL", "SP"}
	stackPairNames = [4]string{"BC", "DE", "HL", "AF"}
)

func (c *CPU) getPair(p pair) uint16 {
	switch p {
	case pairBC:
		return c.BC.Uint16()
	case pairDE:
		return c.DE.Uint16()
	case pairHL:
		return c.HL.Uint16()
	default:
		return c.SP
	}
}

func (c *CPU) setPair(p pair, v uint16) {
	switch p {
	case pairBC:
		c.BC.SetUint16(v)
	case pairDE:
		c.DE.SetUint16(v)
	case pairHL:
		c.HL.SetUint16(v)
	default:
		c.SP = v
	}
}

// getStackPair is getPair with AF in place of SP.
func (c *CPU) getStackPair(p pair) uint16 {
	if p == pairSP {
		return c.AF.Uint16()
	}
	return c.getPair(p)
}

// setStackPair is setPair with AF in place of SP. The low nibble of
// F always reads as 0.
func (c *CPU) setStackPair(p pair, v uint16) {
	if p == pairSP {
		c.AF.SetUint16(v & 0xFFF0)
		return
	}
	c.setPair(p, v)
}

package cpu

import (
	"fmt"
)

// Instruction is a single entry of the opcode tables.
type Instruction struct {
	// name is the mnemonic template, with immediate operands written as
	// d8, d16, a8, a16, r8 (relative jump) or s8 (signed offset).
	name string
	// cycles is the cost in clock cycles, not counting a taken branch.
	cycles uint8
	fn     func(*CPU)
}

// Name returns the mnemonic template of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the base cost of the instruction in clock cycles.
func (i Instruction) Cycles() int {
	return int(i.cycles)
}

var (
	// InstructionSet holds the base instructions, indexed by opcode.
	InstructionSet = [256]Instruction{}
	// InstructionSetCB holds the 0xCB prefixed instructions, indexed by
	// the byte following the prefix.
	InstructionSetCB = [256]Instruction{}
)

// Additional cycles taken by a branch when its condition holds.
const (
	jumpRelativeTaken = 4
	jumpTaken         = 4
	callTaken         = 12
	returnTaken       = 12
)

// instructionCycles holds the number of machine cycles (4 clock cycles
// each) per base opcode, for the branch not taken case. Unassigned
// opcodes and the 0xCB prefix are 0.
var instructionCycles = [256]uint8{
	//  0  1  2  3  4  5  6  7  8  9  A  B  C  D  E  F
	1, 3, 2, 2, 1, 1, 2, 1, 5, 2, 2, 2, 1, 1, 2, 1, // 0
	1, 3, 2, 2, 1, 1, 2, 1, 3, 2, 2, 2, 1, 1, 2, 1, // 1
	2, 3, 2, 2, 1, 1, 2, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 2
	2, 3, 2, 2, 3, 3, 3, 1, 2, 2, 2, 2, 1, 1, 2, 1, // 3
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 4
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 5
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 6
	2, 2, 2, 2, 2, 2, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, // 7
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 8
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // 9
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // A
	1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 1, 1, 1, 1, 2, 1, // B
	2, 3, 3, 4, 3, 4, 2, 4, 2, 4, 3, 0, 3, 6, 2, 4, // C
	2, 3, 3, 0, 3, 4, 2, 4, 2, 4, 3, 0, 3, 0, 2, 4, // D
	3, 3, 2, 0, 0, 4, 2, 4, 4, 1, 4, 0, 0, 0, 2, 4, // E
	3, 3, 2, 1, 0, 4, 2, 4, 3, 2, 4, 1, 0, 0, 2, 4, // F
}

// unassignedOpcodes are not decoded by the hardware.
var unassignedOpcodes = []uint8{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU)) {
	InstructionSet[opcode] = Instruction{
		name:   name,
		cycles: instructionCycles[opcode] * 4,
		fn:     fn,
	}
}

func init() {
	defineControl()
	defineLoads()
	defineArithmetic()
	defineJumps()
	defineCB()
}

func defineControl() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	// NOP is reported as free
	InstructionSet[0x00].cycles = 0

	DefineInstruction(0x10, "STOP", func(c *CPU) {
		c.readOperand() // STOP is followed by a padding byte
		c.mode = ModeStop
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.IME {
			c.raise(ErrHaltWithoutIME)
			return
		}
		c.mode = ModeHalt
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.IME = false
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		c.IME = true
	})
	DefineInstruction(0x27, "DAA", func(c *CPU) {
		c.daa()
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlag(FlagCarry)
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.F ^= 1 << FlagCarry
		c.clearFlag(FlagSubtract)
		c.clearFlag(FlagHalfCarry)
	})
	DefineInstruction(0xCB, "PREFIX CB", func(c *CPU) {})

	for _, opcode := range unassignedOpcodes {
		DefineInstruction(opcode, fmt.Sprintf("DB $%02X", opcode), func(c *CPU) {
			c.raise(ErrUnimplementedOpcode)
		})
	}
}

func defineLoads() {
	// 0x40 - 0x7F - LD r, r'
	for dst := operandB; dst <= operandA; dst++ {
		for src := operandB; src <= operandA; src++ {
			if dst == operandHL && src == operandHL {
				continue // HALT
			}
			dst, src := dst, src
			DefineInstruction(0x40|uint8(dst)<<3|uint8(src), fmt.Sprintf("LD %s, %s", dst, src), func(c *CPU) {
				c.set(dst, c.get(src))
			})
		}
	}

	// 0x06, 0x0E, ... 0x3E - LD r, d8
	for r := operandB; r <= operandA; r++ {
		r := r
		DefineInstruction(0x06|uint8(r)<<3, fmt.Sprintf("LD %s, d8", r), func(c *CPU) {
			c.set(r, c.readOperand())
		})
	}

	// 0x01, 0x11, 0x21, 0x31 - LD rr, d16
	for p := pairBC; p <= pairSP; p++ {
		p := p
		DefineInstruction(0x01|uint8(p)<<4, fmt.Sprintf("LD %s, d16", pairNames[p]), func(c *CPU) {
			c.setPair(p, c.readOperand16())
		})
	}

	// 0xC1, 0xD1, 0xE1, 0xF1 - POP rr
	// 0xC5, 0xD5, 0xE5, 0xF5 - PUSH rr
	for p := pairBC; p <= pairSP; p++ {
		p := p
		DefineInstruction(0xC1|uint8(p)<<4, fmt.Sprintf("POP %s", stackPairNames[p]), func(c *CPU) {
			c.setStackPair(p, c.pop())
		})
		DefineInstruction(0xC5|uint8(p)<<4, fmt.Sprintf("PUSH %s", stackPairNames[p]), func(c *CPU) {
			c.push(c.getStackPair(p))
		})
	}

	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) {
		c.bus.Write(c.BC.Uint16(), c.A)
	})
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) {
		c.bus.Write(c.DE.Uint16(), c.A)
	})
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		c.bus.Write(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		c.bus.Write(c.HL.Uint16(), c.A)
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) {
		c.A = c.bus.Read(c.BC.Uint16())
	})
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) {
		c.A = c.bus.Read(c.DE.Uint16())
	})
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		c.A = c.bus.Read(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() + 1)
	})
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		c.A = c.bus.Read(c.HL.Uint16())
		c.HL.SetUint16(c.HL.Uint16() - 1)
	})
	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.bus.Write(address, uint8(c.SP))
		c.bus.Write(address+1, uint8(c.SP>>8))
	})
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.readOperand()), c.A)
	})
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.A = c.bus.Read(0xFF00 | uint16(c.readOperand()))
	})
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.bus.Write(0xFF00|uint16(c.C), c.A)
	})
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.A = c.bus.Read(0xFF00 | uint16(c.C))
	})
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.bus.Write(c.readOperand16(), c.A)
	})
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.A = c.bus.Read(c.readOperand16())
	})
	DefineInstruction(0xF8, "LD HL, SP+s8", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
	})
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
	})
}

func defineArithmetic() {
	// 0x80 - 0xBF - ALU A, r
	// 0xC6, 0xCE, ... 0xFE - ALU A, d8
	for op := uint8(0); op < 8; op++ {
		op := op
		for r := operandB; r <= operandA; r++ {
			r := r
			DefineInstruction(0x80|op<<3|uint8(r), fmt.Sprintf("%s %s", aluNames[op], r), func(c *CPU) {
				c.alu(op, c.get(r))
			})
		}
		DefineInstruction(0xC6|op<<3, fmt.Sprintf("%s d8", aluNames[op]), func(c *CPU) {
			c.alu(op, c.readOperand())
		})
	}

	// 0x04, 0x0C, ... 0x3C - INC r
	// 0x05, 0x0D, ... 0x3D - DEC r
	for r := operandB; r <= operandA; r++ {
		r := r
		DefineInstruction(0x04|uint8(r)<<3, fmt.Sprintf("INC %s", r), func(c *CPU) {
			c.set(r, c.increment(c.get(r)))
		})
		DefineInstruction(0x05|uint8(r)<<3, fmt.Sprintf("DEC %s", r), func(c *CPU) {
			c.set(r, c.decrement(c.get(r)))
		})
	}

	// 0x03, 0x13, 0x23, 0x33 - INC rr
	// 0x0B, 0x1B, 0x2B, 0x3B - DEC rr
	// 0x09, 0x19, 0x29, 0x39 - ADD HL, rr
	for p := pairBC; p <= pairSP; p++ {
		p := p
		DefineInstruction(0x03|uint8(p)<<4, fmt.Sprintf("INC %s", pairNames[p]), func(c *CPU) {
			c.setPair(p, c.getPair(p)+1)
		})
		DefineInstruction(0x0B|uint8(p)<<4, fmt.Sprintf("DEC %s", pairNames[p]), func(c *CPU) {
			c.setPair(p, c.getPair(p)-1)
		})
		DefineInstruction(0x09|uint8(p)<<4, fmt.Sprintf("ADD HL, %s", pairNames[p]), func(c *CPU) {
			c.addHL(c.getPair(p))
		})
	}

	DefineInstruction(0xE8, "ADD SP, s8", func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
	})

	// accumulator rotates always clear Z
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.A = c.rotateLeft(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.A = c.rotateRight(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
}

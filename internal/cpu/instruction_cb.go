package cpu

import "fmt"

// instructionCyclesCB returns the cost in clock cycles of a CB prefixed
// instruction, including the prefix. Operations on (HL) cost double,
// except BIT which only reads.
func instructionCyclesCB(opcode uint8) uint8 {
	if operand(opcode&7) != operandHL {
		return 8
	}
	if opcode >= 0x40 && opcode < 0x80 {
		return 12
	}
	return 16
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU)) {
	InstructionSetCB[opcode] = Instruction{
		name:   name,
		cycles: instructionCyclesCB(opcode),
		fn:     fn,
	}
}

func defineCB() {
	// loop through each register (B, C, D, E, H, L, (HL), A)
	for r := operandB; r <= operandA; r++ {
		r := r

		// 0x00 - 0x3F - rotates, shifts and SWAP
		for i, rotation := range rotations {
			rotate := rotation.fn
			DefineInstructionCB(uint8(i)<<3|uint8(r), fmt.Sprintf("%s %s", rotation.name, r), func(c *CPU) {
				c.set(r, rotate(c, c.get(r)))
			})
		}

		for b := uint8(0); b < 8; b++ {
			b := b
			// 0x40 - 0x7F - BIT b, r
			DefineInstructionCB(0x40|b<<3|uint8(r), fmt.Sprintf("BIT %d, %s", b, r), func(c *CPU) {
				c.testBit(c.get(r), b)
			})
			// 0x80 - 0xBF - RES b, r
			DefineInstructionCB(0x80|b<<3|uint8(r), fmt.Sprintf("RES %d, %s", b, r), func(c *CPU) {
				c.set(r, c.get(r)&^(1<<b))
			})
			// 0xC0 - 0xFF - SET b, r
			DefineInstructionCB(0xC0|b<<3|uint8(r), fmt.Sprintf("SET %d, %s", b, r), func(c *CPU) {
				c.set(r, c.get(r)|1<<b)
			})
		}
	}
}

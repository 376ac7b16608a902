package cpu

import "fmt"

// jumpRelative jumps to the address relative to the current PC.
//
//	JR e
//	e = 8-bit signed immediate value
func (c *CPU) jumpRelative(offset uint8) {
	c.PC += uint16(int8(offset))
}

// call pushes the address of the next instruction onto the stack and
// jumps to the given address, recording the call site.
//
//	CALL nn
//	nn = 16-bit immediate value
func (c *CPU) call(address uint16) {
	c.recordCall()
	c.Call(address)
}

// ret pops the return address off the stack into PC.
//
//	RET
func (c *CPU) ret() {
	c.PC = c.pop()
}

func defineJumps() {
	DefineInstruction(0x18, "JR r8", func(c *CPU) {
		c.jumpRelative(c.readOperand())
	})
	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.PC = c.readOperand16()
	})
	DefineInstruction(0xE9, "JP HL", func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		c.call(c.readOperand16())
	})
	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.ret()
	})
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.IME = true
	})

	for cc := conditionNZ; cc <= conditionC; cc++ {
		cc := cc
		name := conditionNames[cc]

		// 0x20, 0x28, 0x30, 0x38 - JR cc, r8
		DefineInstruction(0x20|uint8(cc)<<3, fmt.Sprintf("JR %s, r8", name), func(c *CPU) {
			offset := c.readOperand()
			if c.test(cc) {
				c.jumpRelative(offset)
				c.extra = jumpRelativeTaken
			}
		})
		// 0xC2, 0xCA, 0xD2, 0xDA - JP cc, a16
		DefineInstruction(0xC2|uint8(cc)<<3, fmt.Sprintf("JP %s, a16", name), func(c *CPU) {
			address := c.readOperand16()
			if c.test(cc) {
				c.PC = address
				c.extra = jumpTaken
			}
		})
		// 0xC4, 0xCC, 0xD4, 0xDC - CALL cc, a16
		DefineInstruction(0xC4|uint8(cc)<<3, fmt.Sprintf("CALL %s, a16", name), func(c *CPU) {
			address := c.readOperand16()
			if c.test(cc) {
				c.call(address)
				c.extra = callTaken
			} else {
				c.recordCall()
			}
		})
		// 0xC0, 0xC8, 0xD0, 0xD8 - RET cc
		DefineInstruction(0xC0|uint8(cc)<<3, fmt.Sprintf("RET %s", name), func(c *CPU) {
			if c.test(cc) {
				c.ret()
				c.extra = returnTaken
			}
		})
	}

	// 0xC7, 0xCF, ... 0xFF - RST n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) * 8
		DefineInstruction(0xC7|n<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.call(vector)
		})
	}
}

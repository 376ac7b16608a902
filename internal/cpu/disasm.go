package cpu

import (
	"fmt"
	"strings"
)

// operandLength returns the number of immediate bytes the mnemonic
// template names.
func operandLength(name string) int {
	switch {
	case strings.Contains(name, "d16"), strings.Contains(name, "a16"):
		return 2
	case strings.Contains(name, "d8"), strings.Contains(name, "a8"),
		strings.Contains(name, "r8"), strings.Contains(name, "s8"):
		return 1
	}
	return 0
}

// Disassemble decodes the instruction at address, returning its text
// and its length in bytes. The bus is only read.
func Disassemble(bus Bus, address uint16) (string, int) {
	opcode := bus.Read(address)
	if opcode == 0xCB {
		return InstructionSetCB[bus.Read(address+1)].name, 2
	}

	name := InstructionSet[opcode].name
	length := 1 + operandLength(name)
	if opcode == 0x10 {
		// padding byte
		return name, 2
	}

	operand := uint16(bus.Read(address + 1))
	switch {
	case strings.Contains(name, "d16"):
		name = strings.Replace(name, "d16", fmt.Sprintf("$%04X", operand|uint16(bus.Read(address+2))<<8), 1)
	case strings.Contains(name, "a16"):
		name = strings.Replace(name, "a16", fmt.Sprintf("$%04X", operand|uint16(bus.Read(address+2))<<8), 1)
	case strings.Contains(name, "d8"):
		name = strings.Replace(name, "d8", fmt.Sprintf("$%02X", operand), 1)
	case strings.Contains(name, "a8"):
		name = strings.Replace(name, "a8", fmt.Sprintf("$FF%02X", operand), 1)
	case strings.Contains(name, "r8"):
		target := address + 2 + uint16(int8(operand))
		name = strings.Replace(name, "r8", fmt.Sprintf("$%04X", target), 1)
	case strings.Contains(name, "s8"):
		name = strings.Replace(name, "+s8", fmt.Sprintf("%+d", int8(operand)), 1)
		name = strings.Replace(name, "s8", fmt.Sprintf("%d", int8(operand)), 1)
	}
	return name, length
}

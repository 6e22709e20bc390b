package cpu

import (
	"fmt"
	"strings"
)

// undefinedCycles is the cost charged for an opcode with no instruction.
const undefinedCycles = 4

// Operands holds the bytes following an opcode.
type Operands struct {
	Lo uint8
	Hi uint8
}

// Word returns the operands as a little-endian 16-bit value.
func (o Operands) Word() uint16 {
	return uint16(o.Hi)<<8 | uint16(o.Lo)
}

// Instruction describes one entry in the opcode table.
type Instruction struct {
	Opcode   uint8
	Mnemonic string // "d8", "d16" and "a16" mark operand positions
	Length   uint8  // Bytes including the opcode
	Cycles   int    // Cost; for conditional calls and returns, the not-taken cost
	Taken    int    // Cost when a conditional call or return is taken, else 0
	Defined  bool

	exec func(c *CPU, o Operands)
}

// Format renders the mnemonic with its operand values filled in.
func (i *Instruction) Format(o Operands) string {
	switch {
	case strings.Contains(i.Mnemonic, "d16"):
		return strings.Replace(i.Mnemonic, "d16", fmt.Sprintf("%04XH", o.Word()), 1)
	case strings.Contains(i.Mnemonic, "a16"):
		return strings.Replace(i.Mnemonic, "a16", fmt.Sprintf("%04XH", o.Word()), 1)
	case strings.Contains(i.Mnemonic, "d8"):
		return strings.Replace(i.Mnemonic, "d8", fmt.Sprintf("%02XH", o.Lo), 1)
	}
	return i.Mnemonic
}

// instructionSet is the complete opcode table, built once.
var instructionSet = buildInstructionSet()

// Lookup returns the table entry for an opcode. Every opcode has an entry.
func Lookup(opcode uint8) Instruction {
	return instructionSet[opcode]
}

// decode returns the shared table entry for an opcode.
func decode(opcode uint8) *Instruction {
	return &instructionSet[opcode]
}

// table is the instruction set under construction.
type table [256]Instruction

func buildInstructionSet() [256]Instruction {
	var t table

	t.defineTransfer()
	t.defineArithmetic()
	t.defineLogical()
	t.defineBranch()
	t.defineMachine()

	for op := range t {
		if !t[op].Defined {
			t[op] = Instruction{
				Opcode:   uint8(op), //nolint:gosec // G115: op < 256
				Mnemonic: fmt.Sprintf("DB %02XH", op),
				Length:   1,
				Cycles:   undefinedCycles,
				exec:     func(*CPU, Operands) {},
			}
		}
	}

	return t
}

// define adds an instruction to the table. Redefinition is a programming
// error and panics at package initialisation.
func (t *table) define(opcode uint8, mnemonic string, length uint8, cycles int, fn func(c *CPU, o Operands)) {
	if t[opcode].Defined {
		panic(fmt.Sprintf("cpu: opcode 0x%02X defined twice (%s, %s)", opcode, t[opcode].Mnemonic, mnemonic))
	}
	t[opcode] = Instruction{
		Opcode:   opcode,
		Mnemonic: mnemonic,
		Length:   length,
		Cycles:   cycles,
		Defined:  true,
		exec:     fn,
	}
}

// defineConditional adds a conditional call or return whose cost depends on
// whether the condition holds.
func (t *table) defineConditional(opcode uint8, mnemonic string, length uint8, notTaken, taken int, fn func(c *CPU, o Operands)) {
	t.define(opcode, mnemonic, length, notTaken, fn)
	t[opcode].Taken = taken
}

// regCycles returns base when neither operand is M, otherwise withM.
func regCycles(base, withM int, regs ...Reg) int {
	for _, r := range regs {
		if r == RegM {
			return withM
		}
	}
	return base
}

var conditionNames = [8]string{"NZ", "Z", "NC", "C", "PO", "PE", "P", "M"}

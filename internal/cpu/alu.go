package cpu

import "math/bits"

// aluKind selects the carry and auxiliary carry rules.
type aluKind uint8

const (
	aluAdd aluKind = iota
	aluSub
)

// parity reports even parity over all eight bits of v.
func parity(v uint8) bool {
	return bits.OnesCount8(v)%2 == 0
}

// flagsFor derives post-operation flags for a two-operand operation. Only the
// bits in mask are updated; the rest of f is returned unchanged.
func flagsFor(f Flags, result, a, b uint8, kind aluKind, mask Flags) Flags {
	if mask&FlagZ != 0 {
		f.Assign(FlagZ, result == 0)
	}
	if mask&FlagS != 0 {
		f.Assign(FlagS, result&0x80 != 0)
	}
	if mask&FlagP != 0 {
		f.Assign(FlagP, parity(result))
	}
	if mask&FlagC != 0 {
		if kind == aluAdd {
			f.Assign(FlagC, uint16(a)+uint16(b) > 0xFF)
		} else {
			f.Assign(FlagC, a < b)
		}
	}
	if mask&FlagAC != 0 {
		if kind == aluAdd {
			f.Assign(FlagAC, (a&0x0F)+(b&0x0F) > 0x0F)
		} else {
			f.Assign(FlagAC, a&0x0F < b&0x0F)
		}
	}
	return f
}

// flagsFor3 derives flags for add-with-carry and subtract-with-borrow, where
// carry and auxiliary carry depend on the carry-in term as well.
func flagsFor3(f Flags, result, a, b, cin uint8, kind aluKind) Flags {
	f = flagsFor(f, result, 0, 0, kind, FlagZ|FlagS|FlagP)
	if kind == aluAdd {
		f.Assign(FlagC, uint16(a)+uint16(b)+uint16(cin) > 0xFF)
		f.Assign(FlagAC, (a&0x0F)+(b&0x0F)+cin > 0x0F)
	} else {
		f.Assign(FlagC, uint16(a) < uint16(b)+uint16(cin))
		f.Assign(FlagAC, a&0x0F < (b&0x0F)+cin)
	}
	return f
}

// carryIn returns the carry flag as 0 or 1.
func (c *CPU) carryIn() uint8 {
	if c.Registers.F.Carry() {
		return 1
	}
	return 0
}

// add adds value to the accumulator (ADD/ADI).
func (c *CPU) add(value uint8) {
	a := c.Registers.A
	result := a + value
	c.Registers.F = flagsFor(c.Registers.F, result, a, value, aluAdd, FlagAll)
	c.Registers.A = result
}

// adc adds value and the carry flag to the accumulator (ADC/ACI).
func (c *CPU) adc(value uint8) {
	a := c.Registers.A
	cin := c.carryIn()
	result := a + value + cin
	c.Registers.F = flagsFor3(c.Registers.F, result, a, value, cin, aluAdd)
	c.Registers.A = result
}

// sub subtracts value from the accumulator (SUB/SUI).
func (c *CPU) sub(value uint8) {
	c.Registers.A = c.compare(value)
}

// sbb subtracts value and the borrow from the accumulator (SBB/SBI).
func (c *CPU) sbb(value uint8) {
	a := c.Registers.A
	cin := c.carryIn()
	result := a - value - cin
	c.Registers.F = flagsFor3(c.Registers.F, result, a, value, cin, aluSub)
	c.Registers.A = result
}

// compare sets flags for A - value and returns the difference without
// storing it (CMP/CPI).
func (c *CPU) compare(value uint8) uint8 {
	a := c.Registers.A
	result := a - value
	c.Registers.F = flagsFor(c.Registers.F, result, a, value, aluSub, FlagAll)
	return result
}

// and performs bitwise AND. The 8080 sets AC to the OR of bit 3 of both operands.
func (c *CPU) and(value uint8) {
	a := c.Registers.A
	result := a & value
	c.Registers.F = flagsFor(c.Registers.F, result, 0, 0, aluAdd, FlagZ|FlagS|FlagP)
	c.Registers.ClearFlag(FlagC)
	c.Registers.SetFlagTo(FlagAC, (a|value)&0x08 != 0)
	c.Registers.A = result
}

// or performs bitwise OR and sets flags.
func (c *CPU) or(value uint8) {
	c.logical(c.Registers.A | value)
}

// xor performs bitwise XOR and sets flags.
func (c *CPU) xor(value uint8) {
	c.logical(c.Registers.A ^ value)
}

func (c *CPU) logical(result uint8) {
	c.Registers.F = flagsFor(c.Registers.F, result, 0, 0, aluAdd, FlagZ|FlagS|FlagP)
	c.Registers.ClearFlag(FlagC | FlagAC)
	c.Registers.A = result
}

// inr increments a value; carry is not affected.
func (c *CPU) inr(value uint8) uint8 {
	result := value + 1
	c.Registers.F = flagsFor(c.Registers.F, result, value, 1, aluAdd, FlagZ|FlagS|FlagP|FlagAC)
	return result
}

// dcr decrements a value; carry is not affected.
func (c *CPU) dcr(value uint8) uint8 {
	result := value - 1
	c.Registers.F = flagsFor(c.Registers.F, result, value, 1, aluSub, FlagZ|FlagS|FlagP|FlagAC)
	return result
}

// dad adds a 16-bit value to HL; only carry is affected.
func (c *CPU) dad(value uint16) {
	hl := c.Registers.HL()
	c.Registers.SetFlagTo(FlagC, uint32(hl)+uint32(value) > 0xFFFF)
	c.Registers.SetHL(hl + value)
}

// daa adjusts the accumulator to packed BCD after an addition.
//
// The low nibble is corrected first when it exceeds 9 or AC is set, which
// also decides AC. The high nibble is then corrected when it exceeds 9 or
// carry is set; a correction that overflows sets carry, one that does not
// leaves carry as it was.
func (c *CPU) daa() {
	a := c.Registers.A
	f := c.Registers.F

	if a&0x0F > 9 || f.AuxCarry() {
		f = flagsFor(f, a+0x06, a, 0x06, aluAdd, FlagAC)
		a += 0x06
	} else {
		f.Clear(FlagAC)
	}

	if a>>4 > 9 || f.Carry() {
		if uint16(a)+0x60 > 0xFF {
			f.Set(FlagC)
		}
		a += 0x60
	}

	c.Registers.F = flagsFor(f, a, 0, 0, aluAdd, FlagZ|FlagS|FlagP)
	c.Registers.A = a
}

// Rotate helpers. Only carry is affected.

// rlc rotates the accumulator left, bit 7 into carry and bit 0.
func (c *CPU) rlc() {
	a := c.Registers.A
	c.Registers.SetFlagTo(FlagC, a&0x80 != 0)
	c.Registers.A = a<<1 | a>>7
}

// rrc rotates the accumulator right, bit 0 into carry and bit 7.
func (c *CPU) rrc() {
	a := c.Registers.A
	c.Registers.SetFlagTo(FlagC, a&0x01 != 0)
	c.Registers.A = a>>1 | a<<7
}

// ral rotates the accumulator left through carry.
func (c *CPU) ral() {
	a := c.Registers.A
	cin := c.carryIn()
	c.Registers.SetFlagTo(FlagC, a&0x80 != 0)
	c.Registers.A = a<<1 | cin
}

// rar rotates the accumulator right through carry.
func (c *CPU) rar() {
	a := c.Registers.A
	cin := c.carryIn()
	c.Registers.SetFlagTo(FlagC, a&0x01 != 0)
	c.Registers.A = a>>1 | cin<<7
}

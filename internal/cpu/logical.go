package cpu

// defineLogical adds the logical, compare, rotate and flag control group.
func (t *table) defineLogical() {
	for r := RegB; r <= RegA; r++ {
		reg := r
		cycles := regCycles(4, 7, r)
		t.define(0xA0|uint8(r), "ANA "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.and(c.readReg(reg)) })
		t.define(0xA8|uint8(r), "XRA "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.xor(c.readReg(reg)) })
		t.define(0xB0|uint8(r), "ORA "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.or(c.readReg(reg)) })
		t.define(0xB8|uint8(r), "CMP "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.compare(c.readReg(reg)) })
	}

	t.define(0xE6, "ANI d8", 2, 7, func(c *CPU, o Operands) { c.and(o.Lo) })
	t.define(0xEE, "XRI d8", 2, 7, func(c *CPU, o Operands) { c.xor(o.Lo) })
	t.define(0xF6, "ORI d8", 2, 7, func(c *CPU, o Operands) { c.or(o.Lo) })
	t.define(0xFE, "CPI d8", 2, 7, func(c *CPU, o Operands) { c.compare(o.Lo) })

	t.define(0x07, "RLC", 1, 4, func(c *CPU, _ Operands) { c.rlc() })
	t.define(0x0F, "RRC", 1, 4, func(c *CPU, _ Operands) { c.rrc() })
	t.define(0x17, "RAL", 1, 4, func(c *CPU, _ Operands) { c.ral() })
	t.define(0x1F, "RAR", 1, 4, func(c *CPU, _ Operands) { c.rar() })

	t.define(0x2F, "CMA", 1, 4, func(c *CPU, _ Operands) { c.Registers.A = ^c.Registers.A })
	t.define(0x37, "STC", 1, 4, func(c *CPU, _ Operands) { c.Registers.SetFlag(FlagC) })
	t.define(0x3F, "CMC", 1, 4, func(c *CPU, _ Operands) { c.Registers.F ^= FlagC })
}

package cpu

// defineArithmetic adds the arithmetic group.
func (t *table) defineArithmetic() {
	for r := RegB; r <= RegA; r++ {
		reg := r

		t.define(0x04|uint8(r)<<3, "INR "+r.String(), 1, regCycles(5, 10, r), func(c *CPU, _ Operands) {
			c.writeReg(reg, c.inr(c.readReg(reg)))
		})
		t.define(0x05|uint8(r)<<3, "DCR "+r.String(), 1, regCycles(5, 10, r), func(c *CPU, _ Operands) {
			c.writeReg(reg, c.dcr(c.readReg(reg)))
		})

		cycles := regCycles(4, 7, r)
		t.define(0x80|uint8(r), "ADD "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.add(c.readReg(reg)) })
		t.define(0x88|uint8(r), "ADC "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.adc(c.readReg(reg)) })
		t.define(0x90|uint8(r), "SUB "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.sub(c.readReg(reg)) })
		t.define(0x98|uint8(r), "SBB "+r.String(), 1, cycles, func(c *CPU, _ Operands) { c.sbb(c.readReg(reg)) })
	}

	for p := PairBC; p <= PairSP; p++ {
		pair := p
		t.define(0x03|uint8(p)<<4, "INX "+p.String(), 1, 5, func(c *CPU, _ Operands) {
			c.Registers.SetPair(pair, c.Registers.Pair(pair)+1)
		})
		t.define(0x0B|uint8(p)<<4, "DCX "+p.String(), 1, 5, func(c *CPU, _ Operands) {
			c.Registers.SetPair(pair, c.Registers.Pair(pair)-1)
		})
		t.define(0x09|uint8(p)<<4, "DAD "+p.String(), 1, 10, func(c *CPU, _ Operands) {
			c.dad(c.Registers.Pair(pair))
		})
	}

	t.define(0xC6, "ADI d8", 2, 7, func(c *CPU, o Operands) { c.add(o.Lo) })
	t.define(0xCE, "ACI d8", 2, 7, func(c *CPU, o Operands) { c.adc(o.Lo) })
	t.define(0xD6, "SUI d8", 2, 7, func(c *CPU, o Operands) { c.sub(o.Lo) })
	t.define(0xDE, "SBI d8", 2, 7, func(c *CPU, o Operands) { c.sbb(o.Lo) })

	t.define(0x27, "DAA", 1, 4, func(c *CPU, _ Operands) { c.daa() })
}

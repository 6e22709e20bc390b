package cpu

// defineMachine adds the stack, I/O and machine control group.
func (t *table) defineMachine() {
	// PUSH/POP use PSW in place of SP
	for p := PairBC; p <= PairSP; p++ {
		pair := p
		if pair == PairSP {
			pair = PairPSW
		}
		t.define(0xC5|uint8(p)<<4, "PUSH "+pair.String(), 1, 11, func(c *CPU, _ Operands) {
			c.push(c.Registers.Pair(pair))
		})
		t.define(0xC1|uint8(p)<<4, "POP "+pair.String(), 1, 10, func(c *CPU, _ Operands) {
			c.Registers.SetPair(pair, c.pop())
		})
	}

	t.define(0xE3, "XTHL", 1, 18, func(c *CPU, _ Operands) {
		sp := c.Registers.SP
		top := c.readWord(sp)
		c.writeWord(sp, c.Registers.HL())
		c.Registers.SetHL(top)
	})
	t.define(0xF9, "SPHL", 1, 5, func(c *CPU, _ Operands) {
		c.Registers.SP = c.Registers.HL()
	})

	t.define(0xDB, "IN d8", 2, 10, func(c *CPU, o Operands) {
		if c.Ports == nil {
			c.Registers.A = 0
			return
		}
		c.Registers.A = c.Ports.In(o.Lo)
	})
	t.define(0xD3, "OUT d8", 2, 10, func(c *CPU, o Operands) {
		if c.Ports != nil {
			c.Ports.Out(o.Lo, c.Registers.A)
		}
	})

	t.define(0xF3, "DI", 1, 4, func(c *CPU, _ Operands) { c.inte = false })
	t.define(0xFB, "EI", 1, 4, func(c *CPU, _ Operands) { c.inte = true })
	t.define(0x76, "HLT", 1, 7, func(c *CPU, _ Operands) { c.halted = true })
	t.define(0x00, "NOP", 1, 4, func(*CPU, Operands) {})
}

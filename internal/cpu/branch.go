package cpu

// defineBranch adds jumps, calls, returns and restarts.
func (t *table) defineBranch() {
	t.define(0xC3, "JMP a16", 3, 10, func(c *CPU, o Operands) {
		c.Registers.PC = o.Word()
	})
	t.define(0xCD, "CALL a16", 3, 17, func(c *CPU, o Operands) {
		c.push(c.Registers.PC)
		c.Registers.PC = o.Word()
	})
	t.define(0xC9, "RET", 1, 10, func(c *CPU, _ Operands) {
		c.Registers.PC = c.pop()
	})
	t.define(0xE9, "PCHL", 1, 5, func(c *CPU, _ Operands) {
		c.Registers.PC = c.Registers.HL()
	})

	for cc := uint8(0); cc < 8; cc++ {
		cond := cc
		name := conditionNames[cc]

		// Conditional jumps cost the same whether or not they are taken.
		t.define(0xC2|cc<<3, "J"+name+" a16", 3, 10, func(c *CPU, o Operands) {
			if c.condition(cond) {
				c.Registers.PC = o.Word()
			}
		})
		t.defineConditional(0xC4|cc<<3, "C"+name+" a16", 3, 11, 17, func(c *CPU, o Operands) {
			if c.condition(cond) {
				c.push(c.Registers.PC)
				c.Registers.PC = o.Word()
			}
		})
		t.defineConditional(0xC0|cc<<3, "R"+name, 1, 5, 11, func(c *CPU, _ Operands) {
			if c.condition(cond) {
				c.Registers.PC = c.pop()
			}
		})

		vector := uint16(cc) << 3
		t.define(0xC7|cc<<3, "RST "+string('0'+rune(cc)), 1, 11, func(c *CPU, _ Operands) {
			c.push(c.Registers.PC)
			c.Registers.PC = vector
		})
	}
}

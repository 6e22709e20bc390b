package cpu

// defineTransfer adds the data transfer group.
func (t *table) defineTransfer() {
	// MOV d,s (0x40-0x7F); 0x76 would be MOV M,M and is HLT instead
	for d := RegB; d <= RegA; d++ {
		for s := RegB; s <= RegA; s++ {
			if d == RegM && s == RegM {
				continue
			}
			dst, src := d, s
			t.define(0x40|uint8(d)<<3|uint8(s), "MOV "+d.String()+","+s.String(), 1, regCycles(5, 7, d, s),
				func(c *CPU, _ Operands) { c.writeReg(dst, c.readReg(src)) })
		}
	}

	// MVI r,d8
	for r := RegB; r <= RegA; r++ {
		dst := r
		t.define(0x06|uint8(r)<<3, "MVI "+r.String()+",d8", 2, regCycles(7, 10, r),
			func(c *CPU, o Operands) { c.writeReg(dst, o.Lo) })
	}

	// LXI rp,d16
	for p := PairBC; p <= PairSP; p++ {
		pair := p
		t.define(0x01|uint8(p)<<4, "LXI "+p.String()+",d16", 3, 10,
			func(c *CPU, o Operands) { c.Registers.SetPair(pair, o.Word()) })
	}

	t.define(0x02, "STAX B", 1, 7, func(c *CPU, _ Operands) {
		c.Memory.Write(c.Registers.BC(), c.Registers.A)
	})
	t.define(0x12, "STAX D", 1, 7, func(c *CPU, _ Operands) {
		c.Memory.Write(c.Registers.DE(), c.Registers.A)
	})
	t.define(0x0A, "LDAX B", 1, 7, func(c *CPU, _ Operands) {
		c.Registers.A = c.Memory.Read(c.Registers.BC())
	})
	t.define(0x1A, "LDAX D", 1, 7, func(c *CPU, _ Operands) {
		c.Registers.A = c.Memory.Read(c.Registers.DE())
	})

	t.define(0x22, "SHLD a16", 3, 16, func(c *CPU, o Operands) {
		c.writeWord(o.Word(), c.Registers.HL())
	})
	t.define(0x2A, "LHLD a16", 3, 16, func(c *CPU, o Operands) {
		c.Registers.SetHL(c.readWord(o.Word()))
	})
	t.define(0x32, "STA a16", 3, 13, func(c *CPU, o Operands) {
		c.Memory.Write(o.Word(), c.Registers.A)
	})
	t.define(0x3A, "LDA a16", 3, 13, func(c *CPU, o Operands) {
		c.Registers.A = c.Memory.Read(o.Word())
	})

	t.define(0xEB, "XCHG", 1, 4, func(c *CPU, _ Operands) {
		r := c.Registers
		r.H, r.D = r.D, r.H
		r.L, r.E = r.E, r.L
	})
}

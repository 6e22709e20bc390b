package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/richardwooding/intel8080/internal/cpu"
	"github.com/richardwooding/intel8080/internal/memory"
)

func TestStateDistinguishes(t *testing.T) {
	assert := assert.New(t)

	mem := memory.New()
	regs := cpu.NewRegisters()

	base := State(regs, mem.Bytes())
	assert.Len(base, 16)
	assert.Equal(base, State(regs, mem.Bytes()))

	regs.A = 1
	withA := State(regs, mem.Bytes())
	assert.NotEqual(base, withA)

	regs.A = 0
	regs.SetFlag(cpu.FlagC)
	assert.NotEqual(base, State(regs, mem.Bytes()))

	regs.ClearFlag(cpu.FlagC)
	mem.Write(0xFFFF, 0x01)
	assert.NotEqual(base, State(regs, mem.Bytes()))

	mem.Write(0xFFFF, 0x00)
	assert.Equal(base, State(regs, mem.Bytes()))
}

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	nop := cpu.Retired{PC: 0, Instruction: cpu.Lookup(0x00), Cycles: 4}
	jmp := cpu.Retired{PC: 1, Instruction: cpu.Lookup(0xC3), Operands: cpu.Operands{Lo: 0x00, Hi: 0x10}, Cycles: 10}

	var a, b Trace
	a.Retire(nop)
	a.Retire(jmp)
	b.Retire(nop)
	b.Retire(jmp)

	assert.Equal(a.Hash(), b.Hash())
	assert.Equal(uint64(2), a.Count())

	// Order matters
	var c Trace
	c.Retire(jmp)
	c.Retire(nop)
	assert.NotEqual(a.Hash(), c.Hash())

	a.ResetDigest()
	assert.Equal(uint64(0), a.Count())
	assert.Equal("0000000000000000", a.Hash())

	var _ Digest = &a
}

func TestTraceFromCPU(t *testing.T) {
	assert := assert.New(t)

	program := []byte{0x3E, 0x42, 0x06, 0x10, 0x80, 0x76} // MVI A; MVI B; ADD B; HLT

	hash := func() string {
		mem := memory.New()
		assert.NoError(mem.Load(0, program))
		c := cpu.New(mem)
		var tr Trace
		c.OnRetire = tr.Retire
		for !c.Halted() {
			c.Step()
		}
		assert.Equal(uint64(4), tr.Count())
		return tr.Hash()
	}

	assert.Equal(hash(), hash())
}

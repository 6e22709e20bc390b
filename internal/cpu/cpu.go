// Package cpu implements the Intel 8080 CPU emulation.
//
// The CPU is driven one clock tick at a time through Step. An instruction is
// fetched and decoded on the first tick after the previous one retired, and
// its effects become visible on the tick that completes its cycle cost.
package cpu

import (
	"github.com/richardwooding/intel8080/internal/log"
)

// maxDiagnostics bounds the retained diagnostic history.
const maxDiagnostics = 256

// Memory interface for CPU to access memory bus.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Ports is the I/O port space reached by IN and OUT.
type Ports interface {
	In(port uint8) uint8
	Out(port uint8, value uint8)
}

// Retired describes an instruction that has just completed.
type Retired struct {
	PC          uint16
	Instruction Instruction
	Operands    Operands
	Cycles      int
}

// inflight is the instruction latched at fetch, waiting for its cycles to elapse.
type inflight struct {
	pc     uint16
	inst   *Instruction
	ops    Operands
	cycles int
}

// CPU represents the Intel 8080 CPU.
type CPU struct {
	Registers *Registers
	Memory    Memory

	// Ports is optional; without it IN reads 0x00 and OUT is discarded.
	Ports Ports

	// Log receives diagnostics. Never nil after New.
	Log log.Logger

	// OnRetire, when set, is called after every retired instruction.
	OnRetire func(Retired)

	// Interrupt enable flip-flop (EI/DI)
	inte bool

	halted bool

	// Remaining ticks of the instruction in flight
	busy    int
	current inflight

	diagnostics []error
	undefined   uint64

	// Cycle counter (one per tick)
	Cycles uint64

	// Retired instruction counter
	Instructions uint64
}

// New creates a new CPU instance in the reset state.
func New(mem Memory) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		Memory:    mem,
		Log:       log.Null(),
	}
}

// Reset establishes the power-on state: PC=0, flags=0x02, nothing in flight.
// Memory is left untouched.
func (c *CPU) Reset() {
	c.Registers = NewRegisters()
	c.inte = false
	c.halted = false
	c.busy = 0
	c.current = inflight{}
	c.diagnostics = nil
	c.undefined = 0
	c.Cycles = 0
	c.Instructions = 0
}

// Step advances the CPU by one clock tick. It reports whether an instruction
// retired on this tick.
func (c *CPU) Step() bool {
	c.Cycles++

	if c.busy <= 0 {
		if c.halted {
			return false
		}
		c.fetch()
	}

	c.busy--
	if c.busy > 0 {
		return false
	}

	c.retire()
	return true
}

// ExecuteInstruction ticks until the next instruction retires and returns
// the number of ticks taken. A halted CPU consumes a single tick.
func (c *CPU) ExecuteInstruction() int {
	start := c.Cycles
	for !c.Step() {
		if c.halted && c.busy <= 0 {
			break
		}
	}
	return int(c.Cycles - start) //nolint:gosec // G115: bounded by the largest cycle cost
}

// fetch latches the instruction at PC along with its operand bytes and cost.
func (c *CPU) fetch() {
	pc := c.Registers.PC
	inst := decode(c.Memory.Read(pc))

	var ops Operands
	if inst.Length > 1 {
		ops.Lo = c.Memory.Read(pc + 1)
	}
	if inst.Length > 2 {
		ops.Hi = c.Memory.Read(pc + 2)
	}

	cycles := inst.Cycles
	if inst.Taken != 0 && c.condition(inst.Opcode>>3) {
		cycles = inst.Taken
	}

	c.current = inflight{pc: pc, inst: inst, ops: ops, cycles: cycles}
	c.busy = cycles
}

// retire commits the latched instruction. PC is advanced past the instruction
// before the handler runs, so control transfers simply overwrite it.
func (c *CPU) retire() {
	cur := c.current
	c.Registers.PC = cur.pc + uint16(cur.inst.Length)
	cur.inst.exec(c, cur.ops)
	c.Instructions++

	if !cur.inst.Defined {
		c.recordUndefined(cur.inst.Opcode, cur.pc)
	}

	if c.OnRetire != nil {
		c.OnRetire(Retired{PC: cur.pc, Instruction: *cur.inst, Operands: cur.ops, Cycles: cur.cycles})
	}
}

func (c *CPU) recordUndefined(opcode uint8, pc uint16) {
	err := &UndefinedOpcodeError{Opcode: opcode, PC: pc}
	c.undefined++
	if len(c.diagnostics) == maxDiagnostics {
		c.diagnostics = c.diagnostics[1:]
	}
	c.diagnostics = append(c.diagnostics, err)
	c.Log.Debugf("cpu: %v", err)
}

// Diagnostics returns the retained diagnostics, oldest first.
func (c *CPU) Diagnostics() []error {
	out := make([]error, len(c.diagnostics))
	copy(out, c.diagnostics)
	return out
}

// LastError returns the most recent diagnostic, or nil.
func (c *CPU) LastError() error {
	if len(c.diagnostics) == 0 {
		return nil
	}
	return c.diagnostics[len(c.diagnostics)-1]
}

// UndefinedCount returns how many undefined opcodes have been executed since reset.
func (c *CPU) UndefinedCount() uint64 {
	return c.undefined
}

// State inspection

// PC returns the program counter.
func (c *CPU) PC() uint16 { return c.Registers.PC }

// SP returns the stack pointer.
func (c *CPU) SP() uint16 { return c.Registers.SP }

// Flags returns the flag byte.
func (c *CPU) Flags() Flags { return c.Registers.F }

// Busy returns the ticks remaining before the instruction in flight retires.
func (c *CPU) Busy() int { return c.busy }

// Halted reports whether HLT has been executed.
func (c *CPU) Halted() bool { return c.halted }

// InterruptsEnabled reports the state of the interrupt enable flip-flop.
func (c *CPU) InterruptsEnabled() bool { return c.inte }

// ReadRegister returns an 8-bit register; RegM reads memory at HL.
func (c *CPU) ReadRegister(r Reg) uint8 { return c.readReg(r) }

// ReadPair returns a register pair.
func (c *CPU) ReadPair(p Pair) uint16 { return c.Registers.Pair(p) }

// readReg resolves the SSS operand field, including the M pseudo-register.
func (c *CPU) readReg(r Reg) uint8 {
	if r == RegM {
		return c.Memory.Read(c.Registers.HL())
	}
	return c.Registers.Get(r)
}

// writeReg resolves the DDD operand field, including the M pseudo-register.
func (c *CPU) writeReg(r Reg, value uint8) {
	if r == RegM {
		c.Memory.Write(c.Registers.HL(), value)
		return
	}
	c.Registers.Set(r, value)
}

// readWord reads a little-endian word; the second byte wraps past 0xFFFF.
func (c *CPU) readWord(addr uint16) uint16 {
	low := uint16(c.Memory.Read(addr))
	high := uint16(c.Memory.Read(addr + 1))
	return high<<8 | low
}

// writeWord writes a little-endian word; the second byte wraps past 0xFFFF.
func (c *CPU) writeWord(addr uint16, value uint16) {
	c.Memory.Write(addr, uint8(value))      //nolint:gosec // G115: Intentional byte extraction from 16-bit value
	c.Memory.Write(addr+1, uint8(value>>8)) //nolint:gosec // G115: Intentional byte extraction from 16-bit value
}

// push pushes a 16-bit value onto the stack.
func (c *CPU) push(value uint16) {
	c.Registers.SP -= 2
	c.writeWord(c.Registers.SP, value)
}

// pop pops a 16-bit value from the stack.
func (c *CPU) pop() uint16 {
	value := c.readWord(c.Registers.SP)
	c.Registers.SP += 2
	return value
}

// condition evaluates the CCC field of conditional jumps, calls and returns.
func (c *CPU) condition(cond uint8) bool {
	f := c.Registers.F
	switch cond & 0x07 {
	case 0: // NZ - Not Zero
		return !f.Zero()
	case 1: // Z - Zero
		return f.Zero()
	case 2: // NC - No Carry
		return !f.Carry()
	case 3: // C - Carry
		return f.Carry()
	case 4: // PO - Parity Odd
		return !f.Parity()
	case 5: // PE - Parity Even
		return f.Parity()
	case 6: // P - Plus
		return !f.Sign()
	default: // M - Minus
		return f.Sign()
	}
}

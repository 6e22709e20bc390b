// Package emulator provides the main emulator runner that ties together
// CPU and memory components.
package emulator

import (
	"errors"
	"fmt"
	"time"

	"github.com/richardwooding/intel8080/internal/cpu"
	"github.com/richardwooding/intel8080/internal/digest"
	"github.com/richardwooding/intel8080/internal/log"
	"github.com/richardwooding/intel8080/internal/memory"
)

var (
	// ErrTimeout indicates the operation timed out.
	ErrTimeout = errors.New("timeout waiting for HLT")
)

// haltCheckCycles is how many cycles RunUntilHalt runs between clock checks.
const haltCheckCycles = 10000

// Option configures an Emulator.
type Option func(*Emulator)

// WithOrigin loads the image at origin and starts execution there.
func WithOrigin(origin uint16) Option {
	return func(e *Emulator) { e.origin = origin }
}

// WithLogger sets the logger that receives CPU diagnostics.
func WithLogger(l log.Logger) Option {
	return func(e *Emulator) { e.log = l }
}

// WithPorts attaches an I/O port space for IN and OUT.
func WithPorts(p cpu.Ports) Option {
	return func(e *Emulator) { e.ports = p }
}

// WithTrace calls fn after every retired instruction.
func WithTrace(fn func(cpu.Retired)) Option {
	return func(e *Emulator) { e.onRetire = fn }
}

// Emulator represents an Intel 8080 system: a CPU attached to 64 KiB of RAM.
type Emulator struct {
	CPU    *cpu.CPU
	Memory *memory.RAM

	image    []byte
	origin   uint16
	log      log.Logger
	ports    cpu.Ports
	onRetire func(cpu.Retired)

	// boot runs after every load, for environments that patch memory
	boot func(e *Emulator)

	trace digest.Trace
}

// New creates a new emulator instance with the given program image.
func New(image []byte, opts ...Option) (*Emulator, error) {
	e := &Emulator{
		image: append([]byte(nil), image...),
		log:   log.Null(),
	}
	for _, opt := range opts {
		opt(e)
	}

	// Create memory and load the image
	e.Memory = memory.New()
	if err := e.Memory.Load(e.origin, e.image); err != nil {
		return nil, fmt.Errorf("failed to load image into memory: %w", err)
	}

	// Create CPU
	e.CPU = cpu.New(e.Memory)
	e.wire()

	if e.boot != nil {
		e.boot(e)
	}

	return e, nil
}

// wire connects the CPU to the emulator's ports, logger and trace hooks.
func (e *Emulator) wire() {
	e.CPU.Ports = e.ports
	e.CPU.Log = e.log
	e.CPU.Registers.PC = e.origin
	e.CPU.OnRetire = func(r cpu.Retired) {
		e.trace.Retire(r)
		if e.onRetire != nil {
			e.onRetire(r)
		}
	}
}

// Step advances the CPU by one clock tick and reports whether an
// instruction retired.
func (e *Emulator) Step() bool {
	return e.CPU.Step()
}

// RunCycles runs the emulator for the specified number of cycles.
func (e *Emulator) RunCycles(cycles uint64) {
	targetCycles := e.CPU.Cycles + cycles
	for e.CPU.Cycles < targetCycles {
		e.Step()
	}
}

// RunInstructions retires n instructions, stopping early if the CPU halts.
// It returns the number of cycles taken.
func (e *Emulator) RunInstructions(n uint64) uint64 {
	start := e.CPU.Cycles
	for i := uint64(0); i < n && !e.CPU.Halted(); i++ {
		e.CPU.ExecuteInstruction()
	}
	return e.CPU.Cycles - start
}

// RunUntilHalt runs the emulator until HLT retires or timeout is reached.
func (e *Emulator) RunUntilHalt(timeout time.Duration) error {
	startTime := time.Now()

	for !e.CPU.Halted() {
		if time.Since(startTime) > timeout {
			return fmt.Errorf("%w after %d cycles at PC=0x%04X", ErrTimeout, e.CPU.Cycles, e.CPU.PC())
		}

		// Stop mid-chunk as soon as the CPU halts
		for i := 0; i < haltCheckCycles && !e.CPU.Halted(); i++ {
			e.Step()
		}
	}

	return nil
}

// NextInstruction decodes the instruction at PC without executing it.
func (e *Emulator) NextInstruction() (cpu.Instruction, cpu.Operands) {
	pc := e.CPU.PC()
	inst := cpu.Lookup(e.Memory.Read(pc))

	var ops cpu.Operands
	if inst.Length > 1 {
		ops.Lo = e.Memory.Read(pc + 1)
	}
	if inst.Length > 2 {
		ops.Hi = e.Memory.Read(pc + 2)
	}
	return inst, ops
}

// Digest returns a fingerprint of the registers, flags, SP, PC and memory.
func (e *Emulator) Digest() string {
	return digest.State(e.CPU.Registers, e.Memory.Bytes())
}

// TraceDigest returns the chained fingerprint of every instruction retired
// since the last reset.
func (e *Emulator) TraceDigest() string {
	return e.trace.Hash()
}

// Reset resets the emulator to initial state: memory holds only the
// program image and PC is at the origin.
func (e *Emulator) Reset() {
	e.Memory.Clear()
	// The image was loaded once in New, so it fits
	_ = e.Memory.Load(e.origin, e.image)

	e.CPU.Reset()
	e.trace.ResetDigest()
	e.wire()

	if e.boot != nil {
		e.boot(e)
	}
}

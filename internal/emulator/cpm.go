package emulator

import (
	"bufio"
	"io"

	"github.com/richardwooding/intel8080/internal/cpu"
)

// CP/M transient programs load at 0x0100 and call the BDOS at 0x0005.
// Returning to 0x0000 is a warm boot, which here halts the CPU.
const (
	cpmOrigin = 0x0100
	bdosEntry = 0x0005
	bdosPort  = 0x00
	cpmStack  = 0xFFFE

	bdosConsoleOutput = 2
	bdosPrintString   = 9
)

// bdos implements the console functions of the CP/M BDOS through an OUT
// instruction placed at the BDOS entry point.
type bdos struct {
	emu *Emulator
	out *bufio.Writer
}

func (b *bdos) In(uint8) uint8 {
	return 0
}

func (b *bdos) Out(port uint8, _ uint8) {
	if port != bdosPort {
		return
	}

	regs := b.emu.CPU.Registers
	switch regs.C {
	case bdosConsoleOutput:
		_ = b.out.WriteByte(regs.E)
	case bdosPrintString:
		addr := regs.DE()
		for i := 0; i < 0x10000; i++ {
			ch := b.emu.Memory.Read(addr)
			if ch == '$' {
				break
			}
			_ = b.out.WriteByte(ch)
			addr++
		}
	default:
		b.emu.log.Debugf("bdos: unsupported function %d at PC=0x%04X", regs.C, b.emu.CPU.PC())
	}
	_ = b.out.Flush()
}

// NewCPM creates an emulator that runs a CP/M .COM image with console
// output written to out. Options may override the logger and trace hook.
func NewCPM(image []byte, out io.Writer, opts ...Option) (*Emulator, error) {
	b := &bdos{out: bufio.NewWriter(out)}

	all := append([]Option{WithOrigin(cpmOrigin)}, opts...)
	all = append(all, WithPorts(b), func(e *Emulator) {
		b.emu = e
		e.boot = bootCPM
	})

	return New(image, all...)
}

// bootCPM installs the warm boot trap, the BDOS stub and a stack whose top
// returns to the warm boot.
func bootCPM(e *Emulator) {
	mem := e.Memory
	mem.Write(0x0000, 0x76) // HLT

	// OUT bdosPort; RET
	mem.Write(bdosEntry, 0xD3)
	mem.Write(bdosEntry+1, bdosPort)
	mem.Write(bdosEntry+2, 0xC9)

	mem.Write(cpmStack, 0x00)
	mem.Write(cpmStack+1, 0x00)
	e.CPU.Registers.SP = cpmStack
}

var _ cpu.Ports = (*bdos)(nil)

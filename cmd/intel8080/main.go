// Package main provides the intel8080 CLI application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sirupsen/logrus"

	"github.com/richardwooding/intel8080/internal/cpu"
	"github.com/richardwooding/intel8080/internal/emulator"
	"github.com/richardwooding/intel8080/internal/log"
	"github.com/richardwooding/intel8080/internal/translate"
	"github.com/richardwooding/intel8080/internal/vectors"
)

var (
	// ErrTestFailed indicates a vector file had failures.
	ErrTestFailed = errors.New("test failed")
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel string `help:"Log level (${enum})." enum:"panic,fatal,error,warn,info,debug,trace" default:"info"`

	Stdout io.Writer `kong:"-"`
	Stderr io.Writer `kong:"-"`
}

// logger builds the logger for a command. Tracing needs at least debug.
func (g *Globals) logger(trace bool) (log.Logger, error) {
	level, err := log.ParseLevel(g.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	if trace && level < logrus.DebugLevel {
		level = logrus.DebugLevel
	}
	return log.NewWithOutput(g.stderr(), level), nil
}

func (g *Globals) stdout() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Globals) stderr() io.Writer {
	if g.Stderr == nil {
		return os.Stderr
	}
	return g.Stderr
}

// CLI represents the command-line interface structure.
type CLI struct {
	Globals

	Run   RunCmd   `cmd:"" help:"Run a raw 8080 memory image."`
	Test  TestCmd  `cmd:"" help:"Run a golden vector file and report results."`
	State StateCmd `cmd:"" help:"Display the reset state and first instruction of an image."`
}

// RunCmd runs a memory image.
type RunCmd struct {
	Image        string        `arg:"" type:"existingfile" help:"Path to raw binary image."`
	Origin       uint16        `help:"Load address and initial PC." default:"0"`
	Cycles       uint64        `help:"Stop after this many clock cycles." xor:"limit"`
	Instructions uint64        `help:"Stop after this many instructions." xor:"limit"`
	Timeout      time.Duration `help:"Give up waiting for HLT after this long." default:"5s"`
	CPM          bool          `name:"cpm" help:"Run as a CP/M .COM program at 0100H with BDOS console output."`
	Trace        bool          `help:"Log every retired instruction."`
	Verbose      bool          `short:"v" help:"Show diagnostics."`
}

// Run executes the run command.
func (c *RunCmd) Run(g *Globals) error {
	// #nosec G304 - Image is provided by the user via CLI argument
	data, err := os.ReadFile(c.Image)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	logger, err := g.logger(c.Trace)
	if err != nil {
		return err
	}

	opts := []emulator.Option{emulator.WithLogger(logger)}
	if c.Trace {
		opts = append(opts, emulator.WithTrace(func(r cpu.Retired) {
			logger.Debugf("%04X  %-14s %2d", r.PC, r.Instruction.Format(r.Operands), r.Cycles)
		}))
	}

	var emu *emulator.Emulator
	if c.CPM {
		emu, err = emulator.NewCPM(data, g.stdout(), opts...)
	} else {
		emu, err = emulator.New(data, append(opts, emulator.WithOrigin(c.Origin))...)
	}
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}

	var runErr error
	stop := "halted"
	switch {
	case c.Cycles > 0:
		emu.RunCycles(c.Cycles)
		stop = "cycle limit"
	case c.Instructions > 0:
		emu.RunInstructions(c.Instructions)
		stop = "instruction limit"
	default:
		runErr = emu.RunUntilHalt(c.Timeout)
		if runErr != nil {
			stop = "timeout"
		}
	}
	if emu.CPU.Halted() {
		stop = "halted"
	}

	w := g.stdout()
	if c.CPM {
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, translate.From("Stopped:      %s\n", stop))
	printState(w, emu)

	if c.Verbose {
		for _, diag := range emu.CPU.Diagnostics() {
			fmt.Fprintf(w, "  %v\n", diag)
		}
	}

	if runErr != nil {
		return fmt.Errorf("emulator error: %w", runErr)
	}

	return nil
}

// TestCmd runs a vector file and reports results.
type TestCmd struct {
	Vectors string `arg:"" type:"existingfile" help:"Path to Starlark vector file."`
	Verbose bool   `short:"v" help:"Show every vector, not only failures."`
}

// Run executes the test command.
func (c *TestCmd) Run(g *Globals) error {
	w := g.stdout()
	fmt.Fprintf(w, "Running vectors: %s\n", c.Vectors)

	report, err := vectors.RunFile(c.Vectors)
	if err != nil {
		return fmt.Errorf("failed to load vectors: %w", err)
	}

	for _, result := range report.Results {
		if c.Verbose || !result.IsSuccess() {
			fmt.Fprintf(w, "  %-24s %s\n", result.Name, result.String())
		}
	}

	fmt.Fprint(w, translate.From("Result: %d passed, %d failed\n", report.Passed(), report.Failed()))

	if !report.IsSuccess() {
		return ErrTestFailed
	}

	return nil
}

// StateCmd displays the reset state of an image.
type StateCmd struct {
	Image  string `arg:"" type:"existingfile" help:"Path to raw binary image."`
	Origin uint16 `help:"Load address and initial PC." default:"0"`
}

// Run executes the state command.
func (c *StateCmd) Run(g *Globals) error {
	// #nosec G304 - Image is provided by the user via CLI argument
	data, err := os.ReadFile(c.Image)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	emu, err := emulator.New(data, emulator.WithOrigin(c.Origin))
	if err != nil {
		return fmt.Errorf("failed to create emulator: %w", err)
	}

	w := g.stdout()
	fmt.Fprint(w, translate.From("Image:        %d bytes at %s\n", len(data), fmt.Sprintf("%04XH", c.Origin)))
	printState(w, emu)

	inst, ops := emu.NextInstruction()
	cycles := fmt.Sprintf("%d", inst.Cycles)
	if inst.Taken != 0 {
		cycles = fmt.Sprintf("%d/%d", inst.Cycles, inst.Taken)
	}
	fmt.Fprintf(w, "Next:         %s (%d bytes, %s cycles)\n", inst.Format(ops), inst.Length, cycles)

	return nil
}

// printState writes the architectural state and digest of an emulator.
func printState(w io.Writer, emu *emulator.Emulator) {
	r := emu.CPU.Registers
	fmt.Fprintf(w, "Registers:    A=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X\n",
		r.A, r.B, r.C, r.D, r.E, r.H, r.L)
	fmt.Fprintf(w, "Flags:        %s (%02XH)\n", r.F, uint8(r.F))
	fmt.Fprintf(w, "SP:           %04XH\n", r.SP)
	fmt.Fprintf(w, "PC:           %04XH\n", r.PC)
	fmt.Fprint(w, translate.From("Cycles:       %d\n", emu.CPU.Cycles))
	fmt.Fprint(w, translate.From("Instructions: %d\n", emu.CPU.Instructions))
	fmt.Fprint(w, translate.From("Undefined:    %d\n", emu.CPU.UndefinedCount()))
	fmt.Fprintf(w, "Digest:       %s\n", emu.Digest())
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("intel8080"),
		kong.Description("An Intel 8080 instruction-level emulator written in Go."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

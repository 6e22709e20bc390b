package vectors

import (
	"fmt"
	"strings"

	"github.com/richardwooding/intel8080/internal/cpu"
	"github.com/richardwooding/intel8080/internal/emulator"
)

// Result represents the result of running one vector.
type Result struct {
	Name       string
	Passed     bool
	Failed     bool
	Mismatches []string
	Cycles     uint64
	Error      error
}

// Run executes a vector and compares the final state with its expectation.
func Run(v Vector) *Result {
	result := &Result{Name: v.Name}

	emu, err := emulator.New(v.Program, emulator.WithOrigin(v.Origin))
	if err != nil {
		result.Error = fmt.Errorf("failed to create emulator: %w", err)
		return result
	}

	apply(emu, &v.Setup)

	for i := 0; i < v.Steps; i++ {
		result.Cycles += uint64(emu.CPU.ExecuteInstruction()) //nolint:gosec // G115: non-negative
	}

	result.Mismatches = compare(emu, &v.Expect, result.Cycles)
	result.Failed = len(result.Mismatches) > 0
	result.Passed = !result.Failed

	return result
}

// apply writes a setup state into a freshly created emulator.
func apply(emu *emulator.Emulator, s *State) {
	regs := emu.CPU.Registers

	for _, key := range registerKeys {
		value, ok := s.Registers[key]
		if !ok {
			continue
		}
		switch key {
		case "flags":
			// After A so the accumulator half of the PSW is current
			regs.SetPSW(uint16(regs.A)<<8 | uint16(value)) //nolint:gosec // G115: range checked at parse
		case "sp":
			regs.SP = uint16(value) //nolint:gosec // G115: range checked at parse
		case "pc":
			regs.PC = uint16(value) //nolint:gosec // G115: range checked at parse
		default:
			regs.Set(registerOf(key), uint8(value)) //nolint:gosec // G115: range checked at parse
		}
	}

	for addr, value := range s.Memory {
		emu.Memory.Write(addr, value)
	}
}

// compare lists every expected value that differs from the machine state.
func compare(emu *emulator.Emulator, s *State, cycles uint64) []string {
	var out []string
	regs := emu.CPU.Registers

	for _, key := range registerKeys {
		want, ok := s.Registers[key]
		if !ok {
			continue
		}

		var got int
		switch key {
		case "flags":
			got = int(regs.F)
		case "sp":
			got = int(regs.SP)
		case "pc":
			got = int(regs.PC)
		default:
			got = int(regs.Get(registerOf(key)))
		}

		if got == want {
			continue
		}
		if key == "flags" {
			out = append(out, fmt.Sprintf("flags = 0x%02X (%s), want 0x%02X (%s)",
				got, cpu.Flags(got), want, cpu.Flags(want))) //nolint:gosec // G115: byte values
		} else {
			out = append(out, fmt.Sprintf("%s = 0x%02X, want 0x%02X", key, got, want))
		}
	}

	for _, addr := range s.addresses() {
		if got, want := emu.Memory.Read(addr), s.Memory[addr]; got != want {
			out = append(out, fmt.Sprintf("mem[0x%04X] = 0x%02X, want 0x%02X", addr, got, want))
		}
	}

	if s.Cycles != nil && *s.Cycles != cycles {
		out = append(out, fmt.Sprintf("cycles = %d, want %d", cycles, *s.Cycles))
	}
	if s.Halted != nil && *s.Halted != emu.CPU.Halted() {
		out = append(out, fmt.Sprintf("halted = %v, want %v", emu.CPU.Halted(), *s.Halted))
	}

	return out
}

func registerOf(key string) cpu.Reg {
	switch key {
	case "b":
		return cpu.RegB
	case "c":
		return cpu.RegC
	case "d":
		return cpu.RegD
	case "e":
		return cpu.RegE
	case "h":
		return cpu.RegH
	case "l":
		return cpu.RegL
	}
	return cpu.RegA
}

// String returns a human-readable representation of the result.
func (r *Result) String() string {
	if r.Error != nil {
		return fmt.Sprintf("ERROR: %v", r.Error)
	}

	if r.Passed {
		return "PASSED"
	}

	if r.Failed {
		return "FAILED: " + strings.Join(r.Mismatches, "; ")
	}

	return "UNKNOWN"
}

// IsSuccess returns true if the vector passed.
func (r *Result) IsSuccess() bool {
	return r.Passed && !r.Failed && r.Error == nil
}

// Report collects the results of a vector file.
type Report struct {
	File    string
	Results []*Result
}

// RunFile loads a vector file and runs every vector in it.
func RunFile(path string) (*Report, error) {
	vs, err := Load(path)
	if err != nil {
		return nil, err
	}
	return RunAll(path, vs), nil
}

// RunAll runs vectors in order.
func RunAll(file string, vs []Vector) *Report {
	report := &Report{File: file, Results: make([]*Result, 0, len(vs))}
	for _, v := range vs {
		report.Results = append(report.Results, Run(v))
	}
	return report
}

// Passed returns how many vectors succeeded.
func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.IsSuccess() {
			n++
		}
	}
	return n
}

// Failed returns how many vectors did not succeed.
func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

// IsSuccess returns true if every vector passed.
func (r *Report) IsSuccess() bool {
	return r.Failed() == 0
}

// Package vectors loads and runs golden test vectors: small programs with
// an initial machine state and the state expected after a number of
// instructions retire.
//
// Vector files are Starlark scripts that assign a list of dicts to the
// global "vectors":
//
//	vectors = [
//	    {
//	        "name": "add immediate",
//	        "program": [0xC6, 0x05],
//	        "setup": {"a": 0x01},
//	        "expect": {"a": 0x06, "pc": 2, "cycles": 7, "flags": FIXED | P},
//	    },
//	]
//
// Keys of a vector dict are name, program, origin (default 0), setup, steps
// (default 1) and expect. Setup and expect accept the registers a b c d e h
// l, flags, sp and pc, plus a mem dict of address to byte. Expect also
// accepts cycles and halted. The flag masks C, P, AC, Z, S and FIXED are
// predeclared.
package vectors

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/richardwooding/intel8080/internal/cpu"
)

var (
	// ErrVectorSyntax indicates a vector file is not shaped as expected.
	ErrVectorSyntax = errors.New("vector syntax")

	// ErrNoVectors indicates a vector file does not define "vectors".
	ErrNoVectors = errors.New("no vectors defined")
)

// FieldError describes a malformed field in one vector.
type FieldError struct {
	Vector string
	Field  string
	Err    error
}

func (err *FieldError) Error() string {
	return fmt.Sprintf("vector %q: %s: %v", err.Vector, err.Field, err.Err)
}

func (err *FieldError) Unwrap() error {
	return ErrVectorSyntax
}

// registerKeys lists the settable state keys in report order.
var registerKeys = []string{"a", "b", "c", "d", "e", "h", "l", "flags", "sp", "pc"}

// registerWidth returns the largest value a register key accepts.
func registerWidth(key string) int {
	if key == "sp" || key == "pc" {
		return 0xFFFF
	}
	return 0xFF
}

// State is a partial machine state. Only the keys present are applied or
// checked.
type State struct {
	Registers map[string]int
	Memory    map[uint16]uint8
	Cycles    *uint64
	Halted    *bool
}

// addresses returns the memory keys in ascending order.
func (s *State) addresses() []uint16 {
	addrs := make([]uint16, 0, len(s.Memory))
	for addr := range s.Memory {
		addrs = append(addrs, addr)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	return addrs
}

// Vector is one golden test case.
type Vector struct {
	Name    string
	Program []byte
	Origin  uint16
	Steps   int
	Setup   State
	Expect  State
}

func predeclared() starlark.StringDict {
	return starlark.StringDict{
		"C":     starlark.MakeInt(int(cpu.FlagC)),
		"P":     starlark.MakeInt(int(cpu.FlagP)),
		"AC":    starlark.MakeInt(int(cpu.FlagAC)),
		"Z":     starlark.MakeInt(int(cpu.FlagZ)),
		"S":     starlark.MakeInt(int(cpu.FlagS)),
		"FIXED": starlark.MakeInt(0x02),
	}
}

// Load reads and parses a vector file.
func Load(path string) ([]Vector, error) {
	// #nosec G304 - path is provided by the user via CLI argument
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectors: %w", err)
	}
	return Parse(path, src)
}

// Parse evaluates a vector script. The filename is used in error messages.
func Parse(filename string, src []byte) ([]Vector, error) {
	thread := &starlark.Thread{Name: filename}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, thread, filename, src, predeclared())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVectorSyntax, err)
	}

	value, ok := globals["vectors"]
	if !ok {
		return nil, fmt.Errorf("%w in %s", ErrNoVectors, filename)
	}
	list, ok := value.(*starlark.List)
	if !ok {
		return nil, fmt.Errorf("%w: vectors is %s, want list", ErrVectorSyntax, value.Type())
	}

	out := make([]Vector, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		v, err := vectorFrom(i, list.Index(i))
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}

	return out, nil
}

func vectorFrom(index int, value starlark.Value) (Vector, error) {
	v := Vector{Name: fmt.Sprintf("#%d", index), Steps: 1}

	dict, ok := value.(*starlark.Dict)
	if !ok {
		return v, &FieldError{Vector: v.Name, Field: "vector", Err: fmt.Errorf("got %s, want dict", value.Type())}
	}

	if name, found, _ := dict.Get(starlark.String("name")); found {
		s, ok := starlark.AsString(name)
		if !ok {
			return v, &FieldError{Vector: v.Name, Field: "name", Err: fmt.Errorf("got %s, want string", name.Type())}
		}
		v.Name = s
	}

	for _, item := range dict.Items() {
		key, ok := starlark.AsString(item[0])
		if !ok {
			return v, &FieldError{Vector: v.Name, Field: item[0].String(), Err: errors.New("key is not a string")}
		}

		var err error
		switch key {
		case "name":
		case "program":
			v.Program, err = bytesFrom(item[1])
		case "origin":
			var n int
			n, err = intIn(item[1], 0xFFFF)
			v.Origin = uint16(n) //nolint:gosec // G115: range checked
		case "steps":
			v.Steps, err = intIn(item[1], 1<<20)
		case "setup":
			v.Setup, err = stateFrom(item[1], false)
		case "expect":
			v.Expect, err = stateFrom(item[1], true)
		default:
			err = errors.New("unknown key")
		}
		if err != nil {
			return v, &FieldError{Vector: v.Name, Field: key, Err: err}
		}
	}

	return v, nil
}

func stateFrom(value starlark.Value, expect bool) (State, error) {
	s := State{Registers: map[string]int{}, Memory: map[uint16]uint8{}}

	dict, ok := value.(*starlark.Dict)
	if !ok {
		return s, fmt.Errorf("got %s, want dict", value.Type())
	}

	for _, item := range dict.Items() {
		key, ok := starlark.AsString(item[0])
		if !ok {
			return s, fmt.Errorf("key %s is not a string", item[0])
		}

		switch key {
		case "mem":
			mem, ok := item[1].(*starlark.Dict)
			if !ok {
				return s, fmt.Errorf("mem: got %s, want dict", item[1].Type())
			}
			for _, cell := range mem.Items() {
				addr, err := intIn(cell[0], 0xFFFF)
				if err != nil {
					return s, fmt.Errorf("mem address: %w", err)
				}
				b, err := intIn(cell[1], 0xFF)
				if err != nil {
					return s, fmt.Errorf("mem[0x%04X]: %w", addr, err)
				}
				s.Memory[uint16(addr)] = uint8(b) //nolint:gosec // G115: range checked
			}
		case "cycles":
			if !expect {
				return s, errors.New("cycles is only valid in expect")
			}
			n, err := intIn(item[1], 1<<30)
			if err != nil {
				return s, fmt.Errorf("cycles: %w", err)
			}
			cycles := uint64(n) //nolint:gosec // G115: range checked
			s.Cycles = &cycles
		case "halted":
			if !expect {
				return s, errors.New("halted is only valid in expect")
			}
			b, ok := item[1].(starlark.Bool)
			if !ok {
				return s, fmt.Errorf("halted: got %s, want bool", item[1].Type())
			}
			halted := bool(b)
			s.Halted = &halted
		default:
			if !isRegisterKey(key) {
				return s, fmt.Errorf("unknown key %q", key)
			}
			n, err := intIn(item[1], registerWidth(key))
			if err != nil {
				return s, fmt.Errorf("%s: %w", key, err)
			}
			s.Registers[key] = n
		}
	}

	return s, nil
}

func isRegisterKey(key string) bool {
	for _, k := range registerKeys {
		if k == key {
			return true
		}
	}
	return false
}

// bytesFrom accepts a list of ints or a bytes literal.
func bytesFrom(value starlark.Value) ([]byte, error) {
	switch v := value.(type) {
	case starlark.Bytes:
		return []byte(v), nil
	case *starlark.List:
		out := make([]byte, v.Len())
		for i := range out {
			b, err := intIn(v.Index(i), 0xFF)
			if err != nil {
				return nil, fmt.Errorf("byte %d: %w", i, err)
			}
			out[i] = uint8(b) //nolint:gosec // G115: range checked
		}
		return out, nil
	}
	return nil, fmt.Errorf("got %s, want list or bytes", value.Type())
}

// intIn converts an int in [0, limit].
func intIn(value starlark.Value, limit int) (int, error) {
	n, err := starlark.AsInt32(value)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > limit {
		return 0, fmt.Errorf("%d out of range 0..%d", n, limit)
	}
	return n, nil
}

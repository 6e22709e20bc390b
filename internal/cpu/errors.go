package cpu

import (
	"errors"
	"fmt"
)

// ErrUndefinedOpcode indicates the fetched opcode has no defined instruction.
var ErrUndefinedOpcode = errors.New("undefined opcode")

// UndefinedOpcodeError records an undefined opcode executed as a no-op.
type UndefinedOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *UndefinedOpcodeError) Error() string {
	return fmt.Sprintf("%v 0x%02X at 0x%04X", ErrUndefinedOpcode, e.Opcode, e.PC)
}

func (e *UndefinedOpcodeError) Unwrap() error {
	return ErrUndefinedOpcode
}

package cpu

// Reg identifies an 8-bit register by its 3-bit encoding in the opcode.
type Reg uint8

// Register encodings as they appear in the DDD/SSS opcode fields.
const (
	RegB Reg = 0
	RegC Reg = 1
	RegD Reg = 2
	RegE Reg = 3
	RegH Reg = 4
	RegL Reg = 5
	RegM Reg = 6 // Memory at (HL), not a real register
	RegA Reg = 7
)

var regNames = [8]string{"B", "C", "D", "E", "H", "L", "M", "A"}

// String returns the assembler name of the register.
func (r Reg) String() string {
	return regNames[r&0x07]
}

// Pair identifies a 16-bit register pair.
type Pair uint8

// Register pairs. The first four follow the RP opcode field encoding used by
// LXI/INX/DCX/DAD. PSW replaces SP in the PUSH/POP encoding.
const (
	PairBC Pair = iota
	PairDE
	PairHL
	PairSP
	PairPSW
)

var pairNames = [5]string{"B", "D", "H", "SP", "PSW"}

// String returns the assembler name of the pair.
func (p Pair) String() string {
	if int(p) < len(pairNames) {
		return pairNames[p]
	}
	return "?"
}

// Registers represents the Intel 8080 register file.
type Registers struct {
	A  uint8  // Accumulator
	F  Flags  // Condition flags
	B  uint8  // General purpose
	C  uint8  // General purpose
	D  uint8  // General purpose
	E  uint8  // General purpose
	H  uint8  // General purpose (high byte of HL pointer)
	L  uint8  // General purpose (low byte of HL pointer)
	SP uint16 // Stack pointer
	PC uint16 // Program counter
}

// NewRegisters creates a Registers instance in the reset state.
func NewRegisters() *Registers {
	return &Registers{
		F: flagsReset,
	}
}

// Get returns the value of an 8-bit register. RegM has no backing register
// and reads as zero; the CPU resolves it through memory.
func (r *Registers) Get(reg Reg) uint8 {
	switch reg & 0x07 {
	case RegB:
		return r.B
	case RegC:
		return r.C
	case RegD:
		return r.D
	case RegE:
		return r.E
	case RegH:
		return r.H
	case RegL:
		return r.L
	case RegA:
		return r.A
	}
	return 0
}

// Set writes an 8-bit register. Writes to RegM are ignored.
func (r *Registers) Set(reg Reg, value uint8) {
	switch reg & 0x07 {
	case RegB:
		r.B = value
	case RegC:
		r.C = value
	case RegD:
		r.D = value
	case RegE:
		r.E = value
	case RegH:
		r.H = value
	case RegL:
		r.L = value
	case RegA:
		r.A = value
	}
}

// 16-bit register pair getters

// BC returns the 16-bit BC register pair.
func (r *Registers) BC() uint16 {
	return uint16(r.B)<<8 | uint16(r.C)
}

// DE returns the 16-bit DE register pair.
func (r *Registers) DE() uint16 {
	return uint16(r.D)<<8 | uint16(r.E)
}

// HL returns the 16-bit HL register pair.
func (r *Registers) HL() uint16 {
	return uint16(r.H)<<8 | uint16(r.L)
}

// PSW returns the accumulator and flags as the program status word.
func (r *Registers) PSW() uint16 {
	return uint16(r.A)<<8 | uint16(r.F)
}

// 16-bit register pair setters

// SetBC sets the 16-bit BC register pair.
func (r *Registers) SetBC(value uint16) {
	r.B = uint8(value >> 8) //nolint:gosec // G115: Intentional byte extraction from 16-bit register
	r.C = uint8(value)      //nolint:gosec // G115: Intentional byte extraction from 16-bit register
}

// SetDE sets the 16-bit DE register pair.
func (r *Registers) SetDE(value uint16) {
	r.D = uint8(value >> 8) //nolint:gosec // G115: Intentional byte extraction from 16-bit register
	r.E = uint8(value)      //nolint:gosec // G115: Intentional byte extraction from 16-bit register
}

// SetHL sets the 16-bit HL register pair.
func (r *Registers) SetHL(value uint16) {
	r.H = uint8(value >> 8) //nolint:gosec // G115: Intentional byte extraction from 16-bit register
	r.L = uint8(value)      //nolint:gosec // G115: Intentional byte extraction from 16-bit register
}

// SetPSW sets the accumulator and flags. The fixed flag bits are normalised.
func (r *Registers) SetPSW(value uint16) {
	r.A = uint8(value >> 8)            //nolint:gosec // G115: Intentional byte extraction from 16-bit register
	r.F = normaliseFlags(uint8(value)) //nolint:gosec // G115: Intentional byte extraction from 16-bit register
}

// Pair returns the value of a register pair.
func (r *Registers) Pair(p Pair) uint16 {
	switch p {
	case PairBC:
		return r.BC()
	case PairDE:
		return r.DE()
	case PairHL:
		return r.HL()
	case PairSP:
		return r.SP
	case PairPSW:
		return r.PSW()
	}
	return 0
}

// SetPair writes a register pair.
func (r *Registers) SetPair(p Pair, value uint16) {
	switch p {
	case PairBC:
		r.SetBC(value)
	case PairDE:
		r.SetDE(value)
	case PairHL:
		r.SetHL(value)
	case PairSP:
		r.SP = value
	case PairPSW:
		r.SetPSW(value)
	}
}

// Flag operations

// GetFlag checks if a flag is set.
func (r *Registers) GetFlag(flag Flags) bool {
	return r.F.Test(flag)
}

// SetFlag sets a flag to 1.
func (r *Registers) SetFlag(flag Flags) {
	r.F.Set(flag)
}

// ClearFlag sets a flag to 0.
func (r *Registers) ClearFlag(flag Flags) {
	r.F.Clear(flag)
}

// SetFlagTo sets a flag to a specific boolean value.
func (r *Registers) SetFlagTo(flag Flags, value bool) {
	r.F.Assign(flag, value)
}

package cpu

// Flags is the 8080 condition flag byte.
//
// Bit layout: S Z 0 AC 0 P 1 C. Bit 1 always reads as 1 and bits 3 and 5
// always read as 0; instructions never interpret them.
type Flags uint8

// Flag masks.
const (
	FlagC  Flags = 1 << 0 // Carry
	FlagP  Flags = 1 << 2 // Parity (even)
	FlagAC Flags = 1 << 4 // Auxiliary (half) carry
	FlagZ  Flags = 1 << 6 // Zero
	FlagS  Flags = 1 << 7 // Sign

	// FlagAll covers every architectural condition bit.
	FlagAll = FlagC | FlagP | FlagAC | FlagZ | FlagS

	flagsFixed Flags = 1 << 1
	flagsReset       = flagsFixed
)

// normaliseFlags forces the fixed bits of a raw flag byte, as happens when
// the PSW is popped from the stack.
func normaliseFlags(v uint8) Flags {
	return Flags(v)&FlagAll | flagsFixed
}

// Test reports whether any bit in mask is set.
func (f Flags) Test(mask Flags) bool {
	return f&mask != 0
}

// Set sets the bits in mask.
func (f *Flags) Set(mask Flags) {
	*f |= mask
}

// Clear clears the bits in mask.
func (f *Flags) Clear(mask Flags) {
	*f &^= mask
}

// Assign sets or clears the bits in mask.
func (f *Flags) Assign(mask Flags, value bool) {
	if value {
		f.Set(mask)
	} else {
		f.Clear(mask)
	}
}

// Carry returns the Carry flag state.
func (f Flags) Carry() bool { return f.Test(FlagC) }

// Parity returns the Parity flag state.
func (f Flags) Parity() bool { return f.Test(FlagP) }

// AuxCarry returns the Auxiliary Carry flag state.
func (f Flags) AuxCarry() bool { return f.Test(FlagAC) }

// Zero returns the Zero flag state.
func (f Flags) Zero() bool { return f.Test(FlagZ) }

// Sign returns the Sign flag state.
func (f Flags) Sign() bool { return f.Test(FlagS) }

// String renders the flags as "SZ-A-P-C" with unset flags shown as '.'.
func (f Flags) String() string {
	out := []byte("SZ-A-P-C")
	for i, mask := range [8]Flags{FlagS, FlagZ, 0, FlagAC, 0, FlagP, 0, FlagC} {
		if mask != 0 && !f.Test(mask) {
			out[i] = '.'
		}
	}
	return string(out)
}

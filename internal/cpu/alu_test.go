package cpu

import "testing"

// slowParity counts set bits one at a time.
func slowParity(v uint8) bool {
	n := 0
	for i := 0; i < 8; i++ {
		if v&(1<<i) != 0 {
			n++
		}
	}
	return n%2 == 0
}

func TestParity(t *testing.T) {
	tests := []struct {
		value uint8
		want  bool
	}{
		{0x00, true},
		{0x01, false},
		{0x03, true},
		{0x07, false},
		{0x0F, true},
		{0x80, false},
		{0xFE, false},
		{0xFF, true},
	}

	for _, tt := range tests {
		if got := parity(tt.value); got != tt.want {
			t.Errorf("parity(0x%02X) = %v, want %v", tt.value, got, tt.want)
		}
	}

	for v := 0; v < 256; v++ {
		if parity(uint8(v)) != slowParity(uint8(v)) {
			t.Errorf("parity(0x%02X) disagrees with bit count", v)
		}
	}
}

func TestAddFlagsAllOperands(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			result := uint8(a + b)
			f := flagsFor(flagsReset, result, uint8(a), uint8(b), aluAdd, FlagAll)

			if f.Carry() != (a+b > 255) {
				t.Fatalf("add %02X+%02X: Carry = %v", a, b, f.Carry())
			}
			if f.AuxCarry() != ((a&0x0F)+(b&0x0F) > 15) {
				t.Fatalf("add %02X+%02X: AuxCarry = %v", a, b, f.AuxCarry())
			}
			if f.Zero() != (result == 0) {
				t.Fatalf("add %02X+%02X: Zero = %v", a, b, f.Zero())
			}
			if f.Sign() != (result >= 0x80) {
				t.Fatalf("add %02X+%02X: Sign = %v", a, b, f.Sign())
			}
			if f.Parity() != slowParity(result) {
				t.Fatalf("add %02X+%02X: Parity = %v", a, b, f.Parity())
			}
		}
	}
}

func TestSubFlagsAllOperands(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			result := uint8(a - b)
			f := flagsFor(flagsReset, result, uint8(a), uint8(b), aluSub, FlagAll)

			if f.Carry() != (a < b) {
				t.Fatalf("sub %02X-%02X: Carry = %v", a, b, f.Carry())
			}
			if f.AuxCarry() != (a&0x0F < b&0x0F) {
				t.Fatalf("sub %02X-%02X: AuxCarry = %v", a, b, f.AuxCarry())
			}
			if f.Zero() != (a == b) {
				t.Fatalf("sub %02X-%02X: Zero = %v", a, b, f.Zero())
			}
		}
	}
}

func TestThreeOperandFlags(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			for cin := 0; cin < 2; cin++ {
				sum := uint8(a + b + cin)
				f := flagsFor3(flagsReset, sum, uint8(a), uint8(b), uint8(cin), aluAdd)
				if f.Carry() != (a+b+cin > 255) {
					t.Fatalf("adc %02X+%02X+%d: Carry = %v", a, b, cin, f.Carry())
				}
				if f.AuxCarry() != ((a&0x0F)+(b&0x0F)+cin > 15) {
					t.Fatalf("adc %02X+%02X+%d: AuxCarry = %v", a, b, cin, f.AuxCarry())
				}

				diff := uint8(a - b - cin)
				f = flagsFor3(flagsReset, diff, uint8(a), uint8(b), uint8(cin), aluSub)
				if f.Carry() != (a < b+cin) {
					t.Fatalf("sbb %02X-%02X-%d: Carry = %v", a, b, cin, f.Carry())
				}
				if f.AuxCarry() != (a&0x0F < (b&0x0F)+cin) {
					t.Fatalf("sbb %02X-%02X-%d: AuxCarry = %v", a, b, cin, f.AuxCarry())
				}
				if f.Zero() != (diff == 0) {
					t.Fatalf("sbb %02X-%02X-%d: Zero = %v", a, b, cin, f.Zero())
				}
			}
		}
	}
}

func TestFlagsForMask(t *testing.T) {
	// Only AC is requested; every other bit must survive untouched
	start := flagsReset | FlagZ | FlagC
	got := flagsFor(start, 0x10, 0x0F, 0x01, aluAdd, FlagAC)

	if got != start|FlagAC {
		t.Errorf("flagsFor(mask=AC) = %s, want %s", got, start|FlagAC)
	}

	// An empty mask changes nothing
	if got := flagsFor(start, 0x00, 0xFF, 0xFF, aluAdd, 0); got != start {
		t.Errorf("flagsFor(mask=0) = %s, want %s", got, start)
	}
}

func FuzzALU(f *testing.F) {
	f.Add(uint8(0x9A), uint8(0x00), false)
	f.Add(uint8(0xFF), uint8(0x01), true)
	f.Add(uint8(0x0F), uint8(0x0F), false)

	f.Fuzz(func(t *testing.T, a, b uint8, carry bool) {
		cpu, _ := setupCPU()

		// SUB then ADD restores the accumulator; carry is the inverse relation
		cpu.Registers.A = a
		cpu.sub(b)
		borrow := cpu.Registers.F.Carry()
		cpu.add(b)
		if cpu.Registers.A != a {
			t.Fatalf("A = %02X after sub/add of %02X, want %02X", cpu.Registers.A, b, a)
		}
		if borrow != (a < b) {
			t.Fatalf("borrow = %v for %02X-%02X", borrow, a, b)
		}

		// ADC with carry clear matches ADD exactly
		cpu.Registers.A = a
		cpu.Registers.ClearFlag(FlagC)
		cpu.adc(b)
		adc := cpu.Registers.A
		adcFlags := cpu.Registers.F
		cpu.Registers.A = a
		cpu.add(b)
		if adc != cpu.Registers.A || adcFlags != cpu.Registers.F {
			t.Fatalf("adc(%02X,%02X,0) = %02X/%s, add = %02X/%s", a, b, adc, adcFlags, cpu.Registers.A, cpu.Registers.F)
		}

		// Compare never writes the accumulator
		cpu.Registers.A = a
		cpu.Registers.SetFlagTo(FlagC, carry)
		cpu.compare(b)
		if cpu.Registers.A != a {
			t.Fatalf("compare wrote A = %02X", cpu.Registers.A)
		}

		// The fixed bit survives every operation
		if !cpu.Registers.F.Test(flagsFixed) {
			t.Fatalf("F = %02X lost bit 1", uint8(cpu.Registers.F))
		}
	})
}

// Package digest produces fingerprints of emulator state and execution so
// that separate runs of the same program can be compared. If a new hash
// differs from a previously recorded value then something has changed. This
// is the basis for the golden state checks and for confirming that
// independent CPU instances behave identically.
//
// The hashes are xxhash values; this is not a cryptographic task.
package digest

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash"

	"github.com/richardwooding/intel8080/internal/cpu"
)

// Digest implementations return a hash in response to a Hash() request.
// Generation of the hash is achieved through another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}

// stateHeader is A F B C D E H L then SP and PC, little-endian.
const stateHeader = 12

// State hashes the architectural state: every register, the flag byte, SP,
// PC and the whole of memory.
func State(regs *cpu.Registers, mem []byte) string {
	return format(StateSum(regs, mem))
}

// StateSum is State as a raw value.
func StateSum(regs *cpu.Registers, mem []byte) uint64 {
	h := xxhash.New()

	var hdr [stateHeader]byte
	hdr[0] = regs.A
	hdr[1] = uint8(regs.F)
	hdr[2] = regs.B
	hdr[3] = regs.C
	hdr[4] = regs.D
	hdr[5] = regs.E
	hdr[6] = regs.H
	hdr[7] = regs.L
	binary.LittleEndian.PutUint16(hdr[8:], regs.SP)
	binary.LittleEndian.PutUint16(hdr[10:], regs.PC)

	_, _ = h.Write(hdr[:])
	_, _ = h.Write(mem)

	return h.Sum64()
}

// Trace chains a fingerprint of every retired instruction. Two runs with
// the same Hash retired the same instructions, with the same operands and
// costs, in the same order.
type Trace struct {
	digest uint64
	count  uint64

	// previous digest, then PC, opcode, operands and cycles
	buf [8 + 2 + 3 + 1]byte
}

// Retire implements the cpu.CPU OnRetire hook.
func (t *Trace) Retire(r cpu.Retired) {
	binary.LittleEndian.PutUint64(t.buf[0:], t.digest)
	binary.LittleEndian.PutUint16(t.buf[8:], r.PC)
	t.buf[10] = r.Instruction.Opcode
	t.buf[11] = r.Operands.Lo
	t.buf[12] = r.Operands.Hi
	t.buf[13] = uint8(r.Cycles) //nolint:gosec // G115: cycle costs fit in a byte
	t.digest = xxhash.Sum64(t.buf[:])
	t.count++
}

// Count returns the number of instructions recorded since the last reset.
func (t *Trace) Count() uint64 {
	return t.count
}

// Hash implements the Digest interface.
func (t *Trace) Hash() string {
	return format(t.digest)
}

// ResetDigest implements the Digest interface.
func (t *Trace) ResetDigest() {
	t.digest = 0
	t.count = 0
}

func format(sum uint64) string {
	return fmt.Sprintf("%016x", sum)
}

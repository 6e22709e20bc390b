// Package memory implements the flat 8080 address space.
package memory

import (
	"errors"
	"fmt"
)

// Size is the number of addressable bytes.
const Size = 0x10000

var (
	// ErrImageTooLarge indicates an image does not fit in the address space.
	ErrImageTooLarge = errors.New("image larger than 64 KiB")
)

// RAM is 64 KiB of read/write memory shared by code, data and stack.
type RAM struct {
	data [Size]uint8
}

// New creates a zeroed RAM.
func New() *RAM {
	return &RAM{}
}

// Read reads a byte.
func (m *RAM) Read(addr uint16) uint8 {
	return m.data[addr]
}

// Write writes a byte.
func (m *RAM) Write(addr uint16, value uint8) {
	m.data[addr] = value
}

// Load copies an image into memory starting at origin. Addresses wrap past
// 0xFFFF back to 0x0000.
func (m *RAM) Load(origin uint16, image []byte) error {
	if len(image) > Size {
		return fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(image))
	}

	addr := origin
	for _, b := range image {
		m.data[addr] = b
		addr++
	}

	return nil
}

// Slice returns a copy of n bytes starting at addr, wrapping past 0xFFFF.
func (m *RAM) Slice(addr uint16, n int) []byte {
	if n > Size {
		n = Size
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = m.data[addr]
		addr++
	}
	return out
}

// Bytes returns a copy of the whole address space.
func (m *RAM) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, m.data[:])
	return out
}

// Clear zeroes all of memory.
func (m *RAM) Clear() {
	m.data = [Size]uint8{}
}

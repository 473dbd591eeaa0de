// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

const (
	MEMORY_SIZE = 0x10000 // 64 KiB address space.
)

// ReadFunc reads the byte at addr.
type ReadFunc func(addr uint16) uint8

// WriteFunc writes value to the byte at addr.
type WriteFunc func(addr uint16, value uint8)

// Memory is a flat, zero-initialized 64 KiB memory image.
type Memory [MEMORY_SIZE]uint8

// Read returns the byte at addr.
func (mem *Memory) Read(addr uint16) uint8 {
	return mem[addr]
}

// Write stores value at addr.
func (mem *Memory) Write(addr uint16, value uint8) {
	mem[addr] = value
}

// Word returns the little-endian 16-bit value at addr.
func (mem *Memory) Word(addr uint16) uint16 {
	return uint16(mem[addr]) | (uint16(mem[addr+1]) << 8)
}

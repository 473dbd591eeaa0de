// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// The 8080 stack lives in memory and grows down from SP.

// Push stores a 16-bit value below SP, high byte first.
func (cpu *Cpu) Push(value uint16) {
	cpu.SP--
	cpu.write(cpu.SP, uint8(value>>8))
	cpu.SP--
	cpu.write(cpu.SP, uint8(value))
}

// Pop loads the 16-bit value at SP and releases it.
func (cpu *Cpu) Pop() (value uint16) {
	value = cpu.Peek()
	cpu.SP += 2
	return
}

// Peek returns the 16-bit value at SP without releasing it.
func (cpu *Cpu) Peek() (value uint16) {
	return uint16(cpu.read(cpu.SP)) | (uint16(cpu.read(cpu.SP+1)) << 8)
}

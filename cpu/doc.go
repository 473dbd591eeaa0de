// Package cpu implements the instruction-set simulator for the Intel 8080.
//
// The CPU holds the accumulator, six 8-bit general-purpose registers that
// pair up as BC, DE and HL, a stack pointer, a program counter, and the
// flag byte. It never owns memory: Init binds a ReadFunc and a WriteFunc,
// and every memory access goes through them.
//
// Instructions are decoded into a typed Instruction value. The same table
// drives the assembler's encoder and the simulator's decoder.
package cpu

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"math/bits"
)

// Flag register bits.
const (
	FLAG_CY  = uint8(1 << 0) // Carry
	FLAG_ONE = uint8(1 << 1) // Reserved, always 1
	FLAG_P   = uint8(1 << 2) // Parity (even)
	FLAG_AC  = uint8(1 << 4) // Auxiliary carry
	FLAG_Z   = uint8(1 << 6) // Zero
	FLAG_S   = uint8(1 << 7) // Sign

	FLAG_MASK = FLAG_S | FLAG_Z | FLAG_AC | FLAG_P | FLAG_CY // Writable flag bits.
)

// flagsOf forces the reserved bits of a flag byte to 1/0/0 for bits 1/3/5.
func flagsOf(value uint8) uint8 {
	return (value & FLAG_MASK) | FLAG_ONE
}

// Parity returns true if value has an even number of set bits.
func Parity(value uint8) bool {
	return bits.OnesCount8(value)%2 == 0
}

// szp returns the sign, zero and parity flags of a result.
func szp(value uint8) (flags uint8) {
	flags = value & FLAG_S
	if value == 0 {
		flags |= FLAG_Z
	}
	if Parity(value) {
		flags |= FLAG_P
	}
	return
}

// add8 adds b and the carry-in to a.
func add8(a, b, carry uint8) (result uint8, flags uint8) {
	sum := uint16(a) + uint16(b) + uint16(carry)
	result = uint8(sum)
	flags = szp(result) | FLAG_ONE
	if sum > 0xff {
		flags |= FLAG_CY
	}
	if (a&0xf)+(b&0xf)+carry > 0xf {
		flags |= FLAG_AC
	}
	return
}

// sub8 subtracts b and the borrow-in from a. The carry flag is set on
// borrow; the auxiliary carry follows the two's complement addition.
func sub8(a, b, borrow uint8) (result uint8, flags uint8) {
	result, flags = add8(a, ^b, 1-borrow)
	flags ^= FLAG_CY
	return
}

func and8(a, b uint8) (result uint8, flags uint8) {
	result = a & b
	flags = szp(result) | FLAG_ONE
	if (a|b)&0x08 != 0 {
		flags |= FLAG_AC
	}
	return
}

func xor8(a, b uint8) (result uint8, flags uint8) {
	result = a ^ b
	flags = szp(result) | FLAG_ONE
	return
}

func or8(a, b uint8) (result uint8, flags uint8) {
	result = a | b
	flags = szp(result) | FLAG_ONE
	return
}

// doAlu performs accumulator operation index (add, adc, sub, sbb, ana,
// xra, ora, cmp) and returns the new accumulator and flags.
func doAlu(index int, a, value, f uint8) (result uint8, flags uint8) {
	carry := f & FLAG_CY

	switch index {
	case 0: // add
		result, flags = add8(a, value, 0)
	case 1: // adc
		result, flags = add8(a, value, carry)
	case 2: // sub
		result, flags = sub8(a, value, 0)
	case 3: // sbb
		result, flags = sub8(a, value, carry)
	case 4: // ana
		result, flags = and8(a, value)
	case 5: // xra
		result, flags = xor8(a, value)
	case 6: // ora
		result, flags = or8(a, value)
	case 7: // cmp
		_, flags = sub8(a, value, 0)
		result = a
	default:
		panic("unknown alu index")
	}

	return
}

// inr8 increments value, preserving carry.
func inr8(value, f uint8) (result uint8, flags uint8) {
	result = value + 1
	flags = (f & FLAG_CY) | szp(result) | FLAG_ONE
	if result&0xf == 0 {
		flags |= FLAG_AC
	}
	return
}

// dcr8 decrements value, preserving carry.
func dcr8(value, f uint8) (result uint8, flags uint8) {
	result = value - 1
	flags = (f & FLAG_CY) | szp(result) | FLAG_ONE
	if result&0xf != 0xf {
		flags |= FLAG_AC
	}
	return
}

// daa8 decimal-adjusts the accumulator after a BCD addition.
func daa8(a, f uint8) (result uint8, flags uint8) {
	var correction uint8
	carry := f & FLAG_CY
	lsb := a & 0x0f
	msb := a >> 4

	if lsb > 9 || f&FLAG_AC != 0 {
		correction |= 0x06
	}
	if msb > 9 || carry != 0 || (msb >= 9 && lsb > 9) {
		correction |= 0x60
		carry = FLAG_CY
	}

	result, flags = add8(a, correction, 0)
	flags = (flags &^ FLAG_CY) | carry
	return
}

// rotate performs rlc, rrc, ral or rar on a. Only carry is affected.
func rotate(op Op, a, f uint8) (result uint8, flags uint8) {
	carry := f & FLAG_CY
	flags = f &^ FLAG_CY

	switch op {
	case OP_RLC:
		carry = a >> 7
		result = (a << 1) | carry
	case OP_RRC:
		carry = a & 1
		result = (a >> 1) | (carry << 7)
	case OP_RAL:
		result = (a << 1) | carry
		carry = a >> 7
	case OP_RAR:
		result = (a >> 1) | (carry << 7)
		carry = a & 1
	default:
		panic("not a rotate op")
	}

	flags |= carry
	return
}

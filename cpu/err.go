// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/sim8080/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrMemoryMissing   = errors.New(f("memory accessors not bound"))
	ErrPortMissing     = errors.New(f("no port device attached"))
	ErrRegisterInvalid = errors.New(f("register invalid"))

	// Instruction execution errors
	ErrOpcodeIn  = errors.New(f("in"))
	ErrOpcodeOut = errors.New(f("out"))
)

// ErrOpcode is the fatal error raised when the byte at Addr is not an
// 8080 instruction. The run cannot continue past it.
type ErrOpcode struct {
	Addr uint16
	Byte uint8
}

func (eo *ErrOpcode) Error() string {
	return f("bad opcode 0x%02x at 0x%04x", eo.Byte, eo.Addr)
}

func (eo *ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(*ErrOpcode)
	return
}

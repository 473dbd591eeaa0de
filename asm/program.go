// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"io"
	"iter"

	"github.com/ezrec/sim8080/cpu"
	"github.com/ezrec/sim8080/internal"
)

// Program is an assembled program.
type Program struct {
	Lines []Line      // Source lines, with addresses.
	Image *cpu.Memory // Memory image.
	Label SymbolTable // Label addresses.
}

// Compile parses and assembles an input stream.
func (asm *Assembler) Compile(input io.Reader) (prog *Program, err error) {
	lines, err := Parse(input)
	if err != nil {
		return
	}

	image, label, err := asm.Assemble(lines)
	if err != nil {
		return
	}

	prog = &Program{
		Lines: lines,
		Image: image,
		Label: label,
	}

	return
}

// End returns the address just past the last byte emitted.
func (prog *Program) End() (end int) {
	for _, line := range prog.Lines {
		if line.Size > 0 {
			end = max(end, line.Address+line.Size)
		}
	}
	return
}

// Debug returns the line that emitted the byte at pc, or nil.
func (prog *Program) Debug(pc uint16) *Line {
	for n := range prog.Lines {
		line := &prog.Lines[n]
		if line.Size > 0 && line.Address == int(pc) {
			return line
		}
	}

	return nil
}

// Address returns the address assembled for a source line number.
// Label-only and blank lines map to the address of what follows them.
func (prog *Program) Address(lineno int) (addr uint16, ok bool) {
	for _, line := range prog.Lines {
		if line.LineNo != lineno {
			continue
		}
		if line.Address == NO_ADDRESS || line.Address >= cpu.MEMORY_SIZE {
			return
		}
		return uint16(line.Address), true
	}

	return
}

// Labels iterates over the labels in address order.
func (prog *Program) Labels() iter.Seq2[string, uint16] {
	return internal.SortedByValue(prog.Label)
}

// Instructions iterates over the assembled instructions, by address.
func (prog *Program) Instructions() iter.Seq2[uint16, cpu.Instruction] {
	return func(yield func(addr uint16, ins cpu.Instruction) bool) {
		for _, line := range prog.Lines {
			if line.Size == 0 {
				continue
			}
			if _, _, ok := cpu.LookupMnemonic(line.Mnemonic); !ok {
				continue
			}
			addr := uint16(line.Address)
			ins, err := cpu.Decode(prog.Image.Read, addr)
			if err != nil {
				continue
			}
			if !yield(addr, ins) {
				return
			}
		}
	}
}

// Listing writes an assembly listing: address, bytes, line number, text.
func (prog *Program) Listing(w io.Writer) (err error) {
	for _, line := range prog.Lines {
		addr := ""
		code := ""
		if line.Size > 0 {
			addr = fmt.Sprintf("%04X", line.Address)
			for n := range min(line.Size, 4) {
				code += fmt.Sprintf("%02X ", prog.Image[line.Address+n])
			}
			if line.Size > 4 {
				code += "..."
			}
		}
		_, err = fmt.Fprintf(w, "%-4s  %-15s %5d  %s\n", addr, code, line.LineNo, line.Text)
		if err != nil {
			return
		}
	}

	return
}

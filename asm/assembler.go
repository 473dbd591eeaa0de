// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"log"
	"slices"

	"github.com/ezrec/sim8080/cpu"
)

// SymbolTable maps label names to addresses (or equ values).
type SymbolTable map[string]uint16

// Assembler is a two pass assembler for the 8080.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Label   SymbolTable // Map of labels to addresses.

	labelLine map[string]int // Map of labels to defining line numbers.
	pc        int            // Start address of the line being assembled.
}

// regMap is a map of register names to register selectors.
var regMap = map[string]cpu.Reg{
	"b": cpu.REG_B,
	"c": cpu.REG_C,
	"d": cpu.REG_D,
	"e": cpu.REG_E,
	"h": cpu.REG_H,
	"l": cpu.REG_L,
	"m": cpu.REG_M,
	"a": cpu.REG_A,
}

// pairMap is a map of register pair names, long and short, to pairs.
var pairMap = map[string]cpu.Pair{
	"b":   cpu.PAIR_BC,
	"bc":  cpu.PAIR_BC,
	"d":   cpu.PAIR_DE,
	"de":  cpu.PAIR_DE,
	"h":   cpu.PAIR_HL,
	"hl":  cpu.PAIR_HL,
	"sp":  cpu.PAIR_SP,
	"psw": cpu.PAIR_PSW,
}

// Assemble assembles lines into a memory image, starting at address 0.
// On success every line has its Address and Size set. On error no image
// or symbol table is returned, and no line keeps an address.
func (asm *Assembler) Assemble(lines []Line) (image *cpu.Memory, symbols SymbolTable, err error) {
	var line *Line

	defer func() {
		if err != nil {
			if line != nil {
				err = &ErrAssembly{LineNo: line.LineNo, Line: line.Text, Err: err}
			}
			for n := range lines {
				lines[n].Address = NO_ADDRESS
				lines[n].Size = 0
			}
			asm.Label = nil
			image = nil
			symbols = nil
		}
	}()

	asm.Label = make(SymbolTable)
	asm.labelLine = make(map[string]int)
	sizes := make([]int, len(lines))

	// Pass 1: sizes and labels.
	cursor := 0
	for n := range lines {
		line = &lines[n]
		asm.pc = cursor

		if len(line.Label) != 0 {
			err = asm.define(line, cursor)
			if err != nil {
				return
			}
		}

		if len(line.Mnemonic) == 0 {
			continue
		}

		sizes[n], err = asm.size(line)
		if err != nil {
			return
		}

		if cursor+sizes[n] > cpu.MEMORY_SIZE {
			err = ErrAddressOverflow
			return
		}
		cursor += sizes[n]
	}

	// Pass 2: encoding.
	image = &cpu.Memory{}
	cursor = 0
	for n := range lines {
		line = &lines[n]
		asm.pc = cursor

		var code []uint8
		if len(line.Mnemonic) != 0 {
			code, err = asm.encode(line)
			if err != nil {
				return
			}
		}

		if len(code) != sizes[n] {
			panic(fmt.Sprintf("line %d: pass 1 size %d, pass 2 size %d", line.LineNo, sizes[n], len(code)))
		}

		copy(image[cursor:], code)
		line.Address = cursor
		line.Size = len(code)

		if asm.Verbose && !line.Empty() {
			log.Printf("%04x: % x\t%v", cursor, code, line)
		}

		cursor += len(code)
	}

	line = nil
	symbols = asm.Label

	return
}

// define records the label of a line.
func (asm *Assembler) define(line *Line, cursor int) (err error) {
	label := line.Label

	first, ok := asm.labelLine[label]
	if ok {
		err = &ErrLabelDuplicate{Label: label, LineNo: first}
		return
	}

	var value int
	if line.Mnemonic == "equ" {
		if len(line.Operands) != 1 {
			err = ErrOperandCount
			return
		}
		value, err = asm.value(line.Operands[0])
		if err != nil {
			return
		}
		if value < -0x8000 || value > 0xffff {
			err = ErrValueRange
			return
		}
	} else {
		if cursor >= cpu.MEMORY_SIZE {
			err = ErrAddressOverflow
			return
		}
		value = cursor
	}

	asm.labelLine[label] = line.LineNo
	asm.Label[label] = uint16(value)

	return
}

// size returns the number of bytes a line will emit.
func (asm *Assembler) size(line *Line) (size int, err error) {
	ops := line.Operands

	switch line.Mnemonic {
	case "equ":
		if len(line.Label) == 0 {
			err = ErrEquateLabel
		}
	case "db":
		if len(ops) == 0 {
			err = ErrOperandCount
			return
		}
		for _, op := range ops {
			switch op.Kind {
			case OPERAND_STRING:
				size += len(op.Text)
			case OPERAND_REGISTER:
				err = ErrOperandInvalid
				return
			default:
				size++
			}
		}
	case "dw":
		if len(ops) == 0 {
			err = ErrOperandCount
			return
		}
		for _, op := range ops {
			switch op.Kind {
			case OPERAND_STRING, OPERAND_REGISTER:
				err = ErrOperandInvalid
				return
			default:
				size += 2
			}
		}
	case "ds":
		size, err = asm.reserve(line)
	default:
		op, _, ok := cpu.LookupMnemonic(line.Mnemonic)
		if !ok {
			err = ErrInstructionInvalid
			return
		}
		size = op.Size()
	}

	return
}

// reserve returns the byte count of a ds directive.
func (asm *Assembler) reserve(line *Line) (size int, err error) {
	if len(line.Operands) != 1 {
		err = ErrOperandCount
		return
	}

	size, err = asm.value(line.Operands[0])
	if err != nil {
		return
	}

	if size < 0 || size > cpu.MEMORY_SIZE {
		err = ErrValueRange
		return
	}

	return
}

// encode returns the bytes emitted by a line.
func (asm *Assembler) encode(line *Line) (code []uint8, err error) {
	switch line.Mnemonic {
	case "equ":
		// Emits nothing.
	case "db":
		for _, op := range line.Operands {
			if op.Kind == OPERAND_STRING {
				code = append(code, []uint8(op.Text)...)
				continue
			}
			var value uint16
			value, err = asm.immediate(op, 8)
			if err != nil {
				return
			}
			code = append(code, uint8(value))
		}
	case "dw":
		for _, op := range line.Operands {
			var value uint16
			value, err = asm.immediate(op, 16)
			if err != nil {
				return
			}
			code = append(code, uint8(value), uint8(value>>8))
		}
	case "ds":
		var size int
		size, err = asm.reserve(line)
		if err != nil {
			return
		}
		code = make([]uint8, size)
	default:
		var ins cpu.Instruction
		ins, err = asm.instruction(line.Mnemonic, line.Operands)
		if err != nil {
			return
		}
		code = ins.Encode()
	}

	return
}

// instruction builds the instruction for a mnemonic and its operands.
func (asm *Assembler) instruction(mnemonic string, ops []Operand) (ins cpu.Instruction, err error) {
	op, cond, ok := cpu.LookupMnemonic(mnemonic)
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	ins = cpu.Instruction{Op: op, Cond: cond}

	shape := op.Shape()
	if len(ops) != shape.Operands() {
		err = ErrOperandCount
		return
	}

	allPairs := []cpu.Pair{cpu.PAIR_BC, cpu.PAIR_DE, cpu.PAIR_HL, cpu.PAIR_SP}

	switch shape {
	case cpu.SHAPE_NONE, cpu.SHAPE_COND:
		// No operands.
	case cpu.SHAPE_REG:
		ins.Dst, err = register(ops[0])
	case cpu.SHAPE_SRC:
		ins.Src, err = register(ops[0])
	case cpu.SHAPE_MOV:
		ins.Dst, err = register(ops[0])
		if err != nil {
			return
		}
		ins.Src, err = register(ops[1])
		if err != nil {
			return
		}
		if ins.Dst == cpu.REG_M && ins.Src == cpu.REG_M {
			err = ErrOperandInvalid
		}
	case cpu.SHAPE_REG_D8:
		ins.Dst, err = register(ops[0])
		if err != nil {
			return
		}
		ins.Imm, err = asm.immediate(ops[1], 8)
	case cpu.SHAPE_PAIR:
		ins.Pair, err = pair(ops[0], allPairs...)
	case cpu.SHAPE_PAIR_BD:
		ins.Pair, err = pair(ops[0], cpu.PAIR_BC, cpu.PAIR_DE)
	case cpu.SHAPE_PAIR_PSW:
		ins.Pair, err = pair(ops[0], cpu.PAIR_BC, cpu.PAIR_DE, cpu.PAIR_HL, cpu.PAIR_PSW)
	case cpu.SHAPE_PAIR_D16:
		ins.Pair, err = pair(ops[0], allPairs...)
		if err != nil {
			return
		}
		ins.Imm, err = asm.immediate(ops[1], 16)
	case cpu.SHAPE_D8:
		ins.Imm, err = asm.immediate(ops[0], 8)
	case cpu.SHAPE_A16, cpu.SHAPE_COND_A16:
		ins.Imm, err = asm.immediate(ops[0], 16)
	case cpu.SHAPE_VECTOR:
		var value int
		value, err = asm.value(ops[0])
		if err != nil {
			return
		}
		if value < 0 || value > 7 {
			err = ErrValueRange
			return
		}
		ins.Vector = uint8(value)
	default:
		panic("unknown shape")
	}

	return
}

// register returns the 8-bit register named by an operand.
func register(op Operand) (reg cpu.Reg, err error) {
	reg, ok := regMap[op.Text]
	if op.Kind != OPERAND_REGISTER || !ok {
		err = ErrRegisterInvalid
	}
	return
}

// pair returns the register pair named by an operand, if allowed.
func pair(op Operand, allowed ...cpu.Pair) (rp cpu.Pair, err error) {
	rp, ok := pairMap[op.Text]
	if op.Kind != OPERAND_REGISTER || !ok || !slices.Contains(allowed, rp) {
		err = ErrRegisterInvalid
	}
	return
}

// immediate returns an operand value that fits in width bits, either
// signed or unsigned.
func (asm *Assembler) immediate(op Operand, width int) (imm uint16, err error) {
	value, err := asm.value(op)
	if err != nil {
		return
	}

	limit := 1 << width
	if value < -(limit/2) || value >= limit {
		err = ErrValueRange
		return
	}

	imm = uint16(value) & uint16(limit-1)
	return
}

// value returns the numeric value of a number, character, label or
// expression operand.
func (asm *Assembler) value(op Operand) (value int, err error) {
	switch op.Kind {
	case OPERAND_NUMBER, OPERAND_CHAR:
		value = op.Value
	case OPERAND_NAME:
		addr, ok := asm.Label[op.Text]
		if !ok {
			err = ErrLabelMissing(op.Text)
			return
		}
		value = int(addr)
	case OPERAND_EXPR:
		value, err = asm.evaluate(op.Text)
	default:
		err = ErrOperandInvalid
	}

	return
}

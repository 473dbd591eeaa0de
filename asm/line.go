// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"fmt"
	"strings"
)

const (
	NO_ADDRESS = -1 // Line.Address before assembly.
)

// OperandKind is the lexical class of an operand.
type OperandKind int

//go:generate go tool stringer -linecomment -type=OperandKind
const (
	OPERAND_REGISTER = OperandKind(0) // register
	OPERAND_NUMBER   = OperandKind(1) // number
	OPERAND_CHAR     = OperandKind(2) // char
	OPERAND_STRING   = OperandKind(3) // string
	OPERAND_NAME     = OperandKind(4) // name
	OPERAND_EXPR     = OperandKind(5) // expr
)

// Operand is a single comma-separated operand.
type Operand struct {
	Kind  OperandKind
	Text  string // Register or name; expression text; string contents.
	Value int    // Number or character value.
}

// String returns the operand as it would be written in source.
func (op Operand) String() string {
	switch op.Kind {
	case OPERAND_NUMBER:
		return fmt.Sprintf("%d", op.Value)
	case OPERAND_CHAR:
		return fmt.Sprintf("%q", rune(op.Value))
	case OPERAND_STRING:
		return fmt.Sprintf("%q", op.Text)
	case OPERAND_EXPR:
		return "$(" + op.Text + ")"
	default:
		return op.Text
	}
}

// Line is one line of source.
type Line struct {
	LineNo   int       // 1-based line number.
	Text     string    // Original text.
	Label    string    // Label defined on this line, if any.
	Mnemonic string    // Lower-case mnemonic or directive, if any.
	Operands []Operand // Operands, in order.

	Address int // Start address, NO_ADDRESS until assembled.
	Size    int // Bytes emitted, set with Address.
}

// Empty returns true for blank and comment-only lines.
func (line *Line) Empty() bool {
	return len(line.Label) == 0 && len(line.Mnemonic) == 0
}

// String returns the line in canonical form.
func (line *Line) String() (out string) {
	if len(line.Label) != 0 {
		out = line.Label + ":"
	}
	if len(line.Mnemonic) != 0 {
		words := make([]string, len(line.Operands))
		for n, op := range line.Operands {
			words[n] = op.String()
		}
		out += "\t" + line.Mnemonic
		if len(words) != 0 {
			out += "\t" + strings.Join(words, ", ")
		}
	}
	return
}

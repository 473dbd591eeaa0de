// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"

	"github.com/ezrec/sim8080/translate"
)

var f = translate.From

var (
	// Parser errors
	ErrTokenInvalid            = errors.New(f("token invalid"))
	ErrOperandMissing          = errors.New(f("operand missing"))
	ErrStringUnterminated      = errors.New(f("string unterminated"))
	ErrEscapeInvalid           = errors.New(f("escape invalid"))
	ErrExpressionUnterminated  = errors.New(f("expression unterminated"))
	ErrLabelReserved           = errors.New(f("label is a register name"))
	ErrLabelKeyword            = errors.New(f("label is an expression keyword"))
	ErrLabelInvalid            = errors.New(f("label invalid"))
	ErrMnemonicInvalid         = errors.New(f("mnemonic invalid"))
	ErrStringEmpty             = errors.New(f("empty string"))
	ErrOperandSeparatorMissing = errors.New(f("operand separator missing"))

	// Assembler errors
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrOperandCount       = errors.New(f("wrong operand count"))
	ErrOperandInvalid     = errors.New(f("operand invalid"))
	ErrRegisterInvalid    = errors.New(f("register invalid"))
	ErrValueRange         = errors.New(f("value out of range"))
	ErrAddressOverflow    = errors.New(f("address beyond 64K"))
	ErrEquateLabel        = errors.New(f("equ without label"))
)

// ErrParse reports malformed source text.
type ErrParse struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrParse) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}

// ErrAssembly reports source that parses but cannot be encoded.
type ErrAssembly struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrAssembly) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrAssembly) Unwrap() error {
	return err.Err
}

// ErrLabelMissing names a label that is referenced but never defined.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrLabelDuplicate names a label defined twice, and where it was first defined.
type ErrLabelDuplicate struct {
	Label  string
	LineNo int
}

func (el *ErrLabelDuplicate) Error() string {
	return f("label %v duplicated, first defined on line %d", el.Label, el.LineNo)
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"errors"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// evaluate does compile-time $(...) evaluations. Every label defined so
// far is predeclared, as is PC, the address of the current line.
func (asm *Assembler) evaluate(expr string) (value int, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}

	pred := starlark.StringDict{
		"PC": starlark.MakeInt(asm.pc),
	}
	for label, addr := range asm.Label {
		pred[label] = starlark.MakeInt(int(addr))
	}

	prog := "rc = " + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}

	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 < -0x10000 || st_int64 > 0x10000 {
		err = errors.Join(ErrParseExpression(expr), ErrValueRange)
		return
	}

	value = int(st_int64)
	return
}

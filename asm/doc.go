// Package asm implements the source parser and the two-pass assembler for
// the Intel 8080.
//
// Parse splits text into one Line per input line. An Assembler then sizes
// every line and collects labels (pass 1), and encodes every line into a
// 64 KiB memory image (pass 2), recording the address of each line.
//
// The accepted syntax is the usual 8080 one:
//
//	Loop:   ldax  bc        ; load next byte
//	        cpi   0
//	        jz    Done
//	        mvi   c, 14
//	Count:  equ   $(Done - Loop)
//	str:    db    'hello, friends', 0
//
// Numbers may be decimal, hex with a trailing h or a leading 0x, binary
// with a trailing b, or octal with a trailing o or q. $(...) operands are
// Starlark expressions over the labels and PC, so a label may not be a
// Starlark keyword such as pass or for.
package asm

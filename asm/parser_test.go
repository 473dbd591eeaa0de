package asm

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEmpty(t *testing.T) {
	assert := assert.New(t)

	lines, err := ParseString("")
	assert.NoError(err)
	assert.Equal(0, len(lines))

	lines, err = ParseString("\n   \n; just a comment\n")
	assert.NoError(err)
	assert.Equal(3, len(lines))
	for n, line := range lines {
		assert.Equal(n+1, line.LineNo)
		assert.True(line.Empty())
		assert.Equal(NO_ADDRESS, line.Address)
	}
}

func TestParseLine(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"Loop: mov a, b ; copy",
		"  MVI A, 0FFh",
		"Done:",
		"  db 'a;b', \"x\", '\\n'",
		"  jmp Loop",
		"  mvi c, $(Done - Loop)",
		"  hlt",
	}

	lines, err := ParseString(strings.Join(program, "\n"))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	expected := []Line{
		{LineNo: 1, Text: program[0], Label: "Loop", Mnemonic: "mov", Operands: []Operand{
			{Kind: OPERAND_REGISTER, Text: "a"},
			{Kind: OPERAND_REGISTER, Text: "b"},
		}},
		{LineNo: 2, Text: program[1], Mnemonic: "mvi", Operands: []Operand{
			{Kind: OPERAND_REGISTER, Text: "a"},
			{Kind: OPERAND_NUMBER, Text: "0FFh", Value: 0xff},
		}},
		{LineNo: 3, Text: program[2], Label: "Done"},
		{LineNo: 4, Text: program[3], Mnemonic: "db", Operands: []Operand{
			{Kind: OPERAND_STRING, Text: "a;b"},
			{Kind: OPERAND_CHAR, Text: "x", Value: 'x'},
			{Kind: OPERAND_CHAR, Text: "\n", Value: '\n'},
		}},
		{LineNo: 5, Text: program[4], Mnemonic: "jmp", Operands: []Operand{
			{Kind: OPERAND_NAME, Text: "Loop"},
		}},
		{LineNo: 6, Text: program[5], Mnemonic: "mvi", Operands: []Operand{
			{Kind: OPERAND_REGISTER, Text: "c"},
			{Kind: OPERAND_EXPR, Text: "Done - Loop"},
		}},
		{LineNo: 7, Text: program[6], Mnemonic: "hlt"},
	}

	assert.Equal(len(expected), len(lines))
	for n := range min(len(expected), len(lines)) {
		expected[n].Address = NO_ADDRESS
		assert.Equal(expected[n], lines[n], program[n])
	}

	assert.Equal("Loop:\tmov\ta, b", lines[0].String())
	assert.Equal("\tmvi\ta, 255", lines[1].String())
	assert.Equal("Done:", lines[2].String())
	assert.Equal("\tmvi\tc, $(Done - Loop)", lines[5].String())
}

func TestParseNumber(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]int{
		"0":      0,
		"10":     10,
		"255d":   255,
		"0x1F":   0x1f,
		"1Fh":    0x1f,
		"0ffh":   0xff,
		"0FFFFH": 0xffff,
		"0b101":  5,
		"101b":   5,
		"17o":    15,
		"17Q":    15,
		"-5":     -5,
		"+7":     7,
		"-80h":   -0x80,
	}

	for text, value := range cases {
		got, err := ParseNumber(text)
		assert.NoError(err, text)
		assert.Equal(value, got, text)
	}

	for _, text := range []string{"", "-", "0x", "h", "12x", "19o", "102b", "1_000", "--1", "0x-1"} {
		_, err := ParseNumber(text)
		assert.ErrorIs(err, ErrParseNumber(text), text)
	}
}

func TestParseError(t *testing.T) {
	assert := assert.New(t)

	cases := []struct {
		text string
		err  error
	}{
		{"  mvi a, 'abc", ErrStringUnterminated},
		{"a: nop", ErrLabelReserved},
		{"PSW: nop", ErrLabelReserved},
		{"pass: nop", ErrLabelKeyword},
		{"for:", ErrLabelKeyword},
		{"  mvi a,, 1", ErrOperandMissing},
		{"  mvi a,", ErrOperandMissing},
		{"  mvi a b", ErrOperandSeparatorMissing},
		{"  db ''", ErrStringEmpty},
		{"  db '\\q'", ErrEscapeInvalid},
		{"  mvi a, $(1 + 2", ErrExpressionUnterminated},
		{"  123", ErrMnemonicInvalid},
		{"  mov a, @", ErrTokenInvalid},
		{"  mvi a, 12x", ErrParseNumber("12x")},
	}

	for _, tc := range cases {
		program := []string{"  nop", "", tc.text, "  hlt"}
		lines, err := ParseString(strings.Join(program, "\n"))
		assert.ErrorIs(err, tc.err, tc.text)
		assert.Nil(lines, tc.text)

		var ep *ErrParse
		if assert.True(errors.As(err, &ep), tc.text) {
			assert.Equal(3, ep.LineNo, tc.text)
			assert.Equal(tc.text, ep.Line, tc.text)
		}
	}
}

func TestParseCase(t *testing.T) {
	assert := assert.New(t)

	lines, err := ParseString("Loop: LXI HL, Loop\nloop: Push PSW")
	assert.NoError(err)

	assert.Equal("Loop", lines[0].Label)
	assert.Equal("lxi", lines[0].Mnemonic)
	assert.Equal(Operand{Kind: OPERAND_REGISTER, Text: "hl"}, lines[0].Operands[0])
	assert.Equal(Operand{Kind: OPERAND_NAME, Text: "Loop"}, lines[0].Operands[1])

	assert.Equal("loop", lines[1].Label)

	// Keywords are case-sensitive in expressions.
	lines, err = ParseString("Pass: nop")
	assert.NoError(err)
	assert.Equal("Pass", lines[0].Label)
	assert.Equal("push", lines[1].Mnemonic)
	assert.Equal(Operand{Kind: OPERAND_REGISTER, Text: "psw"}, lines[1].Operands[0])
}

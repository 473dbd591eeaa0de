// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package asm

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// registerNames are the reserved register and register pair names.
var registerNames = map[string]bool{
	"a": true, "b": true, "c": true, "d": true, "e": true, "h": true, "l": true, "m": true,
	"bc": true, "de": true, "hl": true, "sp": true, "psw": true,
}

// exprKeywords are the Starlark keywords, which cannot name a label
// used inside $(...).
var exprKeywords = map[string]bool{
	"and": true, "break": true, "continue": true, "def": true, "elif": true,
	"else": true, "for": true, "if": true, "in": true, "lambda": true,
	"load": true, "not": true, "or": true, "pass": true, "return": true,
	"while": true,
}

var (
	reLabel    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	reMnemonic = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)(\s+|$)`)
	reIdent    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Parse parses an input stream into source lines, one per input line.
// Parsing stops at the first malformed line.
func Parse(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	var text string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrParse{LineNo: lineno, Line: text, Err: err}
			lines = nil
		}
	}()

	for scanner.Scan() {
		text = scanner.Text()
		lineno += 1

		var line Line
		line, err = parseLine(text, lineno)
		if err != nil {
			return
		}

		lines = append(lines, line)
	}

	err = scanner.Err()

	return
}

// ParseString parses source text.
func ParseString(text string) (lines []Line, err error) {
	return Parse(strings.NewReader(text))
}

// parseLine parses a single line into its label, mnemonic and operands.
func parseLine(text string, lineno int) (line Line, err error) {
	line = Line{LineNo: lineno, Text: text, Address: NO_ADDRESS}

	body, err := stripComment(text)
	if err != nil {
		return
	}
	body = strings.TrimSpace(body)

	if match := reLabel.FindStringSubmatch(body); match != nil {
		label := match[1]
		if registerNames[strings.ToLower(label)] {
			err = ErrLabelReserved
			return
		}
		if exprKeywords[label] {
			err = ErrLabelKeyword
			return
		}
		line.Label = label
		body = strings.TrimSpace(body[len(match[0]):])
	}

	if len(body) == 0 {
		return
	}

	match := reMnemonic.FindStringSubmatch(body)
	if match == nil {
		err = ErrMnemonicInvalid
		return
	}
	line.Mnemonic = strings.ToLower(match[1])
	body = strings.TrimSpace(body[len(match[0]):])

	if len(body) == 0 {
		return
	}

	words, err := splitOperands(body)
	if err != nil {
		return
	}

	for _, word := range words {
		var op Operand
		op, err = parseOperand(word)
		if err != nil {
			return
		}
		line.Operands = append(line.Operands, op)
	}

	return
}

// quoteState tracks quoted literals while scanning a line.
type quoteState struct {
	quote   rune
	escaped bool
}

// next advances over r, and returns true if r is inside a literal.
func (qs *quoteState) next(r rune) bool {
	switch {
	case qs.quote == 0:
		if r == '\'' || r == '"' {
			qs.quote = r
			return true
		}
		return false
	case qs.escaped:
		qs.escaped = false
	case r == '\\':
		qs.escaped = true
	case r == qs.quote:
		qs.quote = 0
	}
	return true
}

// stripComment removes a ';' comment that is not inside a literal.
func stripComment(text string) (body string, err error) {
	var qs quoteState

	for n, r := range text {
		if qs.next(r) {
			continue
		}
		if r == ';' {
			return text[:n], nil
		}
	}

	if qs.quote != 0 {
		err = ErrStringUnterminated
		return
	}

	body = text
	return
}

// splitOperands splits on commas outside literals and parentheses.
func splitOperands(body string) (words []string, err error) {
	var qs quoteState
	var depth int
	var start int

	for n, r := range body {
		if qs.next(r) {
			continue
		}
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				words = append(words, strings.TrimSpace(body[start:n]))
				start = n + 1
			}
		}
	}

	if depth != 0 {
		err = ErrExpressionUnterminated
		return
	}

	words = append(words, strings.TrimSpace(body[start:]))

	for _, word := range words {
		if len(word) == 0 {
			err = ErrOperandMissing
			return
		}
	}

	return
}

// parseOperand classifies a single operand word.
func parseOperand(word string) (op Operand, err error) {
	switch {
	case word[0] == '\'' || word[0] == '"':
		var str string
		str, err = unquote(word)
		if err != nil {
			return
		}
		switch len(str) {
		case 0:
			err = ErrStringEmpty
		case 1:
			op = Operand{Kind: OPERAND_CHAR, Text: str, Value: int(str[0])}
		default:
			op = Operand{Kind: OPERAND_STRING, Text: str}
		}
	case strings.HasPrefix(word, "$("):
		if !strings.HasSuffix(word, ")") {
			err = ErrExpressionUnterminated
			return
		}
		expr := strings.TrimSpace(word[2 : len(word)-1])
		if len(expr) == 0 {
			err = ErrOperandMissing
			return
		}
		op = Operand{Kind: OPERAND_EXPR, Text: expr}
	case (word[0] >= '0' && word[0] <= '9') || word[0] == '-' || word[0] == '+':
		var value int
		value, err = ParseNumber(word)
		if err != nil {
			return
		}
		op = Operand{Kind: OPERAND_NUMBER, Text: word, Value: value}
	case reIdent.MatchString(word):
		lower := strings.ToLower(word)
		if registerNames[lower] {
			op = Operand{Kind: OPERAND_REGISTER, Text: lower}
		} else {
			op = Operand{Kind: OPERAND_NAME, Text: word}
		}
	case strings.ContainsAny(word, " \t"):
		err = ErrOperandSeparatorMissing
	default:
		err = ErrTokenInvalid
	}

	return
}

// unquote decodes a quoted literal, which must span the whole word.
func unquote(word string) (str string, err error) {
	quote := word[0]
	var out []byte

	for n := 1; n < len(word); n++ {
		c := word[n]
		switch {
		case c == quote:
			if n != len(word)-1 {
				err = ErrOperandSeparatorMissing
				return
			}
			str = string(out)
			return
		case c == '\\':
			n++
			if n == len(word) {
				err = ErrStringUnterminated
				return
			}
			switch word[n] {
			case '\\', '\'', '"':
				out = append(out, word[n])
			case 'n':
				out = append(out, '\n')
			case 'r':
				out = append(out, '\r')
			case 't':
				out = append(out, '\t')
			case '0':
				out = append(out, 0)
			case 'e':
				out = append(out, 0x1b)
			default:
				err = ErrEscapeInvalid
				return
			}
		default:
			out = append(out, c)
		}
	}

	err = ErrStringUnterminated
	return
}

// ParseNumber parses a numeric literal: decimal, 0x.. or ..h hex,
// 0b.. or ..b binary, ..o or ..q octal, with an optional sign.
// The result is not range checked.
func ParseNumber(text string) (value int, err error) {
	if len(text) == 0 {
		err = ErrParseNumber(text)
		return
	}

	digits := text
	negative := false

	switch digits[0] {
	case '-':
		negative = true
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}

	if len(digits) == 0 || digits[0] < '0' || digits[0] > '9' {
		err = ErrParseNumber(text)
		return
	}

	digits = strings.ToLower(digits)
	base := 10

	switch {
	case strings.HasPrefix(digits, "0x"):
		base, digits = 16, digits[2:]
	case strings.HasSuffix(digits, "h"):
		base, digits = 16, digits[:len(digits)-1]
	case strings.HasPrefix(digits, "0b") && len(digits) > 2:
		base, digits = 2, digits[2:]
	case strings.HasSuffix(digits, "b"):
		base, digits = 2, digits[:len(digits)-1]
	case strings.HasSuffix(digits, "o"), strings.HasSuffix(digits, "q"):
		base, digits = 8, digits[:len(digits)-1]
	case strings.HasSuffix(digits, "d"):
		digits = digits[:len(digits)-1]
	}

	if len(digits) == 0 || strings.ContainsAny(digits, "+-_") {
		err = ErrParseNumber(text)
		return
	}

	v64, err := strconv.ParseInt(digits, base, 32)
	if err != nil {
		err = ErrParseNumber(text)
		return
	}

	value = int(v64)
	if negative {
		value = -value
	}

	return
}

package cpu

import (
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

var invalidOpcodes = []uint8{0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38, 0xcb, 0xd9, 0xdd, 0xed, 0xfd}

func TestOpcodeValid(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for code := range 256 {
		valid := Valid(uint8(code))
		assert.Equal(!slices.Contains(invalidOpcodes, uint8(code)), valid, "0x%02x", code)
		if valid {
			count++
		}
	}

	assert.Equal(244, count)
}

func TestOpcodeDecode(t *testing.T) {
	assert := assert.New(t)

	for code := range 256 {
		mem := &Memory{uint8(code), 0x34, 0x12}

		ins, err := Decode(mem.Read, 0)
		if !Valid(uint8(code)) {
			var eo *ErrOpcode
			assert.True(errors.As(err, &eo))
			assert.Equal(uint16(0), eo.Addr)
			assert.Equal(uint8(code), eo.Byte)
			continue
		}

		assert.NoError(err)
		assert.Equal(uint8(code), ins.Opcode(), "%v", ins)

		encoded := ins.Encode()
		assert.Equal(ins.Op.Size(), len(encoded), "%v", ins)
		assert.Equal(mem[:len(encoded)], encoded, "%v", ins)
	}
}

func TestOpcodeMnemonic(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]struct {
		op   Op
		cond Cond
	}{
		"nop":  {OP_NOP, 0},
		"mov":  {OP_MOV, 0},
		"jmp":  {OP_JMP, 0},
		"jnz":  {OP_JCC, COND_NZ},
		"jm":   {OP_JCC, COND_M},
		"rz":   {OP_RCC, COND_Z},
		"cpe":  {OP_CCC, COND_PE},
		"cpi":  {OP_CPI, 0},
		"rst":  {OP_RST, 0},
		"xthl": {OP_XTHL, 0},
	}

	for name, expected := range cases {
		op, cond, ok := LookupMnemonic(name)
		assert.True(ok, name)
		assert.Equal(expected.op, op, name)
		assert.Equal(expected.cond, cond, name)
	}

	for _, name := range []string{"", "jcc", "rcc", "ccc", "MOV", "foo", "org"} {
		_, _, ok := LookupMnemonic(name)
		assert.False(ok, name)
	}
}

func TestOpcodeString(t *testing.T) {
	assert := assert.New(t)

	cases := map[string]Instruction{
		"nop":            {Op: OP_NOP},
		"mvi a, 0x05":    {Op: OP_MVI, Dst: REG_A, Imm: 5},
		"mov m, a":       {Op: OP_MOV, Dst: REG_M, Src: REG_A},
		"add b":          {Op: OP_ADD, Src: REG_B},
		"lxi sp, 0x1234": {Op: OP_LXI, Pair: PAIR_SP, Imm: 0x1234},
		"push psw":       {Op: OP_PUSH, Pair: PAIR_PSW},
		"ldax de":        {Op: OP_LDAX, Pair: PAIR_DE},
		"rst 7":          {Op: OP_RST, Vector: 7},
		"cnz 0x0010":     {Op: OP_CCC, Cond: COND_NZ, Imm: 0x10},
		"rpo":            {Op: OP_RCC, Cond: COND_PO},
		"out 0x01":       {Op: OP_OUT, Imm: 1},
	}

	for text, ins := range cases {
		assert.Equal(text, ins.String())
	}

	assert.Equal([]uint8{0xcd, 0x34, 0x12}, Instruction{Op: OP_CALL, Imm: 0x1234}.Encode())
	assert.Equal([]uint8{0xff}, Instruction{Op: OP_RST, Vector: 7}.Encode())
	assert.Equal([]uint8{0x36, 0xaa}, Instruction{Op: OP_MVI, Dst: REG_M, Imm: 0xaa}.Encode())
	assert.Equal([]uint8{0xf5}, Instruction{Op: OP_PUSH, Pair: PAIR_PSW}.Encode())
	assert.Equal([]uint8{0xf1}, Instruction{Op: OP_POP, Pair: PAIR_PSW}.Encode())
	assert.Equal([]uint8{0xc1}, Instruction{Op: OP_POP, Pair: PAIR_BC}.Encode())
	assert.Equal([]uint8{0x31, 0x00, 0x01}, Instruction{Op: OP_LXI, Pair: PAIR_SP, Imm: 0x100}.Encode())
}

func TestOpcodeShapes(t *testing.T) {
	assert := assert.New(t)

	total := 0
	for op := range Op(OP_COUNT) {
		shapes := op.Shapes()
		assert.NotEqual(0, len(shapes), op.String())
		total += len(shapes)
	}
	assert.Equal(244, total)

	assert.Equal(63, len(OP_MOV.Shapes()))
	assert.Equal(8, len(OP_JCC.Shapes()))
	assert.Equal(4, len(OP_PUSH.Shapes()))
	assert.Equal(2, len(OP_STAX.Shapes()))
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Op is an 8080 instruction, one value per mnemonic.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_NOP  = Op(0)  // nop
	OP_LXI  = Op(1)  // lxi
	OP_STAX = Op(2)  // stax
	OP_INX  = Op(3)  // inx
	OP_INR  = Op(4)  // inr
	OP_DCR  = Op(5)  // dcr
	OP_MVI  = Op(6)  // mvi
	OP_RLC  = Op(7)  // rlc
	OP_DAD  = Op(8)  // dad
	OP_LDAX = Op(9)  // ldax
	OP_DCX  = Op(10) // dcx
	OP_RRC  = Op(11) // rrc
	OP_RAL  = Op(12) // ral
	OP_RAR  = Op(13) // rar
	OP_SHLD = Op(14) // shld
	OP_DAA  = Op(15) // daa
	OP_LHLD = Op(16) // lhld
	OP_CMA  = Op(17) // cma
	OP_STA  = Op(18) // sta
	OP_STC  = Op(19) // stc
	OP_LDA  = Op(20) // lda
	OP_CMC  = Op(21) // cmc
	OP_MOV  = Op(22) // mov
	OP_HLT  = Op(23) // hlt
	OP_ADD  = Op(24) // add
	OP_ADC  = Op(25) // adc
	OP_SUB  = Op(26) // sub
	OP_SBB  = Op(27) // sbb
	OP_ANA  = Op(28) // ana
	OP_XRA  = Op(29) // xra
	OP_ORA  = Op(30) // ora
	OP_CMP  = Op(31) // cmp
	OP_ADI  = Op(32) // adi
	OP_ACI  = Op(33) // aci
	OP_SUI  = Op(34) // sui
	OP_SBI  = Op(35) // sbi
	OP_ANI  = Op(36) // ani
	OP_XRI  = Op(37) // xri
	OP_ORI  = Op(38) // ori
	OP_CPI  = Op(39) // cpi
	OP_RCC  = Op(40) // rcc
	OP_POP  = Op(41) // pop
	OP_JCC  = Op(42) // jcc
	OP_JMP  = Op(43) // jmp
	OP_CCC  = Op(44) // ccc
	OP_PUSH = Op(45) // push
	OP_RST  = Op(46) // rst
	OP_RET  = Op(47) // ret
	OP_CALL = Op(48) // call
	OP_OUT  = Op(49) // out
	OP_IN   = Op(50) // in
	OP_XTHL = Op(51) // xthl
	OP_PCHL = Op(52) // pchl
	OP_XCHG = Op(53) // xchg
	OP_DI   = Op(54) // di
	OP_SPHL = Op(55) // sphl
	OP_EI   = Op(56) // ei

	OP_COUNT = 57
)

// Reg is an 8-bit register selector, as encoded in opcode bits.
type Reg int

//go:generate go tool stringer -linecomment -type=Reg
const (
	REG_B = Reg(0) // b
	REG_C = Reg(1) // c
	REG_D = Reg(2) // d
	REG_E = Reg(3) // e
	REG_H = Reg(4) // h
	REG_L = Reg(5) // l
	REG_M = Reg(6) // m
	REG_A = Reg(7) // a
)

// Pair is a 16-bit register pair selector.
type Pair int

//go:generate go tool stringer -linecomment -type=Pair
const (
	PAIR_BC  = Pair(0) // bc
	PAIR_DE  = Pair(1) // de
	PAIR_HL  = Pair(2) // hl
	PAIR_SP  = Pair(3) // sp
	PAIR_PSW = Pair(4) // psw
)

// bits returns the two opcode bits of the pair. PSW shares the SP slot.
func (pair Pair) bits() uint8 {
	if pair == PAIR_PSW {
		return 3
	}
	return uint8(pair)
}

// Cond is a branch condition.
type Cond int

//go:generate go tool stringer -linecomment -type=Cond
const (
	COND_NZ = Cond(0) // nz
	COND_Z  = Cond(1) // z
	COND_NC = Cond(2) // nc
	COND_C  = Cond(3) // c
	COND_PO = Cond(4) // po
	COND_PE = Cond(5) // pe
	COND_P  = Cond(6) // p
	COND_M  = Cond(7) // m
)

// Shape is the operand layout of an instruction.
type Shape int

const (
	SHAPE_NONE     = Shape(0)  // no operands
	SHAPE_REG      = Shape(1)  // r, in bits 5..3
	SHAPE_SRC      = Shape(2)  // r, in bits 2..0
	SHAPE_MOV      = Shape(3)  // r, r
	SHAPE_REG_D8   = Shape(4)  // r, d8
	SHAPE_PAIR     = Shape(5)  // bc, de, hl or sp
	SHAPE_PAIR_BD  = Shape(6)  // bc or de
	SHAPE_PAIR_PSW = Shape(7)  // bc, de, hl or psw
	SHAPE_PAIR_D16 = Shape(8)  // rp, d16
	SHAPE_D8       = Shape(9)  // d8
	SHAPE_A16      = Shape(10) // a16
	SHAPE_COND     = Shape(11) // condition in bits 5..3
	SHAPE_COND_A16 = Shape(12) // condition in bits 5..3, a16
	SHAPE_VECTOR   = Shape(13) // 0..7, in bits 5..3
)

// Operands returns the number of source operands the shape takes.
func (shape Shape) Operands() int {
	switch shape {
	case SHAPE_NONE, SHAPE_COND:
		return 0
	case SHAPE_MOV, SHAPE_REG_D8, SHAPE_PAIR_D16:
		return 2
	default:
		return 1
	}
}

// Size returns the encoded length in bytes of an instruction of this shape.
func (shape Shape) Size() int {
	switch shape {
	case SHAPE_REG_D8, SHAPE_D8:
		return 2
	case SHAPE_PAIR_D16, SHAPE_A16, SHAPE_COND_A16:
		return 3
	default:
		return 1
	}
}

type opInfo struct {
	base  uint8
	shape Shape
}

var opTable = [OP_COUNT]opInfo{
	OP_NOP:  {0x00, SHAPE_NONE},
	OP_LXI:  {0x01, SHAPE_PAIR_D16},
	OP_STAX: {0x02, SHAPE_PAIR_BD},
	OP_INX:  {0x03, SHAPE_PAIR},
	OP_INR:  {0x04, SHAPE_REG},
	OP_DCR:  {0x05, SHAPE_REG},
	OP_MVI:  {0x06, SHAPE_REG_D8},
	OP_RLC:  {0x07, SHAPE_NONE},
	OP_DAD:  {0x09, SHAPE_PAIR},
	OP_LDAX: {0x0a, SHAPE_PAIR_BD},
	OP_DCX:  {0x0b, SHAPE_PAIR},
	OP_RRC:  {0x0f, SHAPE_NONE},
	OP_RAL:  {0x17, SHAPE_NONE},
	OP_RAR:  {0x1f, SHAPE_NONE},
	OP_SHLD: {0x22, SHAPE_A16},
	OP_DAA:  {0x27, SHAPE_NONE},
	OP_LHLD: {0x2a, SHAPE_A16},
	OP_CMA:  {0x2f, SHAPE_NONE},
	OP_STA:  {0x32, SHAPE_A16},
	OP_STC:  {0x37, SHAPE_NONE},
	OP_LDA:  {0x3a, SHAPE_A16},
	OP_CMC:  {0x3f, SHAPE_NONE},
	OP_MOV:  {0x40, SHAPE_MOV},
	OP_HLT:  {0x76, SHAPE_NONE},
	OP_ADD:  {0x80, SHAPE_SRC},
	OP_ADC:  {0x88, SHAPE_SRC},
	OP_SUB:  {0x90, SHAPE_SRC},
	OP_SBB:  {0x98, SHAPE_SRC},
	OP_ANA:  {0xa0, SHAPE_SRC},
	OP_XRA:  {0xa8, SHAPE_SRC},
	OP_ORA:  {0xb0, SHAPE_SRC},
	OP_CMP:  {0xb8, SHAPE_SRC},
	OP_ADI:  {0xc6, SHAPE_D8},
	OP_ACI:  {0xce, SHAPE_D8},
	OP_SUI:  {0xd6, SHAPE_D8},
	OP_SBI:  {0xde, SHAPE_D8},
	OP_ANI:  {0xe6, SHAPE_D8},
	OP_XRI:  {0xee, SHAPE_D8},
	OP_ORI:  {0xf6, SHAPE_D8},
	OP_CPI:  {0xfe, SHAPE_D8},
	OP_RCC:  {0xc0, SHAPE_COND},
	OP_POP:  {0xc1, SHAPE_PAIR_PSW},
	OP_JCC:  {0xc2, SHAPE_COND_A16},
	OP_JMP:  {0xc3, SHAPE_A16},
	OP_CCC:  {0xc4, SHAPE_COND_A16},
	OP_PUSH: {0xc5, SHAPE_PAIR_PSW},
	OP_RST:  {0xc7, SHAPE_VECTOR},
	OP_RET:  {0xc9, SHAPE_NONE},
	OP_CALL: {0xcd, SHAPE_A16},
	OP_OUT:  {0xd3, SHAPE_D8},
	OP_IN:   {0xdb, SHAPE_D8},
	OP_XTHL: {0xe3, SHAPE_NONE},
	OP_PCHL: {0xe9, SHAPE_NONE},
	OP_XCHG: {0xeb, SHAPE_NONE},
	OP_DI:   {0xf3, SHAPE_NONE},
	OP_SPHL: {0xf9, SHAPE_NONE},
	OP_EI:   {0xfb, SHAPE_NONE},
}

// Shape returns the operand layout of the op.
func (op Op) Shape() Shape {
	return opTable[op].shape
}

// Size returns the encoded length of the op in bytes.
func (op Op) Size() int {
	return op.Shape().Size()
}

// Conditional returns true for the ops whose mnemonic carries a condition.
func (op Op) Conditional() bool {
	switch op {
	case OP_RCC, OP_JCC, OP_CCC:
		return true
	}
	return false
}

// Instruction is a decoded 8080 instruction.
// Only the fields named by the op's Shape are meaningful.
type Instruction struct {
	Op     Op
	Dst    Reg    // SHAPE_REG, SHAPE_MOV, SHAPE_REG_D8
	Src    Reg    // SHAPE_SRC, SHAPE_MOV
	Pair   Pair   // SHAPE_PAIR*
	Cond   Cond   // SHAPE_COND*
	Vector uint8  // SHAPE_VECTOR
	Imm    uint16 // 8 or 16 bit immediate or address
}

// Mnemonic returns the assembly mnemonic of the instruction.
func (ins Instruction) Mnemonic() string {
	if ins.Op.Conditional() {
		return ins.Op.String()[:1] + ins.Cond.String()
	}
	return ins.Op.String()
}

// Opcode returns the first byte of the encoding.
func (ins Instruction) Opcode() (code uint8) {
	info := opTable[ins.Op]
	code = info.base

	switch info.shape {
	case SHAPE_REG, SHAPE_REG_D8:
		code |= uint8(ins.Dst) << 3
	case SHAPE_SRC:
		code |= uint8(ins.Src)
	case SHAPE_MOV:
		code |= (uint8(ins.Dst) << 3) | uint8(ins.Src)
	case SHAPE_PAIR, SHAPE_PAIR_BD, SHAPE_PAIR_PSW, SHAPE_PAIR_D16:
		code |= ins.Pair.bits() << 4
	case SHAPE_COND, SHAPE_COND_A16:
		code |= uint8(ins.Cond) << 3
	case SHAPE_VECTOR:
		code |= (ins.Vector & 0x7) << 3
	}

	return
}

// Encode returns the little-endian machine code of the instruction.
func (ins Instruction) Encode() (code []uint8) {
	code = append(code, ins.Opcode())

	switch ins.Op.Size() {
	case 2:
		code = append(code, uint8(ins.Imm))
	case 3:
		code = append(code, uint8(ins.Imm), uint8(ins.Imm>>8))
	}

	return
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() (out string) {
	out = ins.Mnemonic()

	switch ins.Op.Shape() {
	case SHAPE_REG:
		out += " " + ins.Dst.String()
	case SHAPE_SRC:
		out += " " + ins.Src.String()
	case SHAPE_MOV:
		out += fmt.Sprintf(" %v, %v", ins.Dst, ins.Src)
	case SHAPE_REG_D8:
		out += fmt.Sprintf(" %v, 0x%02x", ins.Dst, ins.Imm)
	case SHAPE_PAIR, SHAPE_PAIR_BD, SHAPE_PAIR_PSW:
		out += " " + ins.Pair.String()
	case SHAPE_PAIR_D16:
		out += fmt.Sprintf(" %v, 0x%04x", ins.Pair, ins.Imm)
	case SHAPE_D8:
		out += fmt.Sprintf(" 0x%02x", ins.Imm)
	case SHAPE_A16, SHAPE_COND_A16:
		out += fmt.Sprintf(" 0x%04x", ins.Imm)
	case SHAPE_VECTOR:
		out += fmt.Sprintf(" %d", ins.Vector)
	}

	return
}

// Shapes returns every valid instruction of the op, with a zero immediate.
func (op Op) Shapes() (list []Instruction) {
	regs := []Reg{REG_B, REG_C, REG_D, REG_E, REG_H, REG_L, REG_M, REG_A}

	switch op.Shape() {
	case SHAPE_NONE, SHAPE_D8, SHAPE_A16:
		list = append(list, Instruction{Op: op})
	case SHAPE_REG, SHAPE_REG_D8:
		for _, r := range regs {
			list = append(list, Instruction{Op: op, Dst: r})
		}
	case SHAPE_SRC:
		for _, r := range regs {
			list = append(list, Instruction{Op: op, Src: r})
		}
	case SHAPE_MOV:
		for _, dst := range regs {
			for _, src := range regs {
				if dst == REG_M && src == REG_M {
					// Encodes as HLT.
					continue
				}
				list = append(list, Instruction{Op: op, Dst: dst, Src: src})
			}
		}
	case SHAPE_PAIR, SHAPE_PAIR_D16:
		for _, p := range []Pair{PAIR_BC, PAIR_DE, PAIR_HL, PAIR_SP} {
			list = append(list, Instruction{Op: op, Pair: p})
		}
	case SHAPE_PAIR_BD:
		for _, p := range []Pair{PAIR_BC, PAIR_DE} {
			list = append(list, Instruction{Op: op, Pair: p})
		}
	case SHAPE_PAIR_PSW:
		for _, p := range []Pair{PAIR_BC, PAIR_DE, PAIR_HL, PAIR_PSW} {
			list = append(list, Instruction{Op: op, Pair: p})
		}
	case SHAPE_COND, SHAPE_COND_A16:
		for cond := COND_NZ; cond <= COND_M; cond++ {
			list = append(list, Instruction{Op: op, Cond: cond})
		}
	case SHAPE_VECTOR:
		for v := range 8 {
			list = append(list, Instruction{Op: op, Vector: uint8(v)})
		}
	}

	return
}

type decodeEntry struct {
	ins   Instruction
	valid bool
}

// decodeTable maps an opcode byte to its instruction.
// It is derived from the encoder, so the two cannot disagree.
var decodeTable [256]decodeEntry

// mnemonicMap maps a lower-case mnemonic to its op and condition.
var mnemonicMap = map[string]Instruction{}

func init() {
	for op := range Op(OP_COUNT) {
		for _, ins := range op.Shapes() {
			code := ins.Opcode()
			if decodeTable[code].valid {
				panic(fmt.Sprintf("opcode 0x%02x: %v collides with %v", code, ins, decodeTable[code].ins))
			}
			decodeTable[code] = decodeEntry{ins: ins, valid: true}
			mnemonicMap[ins.Mnemonic()] = Instruction{Op: op, Cond: ins.Cond}
		}
	}
}

// LookupMnemonic returns the op and condition named by a lower-case
// mnemonic, such as "mov" or "jnz".
func LookupMnemonic(name string) (op Op, cond Cond, ok bool) {
	ins, ok := mnemonicMap[name]
	if !ok {
		return
	}
	return ins.Op, ins.Cond, true
}

// Valid returns true if the opcode byte is a documented 8080 instruction.
func Valid(code uint8) bool {
	return decodeTable[code].valid
}

// Decode decodes the instruction at pc.
func Decode(read ReadFunc, pc uint16) (ins Instruction, err error) {
	code := read(pc)
	entry := decodeTable[code]
	if !entry.valid {
		err = &ErrOpcode{Addr: pc, Byte: code}
		return
	}

	ins = entry.ins
	switch ins.Op.Size() {
	case 2:
		ins.Imm = uint16(read(pc + 1))
	case 3:
		ins.Imm = uint16(read(pc+1)) | (uint16(read(pc+2)) << 8)
	}

	return
}

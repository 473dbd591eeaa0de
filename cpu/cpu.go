// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"log"
	"strings"

	"github.com/ezrec/sim8080/io"
)

// Cpu is the simulation context for an 8080.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	A, B, C, D, E, H, L uint8 // Accumulator and general registers.
	F                   uint8 // Flags, see FLAG_*.
	PC                  uint16
	SP                  uint16
	Halted              bool // Set by HLT, cleared only by Init.
	Inte                bool // Interrupt enable latch (EI/DI).

	Ticks int // Instructions executed since Init.

	read  ReadFunc
	write WriteFunc
	port  io.Port
	fault error
}

// Init binds the memory accessors and resets all registers.
// It may be called again to start a fresh run.
func (cpu *Cpu) Init(read ReadFunc, write WriteFunc) {
	if cpu.Verbose {
		log.Printf("cpu: init")
	}

	cpu.read = read
	cpu.write = write

	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L = 0, 0, 0, 0, 0, 0, 0
	cpu.F = flagsOf(0)
	cpu.PC = 0
	cpu.SP = 0
	cpu.Halted = false
	cpu.Inte = false
	cpu.Ticks = 0
	cpu.fault = nil
}

// SetPort attaches the device space used by IN and OUT.
func (cpu *Cpu) SetPort(port io.Port) {
	cpu.port = port
}

// Set writes a single register before a run. The value is wrapped to the
// width of the register. Register names are case-insensitive: a, b, c,
// d, e, h, l, f, pc, sp, and the pairs bc, de, hl.
func (cpu *Cpu) Set(name string, value int) (err error) {
	switch strings.ToLower(name) {
	case "a":
		cpu.A = uint8(value)
	case "b":
		cpu.B = uint8(value)
	case "c":
		cpu.C = uint8(value)
	case "d":
		cpu.D = uint8(value)
	case "e":
		cpu.E = uint8(value)
	case "h":
		cpu.H = uint8(value)
	case "l":
		cpu.L = uint8(value)
	case "f":
		cpu.F = flagsOf(uint8(value))
	case "pc":
		cpu.PC = uint16(value)
	case "sp":
		cpu.SP = uint16(value)
	case "bc":
		cpu.setPair(PAIR_BC, uint16(value))
	case "de":
		cpu.setPair(PAIR_DE, uint16(value))
	case "hl":
		cpu.setPair(PAIR_HL, uint16(value))
	default:
		err = errors.Join(ErrRegisterInvalid, errors.New(name))
	}

	return
}

// Status returns a snapshot of the registers.
func (cpu *Cpu) Status() Status {
	return Status{
		A:      cpu.A,
		B:      cpu.B,
		C:      cpu.C,
		D:      cpu.D,
		E:      cpu.E,
		H:      cpu.H,
		L:      cpu.L,
		F:      cpu.F,
		PC:     cpu.PC,
		SP:     cpu.SP,
		Halted: cpu.Halted,
	}
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() string {
	return cpu.Status().String()
}

// Steps executes up to n instructions, stopping early once halted.
// It returns the number of instructions executed.
func (cpu *Cpu) Steps(n int) (count int, err error) {
	for count < n {
		if cpu.Halted {
			return
		}
		err = cpu.Step()
		if err != nil {
			return
		}
		count++
	}

	return
}

// Step executes a single instruction. It is a no-op once halted.
// An undecodable opcode leaves all state untouched and is returned
// again on every later call until Init.
func (cpu *Cpu) Step() (err error) {
	if cpu.fault != nil {
		return cpu.fault
	}

	if cpu.read == nil || cpu.write == nil {
		return ErrMemoryMissing
	}

	if cpu.Halted {
		return
	}

	ins, err := Decode(cpu.read, cpu.PC)
	if err != nil {
		cpu.fault = err
		return
	}

	return cpu.Execute(ins)
}

// reg returns an 8-bit register; REG_M reads memory at HL.
func (cpu *Cpu) reg(r Reg) uint8 {
	switch r {
	case REG_B:
		return cpu.B
	case REG_C:
		return cpu.C
	case REG_D:
		return cpu.D
	case REG_E:
		return cpu.E
	case REG_H:
		return cpu.H
	case REG_L:
		return cpu.L
	case REG_M:
		return cpu.read(cpu.pair(PAIR_HL))
	case REG_A:
		return cpu.A
	}
	panic("unknown register")
}

// setReg sets an 8-bit register; REG_M writes memory at HL.
func (cpu *Cpu) setReg(r Reg, value uint8) {
	switch r {
	case REG_B:
		cpu.B = value
	case REG_C:
		cpu.C = value
	case REG_D:
		cpu.D = value
	case REG_E:
		cpu.E = value
	case REG_H:
		cpu.H = value
	case REG_L:
		cpu.L = value
	case REG_M:
		cpu.write(cpu.pair(PAIR_HL), value)
	case REG_A:
		cpu.A = value
	default:
		panic("unknown register")
	}
}

// pair returns a 16-bit register pair; PAIR_PSW is A and F.
func (cpu *Cpu) pair(p Pair) uint16 {
	switch p {
	case PAIR_BC:
		return (uint16(cpu.B) << 8) | uint16(cpu.C)
	case PAIR_DE:
		return (uint16(cpu.D) << 8) | uint16(cpu.E)
	case PAIR_HL:
		return (uint16(cpu.H) << 8) | uint16(cpu.L)
	case PAIR_SP:
		return cpu.SP
	case PAIR_PSW:
		return (uint16(cpu.A) << 8) | uint16(cpu.F)
	}
	panic("unknown register pair")
}

// setPair sets a 16-bit register pair.
func (cpu *Cpu) setPair(p Pair, value uint16) {
	hi, lo := uint8(value>>8), uint8(value)
	switch p {
	case PAIR_BC:
		cpu.B, cpu.C = hi, lo
	case PAIR_DE:
		cpu.D, cpu.E = hi, lo
	case PAIR_HL:
		cpu.H, cpu.L = hi, lo
	case PAIR_SP:
		cpu.SP = value
	case PAIR_PSW:
		cpu.A, cpu.F = hi, flagsOf(lo)
	default:
		panic("unknown register pair")
	}
}

// Test returns true if the branch condition holds for the current flags.
func (cpu *Cpu) Test(cond Cond) bool {
	switch cond {
	case COND_NZ:
		return cpu.F&FLAG_Z == 0
	case COND_Z:
		return cpu.F&FLAG_Z != 0
	case COND_NC:
		return cpu.F&FLAG_CY == 0
	case COND_C:
		return cpu.F&FLAG_CY != 0
	case COND_PO:
		return cpu.F&FLAG_P == 0
	case COND_PE:
		return cpu.F&FLAG_P != 0
	case COND_P:
		return cpu.F&FLAG_S == 0
	case COND_M:
		return cpu.F&FLAG_S != 0
	}
	panic("unknown condition")
}

// Execute executes a single decoded instruction located at PC.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	if cpu.Verbose {
		log.Printf("%04x: %v", cpu.PC, ins)
	}

	next_pc := cpu.PC + uint16(ins.Op.Size())

	switch ins.Op {
	case OP_NOP:
		// pass
	case OP_LXI:
		cpu.setPair(ins.Pair, ins.Imm)
	case OP_STAX:
		cpu.write(cpu.pair(ins.Pair), cpu.A)
	case OP_LDAX:
		cpu.A = cpu.read(cpu.pair(ins.Pair))
	case OP_INX:
		cpu.setPair(ins.Pair, cpu.pair(ins.Pair)+1)
	case OP_DCX:
		cpu.setPair(ins.Pair, cpu.pair(ins.Pair)-1)
	case OP_DAD:
		sum := uint32(cpu.pair(PAIR_HL)) + uint32(cpu.pair(ins.Pair))
		cpu.setPair(PAIR_HL, uint16(sum))
		cpu.F &^= FLAG_CY
		if sum > 0xffff {
			cpu.F |= FLAG_CY
		}
	case OP_INR:
		var value uint8
		value, cpu.F = inr8(cpu.reg(ins.Dst), cpu.F)
		cpu.setReg(ins.Dst, value)
	case OP_DCR:
		var value uint8
		value, cpu.F = dcr8(cpu.reg(ins.Dst), cpu.F)
		cpu.setReg(ins.Dst, value)
	case OP_MVI:
		cpu.setReg(ins.Dst, uint8(ins.Imm))
	case OP_RLC, OP_RRC, OP_RAL, OP_RAR:
		cpu.A, cpu.F = rotate(ins.Op, cpu.A, cpu.F)
	case OP_DAA:
		cpu.A, cpu.F = daa8(cpu.A, cpu.F)
	case OP_CMA:
		cpu.A = ^cpu.A
	case OP_STC:
		cpu.F |= FLAG_CY
	case OP_CMC:
		cpu.F ^= FLAG_CY
	case OP_SHLD:
		cpu.write(ins.Imm, cpu.L)
		cpu.write(ins.Imm+1, cpu.H)
	case OP_LHLD:
		cpu.L = cpu.read(ins.Imm)
		cpu.H = cpu.read(ins.Imm + 1)
	case OP_STA:
		cpu.write(ins.Imm, cpu.A)
	case OP_LDA:
		cpu.A = cpu.read(ins.Imm)
	case OP_MOV:
		cpu.setReg(ins.Dst, cpu.reg(ins.Src))
	case OP_HLT:
		cpu.Halted = true
	case OP_ADD, OP_ADC, OP_SUB, OP_SBB, OP_ANA, OP_XRA, OP_ORA, OP_CMP:
		cpu.A, cpu.F = doAlu(int(ins.Op-OP_ADD), cpu.A, cpu.reg(ins.Src), cpu.F)
	case OP_ADI, OP_ACI, OP_SUI, OP_SBI, OP_ANI, OP_XRI, OP_ORI, OP_CPI:
		cpu.A, cpu.F = doAlu(int(ins.Op-OP_ADI), cpu.A, uint8(ins.Imm), cpu.F)
	case OP_JMP:
		next_pc = ins.Imm
	case OP_JCC:
		if cpu.Test(ins.Cond) {
			next_pc = ins.Imm
		}
	case OP_CALL:
		cpu.Push(next_pc)
		next_pc = ins.Imm
	case OP_CCC:
		if cpu.Test(ins.Cond) {
			cpu.Push(next_pc)
			next_pc = ins.Imm
		}
	case OP_RET:
		next_pc = cpu.Pop()
	case OP_RCC:
		if cpu.Test(ins.Cond) {
			next_pc = cpu.Pop()
		}
	case OP_RST:
		cpu.Push(next_pc)
		next_pc = uint16(ins.Vector) << 3
	case OP_PCHL:
		next_pc = cpu.pair(PAIR_HL)
	case OP_PUSH:
		cpu.Push(cpu.pair(ins.Pair))
	case OP_POP:
		cpu.setPair(ins.Pair, cpu.Pop())
	case OP_XTHL:
		value := cpu.Peek()
		cpu.write(cpu.SP, cpu.L)
		cpu.write(cpu.SP+1, cpu.H)
		cpu.setPair(PAIR_HL, value)
	case OP_SPHL:
		cpu.SP = cpu.pair(PAIR_HL)
	case OP_XCHG:
		de := cpu.pair(PAIR_DE)
		cpu.setPair(PAIR_DE, cpu.pair(PAIR_HL))
		cpu.setPair(PAIR_HL, de)
	case OP_IN:
		if cpu.port == nil {
			err = errors.Join(ErrOpcodeIn, ErrPortMissing)
			return
		}
		var value uint8
		value, err = cpu.port.In(uint8(ins.Imm))
		if err != nil {
			err = errors.Join(ErrOpcodeIn, err)
			return
		}
		cpu.A = value
	case OP_OUT:
		if cpu.port == nil {
			err = errors.Join(ErrOpcodeOut, ErrPortMissing)
			return
		}
		err = cpu.port.Out(uint8(ins.Imm), cpu.A)
		if err != nil {
			err = errors.Join(ErrOpcodeOut, err)
			return
		}
	case OP_EI:
		cpu.Inte = true
	case OP_DI:
		cpu.Inte = false
	default:
		panic("unhandled op " + ins.Op.String())
	}

	cpu.PC = next_pc
	cpu.Ticks++

	return
}

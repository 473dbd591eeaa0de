// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	stdio "io"
	"iter"
	"log"
	"strings"

	"github.com/ezrec/sim8080/asm"
	"github.com/ezrec/sim8080/cpu"
	"github.com/ezrec/sim8080/internal"
	"github.com/ezrec/sim8080/io"
)

const (
	PORT_TAPE = uint8(1) // Port of the tape device.
	PORT_TEMP = uint8(2) // Port of the temporary FIFO.

	TEMP_CAPACITY = 256 // Temporary FIFO size, in bytes.
)

// StopReason says why a Run returned.
type StopReason int

//go:generate go tool stringer -linecomment -type=StopReason
const (
	STOP_LIMIT = StopReason(0) // limit
	STOP_HALT  = StopReason(1) // halt
	STOP_BREAK = StopReason(2) // break
)

// Result is the outcome of a Run.
type Result struct {
	Status cpu.Status // CPU snapshot at the stop.
	Steps  int        // Instructions executed by this Run.
	Reason StopReason // Why the run stopped.
	LineNo int        // Source line at PC, or 0.
}

// Emulator state. CPU + memory image + I/O ports.
//
// The emulator is the resumable run handle: it carries the CPU state and
// the step index between calls to Run, and Reset rewinds both.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *asm.Program // Reference to the currently loaded program.

	Tape io.Tape      // Tape I/O device, on PORT_TAPE.
	Temp io.Temporary // Scratch FIFO, on PORT_TEMP.
	Bus  io.Bus       // Port space seen by IN and OUT.

	// Watch, if set, is called on every memory access made by the CPU.
	Watch func(addr uint16, value uint8, write bool)

	Reads  int // Memory reads since Reset.
	Writes int // Memory writes since Reset.

	memory cpu.Memory
	breaks map[uint16]int // Breakpoint address to source line.
	step   int
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     &cpu.Cpu{},
		Program: &asm.Program{Image: &cpu.Memory{}, Label: asm.SymbolTable{}},
		Temp:    io.Temporary{Capacity: TEMP_CAPACITY},
		breaks:  map[uint16]int{},
	}

	emu.Bus.Attach(PORT_TAPE, &emu.Tape)
	emu.Bus.Attach(PORT_TEMP, &emu.Temp)

	return
}

// Load assembles a program from source and resets the emulator to run it.
func (emu *Emulator) Load(input stdio.Reader) (err error) {
	assembler := &asm.Assembler{Verbose: emu.Verbose}

	prog, err := assembler.Compile(input)
	if err != nil {
		return
	}

	emu.Program = prog
	emu.ClearBreaks()

	return emu.Reset()
}

// LoadString assembles a program from source text.
func (emu *Emulator) LoadString(text string) (err error) {
	return emu.Load(strings.NewReader(text))
}

// Reset copies the program image into memory, rebinds the CPU to it, and
// starts over from PC 0. Breakpoints are kept.
func (emu *Emulator) Reset() (err error) {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.memory = *emu.Program.Image
	emu.Reads = 0
	emu.Writes = 0
	emu.step = 0

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Init(emu.read, emu.write)
	emu.Cpu.SetPort(&emu.Bus)
	emu.Bus.Rewind()

	return
}

// read is the CPU's memory read accessor.
func (emu *Emulator) read(addr uint16) uint8 {
	value := emu.memory.Read(addr)
	emu.Reads++
	if emu.Watch != nil {
		emu.Watch(addr, value, false)
	}
	return value
}

// write is the CPU's memory write accessor.
func (emu *Emulator) write(addr uint16, value uint8) {
	emu.memory.Write(addr, value)
	emu.Writes++
	if emu.Watch != nil {
		emu.Watch(addr, value, true)
	}
}

// Memory returns the live memory image.
func (emu *Emulator) Memory() *cpu.Memory {
	return &emu.memory
}

// Step returns the number of instructions executed since Reset.
func (emu *Emulator) Step() int {
	return emu.step
}

// LineNo returns the source line number for the instruction at PC, or 0.
func (emu *Emulator) LineNo() int {
	line := emu.Program.Debug(emu.Cpu.PC)
	if line == nil {
		return 0
	}

	return line.LineNo
}

// Break sets a breakpoint on the address assembled for a source line.
func (emu *Emulator) Break(lineno int) (err error) {
	addr, ok := emu.Program.Address(lineno)
	if !ok {
		err = ErrBreakLine(lineno)
		return
	}

	emu.breaks[addr] = lineno
	return
}

// ClearBreaks removes all breakpoints.
func (emu *Emulator) ClearBreaks() {
	clear(emu.breaks)
}

// Breaks iterates over the breakpoints in address order.
func (emu *Emulator) Breaks() iter.Seq2[uint16, int] {
	return internal.SortedSeq2(emu.breaks)
}

// Tick executes a single instruction. done is set once the CPU halts.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: emu.Cpu.PC, Err: err}
		}
	}()

	err = emu.Cpu.Step()
	if err != nil {
		return
	}

	emu.step++
	done = emu.Cpu.Halted

	return
}

// Run executes at most limit instructions. It stops early when the CPU
// halts, or after an instruction leaves PC on a breakpoint. A limit of 0
// or less executes nothing.
func (emu *Emulator) Run(limit int) (result Result, err error) {
	result.Reason = STOP_LIMIT

	defer func() {
		result.Status = emu.Cpu.Status()
		result.LineNo = emu.LineNo()
		if emu.Verbose {
			log.Printf("emulator: stop %v after %d steps, pc %04x", result.Reason, result.Steps, result.Status.PC)
		}
	}()

	if emu.Cpu.Halted {
		result.Reason = STOP_HALT
		return
	}

	for result.Steps < limit {
		var done bool
		done, err = emu.Tick()
		if err != nil {
			return
		}
		result.Steps++

		if done {
			result.Reason = STOP_HALT
			return
		}

		if _, ok := emu.breaks[emu.Cpu.PC]; ok {
			result.Reason = STOP_BREAK
			return
		}
	}

	return
}

// IsFatal returns true if a runtime error cannot be recovered by
// running again without a Reset.
func IsFatal(err error) bool {
	var eo *cpu.ErrOpcode
	return errors.As(err, &eo)
}

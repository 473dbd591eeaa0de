package emulator

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sim8080/asm"
	"github.com/ezrec/sim8080/cpu"
	"github.com/ezrec/sim8080/io"
)

var programLabelJump = []string{
	"  mvi a, 1h",
	"  dcr a",
	"  jz YesZero",
	"  jnz NoZero",
	"",
	"YesZero:",
	"  mvi c, 20",
	"  hlt",
	"",
	"NoZero:",
	"  mvi c, 50",
	"  hlt",
}

var programAddArray = []string{
	"; The sum will be accumulated into d",
	"  mvi d, 0",
	"  lxi bc, myArray",
	"Loop:",
	"  ldax bc",
	"  cpi 0",
	"  jz Done",
	"  add d",
	"  mov d, a",
	"  inr c",
	"  jmp Loop",
	"Done:",
	"  hlt",
	"myArray:",
	"  db 10h, 20h, 30h, 10h, 20h, 0",
}

var programCapitalize = []string{
	"  lxi hl, str",
	"  mvi c, 14",
	"  call Capitalize",
	"  hlt",
	"",
	"Capitalize:",
	"  mov a, c",
	"  cpi 0",
	"  jz AllDone",
	"  mov a, m",
	"  cpi 61h",
	"  jc SkipIt",
	"  cpi 7bh",
	"  jnc SkipIt",
	"  sui 20h",
	"  mov m, a",
	"SkipIt:",
	"  inx hl",
	"  dcr c",
	"  jmp Capitalize",
	"AllDone:",
	"  ret",
	"",
	"str:",
	"  db 'hello, friends'",
}

var programMemcpy = []string{
	"  lxi de, SourceArray",
	"  lxi hl, TargetArray",
	"  mvi b, 0",
	"  mvi c, 5",
	"  call memcpy",
	"  hlt",
	"",
	"SourceArray:",
	"  db 11h, 22h, 33h, 44h, 55h",
	"",
	"TargetArray:",
	"  db 0, 0, 0, 0, 0, 0, 0, 0, 0, 0",
	"",
	"  ; bc: number of bytes to copy",
	"  ; de: source block",
	"  ; hl: target block",
	"memcpy:",
	"  mov     a,b         ;Copy register B to register A",
	"  ora     c           ;Bitwise OR of A and C into register A",
	"  rz                  ;Return if the zero-flag is set high.",
	"loop:",
	"  ldax    de          ;Load A from the address pointed by DE",
	"  mov     m,a         ;Store A into the address pointed by HL",
	"  inx     de",
	"  inx     hl",
	"  dcx     bc          ;Decrement BC   (does not affect Flags)",
	"  mov     a,b",
	"  ora     c",
	"  jnz     loop",
	"  ret",
}

var programEcho = []string{
	"loop:",
	"  in 1",
	"  cpi 1ah",
	"  jz done",
	"  out 1",
	"  jmp loop",
	"done:",
	"  hlt",
}

func doLoad(program []string, t *testing.T) (emu *Emulator) {
	emu = NewEmulator()
	err := emu.LoadString(strings.Join(program, "\n"))
	if err != nil {
		t.Fatalf("%v", err)
	}
	return
}

func doRunAll(emu *Emulator, t *testing.T) (result Result) {
	assert := assert.New(t)

	result, err := emu.Run(10000)
	assert.NoError(err)
	if err != nil {
		t.Log(emu.Cpu.String())
		t.Fatalf("%v", err)
	}
	assert.Equal(STOP_HALT, result.Reason)

	return
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.Equal(&emu.Tape, emu.Bus.Device(PORT_TAPE))
	assert.Equal(&emu.Temp, emu.Bus.Device(PORT_TEMP))
	assert.Equal(0, emu.LineNo())
}

func TestEmulatorLabelJump(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programLabelJump, t)
	result := doRunAll(emu, t)

	assert.Equal(uint8(20), result.Status.C)
	assert.True(result.Status.Halted)
	assert.Equal(5, result.Steps)
	assert.Equal(5, emu.Step())
}

func TestEmulatorAddArray(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programAddArray, t)
	result := doRunAll(emu, t)

	assert.Equal(uint8(0x90), result.Status.D)
	assert.True(result.Status.Zero())
}

func TestEmulatorCapitalize(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programCapitalize, t)
	doRunAll(emu, t)

	str := int(emu.Program.Label["str"])
	assert.Equal("HELLO, FRIENDS", string(emu.Memory()[str:str+14]))
	assert.Equal(uint16(0), emu.Cpu.SP)
	assert.Equal(uint8(0), emu.Cpu.C)
}

func TestEmulatorMemcpy(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programMemcpy, t)
	result := doRunAll(emu, t)

	src := int(emu.Program.Label["SourceArray"])
	dst := int(emu.Program.Label["TargetArray"])

	mem := emu.Memory()
	assert.Equal([]uint8{0x11, 0x22, 0x33, 0x44, 0x55}, mem[src:src+5])
	assert.Equal(mem[src:src+5], mem[dst:dst+5])
	assert.Equal(make([]uint8, 5), mem[dst+5:dst+10])

	assert.True(result.Status.Halted)
	assert.Equal(uint16(src), result.Status.PC)
	// PC is past the hlt, on the data.
	assert.Equal(9, result.LineNo)
}

func TestEmulatorDeterminism(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programMemcpy, t)
	first := doRunAll(emu, t)
	firstMem := *emu.Memory()

	err := emu.Reset()
	assert.NoError(err)
	assert.Equal(0, emu.Step())
	assert.False(emu.Cpu.Halted)

	second := doRunAll(emu, t)
	assert.Equal(first, second)
	assert.Equal(firstMem, *emu.Memory())
}

func TestEmulatorLimit(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programLabelJump, t)

	result, err := emu.Run(0)
	assert.NoError(err)
	assert.Equal(STOP_LIMIT, result.Reason)
	assert.Equal(0, result.Steps)
	assert.Equal(uint16(0), result.Status.PC)
	assert.Equal(1, result.LineNo)

	result, err = emu.Run(2)
	assert.NoError(err)
	assert.Equal(STOP_LIMIT, result.Reason)
	assert.Equal(2, result.Steps)
	assert.Equal(uint16(3), result.Status.PC)
	assert.Equal(3, result.LineNo)
	assert.False(result.Status.Halted)

	result, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal(STOP_HALT, result.Reason)
	assert.Equal(3, result.Steps)
	assert.Equal(5, emu.Step())

	// Running a halted CPU does nothing.
	result, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal(STOP_HALT, result.Reason)
	assert.Equal(0, result.Steps)
	assert.Equal(5, emu.Step())
}

func TestEmulatorBreak(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programLabelJump, t)

	// "mvi c, 20"
	err := emu.Break(7)
	assert.NoError(err)

	err = emu.Break(100)
	assert.ErrorIs(err, ErrBreakLine(100))

	var breaks []int
	for _, lineno := range emu.Breaks() {
		breaks = append(breaks, lineno)
	}
	assert.Equal([]int{7}, breaks)

	result, err := emu.Run(100)
	assert.NoError(err)
	assert.Equal(STOP_BREAK, result.Reason)
	assert.Equal(7, result.LineNo)
	assert.Equal(emu.Program.Label["YesZero"], result.Status.PC)
	assert.Equal(uint8(0), result.Status.C)

	result, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal(STOP_HALT, result.Reason)
	assert.Equal(uint8(20), result.Status.C)

	// Breakpoints survive a reset.
	err = emu.Reset()
	assert.NoError(err)
	result, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal(STOP_BREAK, result.Reason)

	emu.ClearBreaks()
	err = emu.Reset()
	assert.NoError(err)
	result, err = emu.Run(100)
	assert.NoError(err)
	assert.Equal(STOP_HALT, result.Reason)
}

func TestEmulatorTape(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programEcho, t)

	emu.Tape.Input = strings.NewReader("Hello")
	output := &bytes.Buffer{}
	emu.Tape.Output = output

	doRunAll(emu, t)

	assert.Equal("Hello", output.String())
	assert.Equal(5, emu.Tape.Received)
	assert.Equal(5, emu.Tape.Sent)
	assert.True(emu.Tape.Ended())
}

func TestEmulatorTemp(t *testing.T) {
	assert := assert.New(t)

	// Reverse the tape through the temporary FIFO, by way of the stack.
	emu := doLoad([]string{
		"  lxi sp, 0",
		"  mvi c, 0",
		"read:",
		"  in 1",
		"  cpi 1ah",
		"  jz write",
		"  out 2",
		"  inr c",
		"  jmp read",
		"write:",
		"  mov a, c",
		"  ora a",
		"  jz done",
		"  in 2",
		"  push psw",
		"  dcr c",
		"  jmp write",
		"done:",
		"  mvi c, 3",
		"pop:",
		"  pop psw",
		"  out 1",
		"  dcr c",
		"  jnz pop",
		"  hlt",
	}, t)

	emu.Tape.Input = strings.NewReader("abc")
	output := &bytes.Buffer{}
	emu.Tape.Output = output

	doRunAll(emu, t)

	assert.Equal("cba", output.String())
	assert.Equal(0, emu.Temp.Size)
}

func TestEmulatorPortMissing(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad([]string{
		"  mvi a, 1",
		"  out 3",
		"  hlt",
	}, t)

	result, err := emu.Run(10)
	assert.ErrorIs(err, cpu.ErrOpcodeOut)
	assert.ErrorIs(err, io.ErrPortInvalid(3))
	assert.Equal(1, result.Steps)

	var er *ErrRuntime
	if assert.True(errors.As(err, &er)) {
		assert.Equal(2, er.LineNo)
		assert.Equal(uint16(2), er.Pc)
	}
	assert.False(IsFatal(err))
}

func TestEmulatorBadOpcode(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad([]string{
		"  mvi a, 1",
		"  db 08h",
		"  hlt",
	}, t)

	result, err := emu.Run(10)
	assert.Error(err)
	assert.True(IsFatal(err))
	assert.Equal(1, result.Steps)
	assert.Equal(uint16(2), result.Status.PC)
	assert.Equal(uint8(1), result.Status.A)

	var eo *cpu.ErrOpcode
	assert.True(errors.As(err, &eo))
	assert.Equal(uint8(0x08), eo.Byte)
	assert.Equal(uint16(2), eo.Addr)

	var er *ErrRuntime
	assert.True(errors.As(err, &er))
	assert.Equal(2, er.LineNo)

	// The fault repeats until a reset.
	result, err = emu.Run(10)
	assert.True(IsFatal(err))
	assert.Equal(0, result.Steps)
	assert.Equal(uint16(2), result.Status.PC)

	err = emu.Reset()
	assert.NoError(err)
	result, err = emu.Run(1)
	assert.NoError(err)
	assert.Equal(1, result.Steps)
}

func TestEmulatorLoadError(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad(programLabelJump, t)
	prog := emu.Program

	err := emu.LoadString("  jmp Nowhere\n")
	var ea *asm.ErrAssembly
	assert.True(errors.As(err, &ea))
	assert.Equal(1, ea.LineNo)
	assert.ErrorIs(err, asm.ErrLabelMissing("Nowhere"))

	// The previous program is still loaded.
	assert.Equal(prog, emu.Program)
}

func TestEmulatorWatch(t *testing.T) {
	assert := assert.New(t)

	emu := doLoad([]string{
		"  mvi a, 42h",
		"  sta 100h",
		"  hlt",
	}, t)

	var writes []string
	emu.Watch = func(addr uint16, value uint8, write bool) {
		if write {
			writes = append(writes, fmt.Sprintf("%04x=%02x", addr, value))
		}
	}

	doRunAll(emu, t)

	assert.Equal([]string{"0100=42"}, writes)
	assert.Equal(1, emu.Writes)
	// mvi: 2, sta: 3, hlt: 1
	assert.Equal(6, emu.Reads)
	assert.Equal(uint8(0x42), emu.Memory()[0x100])
	assert.Equal(uint8(0), emu.Program.Image[0x100])
}

func TestEmulatorParallel(t *testing.T) {
	programs := map[string]struct {
		program []string
		check   func(emu *Emulator, assert *assert.Assertions)
	}{
		"labeljump": {programLabelJump, func(emu *Emulator, assert *assert.Assertions) {
			assert.Equal(uint8(20), emu.Cpu.C)
		}},
		"add-array-indirect": {programAddArray, func(emu *Emulator, assert *assert.Assertions) {
			assert.Equal(uint8(0x90), emu.Cpu.D)
		}},
		"capitalize": {programCapitalize, func(emu *Emulator, assert *assert.Assertions) {
			str := int(emu.Program.Label["str"])
			assert.Equal("HELLO, FRIENDS", string(emu.Memory()[str:str+14]))
		}},
		"memcpy": {programMemcpy, func(emu *Emulator, assert *assert.Assertions) {
			dst := int(emu.Program.Label["TargetArray"])
			assert.Equal([]uint8{0x11, 0x22, 0x33, 0x44, 0x55}, emu.Memory()[dst:dst+5])
		}},
	}

	for name, tc := range programs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			emu := doLoad(tc.program, t)
			doRunAll(emu, t)
			tc.check(emu, assert.New(t))
		})
	}
}

// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Status is an immutable snapshot of the CPU registers.
type Status struct {
	A, B, C, D, E, H, L uint8
	F                   uint8
	PC, SP              uint16
	Halted              bool
}

// Sign returns the sign flag.
func (st Status) Sign() bool { return st.F&FLAG_S != 0 }

// Zero returns the zero flag.
func (st Status) Zero() bool { return st.F&FLAG_Z != 0 }

// AuxCarry returns the auxiliary carry flag.
func (st Status) AuxCarry() bool { return st.F&FLAG_AC != 0 }

// Parity returns the parity flag.
func (st Status) Parity() bool { return st.F&FLAG_P != 0 }

// Carry returns the carry flag.
func (st Status) Carry() bool { return st.F&FLAG_CY != 0 }

// Map returns the snapshot keyed by lower-case register name.
// The halted state is reported as 0 or 1.
func (st Status) Map() map[string]int {
	halted := 0
	if st.Halted {
		halted = 1
	}
	return map[string]int{
		"a":      int(st.A),
		"b":      int(st.B),
		"c":      int(st.C),
		"d":      int(st.D),
		"e":      int(st.E),
		"h":      int(st.H),
		"l":      int(st.L),
		"f":      int(st.F),
		"pc":     int(st.PC),
		"sp":     int(st.SP),
		"halted": halted,
	}
}

// String returns the snapshot formatted one register per line.
func (st Status) String() (text string) {
	regs := []string{"a", "b", "c", "d", "e", "h", "l", "pc", "sp", "flags", "halted"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "a", "b", "c", "d", "e", "h", "l":
			strval = fmt.Sprintf("%02X", st.Map()[reg])
		case "pc":
			strval = fmt.Sprintf("%04X", st.PC)
		case "sp":
			strval = fmt.Sprintf("%04X", st.SP)
		case "flags":
			strval = fmt.Sprintf("%02X", st.F)
			for _, flag := range []struct {
				name string
				set  bool
			}{
				{"s", st.Sign()},
				{"z", st.Zero()},
				{"ac", st.AuxCarry()},
				{"p", st.Parity()},
				{"cy", st.Carry()},
			} {
				if flag.set {
					strval += " " + flag.name
				}
			}
		case "halted":
			strval = "false"
			if st.Halted {
				strval = "true"
			}
		}
		text += fmt.Sprintf("% 6s: %v\n", reg, strval)
	}

	return
}

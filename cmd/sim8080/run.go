// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ezrec/sim8080/asm"
	"github.com/ezrec/sim8080/cpu"
	"github.com/ezrec/sim8080/emulator"
)

var runSteps int
var runBreaks []int
var runSets []string
var runDumps []string
var runInput string
var runOutput string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run sourceFile",
	Short: "Assemble and run a source file",
	Long: `Run assembles a source file and executes it from address 0 until
the CPU halts, a breakpoint is reached, or --steps instructions have
run. The final register state is printed, followed by the labels and
any memory ranges requested with --dump.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		emu := emulator.NewEmulator()
		emu.Verbose = verbose
		emu.Program = compile(args[0])

		err := emu.Reset()
		if err != nil {
			log.Fatal(err)
		}

		for _, lineno := range runBreaks {
			err = emu.Break(lineno)
			if err != nil {
				log.Fatalf("--break: %v", err)
			}
		}

		for _, set := range runSets {
			name, value, err := parseAssign(set)
			if err == nil {
				err = emu.Cpu.Set(name, value)
			}
			if err != nil {
				log.Fatalf("--set %v: %v", set, err)
			}
		}

		if runInput == "-" {
			emu.Tape.Input = os.Stdin
		} else if len(runInput) != 0 {
			inf, err := os.Open(runInput)
			if err != nil {
				log.Fatalf("%v: %v", runInput, err)
			}
			defer inf.Close()
			emu.Tape.Input = inf
		}

		if runOutput == "-" {
			emu.Tape.Output = os.Stdout
		} else {
			ouf, err := os.Create(runOutput)
			if err != nil {
				log.Fatalf("%v: %v", runOutput, err)
			}
			defer ouf.Close()
			emu.Tape.Output = ouf
		}

		result, err := emu.Run(runSteps)
		if err != nil {
			fmt.Print(emu.Cpu.String())
			log.Fatal(err)
		}

		fmt.Printf("stopped: %v after %d steps", result.Reason, result.Steps)
		if result.LineNo != 0 {
			fmt.Printf(", line %d", result.LineNo)
		}
		fmt.Println()
		fmt.Print(result.Status.String())
		printLabels(emu.Program.Labels())

		for _, dump := range runDumps {
			start, length, err := parseRange(dump)
			if err != nil {
				log.Fatalf("--dump %v: %v", dump, err)
			}
			printDump(emu.Memory()[:], start, length)
		}
	},
}

// parseAssign parses a reg=value assignment.
func parseAssign(text string) (name string, value int, err error) {
	name, num, ok := strings.Cut(text, "=")
	if !ok {
		err = asm.ErrParseNumber(text)
		return
	}

	value, err = asm.ParseNumber(strings.TrimSpace(num))
	name = strings.TrimSpace(name)
	return
}

// parseRange parses a start:length memory range.
func parseRange(text string) (start int, length int, err error) {
	first, second, ok := strings.Cut(text, ":")
	if !ok {
		second = "100h"
	}

	start, err = asm.ParseNumber(first)
	if err != nil {
		return
	}
	length, err = asm.ParseNumber(second)
	if err != nil {
		return
	}

	start = max(0, min(start, cpu.MEMORY_SIZE))
	length = max(0, length)
	return
}

// printDump prints memory as hex, 16 bytes per row.
func printDump(mem []uint8, start int, length int) {
	end := min(start+length, len(mem))
	for row := start &^ 0xf; row < end; row += 16 {
		fmt.Printf("%04X:", row)
		for addr := row; addr < row+16; addr++ {
			if addr < start || addr >= end {
				fmt.Print("   ")
			} else {
				fmt.Printf(" %02X", mem[addr])
			}
		}
		fmt.Println()
	}
}

func init() {
	runCmd.Flags().IntVarP(&runSteps, "steps", "n", 10000, "Maximum instructions to execute")
	runCmd.Flags().IntSliceVarP(&runBreaks, "break", "b", nil, "Stop before the instruction on this source line")
	runCmd.Flags().StringArrayVar(&runSets, "set", nil, "Set a register before running, as reg=value")
	runCmd.Flags().StringArrayVarP(&runDumps, "dump", "d", nil, "Print memory after running, as start:length")
	runCmd.Flags().StringVarP(&runInput, "input", "i", "", "Tape input file, or - for stdin")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "-", "Tape output file, or - for stdout")
	rootCmd.AddCommand(runCmd)
}

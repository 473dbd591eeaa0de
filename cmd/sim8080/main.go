// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Sim8080 assembles and runs Intel 8080 assembly programs.
package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ezrec/sim8080/asm"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sim8080",
	Short: "Intel 8080 assembler and simulator",
	Long: `Sim8080 assembles Intel 8080 assembly source into a 64K memory
image starting at address 0, and runs it on a simulated 8080 until it
halts or a step limit is reached.

Port 1 is a byte tape, read from the tape input and written to the
tape output. Reading past the end of the input returns 0x1a. Port 2
is a 256 byte FIFO for scratch storage.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose mode")
}

// compile assembles a source file.
func compile(path string) (prog *asm.Program) {
	inf, err := os.Open(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}
	prog, err = assembler.Compile(inf)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	return
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

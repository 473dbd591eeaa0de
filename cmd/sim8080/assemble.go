// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"fmt"
	"iter"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var assembleOutput string
var assembleListing bool

// assembleCmd represents the assemble command
var assembleCmd = &cobra.Command{
	Use:   "assemble sourceFile",
	Short: "Assemble a source file",
	Long: `Assemble checks a source file, and optionally writes the binary
image from address 0 up to the last byte emitted. With --listing, the
address and bytes of every source line are printed, followed by the
label table.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		prog := compile(args[0])

		if assembleListing {
			err := prog.Listing(os.Stdout)
			if err != nil {
				log.Fatal(err)
			}
			printLabels(prog.Labels())
		}

		if len(assembleOutput) != 0 {
			err := os.WriteFile(assembleOutput, prog.Image[:prog.End()], 0o644)
			if err != nil {
				log.Fatalf("%v: %v", assembleOutput, err)
			}
		}

		if verbose {
			log.Printf("%v: %d bytes, %d labels", args[0], prog.End(), len(prog.Label))
		}
	},
}

// printLabels prints a label table, one label per line.
func printLabels(labels iter.Seq2[string, uint16]) {
	for name, addr := range labels {
		fmt.Printf("%04X  %v\n", addr, name)
	}
}

func init() {
	assembleCmd.Flags().StringVarP(&assembleOutput, "output", "o", "", "Binary image to write")
	assembleCmd.Flags().BoolVarP(&assembleListing, "listing", "l", false, "Print an assembly listing")
	rootCmd.AddCommand(assembleCmd)
}

// Package cmd wires the chippy8 CLI together with cobra, following the
// teacher's (bradford-hamilton/chippy) cmd/ package layout.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const currentReleaseVersion = "v0.1.0"

var rootCmd = &cobra.Command{
	Use:   "chippy8 [command]",
	Short: "chippy8 is a CHIP-8 interpreter and assembler",
	Long:  "chippy8 runs, assembles, and disassembles CHIP-8 programs.",
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(asmCmd)
	rootCmd.AddCommand(disasmCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs chippy8 according to the user's command/subcommand/flags.
// Exit codes follow spec.md §6.1: 0 clean, 1 ROM/IO load error, 2
// execution fault.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

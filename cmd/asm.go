package cmd

import (
	"fmt"
	"os"

	"github.com/chip8vm/chippy8/internal/asm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var asmOutput string

var asmCmd = &cobra.Command{
	Use:   "asm path/to/source.s",
	Short: "assemble a CHIP-8 mnemonic source file into a ROM image",
	Args:  cobra.ExactArgs(1),
	Run:   runAsm,
}

func init() {
	asmCmd.Flags().StringVarP(&asmOutput, "output", "o", "a.ch8", "path to write the assembled ROM")
}

func runAsm(cmd *cobra.Command, args []string) {
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "reading source"))
		os.Exit(1)
	}

	rom, err := asm.Assemble(string(source))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := os.WriteFile(asmOutput, rom, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "writing rom"))
		os.Exit(1)
	}
}

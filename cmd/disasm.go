package cmd

import (
	"fmt"
	"os"

	"github.com/chip8vm/chippy8/internal/asm"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var withAddresses bool

var disasmCmd = &cobra.Command{
	Use:   "disasm path/to/rom",
	Short: "disassemble a CHIP-8 ROM image to stdout",
	Args:  cobra.ExactArgs(1),
	Run:   runDisasm,
}

func init() {
	disasmCmd.Flags().BoolVarP(&withAddresses, "addresses", "a", false, "include the 12-bit address prefix")
}

func runDisasm(cmd *cobra.Command, args []string) {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "loading rom"))
		os.Exit(1)
	}

	lines := asm.Disassemble(rom, withAddresses)
	fmt.Print(asm.Join(lines))
}

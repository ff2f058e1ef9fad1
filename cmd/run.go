package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/chip8vm/chippy8/internal/chip8"
	"github.com/chip8vm/chippy8/internal/hostaudio"
	"github.com/chip8vm/chippy8/internal/hostwindow"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	defaultRefreshRate = 60
	defaultCPUHz       = 700
	beepAsset          = "assets/beep.mp3"
)

var (
	originalMode bool
	cpuHz        int
)

var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a CHIP-8 ROM",
	Args:  cobra.ExactArgs(1),
	Run:   runChippy,
}

func init() {
	runCmd.Flags().BoolVarP(&originalMode, "original", "o", false, "enable Original (COSMAC VIP) quirks mode")
	runCmd.Flags().IntVar(&cpuHz, "cpu-hz", defaultCPUHz, "CPU cycles per second")
}

func runChippy(cmd *cobra.Command, args []string) {
	rom, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "loading rom"))
		os.Exit(1)
	}

	mode := chip8.Modern
	if originalMode {
		mode = chip8.Original
	}

	engine := chip8.NewEngine(mode)
	if err := engine.LoadROM(rom); err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "loading rom"))
		os.Exit(1)
	}

	win, err := hostwindow.New("chippy8")
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(err, "opening window"))
		os.Exit(1)
	}

	shutdown := make(chan struct{})
	go hostaudio.Play(beepAsset, engine, shutdown)
	go chip8.RunTimers(engine, shutdown)

	runErr := make(chan error, 1)
	go func() { runErr <- engine.Run(time.Second / time.Duration(cpuHz)) }()

	hostwindow.RunHostLoop(win, engine, defaultRefreshRate)
	close(shutdown)

	if err := <-runErr; err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

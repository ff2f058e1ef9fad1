package main

import (
	"github.com/chip8vm/chippy8/cmd"
	"github.com/faiface/pixel/pixelgl"
)

func main() {
	// pixelgl needs access to the main thread, so the whole CLI (which may
	// open a window from the run subcommand) is wrapped in pixelgl.Run, as
	// the teacher's original main.go did for its single entry point.
	pixelgl.Run(cmd.Execute)
}

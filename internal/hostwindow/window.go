// Package hostwindow is the host-facing front end excluded from the core
// engine spec: a faiface/pixel window that blits the engine's display
// snapshot and translates keyboard scancodes into CHIP-8 key events. This
// is the teacher's internal/pixel package, generalized to read from
// chip8.Engine's snapshot/key-state surface instead of VM-private fields.
package hostwindow

import (
	"time"

	"github.com/chip8vm/chippy8/internal/chip8"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const (
	screenWidth  float64 = 1024
	screenHeight float64 = 768
)

// keyMap is the recommended host default from spec.md §6.5.
var keyMap = map[pixelgl.Button]uint8{
	pixelgl.Key1: 0x1, pixelgl.Key2: 0x2, pixelgl.Key3: 0x3, pixelgl.Key4: 0xC,
	pixelgl.KeyQ: 0x4, pixelgl.KeyW: 0x5, pixelgl.KeyE: 0x6, pixelgl.KeyR: 0xD,
	pixelgl.KeyA: 0x7, pixelgl.KeyS: 0x8, pixelgl.KeyD: 0x9, pixelgl.KeyF: 0xE,
	pixelgl.KeyZ: 0xA, pixelgl.KeyX: 0x0, pixelgl.KeyC: 0xB, pixelgl.KeyV: 0xF,
}

// Window embeds a pixelgl window and drives key events into an engine.
type Window struct {
	*pixelgl.Window
}

// New creates a new pixelgl window sized for a 64x32 CHIP-8 display.
func New(title string) (*Window, error) {
	cfg := pixelgl.WindowConfig{
		Title:  title,
		Bounds: pixel.R(0, 0, screenWidth, screenHeight),
		VSync:  true,
	}
	w, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, err
	}
	return &Window{Window: w}, nil
}

// PollInput pushes any pressed/released keys from this frame's input state
// into the engine's key-state snapshot, and wakes any CPU worker blocked
// in GetKey on a release.
func (w *Window) PollInput(e *chip8.Engine) {
	w.UpdateInput()
	for btn, key := range keyMap {
		if w.JustPressed(btn) {
			e.SetKeyPressed(key, true)
		}
		if w.JustReleased(btn) {
			e.SetKeyPressed(key, false)
			e.NotifyKeyReleased(key)
		}
	}
}

// DrawFrame blits the engine's current display snapshot onto the window.
// Any dirty pixel forces a full redraw; an all-clean frame returns without
// drawing.
func (w *Window) DrawFrame(snap chip8.Snapshot) {
	anyDirty := false
	for _, d := range snap.Dirty {
		if d {
			anyDirty = true
			break
		}
	}
	if !anyDirty {
		return
	}

	w.Clear(colornames.Black)
	draw := imdraw.New(nil)
	draw.Color = pixel.RGB(1, 1, 1)
	cellW, cellH := screenWidth/chip8.DisplayWidth, screenHeight/chip8.DisplayHeight

	for row := 0; row < chip8.DisplayHeight; row++ {
		for col := 0; col < chip8.DisplayWidth; col++ {
			if !snap.Pixels[row*chip8.DisplayWidth+col] {
				continue
			}
			// flip row: pixel (0,0) is top-left, pixelgl origin is bottom-left
			y := chip8.DisplayHeight - 1 - row
			draw.Push(pixel.V(cellW*float64(col), cellH*float64(y)))
			draw.Push(pixel.V(cellW*float64(col)+cellW, cellH*float64(y)+cellH))
			draw.Rectangle(0)
		}
	}
	draw.Draw(w)
	w.Update()
}

// RunHostLoop drives the window at the given refresh rate until the
// window is closed, polling input and redrawing each tick. It is the
// "host worker" from spec.md §5, running independently of the CPU and
// timer workers.
func RunHostLoop(w *Window, e *chip8.Engine, refreshRate int) {
	ticker := time.NewTicker(time.Second / time.Duration(refreshRate))
	defer ticker.Stop()

	for range ticker.C {
		if w.Closed() {
			e.Shutdown()
			return
		}
		w.PollInput(e)
		w.DrawFrame(e.ReadDisplaySnapshot())
	}
}

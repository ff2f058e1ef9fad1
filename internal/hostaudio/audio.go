// Package hostaudio is the audio sink excluded from the core engine spec:
// it watches chip8.Engine's sound timer and plays a tone through
// faiface/beep while it is non-zero. Grounded on the teacher's
// VM.ManageAudio, adapted to poll the engine's public SoundActive surface
// instead of a private field.
package hostaudio

import (
	"os"
	"time"

	"github.com/chip8vm/chippy8/internal/chip8"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const pollPeriod = time.Second / 60

// Play opens the beep asset at assetPath and plays it in a loop for as
// long as the engine's sound timer is non-zero. It blocks until shutdown
// is closed, so run it in its own goroutine. A missing/unreadable asset
// is treated as "no audio available" rather than a fatal error, since
// sound is a cosmetic part of the host front end.
func Play(assetPath string, e *chip8.Engine, shutdown <-chan struct{}) {
	f, err := os.Open(assetPath)
	if err != nil {
		return
	}
	defer f.Close()

	streamer, format, err := mp3.Decode(f)
	if err != nil {
		return
	}
	defer streamer.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return
	}

	loop := beep.Loop(-1, streamer)

	ctrl := &beep.Ctrl{Streamer: loop, Paused: true}
	speaker.Play(ctrl)

	ticker := time.NewTicker(pollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			active := e.SoundActive()
			speaker.Lock()
			ctrl.Paused = !active
			speaker.Unlock()
		}
	}
}

package chip8

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
)

// State is the engine's lifecycle state, per spec.md's state machine.
type State int

const (
	Ready State = iota
	Running
	BlockedOnKey
	Halted
	Fault
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case BlockedOnKey:
		return "blocked-on-key"
	case Halted:
		return "halted"
	case Fault:
		return "fault"
	default:
		return "unknown"
	}
}

const (
	memSize    = 4096
	romOrigin  = 0x200
	maxROMSize = memSize - romOrigin
)

// Engine is the stateful CHIP-8 interpreter. It owns memory, registers,
// stack, program counter, index register, timers, display, and keypad.
// Memory, registers, stack, pc, i, and mode are touched only by the CPU
// worker that calls Step/Run, so they need no synchronization of their
// own; timers, display, and keypad are the cross-worker shared cells
// described in spec.md §5 and guard themselves.
type Engine struct {
	memory [memSize]byte
	v      [16]byte
	i      uint16
	pc     uint16
	stack  []uint16

	mode  Mode
	rng   *rand.Rand
	state State

	timers  timers
	disp    display
	keys    *keypad
	cancel  chan struct{}
	running bool
}

// NewEngine constructs an engine pre-populated with the font table and
// zeroed registers/memory, ready to load a ROM.
func NewEngine(mode Mode) *Engine {
	e := &Engine{
		mode:   mode,
		pc:     romOrigin,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		state:  Ready,
		keys:   newKeypad(),
		cancel: make(chan struct{}),
	}
	copy(e.memory[FontBase:], fontSet[:])
	return e
}

// LoadROM copies bytes into memory starting at 0x200.
func (e *Engine) LoadROM(bytes []byte) error {
	if len(bytes) > maxROMSize {
		return &ROMTooLarge{Size: len(bytes), MaxSize: maxROMSize}
	}
	copy(e.memory[romOrigin:], bytes)
	e.state = Running
	return nil
}

// State reports the engine's current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Mode reports the quirks family the engine is running under.
func (e *Engine) Mode() Mode {
	return e.mode
}

// Delay reads the current delay timer value, for host display.
func (e *Engine) Delay() uint8 {
	return e.timers.readDelay()
}

// SoundActive reports whether the sound timer is presently non-zero, i.e.
// whether a tone should be audible.
func (e *Engine) SoundActive() bool {
	return e.timers.soundActive()
}

// ReadDisplaySnapshot copies out the current frame for a host renderer.
func (e *Engine) ReadDisplaySnapshot() Snapshot {
	return e.disp.readSnapshot()
}

// ReadKeyState returns a snapshot of all 16 key states.
func (e *Engine) ReadKeyState() [16]bool {
	return e.keys.snapshot()
}

// SetKeyPressed is called by the host on a key down/up event.
func (e *Engine) SetKeyPressed(key uint8, on bool) {
	e.keys.setPressed(key, on)
}

// NotifyKeyReleased is called by the host on a key-up event, to satisfy
// any CPU worker blocked in GetKey.
func (e *Engine) NotifyKeyReleased(key uint8) {
	e.keys.notifyKeyReleased(key)
}

// Shutdown signals the CPU worker (and anything waiting in GetKey) to
// terminate at the next opportunity. It closes the engine's single cancel
// channel, so it may be called at most once per Engine.
func (e *Engine) Shutdown() {
	if e.cancel != nil {
		close(e.cancel)
	}
}

// Step performs one fetch+decode+execute cycle. It may block inside
// GetKey; see execute.go. A decode error or stack underflow transitions
// the engine to Fault and is returned to the caller.
func (e *Engine) Step() error {
	if e.state == Fault || e.state == Halted {
		return nil
	}

	opcode := uint16(e.memory[e.pc])<<8 | uint16(e.memory[e.pc+1])
	e.pc += 2

	inst, err := Decode(opcode, e.pc-2)
	if err != nil {
		e.state = Fault
		return err
	}

	if err := e.execute(inst); err != nil {
		e.state = Fault
		return err
	}
	return nil
}

// Run loops over Step with a sleep of period between cycles. It exits only
// when Shutdown is called or a Step returns a fatal error.
func (e *Engine) Run(period time.Duration) error {
	e.running = true
	defer func() { e.running = false }()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-e.cancel:
			e.state = Halted
			return nil
		case <-ticker.C:
			if err := e.Step(); err != nil {
				return errors.Wrap(err, "chip8: fatal error during run")
			}
		}
	}
}

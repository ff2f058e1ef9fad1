package chip8

// Mode selects between the two historically divergent CHIP-8 quirk
// families. Modern is the default because most distributed ROMs target it.
type Mode int

const (
	Modern Mode = iota
	Original
)

func (m Mode) String() string {
	if m == Original {
		return "original"
	}
	return "modern"
}

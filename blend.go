package embroidery

import (
	"fmt"
	"strings"
)

// BlendMode selects how the texture channel is combined with the cell color.
type BlendMode int

const (
	// Normal lays the texture color over the cell color using texture alpha.
	Normal BlendMode = iota
	// Multiply darkens the cell color by the texture.
	Multiply
	// Screen lightens the cell color by the texture.
	Screen
	// Exclusion is a low-contrast difference of cell color and texture.
	Exclusion
)

var blendModeNames = [...]string{
	Normal:    "normal",
	Multiply:  "multiply",
	Screen:    "screen",
	Exclusion: "exclusion",
}

// BlendModes returns all supported modes in declaration order.
func BlendModes() []BlendMode {
	return []BlendMode{Normal, Multiply, Screen, Exclusion}
}

func (m BlendMode) String() string {
	if m.valid() {
		return blendModeNames[m]
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

func (m BlendMode) valid() bool {
	return m >= Normal && m <= Exclusion
}

// ParseBlendMode converts a case-insensitive mode name into a BlendMode.
func ParseBlendMode(s string) (BlendMode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range blendModeNames {
		if n == name {
			return BlendMode(i), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownBlendMode, s)
}

// BlendChannel combines one 8-bit base channel with one texture channel.
// Results are truncated toward zero. Normal passes the texture through.
func BlendChannel(base, blend uint8, mode BlendMode) uint8 {
	b, s := float64(base), float64(blend)
	switch mode {
	case Multiply:
		return uint8(b * s / 255)
	case Screen:
		return uint8(255 - (255-b)*(255-s)/255)
	case Exclusion:
		return uint8(b + s - 2*b*s/255)
	default:
		return blend
	}
}

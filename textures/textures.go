// Package textures generates the built-in stitch textures.
//
// Tiles are light grey on white so they read well under multiply blending:
// white keeps the cell color, darker shades carve the stitch relief.
package textures

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"
)

var ErrUnknownTexture = errors.New("textures: unknown texture")

// shadeFunc returns the grey level and alpha at normalized tile coordinates.
type shadeFunc func(u, v float64) (shade, alpha float64)

var generators = map[string]shadeFunc{
	"texture": stitch,
	"ovals":   ovals,
	"puzzle":  puzzle,
	"cross":   cross,
	"lego":    lego,
	"square":  square,
}

// Names lists the built-in textures in menu order.
func Names() []string {
	return []string{"texture", "ovals", "puzzle", "cross", "lego", "square"}
}

// Has reports whether name is a built-in texture.
func Has(name string) bool {
	_, ok := generators[name]
	return ok
}

// Generate draws the named texture at size×size. Sampling happens at pixel
// centers, so any size gives the same pattern.
func Generate(name string, size int) (*image.NRGBA, error) {
	fn, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownTexture, name, sortedKeys(generators))
	}
	if size <= 0 {
		return nil, fmt.Errorf("textures: size %d must be positive", size)
	}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		v := (float64(y) + 0.5) / float64(size)
		for x := 0; x < size; x++ {
			u := (float64(x) + 0.5) / float64(size)
			s, a := fn(u, v)
			g := toByte(s)
			img.SetNRGBA(x, y, color.NRGBA{R: g, G: g, B: g, A: toByte(a)})
		}
	}
	return img, nil
}

func toByte(v float64) uint8 {
	return uint8(math.Round(max(0, min(1, v)) * 255))
}

// edge is the distance to the nearest tile border.
func edge(u, v float64) float64 {
	return min(u, v, 1-u, 1-v)
}

// bevel darkens towards the border over width w.
func bevel(d, w, depth float64) float64 {
	if d >= w {
		return 1
	}
	return 1 - depth*(1-d/w)
}

// stitch draws two diagonal satin stitches separated by a thin gap.
func stitch(u, v float64) (float64, float64) {
	t := math.Mod((u+v)*2, 1)
	ridge := math.Sin(t * math.Pi)
	return 0.7 + 0.3*ridge, 1
}

func ovals(u, v float64) (float64, float64) {
	dx := (u - 0.5) / 0.45
	dy := (v - 0.5) / 0.35
	r2 := dx*dx + dy*dy
	if r2 > 1 {
		return 0.75, 1
	}
	// highlight offset towards the top-left
	hx, hy := dx+0.3, dy+0.3
	return 1 - 0.25*math.Min(1, (hx*hx+hy*hy)/2), 1
}

func puzzle(u, v float64) (float64, float64) {
	const knob = 0.14
	knobs := [][2]float64{{1, 0.5}, {0.5, 1}}
	sockets := [][2]float64{{0, 0.5}, {0.5, 0}}
	for _, s := range sockets {
		if math.Hypot(u-s[0], v-s[1]) < knob {
			return 0.7, 1
		}
	}
	for _, k := range knobs {
		if d := math.Hypot(u-k[0], v-k[1]); d < knob {
			return 1 - 0.2*d/knob, 1
		}
	}
	return bevel(edge(u, v), 0.08, 0.3), 1
}

// cross draws an X shaped cross stitch over light fabric.
func cross(u, v float64) (float64, float64) {
	const half = 0.14
	d := min(math.Abs(u-v), math.Abs(u+v-1)) / math.Sqrt2
	if d < half {
		return 1 - 0.25*d/half, 1
	}
	// fabric weave
	weave := 0.5 + 0.5*math.Sin(u*8*math.Pi)*math.Sin(v*8*math.Pi)
	return 0.8 + 0.05*weave, 1
}

func lego(u, v float64) (float64, float64) {
	d := math.Hypot(u-0.5, v-0.5)
	switch {
	case d < 0.26:
		// lit from the top-left
		return 0.95 + 0.05*((0.5-u)+(0.5-v)), 1
	case d < 0.31:
		return 0.7, 1
	}
	return bevel(edge(u, v), 0.06, 0.25) * 0.9, 1
}

func square(u, v float64) (float64, float64) {
	return bevel(edge(u, v), 0.12, 0.35), 1
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

package embroidery

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrNilImage         = errors.New("embroidery: nil image")
	ErrInvalidPixelSize = errors.New("embroidery: pixel size must be positive")
	ErrTextureSize      = errors.New("embroidery: texture tile does not match pixel size")
	ErrUnknownBlendMode = errors.New("embroidery: unknown blend mode")
)

// RenderConfig is the complete, immutable input of one render pass besides
// the source image.
type RenderConfig struct {
	// Cell edge in pixels.
	PixelSize int
	Mode      BlendMode
	// Texture must be exactly PixelSize×PixelSize.
	Texture *TextureTile
	// HasAlpha enables alpha-aware averaging and skips transparent cells.
	// Compute it once per source with HasAlphaChannel.
	HasAlpha bool
	// Optional thread palette. Painted cells snap to the nearest entry.
	Palette []colorful.Color
}

func (c RenderConfig) validate() error {
	if c.PixelSize <= 0 {
		return fmt.Errorf("pixel size %d: %w", c.PixelSize, ErrInvalidPixelSize)
	}
	if !c.Mode.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownBlendMode, c.Mode)
	}
	return c.Texture.validate(c.PixelSize)
}

// Render pixelates src and composites every cell with the texture tile. The
// result has the size of src, starts at the origin and is fully transparent
// wherever a cell was skipped. src is never modified.
func Render(src *image.NRGBA, cfg RenderConfig) (*image.NRGBA, error) {
	if src == nil {
		return nil, fmt.Errorf("source: %w", ErrNilImage)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	size := src.Bounds().Size()
	out := image.NewNRGBA(image.Rect(0, 0, size.X, size.Y))
	cols, rows := gridSize(size, cfg.PixelSize)
	skipped := 0
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cellX, cellY := col*cfg.PixelSize, row*cfg.PixelSize
			avg := AverageColor(src, cellX, cellY, cfg.PixelSize, cfg.HasAlpha)
			if cfg.HasAlpha && avg.A == 0 {
				skipped++
				continue
			}
			if len(cfg.Palette) > 0 {
				avg = nearestColor(avg, cfg.Palette)
			}
			fillCell(out, cellX, cellY, avg, cfg.Texture, cfg.Mode, cfg.HasAlpha)
		}
	}
	Logger().Debug("rendered",
		"width", size.X, "height", size.Y,
		"pixelSize", cfg.PixelSize, "mode", cfg.Mode,
		"cells", cols*rows, "skipped", skipped)
	return out, nil
}

// fillCell writes one textured cell into out, clipped to its bounds.
func fillCell(out *image.NRGBA, cellX, cellY int, c color.NRGBA, tile *TextureTile, mode BlendMode, hasAlpha bool) {
	cellAlpha := 1.0
	if hasAlpha {
		cellAlpha = float64(c.A) / 255
	}
	alpha := uint8(cellAlpha * 255)
	base := [3]uint8{c.R, c.G, c.B}
	w, h := out.Rect.Dx(), out.Rect.Dy()

	for ty := 0; ty < tile.Size && cellY+ty < h; ty++ {
		off := out.PixOffset(cellX, cellY+ty)
		for tx := 0; tx < tile.Size && cellX+tx < w; tx++ {
			tex := tile.at(tx, ty)
			texA := float64(tex[3]) / 255
			for ch := 0; ch < 3; ch++ {
				blended := tex[ch]
				if mode != Normal {
					blended = BlendChannel(base[ch], tex[ch], mode)
				}
				// The conversions keep each product rounded on its own so the
				// result does not change where the compiler would fuse them.
				v := float64(float64(base[ch])*(1-texA)) + float64(float64(blended)*texA)
				out.Pix[off+ch] = uint8(v)
			}
			out.Pix[off+3] = alpha
			off += 4
		}
	}
}

// nearestColor returns the palette entry closest to c in CIE Lab, keeping
// the alpha of c.
func nearestColor(c color.NRGBA, palette []colorful.Color) color.NRGBA {
	src := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	best := palette[0]
	bestD := src.DistanceLab(best)
	for _, p := range palette[1:] {
		if d := src.DistanceLab(p); d < bestD {
			best, bestD = p, d
		}
	}
	r, g, b := best.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: c.A}
}

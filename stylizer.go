package embroidery

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

type Options struct {
	// Cell edge in pixels. Larger cells give coarser stitches.
	PixelSize int
	Mode      BlendMode
	// Render target limit. The source is scaled down to fit, keeping its
	// aspect ratio; it is never scaled up. Zero components are unbounded.
	MaxSize image.Point
	// Treat the source as opaque even if it has transparent pixels.
	IgnoreAlpha bool
	Palette     []colorful.Color
}

func DefaultOptions() Options {
	return Options{
		PixelSize: 15,
		Mode:      Multiply,
	}
}

// LegacyOptions reproduces the fixed multiply variant: no blend mode choice
// and no transparency handling.
func LegacyOptions() Options {
	opt := DefaultOptions()
	opt.IgnoreAlpha = true
	return opt
}

// OptionsFromSize picks a pixel size giving about 64 cells along the longer
// side of an image of the given size.
func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	opt.PixelSize = max(4, min(48, max(size.X, size.Y)/64))
	return opt
}

// FitSize scales size down to fit within limit keeping the aspect ratio.
// Dimensions are floored and never grow. A zero limit component is ignored.
func FitSize(size, limit image.Point) image.Point {
	if size.X <= 0 || size.Y <= 0 {
		return size
	}
	scale := 1.0
	if limit.X > 0 {
		scale = min(scale, float64(limit.X)/float64(size.X))
	}
	if limit.Y > 0 {
		scale = min(scale, float64(limit.Y)/float64(size.Y))
	}
	return image.Pt(
		int(math.Floor(float64(size.X)*scale)),
		int(math.Floor(float64(size.Y)*scale)),
	)
}

// Stylizer holds the state of an interactive session: the current source,
// its alpha flag and the scaled tiles of the current texture.
type Stylizer struct {
	Source   *image.NRGBA
	HasAlpha bool
	textures *TextureCache
}

func NewStylizer(source, texture image.Image) *Stylizer {
	s := &Stylizer{textures: NewTextureCache(texture)}
	s.SetSource(source)
	return s
}

// SetSource replaces the source image and rescans it for transparency.
func (s *Stylizer) SetSource(source image.Image) {
	if source == nil {
		s.Source, s.HasAlpha = nil, false
		return
	}
	s.Source = imaging.Clone(source)
	s.HasAlpha = HasAlphaChannel(s.Source)
	Logger().Debug("source set",
		"width", s.Source.Rect.Dx(), "height", s.Source.Rect.Dy(),
		"hasAlpha", s.HasAlpha)
}

// SetTexture replaces the texture; tiles are rescaled on the next render.
func (s *Stylizer) SetTexture(texture image.Image) {
	s.textures.Reset(texture)
}

// Config resolves opt into the RenderConfig used for the current source.
func (s *Stylizer) Config(opt Options) (RenderConfig, error) {
	tile, err := s.textures.Tile(opt.PixelSize)
	if err != nil {
		return RenderConfig{}, err
	}
	return RenderConfig{
		PixelSize: opt.PixelSize,
		Mode:      opt.Mode,
		Texture:   tile,
		HasAlpha:  s.HasAlpha && !opt.IgnoreAlpha,
		Palette:   opt.Palette,
	}, nil
}

// Render fits the source into opt.MaxSize and renders it.
func (s *Stylizer) Render(opt Options) (*image.NRGBA, error) {
	if s.Source == nil {
		return nil, fmt.Errorf("source: %w", ErrNilImage)
	}
	cfg, err := s.Config(opt)
	if err != nil {
		return nil, err
	}
	return Render(s.Fitted(opt.MaxSize), cfg)
}

// Fitted returns the source scaled down to fit limit. It returns the source
// itself when no scaling is needed.
func (s *Stylizer) Fitted(limit image.Point) *image.NRGBA {
	size := s.Source.Rect.Size()
	target := FitSize(size, limit)
	if target == size {
		return s.Source
	}
	if target.X == 0 || target.Y == 0 {
		return image.NewNRGBA(image.Rect(0, 0, target.X, target.Y))
	}
	return imaging.Resize(s.Source, target.X, target.Y, imaging.Linear)
}

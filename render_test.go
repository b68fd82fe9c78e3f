package embroidery

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func solidTile(size int, c color.NRGBA) *TextureTile {
	return &TextureTile{Size: size, Pix: uniform(size, size, c)}
}

var white = color.NRGBA{255, 255, 255, 255}

func TestRenderEndToEnd(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 255})
	src.SetNRGBA(0, 1, color.NRGBA{0, 255, 0, 255})
	src.SetNRGBA(1, 1, color.NRGBA{0, 255, 0, 255})

	out, err := Render(src, RenderConfig{
		PixelSize: 2,
		Mode:      Multiply,
		Texture:   solidTile(2, white),
	})
	if err != nil {
		t.Fatal(err)
	}
	want := color.NRGBA{127, 127, 0, 255}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.NRGBAAt(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 13, 9))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 37)
	}
	tile := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range tile.Pix {
		tile.Pix[i] = uint8(i*91 + 7)
	}
	for _, mode := range BlendModes() {
		cfg := RenderConfig{
			PixelSize: 4,
			Mode:      mode,
			Texture:   &TextureTile{Size: 4, Pix: tile},
			HasAlpha:  HasAlphaChannel(src),
		}
		a, err := Render(src, cfg)
		if err != nil {
			t.Fatal(err)
		}
		b, err := Render(src, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Errorf("%v: outputs differ", mode)
		}
	}
}

func TestRenderDoesNotModifySource(t *testing.T) {
	src := uniform(6, 6, color.NRGBA{10, 20, 30, 200})
	before := bytes.Clone(src.Pix)
	if _, err := Render(src, RenderConfig{PixelSize: 3, Mode: Screen, Texture: solidTile(3, white), HasAlpha: true}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, src.Pix) {
		t.Error("source buffer was modified")
	}
}

func TestRenderSkipsTransparentCells(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	blue := color.NRGBA{0, 0, 255, 255}
	fill(src, image.Rect(2, 0, 4, 2), blue)

	out, err := Render(src, RenderConfig{
		PixelSize: 2,
		Mode:      Multiply,
		Texture:   solidTile(2, white),
		HasAlpha:  true,
	})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.NRGBAAt(x, y); got != (color.NRGBA{}) {
				t.Errorf("skipped cell (%d,%d) = %v, want transparent", x, y, got)
			}
			if got := out.NRGBAAt(x+2, y); got != blue {
				t.Errorf("painted cell (%d,%d) = %v, want %v", x+2, y, got, blue)
			}
		}
	}
}

func TestRenderCellAlphaIsUniform(t *testing.T) {
	src := uniform(2, 2, color.NRGBA{100, 100, 100, 128})
	tile := solidTile(2, white)
	tile.Pix.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 0})

	out, err := Render(src, RenderConfig{PixelSize: 2, Mode: Multiply, Texture: tile, HasAlpha: true})
	if err != nil {
		t.Fatal(err)
	}
	wantA := uint8(float64(128) / 255 * 255)
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := out.NRGBAAt(x, y); got.A != wantA || got.R != 100 {
				t.Errorf("(%d,%d) = %v, want rgb 100 alpha %d", x, y, got, wantA)
			}
		}
	}
}

func TestRenderOpaquePolicyIgnoresSourceAlpha(t *testing.T) {
	src := uniform(2, 2, color.NRGBA{100, 100, 100, 10})
	out, err := Render(src, RenderConfig{PixelSize: 2, Mode: Multiply, Texture: solidTile(2, white)})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{100, 100, 100, 255}) {
		t.Errorf("got %v, want opaque cell", got)
	}
}

func TestRenderNormalMode(t *testing.T) {
	src := uniform(3, 3, color.NRGBA{200, 100, 50, 255})
	tests := []struct {
		name    string
		texture color.NRGBA
		want    color.NRGBA
	}{
		{"opaque texture replaces color", color.NRGBA{10, 20, 30, 255}, color.NRGBA{10, 20, 30, 255}},
		{"transparent texture keeps color", color.NRGBA{10, 20, 30, 0}, color.NRGBA{200, 100, 50, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Render(src, RenderConfig{PixelSize: 3, Mode: Normal, Texture: solidTile(3, tt.texture)})
			if err != nil {
				t.Fatal(err)
			}
			if got := out.NRGBAAt(1, 1); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderTextureAlphaMixesBlend(t *testing.T) {
	// black texture at zero alpha must not darken under multiply
	src := uniform(2, 2, color.NRGBA{180, 90, 45, 255})
	out, err := Render(src, RenderConfig{PixelSize: 2, Mode: Multiply, Texture: solidTile(2, color.NRGBA{0, 0, 0, 0})})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{180, 90, 45, 255}) {
		t.Errorf("got %v", got)
	}
}

func TestRenderClippedEdges(t *testing.T) {
	src := uniform(10, 3, color.NRGBA{50, 60, 70, 255})
	out, err := Render(src, RenderConfig{PixelSize: 4, Mode: Screen, Texture: solidTile(4, color.NRGBA{0, 0, 0, 255})})
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 10, 3) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	want := color.NRGBA{50, 60, 70, 255} // screen with black keeps the base
	for y := 0; y < 3; y++ {
		for x := 0; x < 10; x++ {
			if got := out.NRGBAAt(x, y); got != want {
				t.Fatalf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderSubImageSource(t *testing.T) {
	img := uniform(6, 6, color.NRGBA{0, 0, 0, 255})
	fill(img, image.Rect(2, 2, 6, 6), color.NRGBA{30, 30, 30, 255})
	sub := img.SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)
	out, err := Render(sub, RenderConfig{PixelSize: 2, Mode: Multiply, Texture: solidTile(2, white)})
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	if got := out.NRGBAAt(3, 3); got != (color.NRGBA{30, 30, 30, 255}) {
		t.Errorf("got %v", got)
	}
}

func TestRenderPalette(t *testing.T) {
	src := uniform(2, 2, color.NRGBA{250, 10, 10, 255})
	palette := []colorful.Color{{R: 0, G: 0, B: 1}, {R: 1, G: 0, B: 0}}
	out, err := Render(src, RenderConfig{PixelSize: 2, Mode: Multiply, Texture: solidTile(2, white), Palette: palette})
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("got %v, want palette red", got)
	}
}

func TestRenderInvalidInput(t *testing.T) {
	src := uniform(4, 4, white)
	tests := []struct {
		name string
		src  *image.NRGBA
		cfg  RenderConfig
		want error
	}{
		{"nil source", nil, RenderConfig{PixelSize: 2, Texture: solidTile(2, white)}, ErrNilImage},
		{"zero pixel size", src, RenderConfig{PixelSize: 0, Texture: solidTile(2, white)}, ErrInvalidPixelSize},
		{"nil texture", src, RenderConfig{PixelSize: 2}, ErrNilImage},
		{"texture size mismatch", src, RenderConfig{PixelSize: 3, Texture: solidTile(2, white)}, ErrTextureSize},
		{"unknown mode", src, RenderConfig{PixelSize: 2, Mode: BlendMode(9), Texture: solidTile(2, white)}, ErrUnknownBlendMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Render(tt.src, tt.cfg); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

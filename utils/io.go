package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/setanarut/embroidery/textures"
)

// DefaultOutputName is the file name offered for a stylized image.
const DefaultOutputName = "embroidery-stylized.png"

// textureResolution is the size built-in textures are drawn at before
// being scaled to the cell size, like a texture file would be.
const textureResolution = 64

// ReadImage decodes a png, jpeg, gif, bmp, tiff or webp file.
func ReadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// LoadTexture returns a built-in texture by name or reads it from a file.
func LoadTexture(nameOrPath string) (image.Image, error) {
	if textures.Has(nameOrPath) {
		return textures.Generate(nameOrPath, textureResolution)
	}
	return ReadImage(nameOrPath)
}

// SaveImage encodes img as jpeg for .jpg/.jpeg names and as png otherwise.
func SaveImage(img image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = png.Encode(f, img)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// SavePalette writes the palette as a strip of tileSize squares.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}
	img := image.NewRGBA(image.Rect(0, 0, tileSize*len(palette), tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		fill := color.RGBA{R: r, G: g, B: b, A: 255}
		for y := 0; y < tileSize; y++ {
			for x := i * tileSize; x < (i+1)*tileSize; x++ {
				img.SetRGBA(x, y, fill)
			}
		}
	}
	return SaveImage(img, filename)
}

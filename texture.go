package embroidery

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/draw"
)

// TextureTile is a texture scaled to exactly one cell. A tile is built once
// per cell size and shared by every cell of a render.
type TextureTile struct {
	Size int
	Pix  *image.NRGBA
}

// NewTextureTile scales texture to a size×size tile with bilinear filtering.
func NewTextureTile(texture image.Image, size int) (*TextureTile, error) {
	if texture == nil {
		return nil, fmt.Errorf("texture: %w", ErrNilImage)
	}
	if size <= 0 {
		return nil, fmt.Errorf("texture tile size %d: %w", size, ErrInvalidPixelSize)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), texture, texture.Bounds(), draw.Src, nil)
	return &TextureTile{Size: size, Pix: dst}, nil
}

// at returns the texture pixel at tile coordinates (tx, ty).
func (t *TextureTile) at(tx, ty int) []uint8 {
	off := (ty*t.Size + tx) * 4
	return t.Pix.Pix[off : off+4 : off+4]
}

func (t *TextureTile) validate(size int) error {
	if t == nil || t.Pix == nil {
		return fmt.Errorf("texture tile: %w", ErrNilImage)
	}
	b := t.Pix.Bounds()
	if t.Size != size || b.Dx() != size || b.Dy() != size || t.Pix.Stride != size*4 {
		return fmt.Errorf("tile %dx%d, pixel size %d: %w", b.Dx(), b.Dy(), size, ErrTextureSize)
	}
	return nil
}

// TextureCache keeps the scaled tiles of one texture keyed by cell size.
// It is safe for concurrent use.
type TextureCache struct {
	mu      sync.Mutex
	texture image.Image
	tiles   map[int]*TextureTile
}

// NewTextureCache returns a cache for texture.
func NewTextureCache(texture image.Image) *TextureCache {
	return &TextureCache{
		texture: texture,
		tiles:   make(map[int]*TextureTile),
	}
}

// Tile returns the tile for size, scaling the texture on first use.
func (c *TextureCache) Tile(size int) (*TextureTile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.tiles[size]; ok {
		return t, nil
	}
	t, err := NewTextureTile(c.texture, size)
	if err != nil {
		return nil, err
	}
	c.tiles[size] = t
	Logger().Debug("texture tile scaled", "size", size)
	return t, nil
}

// Reset replaces the texture and drops every cached tile.
func (c *TextureCache) Reset(texture image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.texture = texture
	clear(c.tiles)
}

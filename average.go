package embroidery

import (
	"image"
	"image/color"
)

// AverageColor reduces the cell anchored at (x, y) to one color. The cell is
// clipped to the image bounds; x and y are relative to src.Bounds().Min.
//
// With hasAlpha set only pixels with non-zero alpha contribute, and a cell
// without any such pixel averages to transparent black. Otherwise every
// pixel counts. Channels are floored.
func AverageColor(src *image.NRGBA, x, y, size int, hasAlpha bool) color.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	endX := min(x+size, w)
	endY := min(y+size, h)

	var r, g, bl, a, n int
	for py := y; py < endY; py++ {
		off := src.PixOffset(b.Min.X+x, b.Min.Y+py)
		for px := x; px < endX; px++ {
			p := src.Pix[off : off+4 : off+4]
			off += 4
			if hasAlpha && p[3] == 0 {
				continue
			}
			r += int(p[0])
			g += int(p[1])
			bl += int(p[2])
			a += int(p[3])
			n++
		}
	}
	if n == 0 {
		return color.NRGBA{}
	}
	return color.NRGBA{
		R: uint8(r / n),
		G: uint8(g / n),
		B: uint8(bl / n),
		A: uint8(a / n),
	}
}

// CellColors returns the average color of every cell in row-major order,
// ceil(width/size) columns by ceil(height/size) rows.
func CellColors(src *image.NRGBA, size int, hasAlpha bool) []color.NRGBA {
	if src == nil || size <= 0 {
		return nil
	}
	cols, rows := gridSize(src.Bounds().Size(), size)
	out := make([]color.NRGBA, 0, cols*rows)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			out = append(out, AverageColor(src, col*size, row*size, size, hasAlpha))
		}
	}
	return out
}

// HasAlphaChannel reports whether any pixel of img is not fully opaque.
func HasAlphaChannel(img image.Image) bool {
	if img == nil {
		return false
	}
	if n, ok := img.(*image.NRGBA); ok {
		b := n.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			off := n.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				if n.Pix[off+3] < 255 {
					return true
				}
				off += 4
			}
		}
		return false
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a < 0xffff {
				return true
			}
		}
	}
	return false
}

func gridSize(size image.Point, cell int) (cols, rows int) {
	return (size.X + cell - 1) / cell, (size.Y + cell - 1) / cell
}

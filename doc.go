// Package embroidery renders a "pixel-art embroidery" effect: the source
// image is split into square cells, every cell is reduced to its average
// color, and the color is composited with a texture tile using a blend mode.
//
// The core is the pure function [Render]. [Stylizer] wraps it with the state
// an interactive caller needs (current source, alpha flag, scaled texture
// tiles) and [Debouncer] rate-limits re-rendering while a parameter changes.
//
//	tile, _ := embroidery.NewTextureTile(texture, 15)
//	out, err := embroidery.Render(src, embroidery.RenderConfig{
//		PixelSize: 15,
//		Mode:      embroidery.Multiply,
//		Texture:   tile,
//		HasAlpha:  embroidery.HasAlphaChannel(src),
//	})
package embroidery

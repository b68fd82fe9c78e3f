package utils

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the cell grid of one render.
type Summary struct {
	Cells   int
	Painted int
	Skipped int
	// Lightness statistics (CIE L, 0..1) over painted cells.
	MeanL, StdDevL float64
	// Mean color of the painted cells.
	Mean colorful.Color
}

// Summarize computes statistics over cell averages. With hasAlpha set,
// cells with zero alpha count as skipped.
func Summarize(cells []color.NRGBA, hasAlpha bool) Summary {
	s := Summary{Cells: len(cells)}
	ls := make([]float64, 0, len(cells))
	var r, g, b float64
	for _, c := range cells {
		if hasAlpha && c.A == 0 {
			s.Skipped++
			continue
		}
		col := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
		l, _, _ := col.Lab()
		ls = append(ls, l)
		r += col.R
		g += col.G
		b += col.B
	}
	s.Painted = len(ls)
	if s.Painted == 0 {
		return s
	}
	n := float64(s.Painted)
	s.Mean = colorful.Color{R: r / n, G: g / n, B: b / n}
	if s.Painted == 1 {
		s.MeanL = ls[0]
		return s
	}
	s.MeanL, s.StdDevL = stat.MeanStdDev(ls, nil)
	return s
}

func (s Summary) String() string {
	if s.Painted == 0 {
		return fmt.Sprintf("%d cells, none painted", s.Cells)
	}
	return fmt.Sprintf("%d cells, %d painted, %d skipped, mean %s, lightness %.3f±%.3f",
		s.Cells, s.Painted, s.Skipped, s.Mean.Hex(), s.MeanL, s.StdDevL)
}

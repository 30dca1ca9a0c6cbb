package chrome

import (
	"image"
	"image/color"

	"github.com/NaveLIL/erez-chrome/models"
)

// glyphSize is the edge length of the caption button glyph masks.
const glyphSize = 10

var (
	minimizeGlyph = newGlyph(func(m *image.Alpha) {
		hline(m, 0, glyphSize-1, glyphSize/2)
	})
	maximizeGlyph = newGlyph(func(m *image.Alpha) {
		square(m, 0, 0, glyphSize-1, glyphSize-1)
	})
	restoreGlyph = newGlyph(func(m *image.Alpha) {
		square(m, 0, 2, glyphSize-3, glyphSize-1)
		hline(m, 2, glyphSize-1, 0)
		vline(m, glyphSize-1, 0, glyphSize-3)
		vline(m, 2, 0, 1)
		hline(m, glyphSize-2, glyphSize-1, glyphSize-3)
	})
	closeGlyph = newGlyph(func(m *image.Alpha) {
		for i := 0; i < glyphSize; i++ {
			m.SetAlpha(i, i, color.Alpha{A: 0xFF})
			m.SetAlpha(glyphSize-1-i, i, color.Alpha{A: 0xFF})
		}
	})
)

func newGlyph(draw func(m *image.Alpha)) *image.Alpha {
	m := image.NewAlpha(image.Rect(0, 0, glyphSize, glyphSize))
	draw(m)
	return m
}

func hline(m *image.Alpha, x0, x1, y int) {
	for x := x0; x <= x1; x++ {
		m.SetAlpha(x, y, color.Alpha{A: 0xFF})
	}
}

func vline(m *image.Alpha, x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		m.SetAlpha(x, y, color.Alpha{A: 0xFF})
	}
}

func square(m *image.Alpha, x0, y0, x1, y1 int) {
	hline(m, x0, x1, y0)
	hline(m, x0, x1, y1)
	vline(m, x0, y0, y1)
	vline(m, x1, y0, y1)
}

// glyphFor returns the mask drawn on a system button.
func glyphFor(id models.ButtonIdentity, maximized bool) image.Image {
	switch id {
	case models.ButtonMinimize:
		return minimizeGlyph
	case models.ButtonMaximizeRestore:
		if maximized {
			return restoreGlyph
		}
		return maximizeGlyph
	case models.ButtonClose:
		return closeGlyph
	}
	return nil
}

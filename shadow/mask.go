package shadow

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"golang.org/x/image/draw"

	"github.com/NaveLIL/erez-chrome/models"
)

// peakAlpha is the coverage of the shadow right at the window edge.
const peakAlpha = 0x70

// gradientMasks builds the per-side grayscale masks for a shadow of
// thickness t. Left and right masks are t x 3t (corner, edge, corner);
// top and bottom masks are t x t and only stretched horizontally.
func gradientMasks(t int) [4]*image.RGBA {
	full := image.NewAlpha(image.Rect(0, 0, 3*t, 3*t))
	inner := image.Rect(t, t, 2*t, 2*t)
	for y := 0; y < 3*t; y++ {
		for x := 0; x < 3*t; x++ {
			d := distance(float64(x)+0.5, float64(y)+0.5, inner)
			if d >= float64(t) {
				continue
			}
			f := 1 - d/float64(t)
			full.SetAlpha(x, y, color.Alpha{A: uint8(math.Round(peakAlpha * f * f))})
		}
	}
	soft := blur.Gaussian(full, float64(t)/4)

	var masks [4]*image.RGBA
	masks[Left] = crop(soft, image.Rect(0, 0, t, 3*t))
	masks[Right] = crop(soft, image.Rect(2*t, 0, 3*t, 3*t))
	masks[Top] = crop(soft, image.Rect(t, 0, 2*t, t))
	masks[Bottom] = crop(soft, image.Rect(t, 2*t, 2*t, 3*t))
	return masks
}

// distance is the Euclidean distance from (x, y) to r, zero inside r.
func distance(x, y float64, r image.Rectangle) float64 {
	dx := math.Max(math.Max(float64(r.Min.X)-x, 0), x-float64(r.Max.X))
	dy := math.Max(math.Max(float64(r.Min.Y)-y, 0), y-float64(r.Max.Y))
	return math.Hypot(dx, dy)
}

func crop(src image.Image, r image.Rectangle) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), src, r.Min, draw.Src)
	return dst
}

// stretch renders a tinted mask to size. Edge masks keep their corner
// slices unscaled and stretch the middle slice.
func stretch(side Side, tinted *image.RGBA, t int, size models.Size) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	w, h := size.Width, size.Height
	if w <= 0 || h <= 0 {
		return dst
	}

	switch side {
	case Left, Right:
		draw.Draw(dst, image.Rect(0, 0, w, t), tinted, image.Point{}, draw.Src)
		draw.Draw(dst, image.Rect(0, h-t, w, h), tinted, image.Pt(0, 2*t), draw.Src)
		if middle := image.Rect(0, t, w, h-t); !middle.Empty() {
			draw.ApproxBiLinear.Scale(dst, middle, tinted, image.Rect(0, t, t, 2*t), draw.Src, nil)
		}
	default:
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), tinted, tinted.Bounds(), draw.Src, nil)
	}
	return dst
}

package models

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// RegionKind selects how a window silhouette is described.
type RegionKind int

const (
	// RegionDefault clears any override; the window keeps its rectangular shape.
	RegionDefault RegionKind = iota
	RegionRect
	RegionPath
)

// PointF is a sub-pixel point on a region outline.
type PointF struct {
	X, Y float64
}

// Region is a window clipping silhouette in window-local coordinates.
type Region struct {
	Kind RegionKind
	Rect Rect
	Path []PointF
}

// RoundedPath builds the closed outline of a w×h window with the given corner
// radii, clockwise from the top-left corner. Corners with a non-positive
// radius contribute a single vertex.
func RoundedPath(w, h int, cr CornerRadius) []PointF {
	fw, fh := float64(w), float64(h)
	limit := math.Min(fw, fh) / 2
	clamp := func(r float64) float64 {
		if r <= 0 {
			return 0
		}
		return math.Min(r, limit)
	}

	var path []PointF
	corner := func(r, cx, cy, x, y, from float64) {
		if r <= 0 {
			path = append(path, PointF{X: x, Y: y})
			return
		}
		n := arcSegments(r)
		for i := 0; i <= n; i++ {
			a := (from + 90*float64(i)/float64(n)) * math.Pi / 180
			path = append(path, PointF{X: snap(cx + r*math.Cos(a)), Y: snap(cy + r*math.Sin(a))})
		}
	}

	tl, tr := clamp(cr.TopLeft), clamp(cr.TopRight)
	br, bl := clamp(cr.BottomRight), clamp(cr.BottomLeft)

	corner(tl, tl, tl, 0, 0, 180)
	corner(tr, fw-tr, tr, fw, 0, 270)
	corner(br, fw-br, fh-br, fw, fh, 0)
	corner(bl, bl, fh-bl, 0, fh, 90)
	return path
}

// snap drops the rounding noise of sin/cos so arc endpoints land on the edges.
func snap(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func arcSegments(r float64) int {
	n := int(math.Ceil(r / 2))
	if n < 4 {
		n = 4
	}
	if n > 32 {
		n = 32
	}
	return n
}

// Mask rasterises the region into a coverage mask of the given size.
func (r Region) Mask(size Size) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, size.Width, size.Height))
	switch r.Kind {
	case RegionRect:
		rr := image.Rect(r.Rect.Left, r.Rect.Top, r.Rect.Right, r.Rect.Bottom)
		draw.Draw(mask, rr, image.Opaque, image.Point{}, draw.Src)
	case RegionPath:
		if len(r.Path) < 3 || size.Width <= 0 || size.Height <= 0 {
			return mask
		}
		z := vector.NewRasterizer(size.Width, size.Height)
		z.MoveTo(float32(r.Path[0].X), float32(r.Path[0].Y))
		for _, p := range r.Path[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
		z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	default:
		draw.Draw(mask, mask.Bounds(), image.Opaque, image.Point{}, draw.Src)
	}
	return mask
}

// Package models defines the geometry and state types shared by the window chrome.
package models

import (
	"errors"
	"fmt"
)

// ErrNegativeThickness is returned when a border inset is negative.
var ErrNegativeThickness = errors.New("border thickness must be non-negative")

// Point is a position in pixels.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle. Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// RectXYWH builds a rectangle from a position and a size.
func RectXYWH(x, y, w, h int) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// Width returns the horizontal extent.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Size returns the rectangle size.
func (r Rect) Size() Size { return Size{Width: r.Width(), Height: r.Height()} }

// Location returns the top-left corner.
func (r Rect) Location() Point { return Point{X: r.Left, Y: r.Top} }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Offset moves the rectangle by dx, dy.
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Inset shrinks the rectangle by the given thickness.
func (r Rect) Inset(b BorderThickness) Rect {
	return Rect{
		Left:   r.Left + b.Left,
		Top:    r.Top + b.Top,
		Right:  r.Right - b.Right,
		Bottom: r.Bottom - b.Bottom,
	}
}

// Intersect returns the overlapping area of r and o.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   max(r.Left, o.Left),
		Top:    max(r.Top, o.Top),
		Right:  min(r.Right, o.Right),
		Bottom: min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Left, r.Top, r.Right, r.Bottom)
}

// BorderThickness holds the four resize-border insets.
type BorderThickness struct {
	Left   int `json:"left" mapstructure:"left"`
	Top    int `json:"top" mapstructure:"top"`
	Right  int `json:"right" mapstructure:"right"`
	Bottom int `json:"bottom" mapstructure:"bottom"`
}

// UniformBorder returns a thickness with the same inset on every side.
func UniformBorder(n int) BorderThickness {
	return BorderThickness{Left: n, Top: n, Right: n, Bottom: n}
}

// Horizontal returns Left+Right.
func (b BorderThickness) Horizontal() int { return b.Left + b.Right }

// Vertical returns Top+Bottom.
func (b BorderThickness) Vertical() int { return b.Top + b.Bottom }

// IsZero reports whether every inset is zero.
func (b BorderThickness) IsZero() bool { return b == BorderThickness{} }

// Validate rejects negative insets.
func (b BorderThickness) Validate() error {
	if b.Left < 0 || b.Top < 0 || b.Right < 0 || b.Bottom < 0 {
		return fmt.Errorf("%w: %+v", ErrNegativeThickness, b)
	}
	return nil
}

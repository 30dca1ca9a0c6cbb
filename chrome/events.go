package chrome

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/NaveLIL/erez-chrome/models"
)

// PaintEvent asks listeners to draw the non-client area.
type PaintEvent struct {
	// Canvas covers the whole window in window-local coordinates. Pixels
	// inside Client never reach the screen.
	Canvas    draw.Image
	Bounds    models.Rect
	Client    models.Rect
	Geometry  Geometry
	Maximized bool
	Active    bool
}

// InClip reports whether p is part of the paintable non-client area.
func (e *PaintEvent) InClip(p models.Point) bool {
	return e.Bounds.Contains(p) && !e.Client.Contains(p)
}

// MouseEvent is a non-client pointer notification.
type MouseEvent struct {
	// Point is window-local; Screen is the original screen position.
	Point   models.Point
	Screen  models.Point
	HitTest models.HitTest
	// Geometry is the snapshot the point was converted with.
	Geometry Geometry
	// Handled suppresses the OS default handling of the message.
	Handled bool
}

// SysCommandEvent relays a system command before default handling.
type SysCommandEvent struct {
	Command models.SysCommand
	// Cancel vetoes the command.
	Cancel bool
}

type listenerEntry[E any] struct {
	id int
	fn func(E)
}

// listenerList is an ordered set of callbacks owned by one chrome instance.
type listenerList[E any] struct {
	nextID  int
	entries []listenerEntry[E]
}

func (l *listenerList[E]) add(fn func(E)) func() {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry[E]{id: id, fn: fn})
	return func() {
		for i, e := range l.entries {
			if e.id == id {
				l.entries = append(l.entries[:i:i], l.entries[i+1:]...)
				return
			}
		}
	}
}

func (l *listenerList[E]) emit(e E) {
	snapshot := l.entries
	for _, entry := range snapshot {
		entry.fn(e)
	}
}

func (l *listenerList[E]) len() int {
	return len(l.entries)
}

// clipCanvas drops writes that fall inside an excluded rectangle.
type clipCanvas struct {
	draw.Image
	exclude image.Rectangle
}

func newClipCanvas(dst draw.Image, exclude models.Rect) *clipCanvas {
	return &clipCanvas{
		Image:   dst,
		exclude: image.Rect(exclude.Left, exclude.Top, exclude.Right, exclude.Bottom),
	}
}

func (c *clipCanvas) Set(x, y int, col color.Color) {
	if (image.Point{X: x, Y: y}).In(c.exclude) {
		return
	}
	c.Image.Set(x, y, col)
}

// Package chrome replaces the title bar, resize border and silhouette of a
// top-level window with custom-drawn chrome while the window manager keeps
// move, resize, snap and activation behaviour.
//
// The package is platform neutral. A backend decodes native messages into
// Message values, hands them to a Dispatcher and implements Host on top of
// the native window.
package chrome

import (
	"errors"
	"image"
	"image/draw"

	"github.com/NaveLIL/erez-chrome/models"
)

var (
	ErrNilHost       = errors.New("chrome: host is nil")
	ErrNilButton     = errors.New("chrome: button is nil")
	ErrButtonOwned   = errors.New("chrome: button already belongs to a chrome instance")
	ErrNegativeValue = errors.New("chrome: value must be non-negative")
)

// Geometry is one consistent read of the host window's state.
type Geometry struct {
	// Bounds is the window rectangle in screen coordinates, frame included.
	Bounds models.Rect
	State  models.WindowState
	Active bool
}

// Maximized reports whether the window is maximized.
func (g Geometry) Maximized() bool { return g.State == models.WindowMaximized }

// Minimized reports whether the window is minimized.
func (g Geometry) Minimized() bool { return g.State == models.WindowMinimized }

// Size returns the window size.
func (g Geometry) Size() models.Size { return g.Bounds.Size() }

// LocalBounds returns the window rectangle with its origin at 0,0.
func (g Geometry) LocalBounds() models.Rect {
	return models.Rect{Right: g.Bounds.Width(), Bottom: g.Bounds.Height()}
}

// ToLocal converts a screen point into window-local coordinates.
func (g Geometry) ToLocal(p models.Point) models.Point {
	return models.Point{X: p.X - g.Bounds.Left, Y: p.Y - g.Bounds.Top}
}

// SurfaceKind selects how a paint surface is acquired.
type SurfaceKind int

const (
	// SurfaceNonClient is the optimized non-client device context.
	SurfaceNonClient SurfaceKind = iota
	// SurfaceWindow is the unrestricted whole-window device context.
	SurfaceWindow
)

// Surface is a paintable view of the whole window, frame included.
// Release flushes pending pixels and frees the underlying resources.
type Surface interface {
	Canvas() draw.Image
	ExcludeClip(r models.Rect)
	Release() error
}

// Host is the native window surface the chrome drives. Every method runs on
// the thread owning the window's message queue.
type Host interface {
	HandleCreated() bool
	Geometry() Geometry
	// SystemFrameBorder is the frame border the OS adds around a maximized window.
	SystemFrameBorder() models.BorderThickness

	Text() string
	Icon() image.Image
	ControlBox() bool
	MinimizeBox() bool
	MaximizeBox() bool
	// CloseEnabled queries the live system-menu close item. It returns
	// false while no native handle exists.
	CloseEnabled() bool

	SetRegion(r models.Region)
	SetWindowState(s models.WindowState)
	Close()
	SetCapture()
	ReleaseCapture()

	// InvalidateNonClient asks the OS to deliver a non-client paint.
	InvalidateNonClient()
	// RecalculateFrame asks the OS to resend the frame-size calculation.
	RecalculateFrame()
	SetDefaultTextRendering(enabled bool)
	AcquireSurface(kind SurfaceKind) (Surface, error)
}

// Package shadow keeps four overlay surfaces around a window in step with
// its geometry and paints them with a tinted gradient.
package shadow

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/imagecache"
	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
)

var (
	ErrNilTarget        = errors.New("shadow: target is nil")
	ErrNilFactory       = errors.New("shadow: overlay factory is nil")
	ErrInvalidThickness = errors.New("shadow: thickness must be positive")
)

// Side names one edge of the window.
type Side int

const (
	Left Side = iota
	Top
	Right
	Bottom
)

// Sides lists every side in creation order.
var Sides = [4]Side{Left, Top, Right, Bottom}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// Overlay is a borderless, click-through surface above the main window.
type Overlay interface {
	// SetBounds moves the overlay to r in screen coordinates.
	SetBounds(r models.Rect)
	SetImage(img *image.RGBA)
	Show()
	Hide()
	Destroy()
}

// OverlayFactory creates the native overlay for one side.
type OverlayFactory interface {
	CreateOverlay(side Side) (Overlay, error)
}

// Target is the window the shadow follows.
type Target interface {
	Geometry() chrome.Geometry
}

// Options configures the shadow.
type Options struct {
	Thickness     int
	Color         color.NRGBA
	InactiveColor color.NRGBA
}

// DefaultOptions returns a 12px accent shadow with a gray inactive tint.
func DefaultOptions() Options {
	return Options{
		Thickness:     12,
		Color:         color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF},
		InactiveColor: color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF},
	}
}

// Rects returns the overlay rectangle for each side of bounds, flush
// against the window edge. Left and right overlays cover the corners.
func Rects(bounds models.Rect, t int) [4]models.Rect {
	var r [4]models.Rect
	r[Left] = models.Rect{Left: bounds.Left - t, Top: bounds.Top - t, Right: bounds.Left, Bottom: bounds.Bottom + t}
	r[Top] = models.Rect{Left: bounds.Left, Top: bounds.Top - t, Right: bounds.Right, Bottom: bounds.Top}
	r[Right] = models.Rect{Left: bounds.Right, Top: bounds.Top - t, Right: bounds.Right + t, Bottom: bounds.Bottom + t}
	r[Bottom] = models.Rect{Left: bounds.Left, Top: bounds.Bottom, Right: bounds.Right, Bottom: bounds.Bottom + t}
	return r
}

// Manager owns the four overlays of one window. It implements
// chrome.Lifecycle and chrome.Observer.
type Manager struct {
	target  Target
	factory OverlayFactory
	opts    Options
	log     *logrus.Entry

	caches   *imagecache.Manager
	masks    [4]*image.RGBA
	overlays [4]Overlay
	rendered [4]models.Size

	active  bool
	visible bool
	stale   bool
	closed  bool
}

// NewManager creates the shadow for target. Overlays are created on
// HandleCreated.
func NewManager(target Target, factory OverlayFactory, opts Options) (*Manager, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	if factory == nil {
		return nil, ErrNilFactory
	}
	if opts.Thickness <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidThickness, opts.Thickness)
	}

	return &Manager{
		target:  target,
		factory: factory,
		opts:    opts,
		log:     logger.Get().Component("shadow"),
		caches:  imagecache.NewManager(),
		masks:   gradientMasks(opts.Thickness),
		active:  true,
	}, nil
}

// Options returns the current settings.
func (m *Manager) Options() Options { return m.opts }

// Active reports whether the active colour is in use.
func (m *Manager) Active() bool { return m.active }

// Visible reports whether the overlays are shown.
func (m *Manager) Visible() bool { return m.visible }

// Created reports whether the overlays exist.
func (m *Manager) Created() bool { return m.overlays[Left] != nil }

// HandleCreated creates the four overlays and positions them.
func (m *Manager) HandleCreated() error {
	if m.closed || m.Created() {
		return nil
	}

	var created [4]Overlay
	for _, side := range Sides {
		o, err := m.factory.CreateOverlay(side)
		if err != nil {
			for _, c := range created {
				if c != nil {
					c.Destroy()
				}
			}
			m.log.WithError(err).Errorf("Failed to create %s shadow overlay", side)
			return fmt.Errorf("create %s overlay: %w", side, err)
		}
		created[side] = o
	}

	m.overlays = created
	m.rendered = [4]models.Size{}
	m.active = m.target.Geometry().Active
	m.stale = true
	m.Sync()
	return nil
}

// HandleDestroyed tears the overlays down.
func (m *Manager) HandleDestroyed() {
	m.teardown()
}

// Close tears the overlays down and releases the tint caches. The manager
// cannot be reused.
func (m *Manager) Close() {
	m.teardown()
	m.caches.Close()
	m.closed = true
}

func (m *Manager) teardown() {
	if !m.Created() {
		return
	}
	for i, o := range m.overlays {
		o.Destroy()
		m.overlays[i] = nil
	}
	m.visible = false
	m.rendered = [4]models.Size{}
	m.log.Debug("Shadow overlays destroyed")
}

// Observe follows position and activation changes of the main window.
func (m *Manager) Observe(msg *chrome.Message) {
	switch msg.Kind {
	case chrome.MsgWindowPosChanged:
		m.Sync()
	case chrome.MsgNCActivate:
		m.SetActive(msg.Active)
	}
}

// SetActive switches between the active and inactive tint.
func (m *Manager) SetActive(active bool) {
	if active == m.active {
		return
	}
	m.active = active
	m.stale = true
	m.Sync()
}

// SetOptions changes thickness and colours.
func (m *Manager) SetOptions(opts Options) error {
	if opts.Thickness <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThickness, opts.Thickness)
	}
	if opts.Thickness != m.opts.Thickness {
		m.masks = gradientMasks(opts.Thickness)
	}
	m.opts = opts
	m.stale = true
	m.Sync()
	return nil
}

func (m *Manager) color() color.NRGBA {
	if m.active {
		return m.opts.Color
	}
	return m.opts.InactiveColor
}

// Sync repositions the overlays to the window's current bounds. Overlays
// are hidden while the window is minimized or maximized.
func (m *Manager) Sync() {
	if !m.Created() {
		return
	}

	g := m.target.Geometry()
	if g.Minimized() || g.Maximized() || g.Bounds.IsEmpty() {
		m.hide()
		return
	}

	t := m.opts.Thickness
	rects := Rects(g.Bounds, t)
	cache := m.caches.For(m.color())
	for _, side := range Sides {
		r := rects[side]
		size := r.Size()
		if m.stale || size != m.rendered[side] {
			m.overlays[side].SetImage(stretch(side, cache.Get(m.masks[side]), t, size))
			m.rendered[side] = size
		}
		m.overlays[side].SetBounds(r)
	}
	m.stale = false

	if !m.visible {
		for _, o := range m.overlays {
			o.Show()
		}
		m.visible = true
	}
}

func (m *Manager) hide() {
	if !m.visible {
		return
	}
	for _, o := range m.overlays {
		o.Hide()
	}
	m.visible = false
}

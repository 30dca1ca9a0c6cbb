package chrome

import (
	"image"
	"image/draw"
	"testing"

	"github.com/NaveLIL/erez-chrome/models"
)

type fakeSurface struct {
	canvas   *image.RGBA
	excluded []models.Rect
	released bool
}

func (s *fakeSurface) Canvas() draw.Image        { return s.canvas }
func (s *fakeSurface) ExcludeClip(r models.Rect) { s.excluded = append(s.excluded, r) }
func (s *fakeSurface) Release() error {
	s.released = true
	return nil
}

type fakeHost struct {
	created   bool
	geom      Geometry
	geomReads int
	sysBorder models.BorderThickness

	text         string
	icon         image.Image
	controlBox   bool
	minBox       bool
	maxBox       bool
	closeEnabled bool

	regions       []models.Region
	states        []models.WindowState
	closes        int
	captures      int
	releases      int
	invalidates   int
	recalcs       int
	textRendering []bool

	surfaceErr map[SurfaceKind]error
	acquired   []SurfaceKind
	surfaces   []*fakeSurface
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		created: true,
		geom: Geometry{
			Bounds: models.RectXYWH(100, 100, 800, 600),
			State:  models.WindowNormal,
			Active: true,
		},
		sysBorder:    models.UniformBorder(8),
		text:         "Untitled",
		controlBox:   true,
		minBox:       true,
		maxBox:       true,
		closeEnabled: true,
		surfaceErr:   make(map[SurfaceKind]error),
	}
}

func (h *fakeHost) HandleCreated() bool                       { return h.created }
func (h *fakeHost) SystemFrameBorder() models.BorderThickness { return h.sysBorder }
func (h *fakeHost) Text() string                              { return h.text }
func (h *fakeHost) Icon() image.Image                         { return h.icon }
func (h *fakeHost) ControlBox() bool                          { return h.controlBox }
func (h *fakeHost) MinimizeBox() bool                         { return h.minBox }
func (h *fakeHost) MaximizeBox() bool                         { return h.maxBox }
func (h *fakeHost) CloseEnabled() bool                        { return h.created && h.closeEnabled }
func (h *fakeHost) SetRegion(r models.Region)                 { h.regions = append(h.regions, r) }
func (h *fakeHost) SetWindowState(s models.WindowState)       { h.states = append(h.states, s) }
func (h *fakeHost) Close()                                    { h.closes++ }
func (h *fakeHost) SetCapture()                               { h.captures++ }
func (h *fakeHost) ReleaseCapture()                           { h.releases++ }
func (h *fakeHost) InvalidateNonClient()                      { h.invalidates++ }
func (h *fakeHost) RecalculateFrame()                         { h.recalcs++ }
func (h *fakeHost) SetDefaultTextRendering(enabled bool) {
	h.textRendering = append(h.textRendering, enabled)
}

func (h *fakeHost) Geometry() Geometry {
	h.geomReads++
	return h.geom
}

func (h *fakeHost) AcquireSurface(kind SurfaceKind) (Surface, error) {
	h.acquired = append(h.acquired, kind)
	if err := h.surfaceErr[kind]; err != nil {
		return nil, err
	}
	size := h.geom.Size()
	s := &fakeSurface{canvas: image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))}
	h.surfaces = append(h.surfaces, s)
	return s, nil
}

func (h *fakeHost) lastSurface() *fakeSurface {
	if len(h.surfaces) == 0 {
		return nil
	}
	return h.surfaces[len(h.surfaces)-1]
}

func testOptions() Options {
	return Options{
		CaptionHeight:       30,
		Border:              models.UniformBorder(5),
		CornerRadius:        models.UniformCornerRadius(8),
		AdjustWhenMaximized: true,
		DoubleBuffered:      true,
		ButtonSize:          models.Size{Width: 46},
		Theme:               DefaultTheme(),
	}
}

func newTestManager(t *testing.T, host *fakeHost) *ChromeManager {
	t.Helper()
	cm, err := NewChromeManager(host, testOptions())
	if err != nil {
		t.Fatalf("NewChromeManager failed: %v", err)
	}
	if err := cm.HandleCreated(); err != nil {
		t.Fatalf("HandleCreated failed: %v", err)
	}
	return cm
}

// screen converts a window-local point of host into screen coordinates.
func screen(h *fakeHost, x, y int) models.Point {
	return models.Point{X: h.geom.Bounds.Left + x, Y: h.geom.Bounds.Top + y}
}

func send(cm *ChromeManager, kind MessageKind, p models.Point) *Message {
	m := &Message{Kind: kind, Point: p}
	cm.Dispatch(m)
	return m
}

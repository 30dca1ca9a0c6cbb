package shadow

import (
	"errors"
	"image"
	"testing"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/models"
)

type fakeTarget struct {
	geom chrome.Geometry
}

func (t *fakeTarget) Geometry() chrome.Geometry { return t.geom }

type fakeOverlay struct {
	side      Side
	bounds    models.Rect
	image     *image.RGBA
	images    int
	shown     bool
	destroyed bool
}

func (o *fakeOverlay) SetBounds(r models.Rect) { o.bounds = r }
func (o *fakeOverlay) SetImage(img *image.RGBA) {
	o.image = img
	o.images++
}
func (o *fakeOverlay) Show()    { o.shown = true }
func (o *fakeOverlay) Hide()    { o.shown = false }
func (o *fakeOverlay) Destroy() { o.destroyed = true }

type fakeFactory struct {
	overlays []*fakeOverlay
	failOn   Side
	fail     bool
}

func (f *fakeFactory) CreateOverlay(side Side) (Overlay, error) {
	if f.fail && side == f.failOn {
		return nil, errors.New("no window")
	}
	o := &fakeOverlay{side: side}
	f.overlays = append(f.overlays, o)
	return o, nil
}

func newTarget() *fakeTarget {
	return &fakeTarget{geom: chrome.Geometry{
		Bounds: models.RectXYWH(100, 100, 800, 600),
		State:  models.WindowNormal,
		Active: true,
	}}
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Thickness = 10
	return opts
}

func newTestManager(t *testing.T) (*Manager, *fakeTarget, *fakeFactory) {
	t.Helper()
	target := newTarget()
	factory := &fakeFactory{}
	m, err := NewManager(target, factory, testOptions())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.HandleCreated(); err != nil {
		t.Fatalf("HandleCreated failed: %v", err)
	}
	return m, target, factory
}

func TestNewManagerErrors(t *testing.T) {
	if _, err := NewManager(nil, &fakeFactory{}, testOptions()); !errors.Is(err, ErrNilTarget) {
		t.Errorf("Expected ErrNilTarget, got %v", err)
	}
	if _, err := NewManager(newTarget(), nil, testOptions()); !errors.Is(err, ErrNilFactory) {
		t.Errorf("Expected ErrNilFactory, got %v", err)
	}
	opts := testOptions()
	opts.Thickness = 0
	if _, err := NewManager(newTarget(), &fakeFactory{}, opts); !errors.Is(err, ErrInvalidThickness) {
		t.Errorf("Expected ErrInvalidThickness, got %v", err)
	}
}

func TestRects(t *testing.T) {
	r := Rects(models.Rect{Left: 100, Top: 100, Right: 900, Bottom: 700}, 10)

	want := [4]models.Rect{
		Left:   {Left: 90, Top: 90, Right: 100, Bottom: 710},
		Top:    {Left: 100, Top: 90, Right: 900, Bottom: 100},
		Right:  {Left: 900, Top: 90, Right: 910, Bottom: 710},
		Bottom: {Left: 100, Top: 700, Right: 900, Bottom: 710},
	}
	for _, side := range Sides {
		if r[side] != want[side] {
			t.Errorf("%s: Expected %v, got %v", side, want[side], r[side])
		}
	}
}

func TestHandleCreatedPositionsOverlays(t *testing.T) {
	m, target, factory := newTestManager(t)

	if len(factory.overlays) != 4 {
		t.Fatalf("Expected 4 overlays, got %d", len(factory.overlays))
	}
	if !m.Visible() {
		t.Error("Expected overlays visible")
	}

	rects := Rects(target.geom.Bounds, 10)
	for _, o := range factory.overlays {
		if !o.shown {
			t.Errorf("%s: Expected overlay shown", o.side)
		}
		if o.bounds != rects[o.side] {
			t.Errorf("%s: Expected %v, got %v", o.side, rects[o.side], o.bounds)
		}
		if o.image == nil || o.image.Bounds().Size() != image.Pt(o.bounds.Width(), o.bounds.Height()) {
			t.Errorf("%s: Expected image sized to overlay", o.side)
		}
	}
}

func TestMoveKeepsImages(t *testing.T) {
	m, target, factory := newTestManager(t)

	target.geom.Bounds = target.geom.Bounds.Offset(50, 20)
	m.Observe(&chrome.Message{Kind: chrome.MsgWindowPosChanged})

	for _, o := range factory.overlays {
		if o.images != 1 {
			t.Errorf("%s: Expected image reused on move, got %d renders", o.side, o.images)
		}
	}
	if got := factory.overlays[Left].bounds.Left; got != 140 {
		t.Errorf("Expected left overlay at 140, got %d", got)
	}

	target.geom.Bounds = models.RectXYWH(150, 120, 900, 600)
	m.Sync()
	if factory.overlays[Top].images != 2 || factory.overlays[Left].images != 1 {
		t.Error("Expected only resized sides to re-render")
	}
}

func TestActivationRetints(t *testing.T) {
	m, _, factory := newTestManager(t)
	top := factory.overlays[Top]
	active := top.image.RGBAAt(400, 9)

	m.Observe(&chrome.Message{Kind: chrome.MsgNCActivate, Active: false})
	if m.Active() {
		t.Error("Expected inactive shadow")
	}
	if top.images != 2 {
		t.Errorf("Expected re-render on deactivate, got %d", top.images)
	}
	inactive := top.image.RGBAAt(400, 9)
	if active == inactive {
		t.Errorf("Expected different tint, got %v for both", active)
	}
	if inactive.R != inactive.B {
		t.Errorf("Expected gray inactive tint, got %v", inactive)
	}

	m.SetActive(false)
	if top.images != 2 {
		t.Error("Expected no re-render without a change")
	}
}

func TestHiddenWhenMaximizedOrMinimized(t *testing.T) {
	m, target, factory := newTestManager(t)

	target.geom.State = models.WindowMaximized
	m.Sync()
	if m.Visible() || factory.overlays[Left].shown {
		t.Error("Expected overlays hidden while maximized")
	}

	target.geom.State = models.WindowNormal
	m.Sync()
	if !m.Visible() || !factory.overlays[Left].shown {
		t.Error("Expected overlays shown after restore")
	}

	target.geom.State = models.WindowMinimized
	m.Sync()
	if m.Visible() {
		t.Error("Expected overlays hidden while minimized")
	}
}

func TestSingleTeardownPath(t *testing.T) {
	m, _, factory := newTestManager(t)

	m.HandleDestroyed()
	for _, o := range factory.overlays {
		if !o.destroyed {
			t.Errorf("%s: Expected overlay destroyed", o.side)
		}
	}
	if m.Created() || m.Visible() {
		t.Error("Expected manager without overlays")
	}

	if err := m.HandleCreated(); err != nil {
		t.Fatalf("HandleCreated failed: %v", err)
	}
	if len(factory.overlays) != 8 {
		t.Errorf("Expected overlays recreated, got %d", len(factory.overlays))
	}

	m.Close()
	m.Close()
	for _, o := range factory.overlays[4:] {
		if !o.destroyed {
			t.Errorf("%s: Expected overlay destroyed on close", o.side)
		}
	}
	if err := m.HandleCreated(); err != nil || m.Created() {
		t.Error("Expected closed manager to stay torn down")
	}
}

func TestCreateFailureDestroysPartial(t *testing.T) {
	factory := &fakeFactory{fail: true, failOn: Right}
	m, err := NewManager(newTarget(), factory, testOptions())
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if err := m.HandleCreated(); err == nil {
		t.Fatal("Expected creation error")
	}
	if len(factory.overlays) != 2 {
		t.Fatalf("Expected 2 overlays before failure, got %d", len(factory.overlays))
	}
	for _, o := range factory.overlays {
		if !o.destroyed {
			t.Errorf("%s: Expected partial overlay destroyed", o.side)
		}
	}
	if m.Created() {
		t.Error("Expected no overlays after failure")
	}
}

func TestSetOptions(t *testing.T) {
	m, target, factory := newTestManager(t)

	opts := testOptions()
	opts.Thickness = 16
	if err := m.SetOptions(opts); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}
	want := Rects(target.geom.Bounds, 16)[Left]
	if got := factory.overlays[Left].bounds; got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}

	opts.Thickness = -1
	if err := m.SetOptions(opts); !errors.Is(err, ErrInvalidThickness) {
		t.Errorf("Expected ErrInvalidThickness, got %v", err)
	}
}

func TestGradientMasks(t *testing.T) {
	masks := gradientMasks(10)

	if masks[Left].Bounds().Size() != image.Pt(10, 30) {
		t.Errorf("Expected left mask 10x30, got %v", masks[Left].Bounds().Size())
	}
	if masks[Top].Bounds().Size() != image.Pt(10, 10) {
		t.Errorf("Expected top mask 10x10, got %v", masks[Top].Bounds().Size())
	}

	top := masks[Top]
	near, far := top.RGBAAt(5, 9).A, top.RGBAAt(5, 0).A
	if near <= far {
		t.Errorf("Expected shadow to fade away from the window, got near=%d far=%d", near, far)
	}
}

package chrome

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/NaveLIL/erez-chrome/models"
)

func TestNewFormChromeNilHost(t *testing.T) {
	if _, err := NewFormChrome(nil, testOptions()); !errors.Is(err, ErrNilHost) {
		t.Errorf("Expected ErrNilHost, got %v", err)
	}
}

func TestRegionIdempotent(t *testing.T) {
	host := newFakeHost()
	fc, err := NewFormChrome(host, testOptions())
	if err != nil {
		t.Fatalf("NewFormChrome failed: %v", err)
	}

	if !fc.UpdateRegion() {
		t.Fatal("Expected first update to assign a region")
	}
	if fc.UpdateRegion() {
		t.Error("Expected second update to be a no-op")
	}
	if len(host.regions) != 1 {
		t.Errorf("Expected 1 region assignment, got %d", len(host.regions))
	}
	if fc.RegionUpdates() != 1 {
		t.Errorf("Expected 1 update, got %d", fc.RegionUpdates())
	}

	host.geom.Bounds = models.RectXYWH(100, 100, 640, 480)
	if !fc.UpdateRegion() {
		t.Error("Expected update after resize")
	}
	if fc.UpdateRegion() {
		t.Error("Expected no-op after resize settled")
	}
}

func TestZeroCornerRadiusClearsRegion(t *testing.T) {
	host := newFakeHost()
	fc, err := NewFormChrome(host, testOptions())
	if err != nil {
		t.Fatalf("NewFormChrome failed: %v", err)
	}
	fc.UpdateRegion()

	if err := fc.SetCornerRadius(models.CornerRadius{}); err != nil {
		t.Fatalf("SetCornerRadius failed: %v", err)
	}
	if len(host.regions) != 2 {
		t.Fatalf("Expected 2 region assignments, got %d", len(host.regions))
	}
	if r := host.regions[1]; r.Kind != models.RegionDefault {
		t.Errorf("Expected default region, got kind %d", r.Kind)
	}

	if err := fc.SetCornerRadius(models.CornerRadius{TopLeft: -1}); !errors.Is(err, models.ErrInvalidCornerRadius) {
		t.Errorf("Expected ErrInvalidCornerRadius, got %v", err)
	}
}

func TestMixedCornerRadiusPath(t *testing.T) {
	host := newFakeHost()
	opts := testOptions()
	opts.CornerRadius = models.CornerRadius{TopLeft: 10, TopRight: 10}
	fc, err := NewFormChrome(host, opts)
	if err != nil {
		t.Fatalf("NewFormChrome failed: %v", err)
	}
	fc.UpdateRegion()

	r := fc.Region()
	if r.Kind != models.RegionPath {
		t.Fatalf("Expected path region, got kind %d", r.Kind)
	}
	last := r.Path[len(r.Path)-1]
	if last != (models.PointF{X: 0, Y: 600}) {
		t.Errorf("Expected square bottom-left corner, got %v", last)
	}
}

func TestRestoreFromMaximizedRebuildsPath(t *testing.T) {
	host := newFakeHost()
	fc, err := NewFormChrome(host, testOptions())
	if err != nil {
		t.Fatalf("NewFormChrome failed: %v", err)
	}
	fc.UpdateRegion()

	host.geom.State = models.WindowMaximized
	fc.UpdateRegion()
	if fc.UpdateRegion() {
		t.Error("Expected maximized region to be cached")
	}

	host.geom.State = models.WindowNormal
	if !fc.UpdateRegion() {
		t.Fatal("Expected restore to rebuild the region")
	}
	if fc.Region().Kind != models.RegionPath {
		t.Errorf("Expected rounded path after restore, got kind %d", fc.Region().Kind)
	}
	if len(host.regions) != 3 {
		t.Errorf("Expected 3 region assignments, got %d", len(host.regions))
	}

	host.geom.State = models.WindowMinimized
	if fc.UpdateRegion() {
		t.Error("Expected no region update while minimized")
	}
}

func TestFormChromeSetters(t *testing.T) {
	host := newFakeHost()
	fc, err := NewFormChrome(host, testOptions())
	if err != nil {
		t.Fatalf("NewFormChrome failed: %v", err)
	}

	if err := fc.SetCaptionHeight(-1); !errors.Is(err, ErrNegativeValue) {
		t.Errorf("Expected ErrNegativeValue, got %v", err)
	}
	if err := fc.SetCaptionHeight(44); err != nil {
		t.Fatalf("SetCaptionHeight failed: %v", err)
	}
	if host.recalcs != 1 || host.invalidates != 1 {
		t.Errorf("Expected frame recalculation and repaint, got %d and %d", host.recalcs, host.invalidates)
	}

	if err := fc.SetBorder(models.BorderThickness{Top: -1}); !errors.Is(err, models.ErrNegativeThickness) {
		t.Errorf("Expected ErrNegativeThickness, got %v", err)
	}
	if err := fc.SetBorder(models.UniformBorder(3)); err != nil {
		t.Fatalf("SetBorder failed: %v", err)
	}

	client := fc.ClientRectFor(host.Geometry())
	want := models.Rect{Left: 3, Top: 47, Right: 797, Bottom: 597}
	if client != want {
		t.Errorf("Expected client %v, got %v", want, client)
	}

	host.created = false
	if err := fc.SetCaptionHeight(20); err != nil {
		t.Fatal(err)
	}
	if host.recalcs != 2 {
		t.Errorf("Expected no recalculation without a handle, got %d", host.recalcs)
	}
}

func TestClientRectNeverInverted(t *testing.T) {
	host := newFakeHost()
	host.geom.Bounds = models.RectXYWH(0, 0, 20, 20)
	fc, err := NewFormChrome(host, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	client := fc.ClientRectFor(host.Geometry())
	if client.Width() < 0 || client.Height() < 0 {
		t.Errorf("Expected non-negative client size, got %v", client)
	}
}

func TestListenerUnsubscribe(t *testing.T) {
	host := newFakeHost()
	fc, err := NewFormChrome(host, testOptions())
	if err != nil {
		t.Fatal(err)
	}

	var calls []string
	offA := fc.OnSystemCommand(func(*SysCommandEvent) { calls = append(calls, "a") })
	fc.OnSystemCommand(func(*SysCommandEvent) { calls = append(calls, "b") })

	fc.sysCommand.emit(&SysCommandEvent{})
	offA()
	offA()
	fc.sysCommand.emit(&SysCommandEvent{})

	want := []string{"a", "b", "b"}
	if len(calls) != len(want) {
		t.Fatalf("Expected %v, got %v", want, calls)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Errorf("Expected %v, got %v", want, calls)
			break
		}
	}
	if fc.sysCommand.len() != 1 {
		t.Errorf("Expected 1 listener, got %d", fc.sysCommand.len())
	}
}

func TestClipCanvas(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	c := newClipCanvas(dst, models.Rect{Left: 2, Top: 2, Right: 8, Bottom: 8})

	c.Set(1, 1, color.White)
	c.Set(5, 5, color.White)
	if dst.RGBAAt(1, 1).A != 0xFF {
		t.Error("Expected pixel outside exclusion to be written")
	}
	if dst.RGBAAt(5, 5).A != 0 {
		t.Error("Expected pixel inside exclusion to be dropped")
	}
}

func TestTruncate(t *testing.T) {
	face := basicfont.Face7x13
	if got := truncate(face, "Hello", fixed.I(100)); got != "Hello" {
		t.Errorf("Expected Hello, got %q", got)
	}
	if got := truncate(face, "Hello world", fixed.I(42)); got != "Hel..." {
		t.Errorf("Expected Hel..., got %q", got)
	}
	if got := truncate(face, "Hello world", fixed.I(10)); got != "" {
		t.Errorf("Expected empty title, got %q", got)
	}
}

func TestRendererUsesImageCache(t *testing.T) {
	host := newFakeHost()
	cm := newTestManager(t, host)

	send(cm, MsgNCPaint, models.Point{})
	send(cm, MsgNCPaint, models.Point{})

	ic := cm.Caches().For(DefaultTheme().Glyph)
	if ic.Misses() != 3 {
		t.Errorf("Expected 3 tinted glyphs, got %d misses", ic.Misses())
	}
}

func TestFrameStrips(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)
	strips := FrameStrips(bounds, image.Rect(5, 30, 95, 75))

	want := []image.Rectangle{
		image.Rect(0, 0, 100, 30),
		image.Rect(0, 75, 100, 80),
		image.Rect(0, 30, 5, 75),
		image.Rect(95, 30, 100, 75),
	}
	if len(strips) != len(want) {
		t.Fatalf("Expected %d strips, got %v", len(want), strips)
	}
	area := 0
	for i, r := range want {
		if strips[i] != r {
			t.Errorf("Strip %d: Expected %v, got %v", i, r, strips[i])
		}
		area += strips[i].Dx() * strips[i].Dy()
	}
	if area != 100*80-90*45 {
		t.Errorf("Expected strips to cover the frame only, got area %d", area)
	}

	if got := FrameStrips(bounds, image.Rectangle{}); len(got) != 1 || got[0] != bounds {
		t.Errorf("Expected whole bounds without a client, got %v", got)
	}
}

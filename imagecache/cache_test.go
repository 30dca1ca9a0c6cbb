package imagecache

import (
	"image"
	"image/color"
	"testing"
)

func testMask() *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	mask.SetAlpha(1, 1, color.Alpha{A: 0xFF})
	mask.SetAlpha(2, 2, color.Alpha{A: 0x80})
	return mask
}

func TestTint(t *testing.T) {
	red := color.NRGBA{R: 0xFF, A: 0xFF}
	out := Tint(testMask(), red)

	if got := out.RGBAAt(1, 1); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Errorf("Expected opaque red, got %+v", got)
	}
	if got := out.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("Expected transparent pixel, got %+v", got)
	}
	half := out.RGBAAt(2, 2)
	if half.A != 0x80 || half.R != 0x80 || half.G != 0 {
		t.Errorf("Expected half-covered red, got %+v", half)
	}
}

func TestTintGrayMask(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.SetGray(0, 0, color.Gray{Y: 0xFF})

	out := Tint(gray, color.NRGBA{B: 0xFF, A: 0xFF})
	if got := out.RGBAAt(0, 0); got != (color.RGBA{B: 0xFF, A: 0xFF}) {
		t.Errorf("Expected opaque blue, got %+v", got)
	}
}

func TestImageCacheHit(t *testing.T) {
	ic := New(color.NRGBA{G: 0xFF, A: 0xFF})
	mask := testMask()

	first := ic.Get(mask)
	second := ic.Get(testMask())

	if first != second {
		t.Error("Expected identical masks to share a cached bitmap")
	}
	if ic.Misses() != 1 {
		t.Errorf("Expected 1 miss, got %d", ic.Misses())
	}

	other := image.NewAlpha(image.Rect(0, 0, 4, 4))
	ic.Get(other)
	if ic.Misses() != 2 {
		t.Errorf("Expected 2 misses, got %d", ic.Misses())
	}
}

func TestImageCacheClose(t *testing.T) {
	ic := New(color.NRGBA{A: 0xFF})
	ic.Get(testMask())
	ic.Close()

	if img := ic.Get(testMask()); img == nil {
		t.Error("Expected closed cache to still tint")
	}
	if ic.Misses() != 1 {
		t.Errorf("Expected closed cache not to count misses, got %d", ic.Misses())
	}
}

func TestManager(t *testing.T) {
	m := NewManager()
	a := color.NRGBA{R: 1, A: 0xFF}
	b := color.NRGBA{R: 2, A: 0xFF}

	if m.For(a) != m.For(a) {
		t.Error("Expected the same cache for the same colour")
	}
	if m.For(a) == m.For(b) {
		t.Error("Expected different caches for different colours")
	}
	if m.Len() != 2 {
		t.Errorf("Expected 2 caches, got %d", m.Len())
	}

	m.Close()
	if m.Len() != 0 {
		t.Errorf("Expected 0 caches after Close, got %d", m.Len())
	}
}

func TestFingerprint(t *testing.T) {
	if Fingerprint(testMask()) != Fingerprint(testMask()) {
		t.Error("Expected equal masks to hash equally")
	}
	if Fingerprint(testMask()) == Fingerprint(image.NewAlpha(image.Rect(0, 0, 4, 4))) {
		t.Error("Expected different masks to hash differently")
	}
}

package models

import (
	"errors"
	"testing"
)

func TestCornerRadiusUniformRoundTrip(t *testing.T) {
	cr := UniformCornerRadius(8)

	s := cr.Format(InvariantCulture)
	if s != "8" {
		t.Errorf("Expected \"8\", got %q", s)
	}

	parsed, err := ParseCornerRadius(s, InvariantCulture)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if parsed != (CornerRadius{8, 8, 8, 8}) {
		t.Errorf("Expected CornerRadius(8,8,8,8), got %+v", parsed)
	}
}

func TestCornerRadiusFourTokenRoundTrip(t *testing.T) {
	cultures := []Culture{InvariantCulture, CultureFor("de-DE")}
	cr := CornerRadius{TopLeft: 1, TopRight: 2.5, BottomLeft: 3, BottomRight: 4}

	for _, c := range cultures {
		s := cr.Format(c)
		parsed, err := ParseCornerRadius(s, c)
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", s, err)
		}
		if parsed != cr {
			t.Errorf("Expected %+v, got %+v (from %q)", cr, parsed, s)
		}
	}
}

func TestCultureFor(t *testing.T) {
	tests := []struct {
		locale string
		want   Culture
	}{
		{"", InvariantCulture},
		{"en-US", InvariantCulture},
		{"de-DE", Culture{ListSeparator: ";", DecimalSeparator: ","}},
		{"fr", Culture{ListSeparator: ";", DecimalSeparator: ","}},
		{"not a locale!", InvariantCulture},
	}

	for _, tt := range tests {
		if got := CultureFor(tt.locale); got != tt.want {
			t.Errorf("CultureFor(%q): expected %+v, got %+v", tt.locale, tt.want, got)
		}
	}

	if s := (CornerRadius{1.5, 2, 3, 4}).Format(CultureFor("de")); s != "1,5; 2; 3; 4" {
		t.Errorf("Expected \"1,5; 2; 3; 4\", got %q", s)
	}
}

func TestParseCornerRadiusErrors(t *testing.T) {
	inputs := []string{"", "1,2", "1,2,3", "a", "-1", "1,2,3,4,5"}
	for _, in := range inputs {
		if _, err := ParseCornerRadius(in, InvariantCulture); !errors.Is(err, ErrInvalidCornerRadius) {
			t.Errorf("Expected ErrInvalidCornerRadius for %q, got %v", in, err)
		}
	}
}

func TestCornerRadiusUniform(t *testing.T) {
	if _, ok := (CornerRadius{1, 1, 1, 2}).Uniform(); ok {
		t.Error("Expected mixed radius to have no uniform value")
	}
	if v, ok := UniformCornerRadius(4).Uniform(); !ok || v != 4 {
		t.Errorf("Expected uniform 4, got %v (%v)", v, ok)
	}
	if !(CornerRadius{}).IsRectangular() {
		t.Error("Expected zero radius to be rectangular")
	}
	if (CornerRadius{BottomRight: 1}).IsRectangular() {
		t.Error("Expected one rounded corner to not be rectangular")
	}
}

func TestBorderThickness(t *testing.T) {
	b := BorderThickness{Left: 1, Top: 2, Right: 3, Bottom: 4}
	if b.Horizontal() != 4 {
		t.Errorf("Expected horizontal 4, got %d", b.Horizontal())
	}
	if b.Vertical() != 6 {
		t.Errorf("Expected vertical 6, got %d", b.Vertical())
	}
	if err := b.Validate(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := (BorderThickness{Left: -1}).Validate(); !errors.Is(err, ErrNegativeThickness) {
		t.Errorf("Expected ErrNegativeThickness, got %v", err)
	}

	r := RectXYWH(0, 0, 100, 50).Inset(b)
	if r != (Rect{Left: 1, Top: 2, Right: 97, Bottom: 46}) {
		t.Errorf("Unexpected inset rect %v", r)
	}
}

func TestRoundedPathCorners(t *testing.T) {
	path := RoundedPath(100, 60, CornerRadius{TopLeft: 10})

	first := path[0]
	if first.X != 0 || first.Y != 10 {
		t.Errorf("Expected path to start at (0,10), got %+v", first)
	}

	// square corners contribute exactly one vertex each
	last3 := path[len(path)-3:]
	want := []PointF{{100, 0}, {100, 60}, {0, 60}}
	for i, p := range last3 {
		if p != want[i] {
			t.Errorf("Expected vertex %+v, got %+v", want[i], p)
		}
	}
}

func TestRegionMask(t *testing.T) {
	size := Size{Width: 40, Height: 40}

	rounded := Region{Kind: RegionPath, Path: RoundedPath(40, 40, UniformCornerRadius(12))}
	mask := rounded.Mask(size)
	if a := mask.AlphaAt(0, 0).A; a != 0 {
		t.Errorf("Expected transparent corner, got alpha %d", a)
	}
	if a := mask.AlphaAt(20, 20).A; a != 0xFF {
		t.Errorf("Expected opaque centre, got alpha %d", a)
	}

	rect := Region{Kind: RegionRect, Rect: Rect{Left: 5, Top: 5, Right: 35, Bottom: 35}}
	mask = rect.Mask(size)
	if mask.AlphaAt(2, 2).A != 0 || mask.AlphaAt(5, 5).A != 0xFF {
		t.Error("Expected rect mask to cover only the inset area")
	}

	mask = Region{}.Mask(size)
	if mask.AlphaAt(0, 0).A != 0xFF {
		t.Error("Expected default region to cover the whole window")
	}
}

func TestSysCommandNormalize(t *testing.T) {
	if got := SysCommand(0xF012).Normalize(); got != SysCommandMove {
		t.Errorf("Expected SysCommandMove, got %#x", uint32(got))
	}
}

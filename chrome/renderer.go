package chrome

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/NaveLIL/erez-chrome/imagecache"
	"github.com/NaveLIL/erez-chrome/models"
)

// Theme holds the colours of the default renderer.
type Theme struct {
	Caption        color.NRGBA
	Border         color.NRGBA
	InactiveBorder color.NRGBA
	Text           color.NRGBA
	InactiveText   color.NRGBA
	Glyph          color.NRGBA
	DisabledGlyph  color.NRGBA
	Hover          color.NRGBA
	Pressed        color.NRGBA
	CloseHover     color.NRGBA
	ClosePressed   color.NRGBA
}

// DefaultTheme is a dark caption with an accent border.
func DefaultTheme() Theme {
	return Theme{
		Caption:        color.NRGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
		Border:         color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF},
		InactiveBorder: color.NRGBA{R: 0x3C, G: 0x3C, B: 0x3C, A: 0xFF},
		Text:           color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		InactiveText:   color.NRGBA{R: 0x8A, G: 0x8A, B: 0x8A, A: 0xFF},
		Glyph:          color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		DisabledGlyph:  color.NRGBA{R: 0x5A, G: 0x5A, B: 0x5A, A: 0xFF},
		Hover:          color.NRGBA{R: 0x3A, G: 0x3A, B: 0x3A, A: 0xFF},
		Pressed:        color.NRGBA{R: 0x50, G: 0x50, B: 0x50, A: 0xFF},
		CloseHover:     color.NRGBA{R: 0xE8, G: 0x11, B: 0x23, A: 0xFF},
		ClosePressed:   color.NRGBA{R: 0xF1, G: 0x70, B: 0x7A, A: 0xFF},
	}
}

const (
	titlePadding = 8
	ellipsis     = "..."
)

// Renderer draws the caption, border, icon, title and caption buttons.
type Renderer struct {
	fc      *FormChrome
	buttons *ButtonController
	caches  *imagecache.Manager
	theme   Theme
	face    font.Face
}

// NewRenderer creates the default renderer. Glyph bitmaps are tinted
// through caches.
func NewRenderer(fc *FormChrome, buttons *ButtonController, caches *imagecache.Manager, theme Theme) *Renderer {
	return &Renderer{
		fc:      fc,
		buttons: buttons,
		caches:  caches,
		theme:   theme,
		face:    basicfont.Face7x13,
	}
}

// Theme returns the current colours.
func (r *Renderer) Theme() Theme { return r.theme }

// SetTheme replaces the colours. The caller requests the repaint.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// Paint draws the non-client area for e.
func (r *Renderer) Paint(e *PaintEvent) {
	g := e.Geometry
	dst := e.Canvas
	bounds := rect(e.Bounds)
	client := rect(e.Client)

	fill := image.NewUniform(r.theme.Caption)
	for _, strip := range FrameStrips(bounds, client) {
		draw.Draw(dst, strip, fill, image.Point{}, draw.Src)
	}

	if !e.Maximized {
		border := r.theme.InactiveBorder
		if e.Active {
			border = r.theme.Border
		}
		outline(dst, bounds, border)
	}

	states := r.buttons.Layout(g)
	caption := r.fc.CaptionRectFor(g)
	textLeft := caption.Left + titlePadding

	if icon := r.fc.Host().Icon(); icon != nil {
		if ir, ok := r.fc.IconRectFor(g); ok {
			pad := ir.Height() / 4
			target := rect(ir).Inset(pad)
			draw.BiLinear.Scale(dst, target, icon, icon.Bounds(), draw.Over, nil)
			textLeft = ir.Right
		}
	}

	r.drawTitle(dst, r.fc.Host().Text(), textLeft, states.Left-titlePadding, caption, e.Active)

	for _, b := range states.Buttons {
		r.drawButton(dst, b, g.Maximized())
	}
}

func (r *Renderer) drawTitle(dst draw.Image, text string, left, right int, caption models.Rect, active bool) {
	if text == "" || right <= left || caption.Height() <= 0 {
		return
	}
	text = truncate(r.face, text, fixed.I(right-left))
	if text == "" {
		return
	}

	col := r.theme.InactiveText
	if active {
		col = r.theme.Text
	}
	m := r.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	baseline := caption.Top + (caption.Height()+ascent-descent)/2

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: r.face,
		Dot:  fixed.P(left, baseline),
	}
	d.DrawString(text)
}

func (r *Renderer) drawButton(dst draw.Image, b ButtonLayout, maximized bool) {
	bounds := rect(b.Bounds)
	isClose := b.Identity == models.ButtonClose

	var bg *color.NRGBA
	switch b.State {
	case models.ButtonHover:
		bg = &r.theme.Hover
		if isClose {
			bg = &r.theme.CloseHover
		}
	case models.ButtonPressed:
		bg = &r.theme.Pressed
		if isClose {
			bg = &r.theme.ClosePressed
		}
	}
	if bg != nil {
		draw.Draw(dst, bounds, image.NewUniform(*bg), image.Point{}, draw.Src)
	}

	var mask image.Image
	if b.Extra != nil {
		mask = b.Extra.Glyph()
	} else {
		mask = glyphFor(b.Identity, maximized)
	}
	if mask == nil {
		return
	}

	col := r.theme.Glyph
	if b.State == models.ButtonDisabled {
		col = r.theme.DisabledGlyph
	}
	glyph := r.caches.For(col).Get(mask)

	gb := glyph.Bounds()
	at := image.Point{
		X: bounds.Min.X + (bounds.Dx()-gb.Dx())/2,
		Y: bounds.Min.Y + (bounds.Dy()-gb.Dy())/2,
	}
	draw.Draw(dst, image.Rectangle{Min: at, Max: at.Add(gb.Size())}, glyph, gb.Min, draw.Over)
}

// truncate shortens s with an ellipsis until it fits width.
func truncate(face font.Face, s string, width fixed.Int26_6) string {
	if font.MeasureString(face, s) <= width {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		t := string(runes[:n]) + ellipsis
		if font.MeasureString(face, t) <= width {
			return t
		}
	}
	return ""
}

func rect(r models.Rect) image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// FrameStrips splits bounds minus client into up to four rectangles.
func FrameStrips(bounds, client image.Rectangle) []image.Rectangle {
	client = client.Intersect(bounds)
	if client.Empty() {
		return []image.Rectangle{bounds}
	}
	strips := []image.Rectangle{
		image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Max.X, client.Min.Y),
		image.Rect(bounds.Min.X, client.Max.Y, bounds.Max.X, bounds.Max.Y),
		image.Rect(bounds.Min.X, client.Min.Y, client.Min.X, client.Max.Y),
		image.Rect(client.Max.X, client.Min.Y, bounds.Max.X, client.Max.Y),
	}
	out := strips[:0]
	for _, s := range strips {
		if !s.Empty() {
			out = append(out, s)
		}
	}
	return out
}

func outline(dst draw.Image, r image.Rectangle, c color.NRGBA) {
	if r.Empty() {
		return
	}
	src := image.NewUniform(c)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), src, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), src, image.Point{}, draw.Src)
}

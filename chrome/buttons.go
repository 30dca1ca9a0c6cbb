package chrome

import (
	"image"

	"github.com/sirupsen/logrus"

	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
)

// ExtraButton is a host-registered caption button. Its hover and press
// flags are owned by the controller it belongs to.
type ExtraButton struct {
	tag     any
	glyph   image.Image
	enabled bool
	visible bool

	isOver bool
	isDown bool
	owner  *ButtonController
	click  listenerList[*ExtraButton]
}

// NewExtraButton creates an enabled, visible button. glyph is a grayscale
// mask tinted with the theme glyph colour; it may be nil.
func NewExtraButton(tag any, glyph image.Image) *ExtraButton {
	return &ExtraButton{
		tag:     tag,
		glyph:   glyph,
		enabled: true,
		visible: true,
	}
}

// Tag returns the opaque identity given at construction.
func (b *ExtraButton) Tag() any { return b.tag }

// Glyph returns the glyph mask.
func (b *ExtraButton) Glyph() image.Image { return b.glyph }

// SetGlyph replaces the glyph mask.
func (b *ExtraButton) SetGlyph(glyph image.Image) {
	b.glyph = glyph
	b.changed()
}

// Enabled reports whether the button accepts clicks.
func (b *ExtraButton) Enabled() bool { return b.enabled }

// SetEnabled enables or disables the button.
func (b *ExtraButton) SetEnabled(v bool) {
	if b.enabled == v {
		return
	}
	b.enabled = v
	b.changed()
}

// Visible reports whether the button takes part in layout.
func (b *ExtraButton) Visible() bool { return b.visible }

// SetVisible shows or hides the button.
func (b *ExtraButton) SetVisible(v bool) {
	if b.visible == v {
		return
	}
	b.visible = v
	b.changed()
}

// IsOver reports whether the pointer is over the button.
func (b *ExtraButton) IsOver() bool { return b.isOver }

// IsDown reports whether the button is pressed.
func (b *ExtraButton) IsDown() bool { return b.isDown }

// Owner returns the controller the button is registered with, or nil.
func (b *ExtraButton) Owner() *ButtonController { return b.owner }

// OnClick registers a click listener. The returned func removes it.
func (b *ExtraButton) OnClick(fn func(*ExtraButton)) func() {
	return b.click.add(fn)
}

func (b *ExtraButton) changed() {
	if b.owner != nil {
		b.owner.invalidate()
	}
}

// buttonKey identifies either a system button or an extra button.
type buttonKey struct {
	id    models.ButtonIdentity
	extra *ExtraButton
}

func (k buttonKey) isZero() bool { return k.id == models.ButtonNone && k.extra == nil }

// CaptureSession exists between a press on an enabled button and the
// matching release or capture loss.
type CaptureSession struct {
	Identity models.ButtonIdentity
	Extra    *ExtraButton
	Start    models.Point
}

func (s *CaptureSession) key() buttonKey {
	return buttonKey{id: s.Identity, extra: s.Extra}
}

// ButtonLayout is one packed button.
type ButtonLayout struct {
	Identity models.ButtonIdentity
	Extra    *ExtraButton
	Bounds   models.Rect
	Enabled  bool
	State    models.ButtonVisualState
}

func (l ButtonLayout) key() buttonKey {
	return buttonKey{id: l.Identity, extra: l.Extra}
}

// ButtonStates is the layout snapshot for one event.
type ButtonStates struct {
	// Buttons are in packing order, right to left.
	Buttons []ButtonLayout
	// Left is the left edge of the leftmost button; caption text ends here.
	Left int
	// Hovered and Pressed index into Buttons, or -1.
	Hovered int
	Pressed int
}

// At returns the index of the button containing p, or -1.
func (s ButtonStates) At(p models.Point) int {
	for i, b := range s.Buttons {
		if b.Bounds.Contains(p) {
			return i
		}
	}
	return -1
}

// ButtonController lays out caption buttons and runs their hover/press
// state machine.
type ButtonController struct {
	fc   *FormChrome
	host Host
	log  *logrus.Entry

	buttonSize models.Size
	extras     []*ExtraButton

	hover   buttonKey
	pressed buttonKey
	capture *CaptureSession

	batch    int
	dirty    bool
	repaints int

	unsubscribe []func()
}

// NewButtonController attaches a controller to fc's mouse events.
// A zero button height follows the caption height.
func NewButtonController(fc *FormChrome, size models.Size) *ButtonController {
	bc := &ButtonController{
		fc:         fc,
		host:       fc.Host(),
		log:        logger.Get().Component("buttons"),
		buttonSize: size,
	}
	bc.unsubscribe = []func(){
		fc.OnNonClientMouseMove(bc.MouseMove),
		fc.OnNonClientMouseLeave(bc.MouseLeave),
		fc.OnNonClientMouseDown(bc.MouseDown),
		fc.OnNonClientMouseUp(bc.MouseUp),
	}
	return bc
}

// Detach stops listening to mouse events.
func (bc *ButtonController) Detach() {
	for _, fn := range bc.unsubscribe {
		fn()
	}
	bc.unsubscribe = nil

	for _, b := range bc.extras {
		b.owner = nil
		b.isOver, b.isDown = false, false
	}
	bc.extras = nil
	bc.capture = nil
	bc.hover, bc.pressed = buttonKey{}, buttonKey{}
}

// ButtonSize returns the configured button size.
func (bc *ButtonController) ButtonSize() models.Size { return bc.buttonSize }

// SetButtonSize changes the button size.
func (bc *ButtonController) SetButtonSize(size models.Size) {
	if size == bc.buttonSize {
		return
	}
	bc.buttonSize = size
	bc.invalidate()
}

// Add registers an extra button. A button belongs to one controller at a time.
func (bc *ButtonController) Add(b *ExtraButton) error {
	if b == nil {
		return ErrNilButton
	}
	if b.owner != nil {
		return ErrButtonOwned
	}
	b.owner = bc
	bc.extras = append(bc.extras, b)
	bc.invalidate()
	return nil
}

// Remove unregisters b. It reports false when b is not registered here.
func (bc *ButtonController) Remove(b *ExtraButton) bool {
	if b == nil || b.owner != bc {
		return false
	}

	bc.BeginUpdate()
	defer bc.EndUpdate()

	if bc.capture != nil && bc.capture.Extra == b {
		bc.endCapture()
	}
	if bc.hover.extra == b {
		bc.setHover(buttonKey{})
	}
	for i, e := range bc.extras {
		if e == b {
			bc.extras = append(bc.extras[:i:i], bc.extras[i+1:]...)
			break
		}
	}
	b.owner = nil
	b.isOver, b.isDown = false, false
	bc.dirty = true
	return true
}

// Extras returns the registered extra buttons in registration order.
func (bc *ButtonController) Extras() []*ExtraButton {
	out := make([]*ExtraButton, len(bc.extras))
	copy(out, bc.extras)
	return out
}

// Capture returns the active capture session, or nil.
func (bc *ButtonController) Capture() *CaptureSession { return bc.capture }

// Repaints returns how many repaint requests the controller issued.
func (bc *ButtonController) Repaints() int { return bc.repaints }

// BeginUpdate defers repaint requests until the matching EndUpdate.
func (bc *ButtonController) BeginUpdate() {
	bc.batch++
}

// EndUpdate issues at most one repaint for the changes made since BeginUpdate.
func (bc *ButtonController) EndUpdate() {
	if bc.batch == 0 {
		return
	}
	bc.batch--
	if bc.batch == 0 && bc.dirty {
		bc.flush()
	}
}

func (bc *ButtonController) invalidate() {
	bc.dirty = true
	if bc.batch == 0 {
		bc.flush()
	}
}

func (bc *ButtonController) flush() {
	bc.dirty = false
	if !bc.host.HandleCreated() {
		return
	}
	bc.repaints++
	bc.host.InvalidateNonClient()
}

func (bc *ButtonController) setHover(k buttonKey) {
	if k == bc.hover {
		return
	}
	if bc.hover.extra != nil {
		bc.hover.extra.isOver = false
	}
	bc.hover = k
	if k.extra != nil {
		k.extra.isOver = true
	}
	bc.dirty = true
}

func (bc *ButtonController) setPressed(k buttonKey) {
	if k == bc.pressed {
		return
	}
	if bc.pressed.extra != nil {
		bc.pressed.extra.isDown = false
	}
	bc.pressed = k
	if k.extra != nil {
		k.extra.isDown = true
	}
	bc.dirty = true
}

func (bc *ButtonController) height() int {
	if bc.buttonSize.Height > 0 {
		return bc.buttonSize.Height
	}
	return bc.fc.CaptionHeight()
}

// Layout packs the drawn buttons right to left from the inner edge of the
// right border and computes their visual states.
func (bc *ButtonController) Layout(g Geometry) ButtonStates {
	eb := bc.fc.EffectiveBorderFor(g)
	w, h := bc.buttonSize.Width, bc.height()
	right := g.Bounds.Width() - eb.Right

	states := ButtonStates{Left: right, Hovered: -1, Pressed: -1}
	if w <= 0 || h <= 0 {
		return states
	}

	place := func(id models.ButtonIdentity, extra *ExtraButton, enabled bool) {
		l := ButtonLayout{
			Identity: id,
			Extra:    extra,
			Bounds:   models.Rect{Left: right - w, Top: eb.Top, Right: right, Bottom: eb.Top + h},
			Enabled:  enabled,
		}
		k := l.key()
		switch {
		case !enabled:
			l.State = models.ButtonDisabled
		case k == bc.pressed && states.Pressed < 0:
			l.State = models.ButtonPressed
			states.Pressed = len(states.Buttons)
		case k == bc.hover && bc.capture == nil && states.Hovered < 0:
			l.State = models.ButtonHover
			states.Hovered = len(states.Buttons)
		default:
			l.State = models.ButtonEnabled
		}
		states.Buttons = append(states.Buttons, l)
		right -= w
	}

	if bc.host.ControlBox() {
		place(models.ButtonClose, nil, bc.host.CloseEnabled())
		minBox, maxBox := bc.host.MinimizeBox(), bc.host.MaximizeBox()
		if minBox || maxBox {
			place(models.ButtonMaximizeRestore, nil, maxBox)
			place(models.ButtonMinimize, nil, minBox)
		}
	}
	for i := len(bc.extras) - 1; i >= 0; i-- {
		b := bc.extras[i]
		if !b.visible {
			continue
		}
		place(models.ButtonNone, b, b.enabled)
	}

	states.Left = right
	return states
}

// HitTest reports the hit-test code for a window-local point over a button.
// Extra buttons report the caption code so the press can be intercepted.
func (bc *ButtonController) HitTest(g Geometry, p models.Point) (models.HitTest, bool) {
	states := bc.Layout(g)
	i := states.At(p)
	if i < 0 {
		return models.HitNowhere, false
	}
	switch states.Buttons[i].Identity {
	case models.ButtonMinimize:
		return models.HitMinButton, true
	case models.ButtonMaximizeRestore:
		return models.HitMaxButton, true
	case models.ButtonClose:
		return models.HitClose, true
	default:
		return models.HitCaption, true
	}
}

// track updates hover or press from the pointer position and returns the
// layout entry under the pointer, or nil.
func (bc *ButtonController) track(states ButtonStates, p models.Point) *ButtonLayout {
	var over *ButtonLayout
	if i := states.At(p); i >= 0 {
		over = &states.Buttons[i]
	}

	if bc.capture != nil {
		origin := bc.capture.key()
		if over != nil && over.key() == origin {
			bc.setPressed(origin)
		} else {
			bc.setPressed(buttonKey{})
		}
		bc.setHover(buttonKey{})
		return over
	}

	if over != nil && over.Enabled {
		bc.setHover(over.key())
	} else {
		bc.setHover(buttonKey{})
	}
	return over
}

// MouseMove tracks hover, or press while capturing.
func (bc *ButtonController) MouseMove(e *MouseEvent) {
	bc.BeginUpdate()
	defer bc.EndUpdate()

	if over := bc.track(bc.Layout(e.Geometry), e.Point); over != nil || bc.capture != nil {
		e.Handled = true
	}
}

// MouseLeave clears hover when no capture session is active.
func (bc *ButtonController) MouseLeave(e *MouseEvent) {
	if bc.capture != nil {
		return
	}
	bc.BeginUpdate()
	defer bc.EndUpdate()
	bc.setHover(buttonKey{})
}

// MouseDown starts a capture session on a hovered, enabled button. Presses
// on any button are marked handled so the OS does not start its own tracking.
func (bc *ButtonController) MouseDown(e *MouseEvent) {
	bc.BeginUpdate()
	defer bc.EndUpdate()

	if bc.capture != nil {
		e.Handled = true
		return
	}

	over := bc.track(bc.Layout(e.Geometry), e.Point)
	if over == nil {
		return
	}
	e.Handled = true

	if bc.hover.isZero() || bc.hover != over.key() {
		return
	}
	k := bc.hover
	bc.setHover(buttonKey{})
	bc.setPressed(k)
	bc.capture = &CaptureSession{Identity: k.id, Extra: k.extra, Start: e.Point}
	bc.host.SetCapture()
	bc.log.Debugf("Capture started on %s", bc.describe(k))
}

// MouseUp ends the capture session and fires the action of the button the
// session started on, wherever the pointer is released.
func (bc *ButtonController) MouseUp(e *MouseEvent) {
	g := e.Geometry

	bc.BeginUpdate()
	if bc.capture == nil {
		if bc.Layout(g).At(e.Point) >= 0 {
			e.Handled = true
		}
		bc.EndUpdate()
		return
	}

	origin := bc.capture.key()
	bc.endCapture()
	bc.track(bc.Layout(g), e.Point)
	e.Handled = true
	bc.EndUpdate()

	bc.perform(origin, g)
}

// CancelCapture ends a capture session without firing its action.
func (bc *ButtonController) CancelCapture() {
	if bc.capture == nil {
		return
	}
	bc.BeginUpdate()
	defer bc.EndUpdate()

	bc.log.Debugf("Capture lost on %s", bc.describe(bc.capture.key()))
	bc.capture = nil
	bc.setPressed(buttonKey{})
}

func (bc *ButtonController) endCapture() {
	bc.capture = nil
	bc.setPressed(buttonKey{})
	bc.host.ReleaseCapture()
}

func (bc *ButtonController) available(k buttonKey) bool {
	switch {
	case k.extra != nil:
		return k.extra.owner == bc && k.extra.enabled && k.extra.visible
	case k.id == models.ButtonMinimize:
		return bc.host.MinimizeBox()
	case k.id == models.ButtonMaximizeRestore:
		return bc.host.MaximizeBox()
	case k.id == models.ButtonClose:
		return bc.host.CloseEnabled()
	}
	return false
}

func (bc *ButtonController) perform(k buttonKey, g Geometry) {
	if !bc.available(k) {
		bc.log.Debugf("Dropped click on unavailable %s", bc.describe(k))
		return
	}
	bc.log.Debugf("Click on %s", bc.describe(k))

	switch {
	case k.extra != nil:
		k.extra.click.emit(k.extra)
	case k.id == models.ButtonMinimize:
		bc.host.SetWindowState(models.WindowMinimized)
	case k.id == models.ButtonMaximizeRestore:
		if g.Maximized() {
			bc.host.SetWindowState(models.WindowNormal)
		} else {
			bc.host.SetWindowState(models.WindowMaximized)
		}
	case k.id == models.ButtonClose:
		bc.host.Close()
	}
}

func (bc *ButtonController) describe(k buttonKey) string {
	if k.extra != nil {
		return "extra button"
	}
	return k.id.String()
}

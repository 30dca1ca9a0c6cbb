package chrome

import (
	"image"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/NaveLIL/erez-chrome/imagecache"
	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
)

// Options configures a ChromeManager.
type Options struct {
	CaptionHeight       int
	Border              models.BorderThickness
	CornerRadius        models.CornerRadius
	AdjustWhenMaximized bool
	DoubleBuffered      bool
	// ButtonSize is the caption button size. A zero height follows the
	// caption height.
	ButtonSize models.Size
	// DesignMode skips every native hookup.
	DesignMode bool
	Theme      Theme
}

// DefaultOptions returns the stock chrome configuration.
func DefaultOptions() Options {
	return Options{
		CaptionHeight:       32,
		Border:              models.UniformBorder(6),
		CornerRadius:        models.UniformCornerRadius(8),
		AdjustWhenMaximized: true,
		DoubleBuffered:      true,
		ButtonSize:          models.Size{Width: 46},
		Theme:               DefaultTheme(),
	}
}

// ChromeManager intercepts the non-client message stream of one window and
// drives its FormChrome, ButtonController and Renderer.
type ChromeManager struct {
	host Host
	log  *logrus.Entry

	designMode     bool
	doubleBuffered bool

	form     *FormChrome
	buttons  *ButtonController
	caches   *imagecache.Manager
	renderer *Renderer

	unpaint func()

	attached bool
	painting bool
	// running is the position record of the WM_WINDOWPOSCHANGED being
	// processed; nested position changes are checked against it.
	running *WindowPos
	buffer  *image.RGBA

	paints  int
	skipped int
}

// NewChromeManager creates the interceptor for host. Nothing is hooked
// until HandleCreated.
func NewChromeManager(host Host, opts Options) (*ChromeManager, error) {
	if host == nil {
		return nil, ErrNilHost
	}
	form, err := NewFormChrome(host, opts)
	if err != nil {
		return nil, err
	}

	cm := &ChromeManager{
		host:           host,
		log:            logger.Get().Component("chrome"),
		designMode:     opts.DesignMode,
		doubleBuffered: opts.DoubleBuffered,
		form:           form,
		caches:         imagecache.NewManager(),
	}
	cm.buttons = NewButtonController(form, opts.ButtonSize)
	cm.renderer = NewRenderer(form, cm.buttons, cm.caches, opts.Theme)
	cm.unpaint = form.OnNonClientPaint(cm.renderer.Paint)
	return cm, nil
}

// Form returns the frame geometry engine.
func (cm *ChromeManager) Form() *FormChrome { return cm.form }

// Buttons returns the caption button controller.
func (cm *ChromeManager) Buttons() *ButtonController { return cm.buttons }

// Renderer returns the default renderer.
func (cm *ChromeManager) Renderer() *Renderer { return cm.renderer }

// Caches returns the image caches owned by this chrome instance.
func (cm *ChromeManager) Caches() *imagecache.Manager { return cm.caches }

// Attached reports whether the manager is hooked to a live handle.
func (cm *ChromeManager) Attached() bool { return cm.attached }

// DesignMode reports whether native hookup is disabled.
func (cm *ChromeManager) DesignMode() bool { return cm.designMode }

// DoubleBuffered reports whether paints are composed off-screen.
func (cm *ChromeManager) DoubleBuffered() bool { return cm.doubleBuffered }

// SetDoubleBuffered selects the paint strategy.
func (cm *ChromeManager) SetDoubleBuffered(v bool) {
	cm.doubleBuffered = v
	if !v {
		cm.buffer = nil
	}
}

// Paints returns how many non-client paints completed.
func (cm *ChromeManager) Paints() int { return cm.paints }

// SkippedPaints returns how many paints were dropped for lack of a surface.
func (cm *ChromeManager) SkippedPaints() int { return cm.skipped }

// SetTheme changes the default renderer colours and repaints.
func (cm *ChromeManager) SetTheme(t Theme) {
	cm.renderer.SetTheme(t)
	if cm.attached {
		cm.host.InvalidateNonClient()
	}
}

// Apply changes the geometry and appearance settings of a live chrome.
// DesignMode is fixed at construction and ignored here.
func (cm *ChromeManager) Apply(opts Options) error {
	if err := cm.form.SetCaptionHeight(opts.CaptionHeight); err != nil {
		return err
	}
	if err := cm.form.SetBorder(opts.Border); err != nil {
		return err
	}
	if err := cm.form.SetCornerRadius(opts.CornerRadius); err != nil {
		return err
	}
	cm.form.SetAdjustWhenMaximized(opts.AdjustWhenMaximized)
	cm.SetDoubleBuffered(opts.DoubleBuffered)
	cm.buttons.SetButtonSize(opts.ButtonSize)
	cm.SetTheme(opts.Theme)
	return nil
}

// HandleCreated hooks the chrome to the new native handle.
func (cm *ChromeManager) HandleCreated() error {
	if cm.designMode || cm.attached {
		return nil
	}
	cm.attached = true
	cm.host.SetDefaultTextRendering(false)
	cm.form.InvalidateRegion()
	cm.host.RecalculateFrame()
	cm.form.UpdateRegion()
	cm.host.InvalidateNonClient()
	cm.log.Debug("Chrome attached")
	return nil
}

// HandleDestroyed restores default text rendering and frees paint resources.
func (cm *ChromeManager) HandleDestroyed() {
	if !cm.attached {
		return
	}
	cm.buttons.CancelCapture()
	cm.attached = false
	cm.running = nil
	cm.buffer = nil
	cm.host.SetDefaultTextRendering(true)
	cm.caches.Close()
	cm.log.Debug("Chrome detached")
}

// Close detaches the manager and removes its listeners.
func (cm *ChromeManager) Close() {
	cm.HandleDestroyed()
	cm.buttons.Detach()
	if cm.unpaint != nil {
		cm.unpaint()
		cm.unpaint = nil
	}
	cm.caches.Close()
}

// Dispatch implements Dispatcher.
func (cm *ChromeManager) Dispatch(m *Message) bool {
	if cm.designMode || !cm.attached {
		return false
	}

	switch m.Kind {
	case MsgNCCalcSize:
		return cm.calcSize(m)
	case MsgNCHitTest:
		m.Result = uintptr(cm.HitTest(cm.host.Geometry(), m.Point))
		return true
	case MsgNCPaint:
		cm.paint(cm.host.Geometry())
		m.Result = 0
		return true
	case MsgNCActivate:
		return cm.activate(m)
	case MsgSetText:
		m.Result = runDefault(m)
		cm.paint(cm.host.Geometry())
		return true
	case MsgNCMouseMove:
		return cm.mouse(&cm.form.mouseMove, m)
	case MsgNCMouseLeave:
		return cm.mouse(&cm.form.mouseLeave, m)
	case MsgNCLButtonDown, MsgNCLButtonDblClk:
		return cm.mouse(&cm.form.mouseDown, m)
	case MsgNCLButtonUp:
		return cm.mouse(&cm.form.mouseUp, m)
	case MsgCaptureChanged:
		cm.buttons.CancelCapture()
		return false
	case MsgSysCommand:
		e := &SysCommandEvent{Command: m.Command.Normalize()}
		cm.form.sysCommand.emit(e)
		if e.Cancel {
			cm.log.Debugf("System command %#x cancelled", uint32(e.Command))
			m.Result = 0
			return true
		}
		return false
	case MsgWindowPosChanging:
		cm.positionChanging(m.Pos)
		return false
	case MsgWindowPosChanged:
		return cm.positionChanged(m)
	case MsgEraseBackground:
		m.Result = runDefault(m)
		cm.refresh()
		return true
	}
	return false
}

func runDefault(m *Message) uintptr {
	if m.Default == nil {
		return 0
	}
	return m.Default()
}

func (cm *ChromeManager) calcSize(m *Message) bool {
	g := cm.host.Geometry()
	if g.Minimized() {
		return false
	}
	eb := cm.form.EffectiveBorderFor(g)
	m.Proposed = cm.form.clientRect(m.Proposed, eb)
	m.Result = 0
	return true
}

func (cm *ChromeManager) activate(m *Message) bool {
	g := cm.host.Geometry()
	if g.Minimized() {
		return false
	}
	// the backend's default suppresses the native frame redraw
	runDefault(m)
	g.Active = m.Active
	cm.paint(g)
	m.Result = 1
	return true
}

func (cm *ChromeManager) mouse(list *listenerList[*MouseEvent], m *Message) bool {
	g := cm.host.Geometry()
	e := &MouseEvent{
		Point:    g.ToLocal(m.Point),
		Screen:   m.Point,
		HitTest:  m.HitTest,
		Geometry: g,
	}
	list.emit(e)
	if e.Handled {
		m.Result = 0
	}
	return e.Handled
}

// positionChanging restores the size of the change in flight when a nested
// change reports a different size without a frame change. Restoring from
// maximized otherwise adds the default frame to the window size.
func (cm *ChromeManager) positionChanging(pos *WindowPos) {
	if pos == nil || cm.running == nil || !cm.running.HasSize() || pos.FrameChanged() {
		return
	}
	if pos.Width == cm.running.Width && pos.Height == cm.running.Height {
		return
	}
	cm.log.Debugf("Suppressed transient size %dx%d, keeping %dx%d",
		pos.Width, pos.Height, cm.running.Width, cm.running.Height)
	pos.Width, pos.Height = cm.running.Width, cm.running.Height
}

func (cm *ChromeManager) positionChanged(m *Message) bool {
	previous := cm.running
	if m.Pos != nil {
		rec := *m.Pos
		cm.running = &rec
	}
	defer func() { cm.running = previous }()

	handled := m.Default != nil
	m.Result = runDefault(m)
	cm.refresh()
	return handled
}

func (cm *ChromeManager) refresh() {
	g := cm.host.Geometry()
	cm.form.UpdateRegionFor(g)
	cm.paint(g)
}

// Paint repaints the non-client area immediately.
func (cm *ChromeManager) Paint() {
	if !cm.attached {
		return
	}
	cm.paint(cm.host.Geometry())
}

// HitTest classifies a screen point.
func (cm *ChromeManager) HitTest(g Geometry, screen models.Point) models.HitTest {
	p := g.ToLocal(screen)
	w, h := g.Bounds.Width(), g.Bounds.Height()
	if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return models.HitNowhere
	}

	eb := cm.form.EffectiveBorderFor(g)
	switch {
	case p.X < eb.Left:
		if p.Y < eb.Top {
			return models.HitTopLeft
		}
		if p.Y >= h-eb.Bottom {
			return models.HitBottomLeft
		}
		return models.HitLeft
	case p.X >= w-eb.Right:
		if p.Y < eb.Top {
			return models.HitTopRight
		}
		if p.Y >= h-eb.Bottom {
			return models.HitBottomRight
		}
		return models.HitRight
	case p.Y < eb.Top:
		return models.HitTop
	case p.Y >= h-eb.Bottom:
		return models.HitBottom
	}

	if code, ok := cm.buttons.HitTest(g, p); ok {
		return code
	}
	if p.Y < eb.Top+cm.form.CaptionHeight() {
		if ir, ok := cm.form.IconRectFor(g); ok && ir.Contains(p) {
			return models.HitSysMenu
		}
		return models.HitCaption
	}
	return models.HitClient
}

// paint draws the non-client area once. Re-entrant requests made while a
// paint is running are dropped.
func (cm *ChromeManager) paint(g Geometry) {
	if cm.painting || g.Minimized() {
		return
	}
	size := g.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return
	}

	cm.painting = true
	defer func() { cm.painting = false }()

	surface, err := cm.host.AcquireSurface(SurfaceNonClient)
	if err != nil {
		cm.log.WithError(err).Warn("Non-client surface unavailable, using window surface")
		surface, err = cm.host.AcquireSurface(SurfaceWindow)
		if err != nil {
			cm.skipped++
			cm.log.WithError(err).Debug("Paint skipped")
			return
		}
	}
	defer func() {
		if err := surface.Release(); err != nil {
			cm.log.WithError(err).Warn("Failed to release paint surface")
		}
	}()

	bounds := g.LocalBounds()
	client := cm.form.clientRect(bounds, cm.form.EffectiveBorderFor(g))
	surface.ExcludeClip(client)

	e := &PaintEvent{
		Bounds:    bounds,
		Client:    client,
		Geometry:  g,
		Maximized: g.Maximized(),
		Active:    g.Active,
	}

	if !cm.doubleBuffered {
		e.Canvas = newClipCanvas(surface.Canvas(), client)
		cm.form.paint.emit(e)
		cm.paints++
		return
	}

	buf := cm.backBuffer(size)
	e.Canvas = buf
	cm.form.paint.emit(e)

	dst := surface.Canvas()
	mask := cm.form.silhouetteMask(size)
	for _, strip := range FrameStrips(rect(bounds), rect(client)) {
		if mask != nil {
			draw.DrawMask(dst, strip, buf, strip.Min, mask, strip.Min, draw.Over)
		} else {
			draw.Draw(dst, strip, buf, strip.Min, draw.Src)
		}
	}
	cm.paints++
}

func (cm *ChromeManager) backBuffer(size models.Size) *image.RGBA {
	if cm.buffer == nil || cm.buffer.Bounds().Dx() != size.Width || cm.buffer.Bounds().Dy() != size.Height {
		cm.buffer = image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	}
	return cm.buffer
}

//go:build windows

package ui

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
	"github.com/NaveLIL/erez-chrome/utils"
)

var (
	ErrNoHandle        = errors.New("ui: window has no handle")
	ErrNoDeviceContext = errors.New("ui: device context unavailable")
)

const mainClassName = "EREZChromeWindow"

var (
	mainClassOnce sync.Once
	mainClassErr  error

	subclassCallback = windows.NewCallback(subclassProc)

	// registry maps subclassed handles to their Window. It is only touched
	// on the UI thread.
	registry = make(map[uintptr]*Window)
)

// WindowOptions describes a new top-level window.
type WindowOptions struct {
	Title string
	// Bounds is the initial window rectangle; empty uses the system default.
	Bounds models.Rect
	Icon   image.Image
	// QuitOnDestroy ends the message loop when the window is destroyed.
	QuitOnDestroy bool
}

// Window is a subclassed top-level window implementing chrome.Host.
type Window struct {
	hwnd     windows.Handle
	prevProc uintptr
	log      *logrus.Entry

	icon          image.Image
	quitOnDestroy bool

	dispatchers []chrome.Dispatcher
	observers   []chrome.Observer
	lifecycles  []chrome.Lifecycle

	capturing bool
	tracking  bool

	mu    sync.Mutex
	queue []func()
}

// NewWindow creates and subclasses a top-level window. It must be called
// on the thread that runs the message loop.
func NewWindow(opts WindowOptions) (*Window, error) {
	mainClassOnce.Do(func() {
		bg, _, _ := procGetStockObject.Call(DKGRAY_BRUSH)
		if err := procDefWindowProcW.Find(); err != nil {
			mainClassErr = err
			return
		}
		mainClassErr = registerClass(mainClassName, procDefWindowProcW.Addr(), bg)
	})
	if mainClassErr != nil {
		return nil, fmt.Errorf("register window class: %w", mainClassErr)
	}

	className, _ := windows.UTF16PtrFromString(mainClassName)
	title, err := windows.UTF16PtrFromString(opts.Title)
	if err != nil {
		return nil, err
	}

	x, y := uintptr(CW_USEDEFAULT), uintptr(CW_USEDEFAULT)
	w, h := uintptr(CW_USEDEFAULT), uintptr(CW_USEDEFAULT)
	if !opts.Bounds.IsEmpty() {
		x, y = uintptr(opts.Bounds.Left), uintptr(opts.Bounds.Top)
		w, h = uintptr(opts.Bounds.Width()), uintptr(opts.Bounds.Height())
	}

	hwnd, _, callErr := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		WS_OVERLAPPEDWINDOW|WS_CLIPCHILDREN,
		x, y, w, h,
		0, 0, moduleHandle(), 0,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("create window: %w", callErr)
	}

	win := Attach(windows.Handle(hwnd))
	win.icon = opts.Icon
	win.quitOnDestroy = opts.QuitOnDestroy
	return win, nil
}

// Attach subclasses an existing window.
func Attach(hwnd windows.Handle) *Window {
	w := &Window{
		hwnd: hwnd,
		log:  logger.Get().Component("ui"),
	}
	registry[uintptr(hwnd)] = w
	w.prevProc = utils.SetWindowLong(hwnd, utils.GWLP_WNDPROC, subclassCallback)
	w.log.Debugf("Subclassed window %#x", uintptr(hwnd))
	return w
}

func subclassProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	if w := registry[hwnd]; w != nil {
		return w.wndProc(uint32(msg), wParam, lParam)
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return ret
}

// Handle returns the native window handle.
func (w *Window) Handle() windows.Handle { return w.hwnd }

// AddDispatcher appends a message dispatcher. The first one to handle a
// message wins.
func (w *Window) AddDispatcher(d chrome.Dispatcher) {
	w.dispatchers = append(w.dispatchers, d)
}

// AddObserver appends a passive message observer.
func (w *Window) AddObserver(o chrome.Observer) {
	w.observers = append(w.observers, o)
}

// RemoveObserver drops o. It does nothing when o was never added.
func (w *Window) RemoveObserver(o chrome.Observer) {
	for i, x := range w.observers {
		if x == o {
			w.observers = append(w.observers[:i:i], w.observers[i+1:]...)
			return
		}
	}
}

// AddLifecycle registers l for handle notifications. l is told about the
// current handle immediately.
func (w *Window) AddLifecycle(l chrome.Lifecycle) error {
	w.lifecycles = append(w.lifecycles, l)
	if w.HandleCreated() {
		return l.HandleCreated()
	}
	return nil
}

// RemoveLifecycle drops l without notifying it.
func (w *Window) RemoveLifecycle(l chrome.Lifecycle) {
	for i, x := range w.lifecycles {
		if x == l {
			w.lifecycles = append(w.lifecycles[:i:i], w.lifecycles[i+1:]...)
			return
		}
	}
}

// Post runs fn on the UI thread. It is safe to call from any goroutine.
func (w *Window) Post(fn func()) {
	w.mu.Lock()
	w.queue = append(w.queue, fn)
	w.mu.Unlock()
	procPostMessageW.Call(uintptr(w.hwnd), wmInvoke, 0, 0)
}

func (w *Window) drain() {
	w.mu.Lock()
	queue := w.queue
	w.queue = nil
	w.mu.Unlock()
	for _, fn := range queue {
		fn()
	}
}

// Show makes the window visible.
func (w *Window) Show() {
	procShowWindow.Call(uintptr(w.hwnd), SW_SHOW)
	procUpdateWindow.Call(uintptr(w.hwnd))
}

// Destroy destroys the native window.
func (w *Window) Destroy() {
	if w.HandleCreated() {
		procDestroyWindow.Call(uintptr(w.hwnd))
	}
}

// SetTitle changes the window text.
func (w *Window) SetTitle(title string) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	procSetWindowTextW.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(p)))
}

// SetIcon changes the caption icon.
func (w *Window) SetIcon(img image.Image) {
	w.icon = img
	w.InvalidateNonClient()
}

func (w *Window) callPrev(msg uint32, wParam, lParam uintptr) uintptr {
	ret, _, _ := procCallWindowProcW.Call(w.prevProc, uintptr(w.hwnd), uintptr(msg), wParam, lParam)
	return ret
}

func (w *Window) wndProc(msg uint32, wParam, lParam uintptr) uintptr {
	switch msg {
	case wmInvoke:
		w.drain()
		return 0
	case WM_NCUAHDRAWCAPTION, WM_NCUAHDRAWFRAME:
		if len(w.dispatchers) > 0 {
			return 0
		}
	case WM_MOUSEMOVE, WM_LBUTTONUP:
		if w.capturing && w.captured(msg, lParam) {
			return 0
		}
	case WM_DESTROY:
		for i := len(w.lifecycles) - 1; i >= 0; i-- {
			w.lifecycles[i].HandleDestroyed()
		}
		if w.quitOnDestroy {
			procPostQuitMessage.Call(0)
		}
	case WM_NCDESTROY:
		return w.detach(msg, wParam, lParam)
	}

	kind := chrome.MessageKind(msg)
	switch kind {
	case chrome.MsgSetText, chrome.MsgEraseBackground,
		chrome.MsgWindowPosChanging, chrome.MsgWindowPosChanged,
		chrome.MsgNCCalcSize, chrome.MsgNCHitTest, chrome.MsgNCPaint, chrome.MsgNCActivate,
		chrome.MsgNCMouseMove, chrome.MsgNCLButtonDown, chrome.MsgNCLButtonUp, chrome.MsgNCLButtonDblClk,
		chrome.MsgSysCommand, chrome.MsgCaptureChanged, chrome.MsgNCMouseLeave:
		return w.dispatch(kind, msg, wParam, lParam)
	}
	return w.callPrev(msg, wParam, lParam)
}

func (w *Window) detach(msg uint32, wParam, lParam uintptr) uintptr {
	prev := w.prevProc
	utils.SetWindowLong(w.hwnd, utils.GWLP_WNDPROC, prev)
	delete(registry, uintptr(w.hwnd))
	hwnd := w.hwnd
	w.hwnd = 0
	w.log.Debugf("Window %#x destroyed", uintptr(hwnd))
	ret, _, _ := procCallWindowProcW.Call(prev, uintptr(hwnd), uintptr(msg), wParam, lParam)
	return ret
}

// dispatch decodes a non-client message, runs the dispatchers and writes
// their changes back into the native structures.
func (w *Window) dispatch(kind chrome.MessageKind, msg uint32, wParam, lParam uintptr) uintptr {
	m := &chrome.Message{Kind: kind}
	defaultLParam := lParam

	var calc *RECT
	var wp *WINDOWPOS

	switch kind {
	case chrome.MsgNCCalcSize:
		if wParam != 0 {
			params := (*NCCALCSIZE_PARAMS)(unsafe.Pointer(lParam))
			calc = &params.Rgrc[0]
		} else {
			calc = (*RECT)(unsafe.Pointer(lParam))
		}
		m.Proposed = calc.toModel()
	case chrome.MsgNCHitTest:
		m.Point = pointFromLParam(lParam)
	case chrome.MsgNCMouseMove, chrome.MsgNCLButtonDown, chrome.MsgNCLButtonUp, chrome.MsgNCLButtonDblClk:
		m.Point = pointFromLParam(lParam)
		m.HitTest = models.HitTest(wParam)
		if kind == chrome.MsgNCMouseMove {
			w.trackLeave()
		}
	case chrome.MsgNCMouseLeave:
		w.tracking = false
	case chrome.MsgNCActivate:
		m.Active = wParam != 0
		// -1 keeps the default procedure from repainting the frame
		defaultLParam = ^uintptr(0)
	case chrome.MsgSysCommand:
		m.Command = models.SysCommand(wParam)
	case chrome.MsgWindowPosChanging, chrome.MsgWindowPosChanged:
		wp = (*WINDOWPOS)(unsafe.Pointer(lParam))
		m.Pos = &chrome.WindowPos{
			X:      int(wp.X),
			Y:      int(wp.Y),
			Width:  int(wp.CX),
			Height: int(wp.CY),
			Flags:  wp.Flags,
		}
	case chrome.MsgCaptureChanged:
		w.capturing = false
	}
	m.Default = func() uintptr { return w.callPrev(msg, wParam, defaultLParam) }

	handled := w.send(m)

	if calc != nil && handled {
		*calc = rectFromModel(m.Proposed)
	}
	if wp != nil && kind == chrome.MsgWindowPosChanging {
		wp.CX, wp.CY = int32(m.Pos.Width), int32(m.Pos.Height)
	}

	ret := m.Result
	if !handled {
		ret = w.callPrev(msg, wParam, lParam)
	}
	for _, o := range w.observers {
		o.Observe(m)
	}
	return ret
}

func (w *Window) send(m *chrome.Message) bool {
	for _, d := range w.dispatchers {
		if d.Dispatch(m) {
			return true
		}
	}
	return false
}

// captured replays client pointer messages as their non-client equivalents
// while a caption button holds the capture.
func (w *Window) captured(msg uint32, lParam uintptr) bool {
	pt := POINT{X: int32(int16(lParam & 0xFFFF)), Y: int32(int16((lParam >> 16) & 0xFFFF))}
	procClientToScreen.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&pt)))

	kind := chrome.MsgNCMouseMove
	if msg == WM_LBUTTONUP {
		kind = chrome.MsgNCLButtonUp
	}
	return w.send(&chrome.Message{
		Kind:    kind,
		Point:   models.Point{X: int(pt.X), Y: int(pt.Y)},
		HitTest: models.HitClient,
	})
}

func (w *Window) trackLeave() {
	if w.tracking {
		return
	}
	tme := TRACKMOUSEEVENT{
		CbSize:    uint32(unsafe.Sizeof(TRACKMOUSEEVENT{})),
		DwFlags:   TME_LEAVE | TME_NONCLIENT,
		HwndTrack: uintptr(w.hwnd),
	}
	if ret, _, _ := procTrackMouseEvent.Call(uintptr(unsafe.Pointer(&tme))); ret != 0 {
		w.tracking = true
	}
}

// HandleCreated reports whether the native window exists.
func (w *Window) HandleCreated() bool {
	if w.hwnd == 0 {
		return false
	}
	ret, _, _ := procIsWindow.Call(uintptr(w.hwnd))
	return ret != 0
}

// Geometry reads the window rectangle, show state and activation at once.
func (w *Window) Geometry() chrome.Geometry {
	var r RECT
	procGetWindowRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))

	state := models.WindowNormal
	if ret, _, _ := procIsIconic.Call(uintptr(w.hwnd)); ret != 0 {
		state = models.WindowMinimized
	} else if ret, _, _ := procIsZoomed.Call(uintptr(w.hwnd)); ret != 0 {
		state = models.WindowMaximized
	}

	return chrome.Geometry{
		Bounds: r.toModel(),
		State:  state,
		Active: utils.ForegroundWindow() == w.hwnd,
	}
}

// SystemFrameBorder returns the sizing frame the OS hangs off-screen when
// the window is maximized.
func (w *Window) SystemFrameBorder() models.BorderThickness {
	pad := utils.SystemMetric(SM_CXPADDEDBORDER)
	x := utils.SystemMetric(SM_CXSIZEFRAME) + pad
	y := utils.SystemMetric(SM_CYSIZEFRAME) + pad
	return models.BorderThickness{Left: x, Top: y, Right: x, Bottom: y}
}

// Text returns the window title.
func (w *Window) Text() string { return utils.WindowText(w.hwnd) }

// Icon returns the caption icon.
func (w *Window) Icon() image.Image { return w.icon }

func (w *Window) style() uintptr { return utils.WindowLong(w.hwnd, utils.GWL_STYLE) }

// ControlBox reports whether the window has a system menu.
func (w *Window) ControlBox() bool { return w.style()&WS_SYSMENU != 0 }

// MinimizeBox reports whether the window can be minimized.
func (w *Window) MinimizeBox() bool { return w.style()&WS_MINIMIZEBOX != 0 }

// MaximizeBox reports whether the window can be maximized.
func (w *Window) MaximizeBox() bool { return w.style()&WS_MAXIMIZEBOX != 0 }

// CloseEnabled queries the close item of the system menu.
func (w *Window) CloseEnabled() bool {
	if !w.HandleCreated() {
		return false
	}
	menu, _, _ := procGetSystemMenu.Call(uintptr(w.hwnd), 0)
	if menu == 0 {
		return false
	}
	state, _, _ := procGetMenuState.Call(menu, SC_CLOSE, MF_BYCOMMAND)
	if uint32(state) == math.MaxUint32 {
		return false
	}
	return state&(MF_GRAYED|MF_DISABLED) == 0
}

// SetRegion assigns the window silhouette. The system owns the region
// handle afterwards.
func (w *Window) SetRegion(r models.Region) {
	var rgn uintptr
	switch r.Kind {
	case models.RegionRect:
		rgn, _, _ = procCreateRectRgn.Call(
			uintptr(int32(r.Rect.Left)), uintptr(int32(r.Rect.Top)),
			uintptr(int32(r.Rect.Right)), uintptr(int32(r.Rect.Bottom)),
		)
	case models.RegionPath:
		if len(r.Path) < 3 {
			break
		}
		pts := make([]POINT, len(r.Path))
		for i, p := range r.Path {
			pts[i] = POINT{X: int32(math.Round(p.X)), Y: int32(math.Round(p.Y))}
		}
		rgn, _, _ = procCreatePolygonRgn.Call(uintptr(unsafe.Pointer(&pts[0])), uintptr(len(pts)), WINDING)
	}
	procSetWindowRgn.Call(uintptr(w.hwnd), rgn, 1)
}

// SetWindowState requests a show state through the system command path so
// the usual animations and notifications apply.
func (w *Window) SetWindowState(s models.WindowState) {
	cmd := models.SysCommandRestore
	switch s {
	case models.WindowMinimized:
		cmd = models.SysCommandMinimize
	case models.WindowMaximized:
		cmd = models.SysCommandMaximize
	}
	procPostMessageW.Call(uintptr(w.hwnd), WM_SYSCOMMAND, uintptr(cmd), 0)
}

// Close requests the window to close.
func (w *Window) Close() {
	procPostMessageW.Call(uintptr(w.hwnd), WM_SYSCOMMAND, uintptr(models.SysCommandClose), 0)
}

// SetCapture routes pointer input to the window.
func (w *Window) SetCapture() {
	w.capturing = true
	procSetCapture.Call(uintptr(w.hwnd))
}

// ReleaseCapture ends pointer capture.
func (w *Window) ReleaseCapture() {
	w.capturing = false
	procReleaseCapture.Call()
}

// InvalidateNonClient schedules a non-client repaint.
func (w *Window) InvalidateNonClient() {
	if !w.HandleCreated() {
		return
	}
	procRedrawWindow.Call(uintptr(w.hwnd), 0, 0, RDW_FRAME|RDW_INVALIDATE)
}

// RecalculateFrame makes the OS resend the frame-size calculation.
func (w *Window) RecalculateFrame() {
	procSetWindowPos.Call(uintptr(w.hwnd), 0, 0, 0, 0, 0,
		SWP_FRAMECHANGED|SWP_NOMOVE|SWP_NOSIZE|SWP_NOZORDER|SWP_NOACTIVATE)
}

// SetDefaultTextRendering toggles the themed caption text, icon and system
// menu glyph the OS would otherwise draw over the chrome.
func (w *Window) SetDefaultTextRendering(enabled bool) {
	opts := WTA_OPTIONS{Mask: WTNCA_NODRAWCAPTION | WTNCA_NODRAWICON | WTNCA_NOSYSMENU}
	if !enabled {
		opts.Flags = opts.Mask
	}
	if err := procSetWindowThemeAttribute.Find(); err != nil {
		w.log.WithError(err).Debug("Theme attributes unavailable")
		return
	}
	procSetWindowThemeAttribute.Call(
		uintptr(w.hwnd),
		WTA_NONCLIENT,
		uintptr(unsafe.Pointer(&opts)),
		unsafe.Sizeof(opts),
	)
}

// Run pumps the message queue of the calling thread until WM_QUIT.
func Run() {
	var msg MSG
	for {
		ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0)
		if ret == 0 || int32(ret) == -1 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&msg)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&msg)))
	}
}

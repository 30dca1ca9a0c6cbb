//go:build windows

package ui

import (
	"fmt"
	"image"
	"sync"
	"unsafe"

	"github.com/sirupsen/logrus"
	"golang.org/x/sys/windows"

	"github.com/NaveLIL/erez-chrome/logger"
	"github.com/NaveLIL/erez-chrome/models"
	"github.com/NaveLIL/erez-chrome/shadow"
	"github.com/NaveLIL/erez-chrome/utils"
)

const shadowClassName = "EREZChromeShadow"

var (
	shadowClassOnce sync.Once
	shadowClassErr  error
)

// shadowProc keeps the overlays out of hit testing so clicks fall through to
// whatever lies beneath.
func shadowProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	if msg == WM_NCHITTEST {
		return HTTRANSPARENT
	}
	ret, _, _ := procDefWindowProcW.Call(hwnd, msg, wParam, lParam)
	return ret
}

// ShadowFactory creates layered shadow overlays owned by a window.
type ShadowFactory struct {
	owner *Window
}

// NewShadowFactory returns a factory whose overlays follow owner in the
// z-order.
func NewShadowFactory(owner *Window) *ShadowFactory {
	return &ShadowFactory{owner: owner}
}

// CreateOverlay creates the overlay for one side of the owner.
func (f *ShadowFactory) CreateOverlay(side shadow.Side) (shadow.Overlay, error) {
	shadowClassOnce.Do(func() {
		shadowClassErr = registerClass(shadowClassName, windows.NewCallback(shadowProc), 0)
	})
	if shadowClassErr != nil {
		return nil, fmt.Errorf("register shadow class: %w", shadowClassErr)
	}

	className, _ := windows.UTF16PtrFromString(shadowClassName)
	hwnd, _, err := procCreateWindowExW.Call(
		utils.WS_EX_TOOLWINDOW|utils.WS_EX_NOACTIVATE,
		uintptr(unsafe.Pointer(className)),
		0,
		WS_POPUP,
		0, 0, 0, 0,
		uintptr(f.owner.Handle()),
		0, moduleHandle(), 0,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("create %s shadow: %w", side, err)
	}
	utils.MakeWindowClickThrough(windows.Handle(hwnd))

	return &Overlay{
		hwnd: hwnd,
		side: side,
		log:  logger.Get().Component("shadow").WithField("side", side.String()),
	}, nil
}

// Overlay is a layered, click-through popup presenting one shadow strip.
type Overlay struct {
	hwnd   uintptr
	side   shadow.Side
	bounds models.Rect
	img    *image.RGBA
	dirty  bool
	log    *logrus.Entry
}

// SetImage replaces the premultiplied strip; it is presented by the next
// SetBounds.
func (o *Overlay) SetImage(img *image.RGBA) {
	o.img = img
	o.dirty = true
}

// SetBounds moves the overlay, re-presenting the image when it changed.
func (o *Overlay) SetBounds(r models.Rect) {
	if o.hwnd == 0 {
		return
	}
	if o.dirty || r.Size() != o.bounds.Size() {
		o.bounds = r
		o.present()
		return
	}
	if r == o.bounds {
		return
	}
	o.bounds = r
	procSetWindowPos.Call(o.hwnd, 0,
		uintptr(int32(r.Left)), uintptr(int32(r.Top)), 0, 0,
		SWP_NOSIZE|SWP_NOZORDER|SWP_NOACTIVATE|SWP_NOOWNERZORDER)
}

func (o *Overlay) present() {
	if o.img == nil || o.bounds.IsEmpty() {
		return
	}
	b := o.img.Bounds()
	w, h := b.Dx(), b.Dy()

	screenDC, _, _ := procGetDC.Call(0)
	defer procReleaseDC.Call(0, screenDC)
	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	defer procDeleteDC.Call(memDC)

	bi := topDownInfo(w, h)
	var bits unsafe.Pointer
	hbm, _, err := procCreateDIBSection.Call(screenDC, uintptr(unsafe.Pointer(&bi)), DIB_RGB_COLORS,
		uintptr(unsafe.Pointer(&bits)), 0, 0)
	if hbm == 0 || bits == nil {
		o.log.WithError(err).Warn("Failed to allocate shadow bitmap")
		return
	}
	defer procDeleteObject.Call(hbm)

	toBGRA(unsafe.Slice((*byte)(bits), w*h*4), o.img)

	old, _, _ := procSelectObject.Call(memDC, hbm)
	defer procSelectObject.Call(memDC, old)

	dst := POINT{X: int32(o.bounds.Left), Y: int32(o.bounds.Top)}
	size := SIZE{CX: int32(w), CY: int32(h)}
	src := POINT{}
	blend := BLENDFUNCTION{BlendOp: AC_SRC_OVER, SourceConstantAlpha: 255, AlphaFormat: AC_SRC_ALPHA}

	ret, _, err := procUpdateLayeredWindow.Call(
		o.hwnd, screenDC,
		uintptr(unsafe.Pointer(&dst)),
		uintptr(unsafe.Pointer(&size)),
		memDC,
		uintptr(unsafe.Pointer(&src)),
		0,
		uintptr(unsafe.Pointer(&blend)),
		ULW_ALPHA,
	)
	if ret == 0 {
		o.log.WithError(err).Warn("Failed to update shadow overlay")
		return
	}
	o.dirty = false
}

// Show displays the overlay without activating it.
func (o *Overlay) Show() {
	if o.hwnd != 0 {
		procShowWindow.Call(o.hwnd, SW_SHOWNOACTIVATE)
	}
}

// Hide hides the overlay.
func (o *Overlay) Hide() {
	if o.hwnd != 0 {
		procShowWindow.Call(o.hwnd, SW_HIDE)
	}
}

// Destroy destroys the native overlay. Owned windows may already be gone
// when the owner was destroyed first.
func (o *Overlay) Destroy() {
	if o.hwnd == 0 {
		return
	}
	if ok, _, _ := procIsWindow.Call(o.hwnd); ok != 0 {
		procDestroyWindow.Call(o.hwnd)
	}
	o.hwnd = 0
}

//go:build windows

package ui

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/NaveLIL/erez-chrome/chrome"
	"github.com/NaveLIL/erez-chrome/models"
)

// surface collects a non-client paint in an RGBA canvas and blits the frame
// strips around the excluded client rectangle on Release.
type surface struct {
	hwnd    uintptr
	hdc     uintptr
	canvas  *image.RGBA
	exclude image.Rectangle
}

// AcquireSurface opens a device context covering the whole window.
func (w *Window) AcquireSurface(kind chrome.SurfaceKind) (chrome.Surface, error) {
	if !w.HandleCreated() {
		return nil, ErrNoHandle
	}

	hwnd := uintptr(w.hwnd)
	var hdc uintptr
	switch kind {
	case chrome.SurfaceNonClient:
		hdc, _, _ = procGetDCEx.Call(hwnd, 0, DCX_WINDOW|DCX_CACHE|DCX_CLIPSIBLINGS)
	default:
		hdc, _, _ = procGetWindowDC.Call(hwnd)
	}
	if hdc == 0 {
		return nil, fmt.Errorf("acquire surface %d: %w", kind, ErrNoDeviceContext)
	}

	size := w.Geometry().Bounds.Size()
	return &surface{
		hwnd:   hwnd,
		hdc:    hdc,
		canvas: image.NewRGBA(image.Rect(0, 0, size.Width, size.Height)),
	}, nil
}

func (s *surface) Canvas() draw.Image { return s.canvas }

func (s *surface) ExcludeClip(r models.Rect) {
	s.exclude = image.Rect(r.Left, r.Top, r.Right, r.Bottom)
	procExcludeClipRect.Call(s.hdc,
		uintptr(int32(r.Left)), uintptr(int32(r.Top)),
		uintptr(int32(r.Right)), uintptr(int32(r.Bottom)))
}

func (s *surface) Release() error {
	defer procReleaseDC.Call(s.hwnd, s.hdc)

	for _, strip := range chrome.FrameStrips(s.canvas.Bounds(), s.exclude) {
		if err := s.blit(strip); err != nil {
			return err
		}
	}
	return nil
}

func (s *surface) blit(r image.Rectangle) error {
	bits := packStrip(s.canvas, r)
	if bits == nil {
		return nil
	}
	w, h := r.Dx(), r.Dy()
	bi := topDownInfo(w, h)

	ret, _, err := procSetDIBitsToDevice.Call(
		s.hdc,
		uintptr(r.Min.X), uintptr(r.Min.Y), uintptr(w), uintptr(h),
		0, 0, 0, uintptr(h),
		uintptr(unsafe.Pointer(&bits[0])),
		uintptr(unsafe.Pointer(&bi)),
		DIB_RGB_COLORS,
	)
	if ret == 0 {
		return fmt.Errorf("blit %v: %w", r, err)
	}
	return nil
}

// packStrip returns the BGRA pixels of r, or nil when r is empty.
func packStrip(canvas *image.RGBA, r image.Rectangle) []byte {
	r = r.Intersect(canvas.Bounds())
	if r.Empty() {
		return nil
	}
	bits := make([]byte, r.Dx()*r.Dy()*4)
	toBGRA(bits, canvas.SubImage(r).(*image.RGBA))
	return bits
}

//go:build windows

// Package ui is the Win32 backend of the chrome: it subclasses a top-level
// window, decodes its non-client messages and hosts the shadow overlays.
package ui

import (
	"image"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/NaveLIL/erez-chrome/models"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	gdi32    = windows.NewLazySystemDLL("gdi32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	uxtheme  = windows.NewLazySystemDLL("uxtheme.dll")

	procCreateWindowExW     = user32.NewProc("CreateWindowExW")
	procDefWindowProcW      = user32.NewProc("DefWindowProcW")
	procCallWindowProcW     = user32.NewProc("CallWindowProcW")
	procRegisterClassExW    = user32.NewProc("RegisterClassExW")
	procShowWindow          = user32.NewProc("ShowWindow")
	procUpdateWindow        = user32.NewProc("UpdateWindow")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procTranslateMessage    = user32.NewProc("TranslateMessage")
	procDispatchMessageW    = user32.NewProc("DispatchMessageW")
	procPostQuitMessage     = user32.NewProc("PostQuitMessage")
	procPostMessageW        = user32.NewProc("PostMessageW")
	procDestroyWindow       = user32.NewProc("DestroyWindow")
	procIsWindow            = user32.NewProc("IsWindow")
	procIsZoomed            = user32.NewProc("IsZoomed")
	procIsIconic            = user32.NewProc("IsIconic")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procClientToScreen      = user32.NewProc("ClientToScreen")
	procSetWindowPos        = user32.NewProc("SetWindowPos")
	procSetWindowRgn        = user32.NewProc("SetWindowRgn")
	procRedrawWindow        = user32.NewProc("RedrawWindow")
	procSetCapture          = user32.NewProc("SetCapture")
	procReleaseCapture      = user32.NewProc("ReleaseCapture")
	procTrackMouseEvent     = user32.NewProc("TrackMouseEvent")
	procGetSystemMenu       = user32.NewProc("GetSystemMenu")
	procGetMenuState        = user32.NewProc("GetMenuState")
	procGetDCEx             = user32.NewProc("GetDCEx")
	procGetWindowDC         = user32.NewProc("GetWindowDC")
	procGetDC               = user32.NewProc("GetDC")
	procReleaseDC           = user32.NewProc("ReleaseDC")
	procUpdateLayeredWindow = user32.NewProc("UpdateLayeredWindow")
	procLoadCursorW         = user32.NewProc("LoadCursorW")
	procSetWindowTextW      = user32.NewProc("SetWindowTextW")

	procCreateRectRgn      = gdi32.NewProc("CreateRectRgn")
	procCreatePolygonRgn   = gdi32.NewProc("CreatePolygonRgn")
	procExcludeClipRect    = gdi32.NewProc("ExcludeClipRect")
	procSetDIBitsToDevice  = gdi32.NewProc("SetDIBitsToDevice")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procGetStockObject     = gdi32.NewProc("GetStockObject")

	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	procSetWindowThemeAttribute = uxtheme.NewProc("SetWindowThemeAttribute")
)

// Window styles
const (
	WS_OVERLAPPEDWINDOW = 0x00CF0000
	WS_POPUP            = 0x80000000
	WS_SYSMENU          = 0x00080000
	WS_MINIMIZEBOX      = 0x00020000
	WS_MAXIMIZEBOX      = 0x00010000
	WS_CLIPCHILDREN     = 0x02000000

	CW_USEDEFAULT = 0x80000000

	SW_HIDE           = 0
	SW_SHOW           = 5
	SW_SHOWNOACTIVATE = 4
)

// Window messages handled outside the neutral message set.
const (
	WM_DESTROY          = 0x0002
	WM_CLOSE            = 0x0010
	WM_NCDESTROY        = 0x0082
	WM_NCHITTEST        = 0x0084
	WM_NCUAHDRAWCAPTION = 0x00AE
	WM_NCUAHDRAWFRAME   = 0x00AF
	WM_MOUSEMOVE        = 0x0200
	WM_LBUTTONUP        = 0x0202
	WM_SYSCOMMAND       = 0x0112
	WM_APP              = 0x8000

	wmInvoke = WM_APP + 1
)

// Hit-test and system command codes used by the backend itself.
const (
	HTTRANSPARENT = ^uintptr(0) // -1
	HTCLIENT      = 1

	SC_CLOSE = 0xF060
)

const (
	SWP_NOSIZE          = 0x0001
	SWP_NOMOVE          = 0x0002
	SWP_NOZORDER        = 0x0004
	SWP_NOACTIVATE      = 0x0010
	SWP_FRAMECHANGED    = 0x0020
	SWP_NOOWNERZORDER   = 0x0200
	RDW_INVALIDATE      = 0x0001
	RDW_FRAME           = 0x0400
	DCX_WINDOW          = 0x00000001
	DCX_CACHE           = 0x00000002
	DCX_CLIPSIBLINGS    = 0x00000010
	MF_BYCOMMAND        = 0x00000000
	MF_GRAYED           = 0x00000001
	MF_DISABLED         = 0x00000002
	TME_LEAVE           = 0x00000002
	TME_NONCLIENT       = 0x00000010
	WINDING             = 2
	DIB_RGB_COLORS      = 0
	BI_RGB              = 0
	AC_SRC_OVER         = 0x00
	AC_SRC_ALPHA        = 0x01
	ULW_ALPHA           = 0x00000002
	DKGRAY_BRUSH        = 3
	IDC_ARROW           = 32512
	WTA_NONCLIENT       = 1
	WTNCA_NODRAWCAPTION = 0x00000001
	WTNCA_NODRAWICON    = 0x00000002
	WTNCA_NOSYSMENU     = 0x00000004
)

// System metrics
const (
	SM_CXSIZEFRAME    = 32
	SM_CYSIZEFRAME    = 33
	SM_CXPADDEDBORDER = 92
)

// RECT represents a rectangle.
type RECT struct {
	Left, Top, Right, Bottom int32
}

func (r RECT) toModel() models.Rect {
	return models.Rect{Left: int(r.Left), Top: int(r.Top), Right: int(r.Right), Bottom: int(r.Bottom)}
}

func rectFromModel(r models.Rect) RECT {
	return RECT{Left: int32(r.Left), Top: int32(r.Top), Right: int32(r.Right), Bottom: int32(r.Bottom)}
}

// POINT represents a point.
type POINT struct {
	X, Y int32
}

// SIZE represents a size.
type SIZE struct {
	CX, CY int32
}

// MSG represents a Windows message.
type MSG struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

// WNDCLASSEXW represents the WNDCLASSEXW structure.
type WNDCLASSEXW struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CbClsExtra    int32
	CbWndExtra    int32
	HInstance     uintptr
	HIcon         uintptr
	HCursor       uintptr
	HbrBackground uintptr
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       uintptr
}

// WINDOWPOS represents the WINDOWPOS structure.
type WINDOWPOS struct {
	Hwnd            uintptr
	HwndInsertAfter uintptr
	X, Y            int32
	CX, CY          int32
	Flags           uint32
}

// NCCALCSIZE_PARAMS represents the NCCALCSIZE_PARAMS structure.
type NCCALCSIZE_PARAMS struct {
	Rgrc  [3]RECT
	Lppos *WINDOWPOS
}

// TRACKMOUSEEVENT represents the TRACKMOUSEEVENT structure.
type TRACKMOUSEEVENT struct {
	CbSize      uint32
	DwFlags     uint32
	HwndTrack   uintptr
	DwHoverTime uint32
}

// BITMAPINFOHEADER represents the BITMAPINFOHEADER structure.
type BITMAPINFOHEADER struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

// BITMAPINFO represents a BITMAPINFO with no colour table.
type BITMAPINFO struct {
	BmiHeader BITMAPINFOHEADER
	BmiColors [1]uint32
}

// BLENDFUNCTION represents the BLENDFUNCTION structure.
type BLENDFUNCTION struct {
	BlendOp             byte
	BlendFlags          byte
	SourceConstantAlpha byte
	AlphaFormat         byte
}

// WTA_OPTIONS represents the WTA_OPTIONS structure.
type WTA_OPTIONS struct {
	Flags uint32
	Mask  uint32
}

// pointFromLParam decodes signed screen coordinates packed into lParam.
func pointFromLParam(lParam uintptr) models.Point {
	return models.Point{X: int(int16(lParam & 0xFFFF)), Y: int(int16((lParam >> 16) & 0xFFFF))}
}

// topDownInfo describes a 32bpp top-down DIB of the given size.
func topDownInfo(w, h int) BITMAPINFO {
	var bi BITMAPINFO
	bi.BmiHeader.BiSize = uint32(unsafe.Sizeof(bi.BmiHeader))
	bi.BmiHeader.BiWidth = int32(w)
	bi.BmiHeader.BiHeight = int32(-h)
	bi.BmiHeader.BiPlanes = 1
	bi.BmiHeader.BiBitCount = 32
	bi.BmiHeader.BiCompression = BI_RGB
	return bi
}

// toBGRA converts premultiplied RGBA pixels into the BGRA order GDI expects.
func toBGRA(dst []byte, img *image.RGBA) {
	b := img.Bounds()
	w := b.Dx()
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		row := dst[y*w*4:]
		for x := 0; x < w; x++ {
			row[4*x+0] = src[4*x+2]
			row[4*x+1] = src[4*x+1]
			row[4*x+2] = src[4*x+0]
			row[4*x+3] = src[4*x+3]
		}
	}
}

func moduleHandle() uintptr {
	h, _, _ := procGetModuleHandleW.Call(0)
	return h
}

func registerClass(name string, proc uintptr, background uintptr) error {
	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return err
	}
	cursor, _, _ := procLoadCursorW.Call(0, IDC_ARROW)
	wc := WNDCLASSEXW{
		CbSize:        uint32(unsafe.Sizeof(WNDCLASSEXW{})),
		LpfnWndProc:   proc,
		HInstance:     moduleHandle(),
		HCursor:       cursor,
		HbrBackground: background,
		LpszClassName: className,
	}
	if ret, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); ret == 0 {
		return err
	}
	return nil
}

//go:build windows

package utils

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW      = user32.NewProc("GetWindowTextW")
	procGetWindowTextLength = user32.NewProc("GetWindowTextLengthW")
	procSetWindowLongPtrW   = user32.NewProc("SetWindowLongPtrW")
	procGetWindowLongPtrW   = user32.NewProc("GetWindowLongPtrW")
	procGetSystemMetrics    = user32.NewProc("GetSystemMetrics")
)

// Window style constants
const (
	WS_EX_LAYERED     uintptr = 0x00080000
	WS_EX_TRANSPARENT uintptr = 0x00000020
	WS_EX_TOPMOST     uintptr = 0x00000008
	WS_EX_TOOLWINDOW  uintptr = 0x00000080
	WS_EX_NOACTIVATE  uintptr = 0x08000000
)

// GWL indices as unsigned values.
const (
	GWL_STYLE    = ^uintptr(15) // -16
	GWL_EXSTYLE  = ^uintptr(19) // -20
	GWLP_WNDPROC = ^uintptr(3)  // -4
)

// ForegroundWindow returns the handle of the foreground window.
func ForegroundWindow() windows.Handle {
	ret, _, _ := procGetForegroundWindow.Call()
	return windows.Handle(ret)
}

// WindowText gets the title of a window.
func WindowText(hwnd windows.Handle) string {
	n, _, _ := procGetWindowTextLength.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}
	buf := make([]uint16, n+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), n+1)
	return windows.UTF16ToString(buf)
}

// WindowLong reads a window long value such as GWL_STYLE.
func WindowLong(hwnd windows.Handle, index uintptr) uintptr {
	ret, _, _ := procGetWindowLongPtrW.Call(uintptr(hwnd), index)
	return ret
}

// SetWindowLong writes a window long value and returns the previous one.
func SetWindowLong(hwnd windows.Handle, index, value uintptr) uintptr {
	ret, _, _ := procSetWindowLongPtrW.Call(uintptr(hwnd), index, value)
	return ret
}

// MakeWindowClickThrough makes a window layered and transparent to input.
func MakeWindowClickThrough(hwnd windows.Handle) {
	style := WindowLong(hwnd, GWL_EXSTYLE)
	SetWindowLong(hwnd, GWL_EXSTYLE, style|WS_EX_LAYERED|WS_EX_TRANSPARENT)
}

// SystemMetric returns a GetSystemMetrics value.
func SystemMetric(index int) int {
	ret, _, _ := procGetSystemMetrics.Call(uintptr(index))
	return int(int32(ret))
}

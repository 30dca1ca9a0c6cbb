package chrome

import "github.com/NaveLIL/erez-chrome/models"

// MessageKind identifies a window message. Values match the Win32 WM_* codes.
type MessageKind uint32

const (
	MsgSetText           MessageKind = 0x000C
	MsgEraseBackground   MessageKind = 0x0014
	MsgWindowPosChanging MessageKind = 0x0046
	MsgWindowPosChanged  MessageKind = 0x0047
	MsgNCCalcSize        MessageKind = 0x0083
	MsgNCHitTest         MessageKind = 0x0084
	MsgNCPaint           MessageKind = 0x0085
	MsgNCActivate        MessageKind = 0x0086
	MsgNCMouseMove       MessageKind = 0x00A0
	MsgNCLButtonDown     MessageKind = 0x00A1
	MsgNCLButtonUp       MessageKind = 0x00A2
	MsgNCLButtonDblClk   MessageKind = 0x00A3
	MsgSysCommand        MessageKind = 0x0112
	MsgCaptureChanged    MessageKind = 0x0215
	MsgNCMouseLeave      MessageKind = 0x02A2
)

func (k MessageKind) String() string {
	switch k {
	case MsgSetText:
		return "WM_SETTEXT"
	case MsgEraseBackground:
		return "WM_ERASEBKGND"
	case MsgWindowPosChanging:
		return "WM_WINDOWPOSCHANGING"
	case MsgWindowPosChanged:
		return "WM_WINDOWPOSCHANGED"
	case MsgNCCalcSize:
		return "WM_NCCALCSIZE"
	case MsgNCHitTest:
		return "WM_NCHITTEST"
	case MsgNCPaint:
		return "WM_NCPAINT"
	case MsgNCActivate:
		return "WM_NCACTIVATE"
	case MsgNCMouseMove:
		return "WM_NCMOUSEMOVE"
	case MsgNCLButtonDown:
		return "WM_NCLBUTTONDOWN"
	case MsgNCLButtonUp:
		return "WM_NCLBUTTONUP"
	case MsgNCLButtonDblClk:
		return "WM_NCLBUTTONDBLCLK"
	case MsgSysCommand:
		return "WM_SYSCOMMAND"
	case MsgCaptureChanged:
		return "WM_CAPTURECHANGED"
	case MsgNCMouseLeave:
		return "WM_NCMOUSELEAVE"
	default:
		return "WM_UNKNOWN"
	}
}

// SetWindowPos flags carried by WindowPos.
const (
	PosNoSize       uint32 = 0x0001
	PosNoMove       uint32 = 0x0002
	PosFrameChanged uint32 = 0x0020
	PosShowWindow   uint32 = 0x0040
	PosHideWindow   uint32 = 0x0080
)

// WindowPos is a position record from a position-changing notification.
// A dispatcher may rewrite it; the backend copies it back.
type WindowPos struct {
	X, Y          int
	Width, Height int
	Flags         uint32
}

// FrameChanged reports whether the frame-changed flag is set.
func (p WindowPos) FrameChanged() bool { return p.Flags&PosFrameChanged != 0 }

// HasSize reports whether the record carries a meaningful size.
func (p WindowPos) HasSize() bool { return p.Flags&PosNoSize == 0 }

// Message is a decoded window message. Only the fields relevant to Kind are set.
type Message struct {
	Kind MessageKind

	// Point is the pointer position in screen coordinates.
	Point models.Point
	// HitTest is the hit-test code delivered with non-client mouse messages.
	HitTest models.HitTest
	// Proposed is the window rectangle offered by a frame-size calculation.
	// A handler replaces it with the client rectangle.
	Proposed models.Rect
	Pos      *WindowPos
	Command  models.SysCommand
	Active   bool

	// Default runs the native default procedure for this message.
	Default func() uintptr
	// Result is returned to the OS when the message is handled.
	Result uintptr
}

// Dispatcher handles a message. It returns true when the message is fully
// handled and Result must be returned; false forwards it to default processing.
type Dispatcher interface {
	Dispatch(m *Message) bool
}

// Observer receives every message after dispatch without influencing it.
type Observer interface {
	Observe(m *Message)
}

// Lifecycle receives native handle creation and destruction.
type Lifecycle interface {
	HandleCreated() error
	HandleDestroyed()
}

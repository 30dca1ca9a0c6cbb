package models

// ButtonIdentity names a fixed system caption button.
type ButtonIdentity int

const (
	ButtonNone ButtonIdentity = iota
	ButtonMinimize
	ButtonMaximizeRestore
	ButtonClose
)

func (b ButtonIdentity) String() string {
	switch b {
	case ButtonMinimize:
		return "minimize"
	case ButtonMaximizeRestore:
		return "maximize-restore"
	case ButtonClose:
		return "close"
	default:
		return "none"
	}
}

// ButtonVisualState is the rendered state of a caption button.
type ButtonVisualState int

const (
	ButtonDisabled ButtonVisualState = iota
	ButtonEnabled
	ButtonHover
	ButtonPressed
)

func (s ButtonVisualState) String() string {
	switch s {
	case ButtonEnabled:
		return "enabled"
	case ButtonHover:
		return "hover"
	case ButtonPressed:
		return "pressed"
	default:
		return "disabled"
	}
}

// HitTest is a non-client hit-test result. Values match the platform HT* codes.
type HitTest int

const (
	HitNowhere     HitTest = 0
	HitClient      HitTest = 1
	HitCaption     HitTest = 2
	HitSysMenu     HitTest = 3
	HitMinButton   HitTest = 8
	HitMaxButton   HitTest = 9
	HitLeft        HitTest = 10
	HitRight       HitTest = 11
	HitTop         HitTest = 12
	HitTopLeft     HitTest = 13
	HitTopRight    HitTest = 14
	HitBottom      HitTest = 15
	HitBottomLeft  HitTest = 16
	HitBottomRight HitTest = 17
	HitClose       HitTest = 20
)

// IsResize reports whether h is one of the eight directional resize codes.
func (h HitTest) IsResize() bool {
	return h >= HitLeft && h <= HitBottomRight
}

// SysCommand is a system command code. Values match the platform SC_* codes.
type SysCommand uint32

const (
	SysCommandSize     SysCommand = 0xF000
	SysCommandMove     SysCommand = 0xF010
	SysCommandMinimize SysCommand = 0xF020
	SysCommandMaximize SysCommand = 0xF030
	SysCommandClose    SysCommand = 0xF060
	SysCommandKeyMenu  SysCommand = 0xF100
	SysCommandRestore  SysCommand = 0xF120
)

// Normalize strips the low four bits the system uses internally.
func (c SysCommand) Normalize() SysCommand { return c & 0xFFF0 }

// WindowState is the show state of a top-level window.
type WindowState int

const (
	WindowNormal WindowState = iota
	WindowMinimized
	WindowMaximized
)

func (s WindowState) String() string {
	switch s {
	case WindowMinimized:
		return "minimized"
	case WindowMaximized:
		return "maximized"
	default:
		return "normal"
	}
}

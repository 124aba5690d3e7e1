// Package win32 holds the user32/shell32 bindings and message constants used
// by the pump and the tray. Constants and plain types build on every
// platform so the classification logic can be tested anywhere; the
// procedure bindings are Windows-only.
package win32

// HWND is a native window handle. Zero is the null window.
type HWND uintptr

// Window messages
const (
	WM_NULL                        = 0x0000
	WM_DESTROY                     = 0x0002
	WM_CLOSE                       = 0x0010
	WM_QUIT                        = 0x0012
	WM_SETTINGCHANGE               = 0x001A
	WM_KEYDOWN                     = 0x0100
	WM_KEYUP                       = 0x0101
	WM_COMMAND                     = 0x0111
	WM_LBUTTONUP                   = 0x0202
	WM_RBUTTONUP                   = 0x0205
	WM_DPICHANGED                  = 0x02E0
	WM_HOTKEY                      = 0x0312
	WM_DWMCOLORIZATIONCOLORCHANGED = 0x0320
	WM_USER                        = 0x0400
	WM_APP                         = 0x8000
)

// Hotkey modifiers
const (
	MOD_ALT      = 0x0001
	MOD_CONTROL  = 0x0002
	MOD_SHIFT    = 0x0004
	MOD_WIN      = 0x0008
	MOD_NOREPEAT = 0x4000
)

// Virtual key codes
const (
	// VK_OEM_3 is the `~ key on US layouts.
	VK_OEM_3 = 0xC0
)

// Tray icon operations
const (
	NIM_ADD    = 0
	NIM_MODIFY = 1
	NIM_DELETE = 2
)

// Tray icon flags
const (
	NIF_MESSAGE = 0x01
	NIF_ICON    = 0x02
	NIF_TIP     = 0x04
)

// Menu flags
const (
	MF_STRING       = 0x0000
	MF_UNCHECKED    = 0x0000
	MF_CHECKED      = 0x0008
	MF_SEPARATOR    = 0x0800
	MF_BYCOMMAND    = 0x0000
	TPM_RIGHTBUTTON = 0x0002
	TPM_BOTTOMALIGN = 0x0020
)

// Message is the portable part of a queued MSG.
type Message struct {
	Hwnd   HWND
	Msg    uint32
	WParam uintptr
	LParam uintptr
}

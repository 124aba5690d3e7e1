//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	shell32  = windows.NewLazySystemDLL("shell32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterHotKey                = user32.NewProc("RegisterHotKey")
	procGetMessageW                   = user32.NewProc("GetMessageW")
	procPeekMessageW                  = user32.NewProc("PeekMessageW")
	procTranslateMessage              = user32.NewProc("TranslateMessage")
	procDispatchMessageW              = user32.NewProc("DispatchMessageW")
	procPostMessageW                  = user32.NewProc("PostMessageW")
	procPostThreadMessageW            = user32.NewProc("PostThreadMessageW")
	procSendMessageW                  = user32.NewProc("SendMessageW")
	procGetForegroundWindow           = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW                = user32.NewProc("GetWindowTextW")
	procRegisterClassExW              = user32.NewProc("RegisterClassExW")
	procCreateWindowExW               = user32.NewProc("CreateWindowExW")
	procDefWindowProcW                = user32.NewProc("DefWindowProcW")
	procDestroyWindow                 = user32.NewProc("DestroyWindow")
	procRegisterWindowMessageW        = user32.NewProc("RegisterWindowMessageW")
	procCreatePopupMenu               = user32.NewProc("CreatePopupMenu")
	procAppendMenuW                   = user32.NewProc("AppendMenuW")
	procCheckMenuItem                 = user32.NewProc("CheckMenuItem")
	procTrackPopupMenu                = user32.NewProc("TrackPopupMenu")
	procDestroyMenu                   = user32.NewProc("DestroyMenu")
	procGetCursorPos                  = user32.NewProc("GetCursorPos")
	procSetForegroundWindow           = user32.NewProc("SetForegroundWindow")
	procCreateIconFromResourceEx      = user32.NewProc("CreateIconFromResourceEx")
	procDestroyIcon                   = user32.NewProc("DestroyIcon")
	procGetDpiForSystem               = user32.NewProc("GetDpiForSystem")
	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procShellNotifyIconW              = shell32.NewProc("Shell_NotifyIconW")
	procGetModuleHandleW              = kernel32.NewProc("GetModuleHandleW")
)

// MSG mirrors the native message structure.
type MSG struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	Pt      POINT
}

// POINT is a screen coordinate.
type POINT struct {
	X, Y int32
}

// WNDCLASSEX describes a window class for RegisterClassExW.
type WNDCLASSEX struct {
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

// NOTIFYICONDATA is the Shell_NotifyIconW payload.
type NOTIFYICONDATA struct {
	CbSize           uint32
	Hwnd             uintptr
	UID              uint32
	UFlags           uint32
	UCallbackMessage uint32
	HIcon            uintptr
	SzTip            [128]uint16
	DwState          uint32
	DwStateMask      uint32
	SzInfo           [256]uint16
	UVersion         uint32
	SzInfoTitle      [64]uint16
	DwInfoFlags      uint32
	GuidItem         windows.GUID
	HBalloonIcon     uintptr
}

// Portable returns the fields the pump classifies on.
func (m *MSG) Portable() Message {
	return Message{Hwnd: HWND(m.Hwnd), Msg: m.Message, WParam: m.WParam, LParam: m.LParam}
}

// RegisterHotKey reserves a system-wide hotkey for the calling thread.
func RegisterHotKey(hwnd HWND, id int32, modifiers, vk uint32) error {
	r, _, err := procRegisterHotKey.Call(uintptr(hwnd), uintptr(id), uintptr(modifiers), uintptr(vk))
	if r == 0 {
		return fmt.Errorf("RegisterHotKey: %w", err)
	}
	return nil
}

// GetMessage blocks until a message is queued for the calling thread.
// It returns 0 on WM_QUIT and -1 on error.
func GetMessage(msg *MSG) (int32, error) {
	r, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
	ret := int32(r)
	if ret == -1 {
		return ret, fmt.Errorf("GetMessageW: %w", err)
	}
	return ret, nil
}

// ProcessSentMessages runs the window procedures for messages other threads
// have sent to the calling thread, without removing posted messages.
func ProcessSentMessages() {
	const pmQSSendMessage = 0x0040 << 16 // PM_NOREMOVE | PM_QS_SENDMESSAGE
	var msg MSG
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&msg)), 0, 0, 0, pmQSSendMessage)
}

// TranslateAndDispatch hands msg to the default dispatch path.
func TranslateAndDispatch(msg *MSG) {
	procTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
	procDispatchMessageW.Call(uintptr(unsafe.Pointer(msg)))
}

// PostMessage places a message in the queue of the thread owning hwnd.
func PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error {
	r, _, err := procPostMessageW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	if r == 0 {
		return fmt.Errorf("PostMessageW: %w", err)
	}
	return nil
}

// PostThreadMessage places a message in the queue of thread tid.
func PostThreadMessage(tid uint32, msg uint32, wParam, lParam uintptr) error {
	r, _, err := procPostThreadMessageW.Call(uintptr(tid), uintptr(msg), wParam, lParam)
	if r == 0 {
		return fmt.Errorf("PostThreadMessageW: %w", err)
	}
	return nil
}

// SendMessage calls the window procedure of hwnd and waits for it to return.
// When hwnd belongs to another thread, that thread must be pumping messages.
func SendMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procSendMessageW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

// CurrentThreadID returns the native id of the calling thread.
func CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

// GetForegroundWindow returns the window with keyboard focus, or 0.
func GetForegroundWindow() HWND {
	r, _, _ := procGetForegroundWindow.Call()
	return HWND(r)
}

// GetWindowText returns the title of hwnd, truncated to 512 UTF-16 units.
func GetWindowText(hwnd HWND) (string, error) {
	var buf [512]uint16
	r, _, err := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		// Zero is also returned for an empty title with no error set.
		if errno, ok := err.(windows.Errno); ok && errno != 0 {
			return "", fmt.Errorf("GetWindowTextW: %w", err)
		}
		return "", nil
	}
	return windows.UTF16ToString(buf[:r]), nil
}

// RegisterWindowMessage returns the system-wide id for a named message.
func RegisterWindowMessage(name string) (uint32, error) {
	p, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, err
	}
	r, _, callErr := procRegisterWindowMessageW.Call(uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return 0, fmt.Errorf("RegisterWindowMessageW: %w", callErr)
	}
	return uint32(r), nil
}

// ModuleHandle returns the instance handle of the running executable.
func ModuleHandle() uintptr {
	r, _, _ := procGetModuleHandleW.Call(0)
	return r
}

// RegisterClass registers a window class.
func RegisterClass(wc *WNDCLASSEX) error {
	wc.CbSize = uint32(unsafe.Sizeof(*wc))
	r, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(wc)))
	if r == 0 {
		return fmt.Errorf("RegisterClassExW: %w", err)
	}
	return nil
}

// CreateHiddenWindow creates an invisible top-level window of the given class.
// A top-level window (not HWND_MESSAGE) is used so that it receives theme and
// TaskbarCreated broadcasts.
func CreateHiddenWindow(className, title *uint16, instance uintptr) (HWND, error) {
	r, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		0, // not WS_VISIBLE
		0, 0, 0, 0,
		0, 0,
		instance,
		0,
	)
	if r == 0 {
		return 0, fmt.Errorf("CreateWindowExW: %w", err)
	}
	return HWND(r), nil
}

// DefWindowProc runs the default window procedure.
func DefWindowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

// DestroyWindow destroys hwnd. Must be called on the thread that created it.
func DestroyWindow(hwnd HWND) error {
	r, _, err := procDestroyWindow.Call(uintptr(hwnd))
	if r == 0 {
		return fmt.Errorf("DestroyWindow: %w", err)
	}
	return nil
}

// CreatePopupMenu creates an empty popup menu.
func CreatePopupMenu() (uintptr, error) {
	r, _, err := procCreatePopupMenu.Call()
	if r == 0 {
		return 0, fmt.Errorf("CreatePopupMenu: %w", err)
	}
	return r, nil
}

// AppendMenu adds an item to menu. An empty label appends with no text.
func AppendMenu(menu uintptr, flags uint32, id uintptr, label string) error {
	var p *uint16
	if label != "" {
		var err error
		if p, err = windows.UTF16PtrFromString(label); err != nil {
			return err
		}
	}
	r, _, err := procAppendMenuW.Call(menu, uintptr(flags), id, uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return fmt.Errorf("AppendMenuW: %w", err)
	}
	return nil
}

// CheckMenuItem sets the check mark of item id. It reports an error when the
// item does not exist.
func CheckMenuItem(menu uintptr, id uint32, checked bool) error {
	flags := uint32(MF_BYCOMMAND | MF_UNCHECKED)
	if checked {
		flags = MF_BYCOMMAND | MF_CHECKED
	}
	r, _, _ := procCheckMenuItem.Call(menu, uintptr(id), uintptr(flags))
	if int32(r) == -1 {
		return fmt.Errorf("CheckMenuItem: no menu item %d", id)
	}
	return nil
}

// TrackPopupMenu shows menu at the cursor position owned by hwnd.
func TrackPopupMenu(menu uintptr, hwnd HWND) error {
	var pt POINT
	procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	// Required so the menu closes when the user clicks elsewhere.
	procSetForegroundWindow.Call(uintptr(hwnd))
	r, _, err := procTrackPopupMenu.Call(
		menu,
		TPM_RIGHTBUTTON|TPM_BOTTOMALIGN,
		uintptr(pt.X), uintptr(pt.Y),
		0,
		uintptr(hwnd),
		0,
	)
	PostMessage(hwnd, WM_NULL, 0, 0)
	if r == 0 {
		if errno, ok := err.(windows.Errno); ok && errno != 0 {
			return fmt.Errorf("TrackPopupMenu: %w", err)
		}
	}
	return nil
}

// DestroyMenu frees a menu handle.
func DestroyMenu(menu uintptr) {
	procDestroyMenu.Call(menu)
}

// CreateIconFromResource builds an HICON from one image of an .ico file
// (BMP or PNG payload).
func CreateIconFromResource(image []byte, width, height int) (uintptr, error) {
	if len(image) == 0 {
		return 0, fmt.Errorf("CreateIconFromResourceEx: empty image")
	}
	const iconVersion = 0x00030000
	r, _, err := procCreateIconFromResourceEx.Call(
		uintptr(unsafe.Pointer(&image[0])),
		uintptr(len(image)),
		1, // fIcon
		iconVersion,
		uintptr(width), uintptr(height),
		0,
	)
	if r == 0 {
		return 0, fmt.Errorf("CreateIconFromResourceEx: %w", err)
	}
	return r, nil
}

// DestroyIcon frees an HICON.
func DestroyIcon(icon uintptr) {
	procDestroyIcon.Call(icon)
}

// ShellNotifyIcon adds, modifies or deletes a notification area icon.
func ShellNotifyIcon(op uint32, data *NOTIFYICONDATA) error {
	data.CbSize = uint32(unsafe.Sizeof(*data))
	r, _, err := procShellNotifyIconW.Call(uintptr(op), uintptr(unsafe.Pointer(data)))
	if r == 0 {
		return fmt.Errorf("Shell_NotifyIconW(%d): %w", op, err)
	}
	return nil
}

// SystemDPI returns the system DPI, or 96 when unavailable (pre Windows 10 1607).
func SystemDPI() uint32 {
	if procGetDpiForSystem.Find() != nil {
		return 96
	}
	r, _, _ := procGetDpiForSystem.Call()
	if r == 0 {
		return 96
	}
	return uint32(r)
}

// EnablePerMonitorDPIAwareness opts the process into per-monitor v2 DPI
// awareness. Failure leaves the process DPI-unaware.
func EnablePerMonitorDPIAwareness() error {
	if err := procSetProcessDpiAwarenessContext.Find(); err != nil {
		return err
	}
	const perMonitorAwareV2 = ^uintptr(3) // DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2 = -4
	r, _, err := procSetProcessDpiAwarenessContext.Call(perMonitorAwareV2)
	if r == 0 {
		return fmt.Errorf("SetProcessDpiAwarenessContext: %w", err)
	}
	return nil
}

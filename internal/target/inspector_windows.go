//go:build windows

package target

import "github.com/ctrltick/ctrltick/internal/win32"

// SystemInspector reads window state through user32.
type SystemInspector struct{}

// ForegroundWindow returns the window with keyboard focus.
func (SystemInspector) ForegroundWindow() win32.HWND {
	return win32.GetForegroundWindow()
}

// WindowTitle returns the title bar text of hwnd.
func (SystemInspector) WindowTitle(hwnd win32.HWND) (string, error) {
	return win32.GetWindowText(hwnd)
}

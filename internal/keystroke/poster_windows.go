//go:build windows

package keystroke

import "github.com/ctrltick/ctrltick/internal/win32"

// SystemPoster posts through user32 PostMessageW.
type SystemPoster struct{}

// PostMessage implements Poster.
func (SystemPoster) PostMessage(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) error {
	return win32.PostMessage(hwnd, msg, wParam, lParam)
}

// Package keystroke posts the substitute backtick key press to a window.
package keystroke

import (
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/win32"
)

// KeyLParam is the lParam of both posted messages: repeat count 1 in bits
// 0-15 and scan code 2 in bits 16-23, not extended.
const KeyLParam uintptr = 1 | 0b10<<16

// Poster delivers a message to a window's queue without waiting.
type Poster interface {
	PostMessage(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) error
}

// Forwarder synthesizes a backtick press for a target window.
type Forwarder struct {
	poster Poster
	logger *logging.Logger
}

// NewForwarder creates a forwarder posting through poster.
func NewForwarder(poster Poster, logger *logging.Logger) *Forwarder {
	return &Forwarder{poster: poster, logger: logger}
}

// Forward posts WM_KEYDOWN then WM_KEYUP for VK_OEM_3 to hwnd. The caller
// guarantees hwnd is non-null. Failures are logged and otherwise ignored.
func (f *Forwarder) Forward(hwnd win32.HWND) {
	for _, msg := range [...]uint32{win32.WM_KEYDOWN, win32.WM_KEYUP} {
		if err := f.poster.PostMessage(hwnd, msg, win32.VK_OEM_3, KeyLParam); err != nil {
			f.logger.Warn().Err(err).
				Uint64("hwnd", uint64(hwnd)).
				Uint32("msg", msg).
				Msg("Failed to post synthesized key")
		}
	}
}

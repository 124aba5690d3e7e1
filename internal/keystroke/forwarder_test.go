package keystroke

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/win32"
)

type posted struct {
	hwnd   win32.HWND
	msg    uint32
	wParam uintptr
	lParam uintptr
}

type recordingPoster struct {
	posts []posted
	fail  map[uint32]error
}

func (p *recordingPoster) PostMessage(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) error {
	p.posts = append(p.posts, posted{hwnd, msg, wParam, lParam})
	return p.fail[msg]
}

func TestForward_KeyDownThenKeyUp(t *testing.T) {
	p := &recordingPoster{}
	NewForwarder(p, logging.Nop()).Forward(0xBEEF)

	require.Len(t, p.posts, 2)
	assert.Equal(t, posted{0xBEEF, win32.WM_KEYDOWN, win32.VK_OEM_3, KeyLParam}, p.posts[0])
	assert.Equal(t, posted{0xBEEF, win32.WM_KEYUP, win32.VK_OEM_3, KeyLParam}, p.posts[1])
}

func TestForward_KeyDownFailureStillPostsKeyUp(t *testing.T) {
	p := &recordingPoster{fail: map[uint32]error{win32.WM_KEYDOWN: errors.New("queue full")}}
	NewForwarder(p, logging.Nop()).Forward(0x10)

	require.Len(t, p.posts, 2)
	assert.Equal(t, uint32(win32.WM_KEYUP), p.posts[1].msg)
}

func TestKeyLParam(t *testing.T) {
	assert.Equal(t, uintptr(1), KeyLParam&0xFFFF, "repeat count")
	assert.Equal(t, uintptr(2), (KeyLParam>>16)&0xFF, "scan code")
	assert.Zero(t, KeyLParam&(1<<24), "extended flag")
}

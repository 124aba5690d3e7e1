package pump

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/keystroke"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/target"
	"github.com/ctrltick/ctrltick/internal/win32"
)

type fakeInspector struct {
	foreground win32.HWND
	titles     map[win32.HWND]string
}

func (f *fakeInspector) ForegroundWindow() win32.HWND { return f.foreground }

func (f *fakeInspector) WindowTitle(hwnd win32.HWND) (string, error) {
	title, ok := f.titles[hwnd]
	if !ok {
		return "", errors.New("no such window")
	}
	return title, nil
}

type posted struct {
	hwnd           win32.HWND
	msg            uint32
	wParam, lParam uintptr
}

type recordingPoster struct {
	posts []posted
}

func (p *recordingPoster) PostMessage(hwnd win32.HWND, msg uint32, wParam, lParam uintptr) error {
	p.posts = append(p.posts, posted{hwnd, msg, wParam, lParam})
	return nil
}

func newDispatcher(insp *fakeInspector, poster *recordingPoster, router events.Sender) *Dispatcher {
	logger := logging.Nop()
	return NewDispatcher(
		constants.HotkeyID,
		target.NewFilter(insp, logger),
		keystroke.NewForwarder(poster, logger),
		router,
		logger,
	)
}

// received closes router and returns what it delivered.
func received(router *events.Router) []events.Event {
	router.Close()
	var got []events.Event
	for ev := range router.Events() {
		got = append(got, ev)
	}
	return got
}

func hotkeyMsg(id int32) win32.Message {
	return win32.Message{Msg: win32.WM_HOTKEY, WParam: uintptr(id)}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  win32.Message
		want Action
	}{
		{"our hotkey", hotkeyMsg(constants.HotkeyID), ForwardKey},
		{"other hotkey", hotkeyMsg(7), Dispatch},
		{"dpi", win32.Message{Msg: win32.WM_DPICHANGED}, NotifyDpi},
		{"colour", win32.Message{Msg: win32.WM_DWMCOLORIZATIONCOLORCHANGED}, NotifyColor},
		{"key down", win32.Message{Msg: win32.WM_KEYDOWN}, Dispatch},
		{"null", win32.Message{Msg: win32.WM_NULL}, Dispatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.msg, constants.HotkeyID))
		})
	}
}

func TestHotkeyForwardsToEditor(t *testing.T) {
	insp := &fakeInspector{
		foreground: 0x42,
		titles:     map[win32.HWND]string{0x42: "foo.ts - VS Code"},
	}
	poster := &recordingPoster{}
	router := events.NewRouter(4)
	d := newDispatcher(insp, poster, router)

	assert.True(t, d.Handle(hotkeyMsg(constants.HotkeyID)))

	require.Len(t, poster.posts, 2)
	assert.Equal(t, posted{0x42, win32.WM_KEYDOWN, win32.VK_OEM_3, keystroke.KeyLParam}, poster.posts[0])
	assert.Equal(t, posted{0x42, win32.WM_KEYUP, win32.VK_OEM_3, keystroke.KeyLParam}, poster.posts[1])
	assert.Empty(t, received(router))
}

func TestHotkeyIgnoredOutsideEditor(t *testing.T) {
	tests := []struct {
		name string
		insp *fakeInspector
	}{
		{"no foreground", &fakeInspector{}},
		{"notepad", &fakeInspector{
			foreground: 0x43,
			titles:     map[win32.HWND]string{0x43: "Untitled - Notepad"},
		}},
		{"title unreadable", &fakeInspector{foreground: 0x44}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poster := &recordingPoster{}
			d := newDispatcher(tt.insp, poster, events.NewRouter(1))

			assert.True(t, d.Handle(hotkeyMsg(constants.HotkeyID)))
			assert.Empty(t, poster.posts)
		})
	}
}

func TestNotificationsGoToRouter(t *testing.T) {
	poster := &recordingPoster{}
	router := events.NewRouter(4)
	d := newDispatcher(&fakeInspector{}, poster, router)

	assert.True(t, d.Handle(win32.Message{Msg: win32.WM_DPICHANGED}))
	assert.True(t, d.Handle(win32.Message{Msg: win32.WM_DWMCOLORIZATIONCOLORCHANGED}))

	assert.Equal(t, []events.Event{events.SystemDpiChanged, events.SystemColorChanged}, received(router))
	assert.Empty(t, poster.posts)
}

func TestFullRouterDoesNotBlock(t *testing.T) {
	router := events.NewRouter(1)
	d := newDispatcher(&fakeInspector{}, &recordingPoster{}, router)

	// One may sit with the forwarder, one in the queue; the rest are dropped.
	for i := 0; i < 4; i++ {
		assert.True(t, d.Handle(win32.Message{Msg: win32.WM_DPICHANGED}))
	}
	assert.GreaterOrEqual(t, router.DroppedEventCount(), int64(2))
}

func TestOtherMessagesAreNotConsumed(t *testing.T) {
	poster := &recordingPoster{}
	d := newDispatcher(&fakeInspector{foreground: 0x42}, poster, events.NewRouter(1))

	assert.False(t, d.Handle(hotkeyMsg(99)))
	assert.False(t, d.Handle(win32.Message{Msg: win32.WM_COMMAND}))
	assert.Empty(t, poster.posts)
}

func TestDefaultHotkey(t *testing.T) {
	hk := DefaultHotkey()
	assert.Equal(t, uint32(win32.MOD_CONTROL), hk.Modifiers)
	assert.Equal(t, uint32(0xC0), hk.Key)
	assert.Equal(t, int32(2333), hk.ID)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "forward-key", ForwardKey.String())
	assert.Equal(t, "unknown", Action(42).String())
}

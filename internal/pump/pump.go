// Package pump classifies the messages drained from the native queue of the
// thread that owns the hotkey, and acts on them.
package pump

import (
	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/keystroke"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/target"
	"github.com/ctrltick/ctrltick/internal/win32"
)

// Hotkey is a system-wide key combination registered for the pump thread.
type Hotkey struct {
	Modifiers uint32
	Key       uint32
	ID        int32
}

// DefaultHotkey is Ctrl+`.
func DefaultHotkey() Hotkey {
	return Hotkey{
		Modifiers: win32.MOD_CONTROL,
		Key:       win32.VK_OEM_3,
		ID:        constants.HotkeyID,
	}
}

// Action is what the pump does with a message.
type Action int

const (
	// Dispatch hands the message to the default translate/dispatch path.
	Dispatch Action = iota
	// ForwardKey checks the foreground window and forwards the backtick.
	ForwardKey
	// NotifyDpi tells the tray worker the display scale changed.
	NotifyDpi
	// NotifyColor tells the tray worker the theme changed.
	NotifyColor
)

func (a Action) String() string {
	switch a {
	case Dispatch:
		return "dispatch"
	case ForwardKey:
		return "forward-key"
	case NotifyDpi:
		return "notify-dpi"
	case NotifyColor:
		return "notify-color"
	default:
		return "unknown"
	}
}

// Classify decides what to do with msg. Hotkeys with another id are
// dispatched normally.
func Classify(msg win32.Message, hotkeyID int32) Action {
	switch msg.Msg {
	case win32.WM_HOTKEY:
		if msg.WParam == uintptr(hotkeyID) {
			return ForwardKey
		}
	case win32.WM_DPICHANGED:
		return NotifyDpi
	case win32.WM_DWMCOLORIZATIONCOLORCHANGED:
		return NotifyColor
	}
	return Dispatch
}

// Dispatcher carries out classified actions. It runs on the pump thread and
// never blocks on the tray worker.
type Dispatcher struct {
	hotkeyID  int32
	filter    *target.Filter
	forwarder *keystroke.Forwarder
	router    events.Sender
	logger    *logging.Logger
}

// NewDispatcher creates a dispatcher for hotkey id hotkeyID.
func NewDispatcher(hotkeyID int32, filter *target.Filter, forwarder *keystroke.Forwarder, router events.Sender, logger *logging.Logger) *Dispatcher {
	return &Dispatcher{
		hotkeyID:  hotkeyID,
		filter:    filter,
		forwarder: forwarder,
		router:    router,
		logger:    logger,
	}
}

// Handle acts on msg and reports whether it was consumed. Unconsumed messages
// go through the default dispatch path.
func (d *Dispatcher) Handle(msg win32.Message) bool {
	switch Classify(msg, d.hotkeyID) {
	case ForwardKey:
		d.onHotkey()
		return true
	case NotifyDpi:
		d.notify(events.SystemDpiChanged)
		return true
	case NotifyColor:
		d.notify(events.SystemColorChanged)
		return true
	default:
		return false
	}
}

func (d *Dispatcher) onHotkey() {
	hwnd := d.filter.Foreground()
	if !d.filter.IsTarget(hwnd) {
		d.logger.Debug().Uint64("hwnd", uint64(hwnd)).Msg("Hotkey outside target window, ignored")
		return
	}
	d.forwarder.Forward(hwnd)
	d.logger.Debug().Uint64("hwnd", uint64(hwnd)).Msg("Backtick forwarded")
}

func (d *Dispatcher) notify(ev events.Event) {
	if !d.router.Send(ev) {
		d.logger.Warn().Stringer("event", ev).Msg("Event dropped")
	}
}

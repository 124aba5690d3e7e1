//go:build windows

package tray

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/icons"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/win32"
)

const (
	windowClass = "ctrltick_tray"
	iconID      = 1

	// msgNotify is the notification icon callback message.
	msgNotify = win32.WM_APP + 1
	// msgDestroy asks the owner thread to tear the tray down.
	msgDestroy = win32.WM_APP + 2
)

// ErrClosed is returned when using a tray that has been destroyed.
var ErrClosed = errors.New("tray: closed")

var (
	registerOnce sync.Once
	registerErr  error

	// Only one tray exists per process; the window procedure dispatches to it.
	activeMu sync.Mutex
	active   *Win32Tray
)

// Options configures a Win32Tray.
type Options struct {
	Tooltip string
	Icon    icons.Asset
	Menu    []MenuEntry
	// Sender receives menu commands and theme/DPI notifications sent to the
	// tray window.
	Sender events.Sender
	Logger *logging.Logger
}

// Win32Tray is a notification area icon backed by a hidden window. It must
// be created on the thread that runs the message pump.
type Win32Tray struct {
	hwnd     win32.HWND
	menu     uintptr
	owner    uint32
	sender   events.Sender
	commands map[uint32]events.Event
	icons    *icons.HandleCache[uintptr]
	logger   *logging.Logger

	// taskbarCreated is the broadcast Explorer sends after restarting.
	taskbarCreated uint32

	gate ownerGate

	mu       sync.Mutex
	nid      win32.NOTIFYICONDATA
	closed   bool
	closeErr error
}

// New creates the hidden window, its menu and the notification icon.
func New(opts Options) (*Win32Tray, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	instance := win32.ModuleHandle()
	className, err := windows.UTF16PtrFromString(windowClass)
	if err != nil {
		return nil, err
	}
	registerOnce.Do(func() {
		registerErr = win32.RegisterClass(&win32.WNDCLASSEX{
			LpfnWndProc:   windows.NewCallback(wndProc),
			HInstance:     instance,
			LpszClassName: className,
		})
	})
	if registerErr != nil {
		return nil, fmt.Errorf("failed to register tray window class: %w", registerErr)
	}

	cache, err := icons.NewHandleCache(constants.IconHandleCacheSize, loadIcon, win32.DestroyIcon)
	if err != nil {
		return nil, err
	}

	t := &Win32Tray{
		owner:    win32.CurrentThreadID(),
		sender:   opts.Sender,
		commands: make(map[uint32]events.Event),
		icons:    cache,
		logger:   logger,
	}

	if t.taskbarCreated, err = win32.RegisterWindowMessage("TaskbarCreated"); err != nil {
		logger.Warn().Err(err).Msg("Explorer restarts will not restore the tray icon")
	}

	title, err := windows.UTF16PtrFromString(constants.AppName)
	if err != nil {
		return nil, err
	}
	// The window procedure runs during CreateWindowEx, so the tray must be
	// registered first.
	if err := claim(t); err != nil {
		return nil, err
	}
	if t.hwnd, err = win32.CreateHiddenWindow(className, title, instance); err != nil {
		release(t)
		return nil, fmt.Errorf("failed to create tray window: %w", err)
	}

	if err := t.buildMenu(opts.Menu); err != nil {
		t.destroy()
		return nil, err
	}

	hicon, err := t.icons.Get(opts.Icon)
	if err != nil {
		t.destroy()
		return nil, err
	}

	t.nid = win32.NOTIFYICONDATA{
		Hwnd:             uintptr(t.hwnd),
		UID:              iconID,
		UFlags:           win32.NIF_MESSAGE | win32.NIF_ICON | win32.NIF_TIP,
		UCallbackMessage: msgNotify,
		HIcon:            hicon,
	}
	setTooltip(&t.nid, opts.Tooltip)

	if err := win32.ShellNotifyIcon(win32.NIM_ADD, &t.nid); err != nil {
		t.destroy()
		return nil, fmt.Errorf("failed to add tray icon: %w", err)
	}

	logger.Info().Str("icon", opts.Icon.Name).Msg("Tray icon created")
	return t, nil
}

func (t *Win32Tray) buildMenu(entries []MenuEntry) error {
	menu, err := win32.CreatePopupMenu()
	if err != nil {
		return fmt.Errorf("failed to create tray menu: %w", err)
	}
	t.menu = menu

	for _, e := range entries {
		if e.Separator {
			if err := win32.AppendMenu(menu, win32.MF_SEPARATOR, 0, ""); err != nil {
				return err
			}
			continue
		}
		flags := uint32(win32.MF_STRING)
		if e.Checkable && e.Checked {
			flags |= win32.MF_CHECKED
		}
		if err := win32.AppendMenu(menu, flags, uintptr(e.Item), e.Label); err != nil {
			return fmt.Errorf("failed to add menu item %q: %w", e.Label, err)
		}
		t.commands[uint32(e.Item)] = e.Event
	}
	return nil
}

func setTooltip(nid *win32.NOTIFYICONDATA, tip string) {
	u, err := windows.UTF16FromString(tip)
	if err != nil {
		return
	}
	if len(u) > len(nid.SzTip) {
		u = u[:len(nid.SzTip)-1]
		u = append(u, 0)
	}
	copy(nid.SzTip[:], u)
}

func loadIcon(asset icons.Asset) (uintptr, error) {
	img, err := asset.Image()
	if err != nil {
		return 0, err
	}
	return win32.CreateIconFromResource(img.Data, img.Width, img.Height)
}

// SetIcon swaps the notification icon.
func (t *Win32Tray) SetIcon(asset icons.Asset) error {
	hicon, err := t.icons.Get(asset)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	t.nid.HIcon = hicon
	return win32.ShellNotifyIcon(win32.NIM_MODIFY, &t.nid)
}

// SetChecked updates the check mark of a menu item.
func (t *Win32Tray) SetChecked(item MenuItem, checked bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	return win32.CheckMenuItem(t.menu, uint32(item), checked)
}

// Close removes the icon and destroys the window. From any thread other than
// the owner it blocks until the owner's message pump has done the teardown;
// once the pump has stopped (see Detach) it returns ErrClosed instead.
func (t *Win32Tray) Close() error {
	switch t.gate.route(win32.CurrentThreadID() == t.owner) {
	case closeDirect:
		t.destroy()
	case closeViaOwner:
		win32.SendMessage(t.hwnd, msgDestroy, 0, 0)
	case closeRefused:
		return ErrClosed
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closeErr
}

// Detach records that the owner thread has left its message loop. Call it
// on the owner thread right after the pump returns.
func (t *Win32Tray) Detach() {
	t.gate.detach()
}

// destroy runs on the owner thread. Safe to call more than once.
func (t *Win32Tray) destroy() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true

	var errs []error
	if t.nid.Hwnd != 0 {
		if err := win32.ShellNotifyIcon(win32.NIM_DELETE, &t.nid); err != nil {
			errs = append(errs, err)
		}
	}
	if t.menu != 0 {
		win32.DestroyMenu(t.menu)
		t.menu = 0
	}
	t.mu.Unlock()

	// DestroyWindow re-enters wndProc, so the lock is released first.
	if t.hwnd != 0 {
		if err := win32.DestroyWindow(t.hwnd); err != nil {
			errs = append(errs, err)
		}
	}
	t.logger.Debug().Int("icons", t.icons.Len()).Msg("Releasing icon handles")
	t.icons.Purge()

	t.mu.Lock()
	t.closeErr = errors.Join(errs...)
	t.mu.Unlock()

	release(t)
	t.logger.Debug().Msg("Tray destroyed")
}

func claim(t *Win32Tray) error {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active != nil {
		return errors.New("tray: already created")
	}
	active = t
	return nil
}

func release(t *Win32Tray) {
	activeMu.Lock()
	defer activeMu.Unlock()
	if active == t {
		active = nil
	}
}

// readd restores the icon after Explorer restarted.
func (t *Win32Tray) readd() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if err := win32.ShellNotifyIcon(win32.NIM_ADD, &t.nid); err != nil {
		t.logger.Warn().Err(err).Msg("Failed to restore tray icon after Explorer restart")
		return
	}
	t.logger.Info().Msg("Tray icon restored after Explorer restart")
}

func (t *Win32Tray) send(ev events.Event) {
	if t.sender == nil {
		return
	}
	if !t.sender.Send(ev) {
		t.logger.Warn().Stringer("event", ev).Msg("Event dropped")
	}
}

func wndProc(hwnd, msg, wParam, lParam uintptr) uintptr {
	activeMu.Lock()
	t := active
	activeMu.Unlock()
	if t == nil {
		return win32.DefWindowProc(win32.HWND(hwnd), uint32(msg), wParam, lParam)
	}

	switch m := uint32(msg); {
	case m == msgNotify:
		if lParam == win32.WM_RBUTTONUP || lParam == win32.WM_LBUTTONUP {
			t.showMenu()
		}
		return 0
	case m == win32.WM_COMMAND:
		if ev, ok := t.commands[uint32(wParam&0xFFFF)]; ok {
			t.send(ev)
		}
		return 0
	case m == msgDestroy:
		t.destroy()
		return 0
	case m == win32.WM_DPICHANGED:
		t.send(events.SystemDpiChanged)
	case m == win32.WM_DWMCOLORIZATIONCOLORCHANGED:
		t.send(events.SystemColorChanged)
	case m == win32.WM_SETTINGCHANGE:
		if isImmersiveColorSet(lParam) {
			t.send(events.SystemColorChanged)
		}
	case t.taskbarCreated != 0 && m == t.taskbarCreated:
		t.readd()
		return 0
	}
	return win32.DefWindowProc(win32.HWND(hwnd), uint32(msg), wParam, lParam)
}

func (t *Win32Tray) showMenu() {
	t.mu.Lock()
	menu, closed := t.menu, t.closed
	t.mu.Unlock()
	if closed {
		return
	}
	if err := win32.TrackPopupMenu(menu, t.hwnd); err != nil {
		t.logger.Warn().Err(err).Msg("Failed to show tray menu")
	}
}

func isImmersiveColorSet(lParam uintptr) bool {
	if lParam == 0 {
		return false
	}
	return IsColorSetting(windows.UTF16PtrToString((*uint16)(unsafe.Pointer(lParam))))
}

//go:build !windows

package tray

import (
	"errors"

	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/icons"
	"github.com/ctrltick/ctrltick/internal/logging"
)

// ErrUnsupported is returned by New outside Windows.
var ErrUnsupported = errors.New("tray: only supported on Windows")

// Options configures a Win32Tray.
type Options struct {
	Tooltip string
	Icon    icons.Asset
	Menu    []MenuEntry
	Sender  events.Sender
	Logger  *logging.Logger
}

// Win32Tray is unavailable on this platform.
type Win32Tray struct{}

// New always fails outside Windows.
func New(Options) (*Win32Tray, error) {
	return nil, ErrUnsupported
}

func (*Win32Tray) SetIcon(icons.Asset) error       { return ErrUnsupported }
func (*Win32Tray) SetChecked(MenuItem, bool) error { return ErrUnsupported }
func (*Win32Tray) Close() error                    { return ErrUnsupported }
func (*Win32Tray) Detach()                         {}

//go:build windows

package pump

import (
	"errors"
	"fmt"

	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/win32"
)

// Pump owns the native message queue of the calling OS thread. Create it, and
// call RegisterHotkey and Run, from a goroutine locked to its thread.
type Pump struct {
	hotkey     Hotkey
	dispatcher *Dispatcher
	logger     *logging.Logger
	tid        uint32
	registered bool
}

// New binds a pump to the current thread.
func New(hotkey Hotkey, dispatcher *Dispatcher, logger *logging.Logger) *Pump {
	return &Pump{
		hotkey:     hotkey,
		dispatcher: dispatcher,
		logger:     logger,
		tid:        win32.CurrentThreadID(),
	}
}

// RegisterHotkey claims the hotkey for this thread. It may succeed only once;
// the registration lives until the process exits.
func (p *Pump) RegisterHotkey() error {
	if p.registered {
		return errors.New("hotkey already registered")
	}
	if err := win32.RegisterHotKey(0, p.hotkey.ID, p.hotkey.Modifiers, p.hotkey.Key); err != nil {
		return fmt.Errorf("failed to register Ctrl+` (is another program using it?): %w", err)
	}
	p.registered = true
	p.logger.Info().Int32("id", p.hotkey.ID).Msg("Hotkey registered")
	return nil
}

// Run drains the queue until WM_QUIT. It returns an error only when the
// queue itself fails.
func (p *Pump) Run() error {
	var msg win32.MSG
	for {
		ret, err := win32.GetMessage(&msg)
		switch {
		case ret == -1:
			return err
		case ret == 0:
			p.logger.Debug().Msg("WM_QUIT received, message pump stopping")
			return nil
		}

		if !p.dispatcher.Handle(msg.Portable()) {
			win32.TranslateAndDispatch(&msg)
		}
	}
}

// Quitter returns a signaler that posts WM_QUIT to this pump's thread.
func (p *Pump) Quitter() ThreadQuitter {
	return ThreadQuitter{ThreadID: p.tid}
}

// ThreadQuitter stops a pump from another goroutine.
type ThreadQuitter struct {
	ThreadID uint32
}

// SignalQuit posts WM_QUIT to the thread.
func (q ThreadQuitter) SignalQuit() error {
	return win32.PostThreadMessage(q.ThreadID, win32.WM_QUIT, 0, 0)
}

//go:build windows

package app

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/ctrltick/ctrltick/internal/autolaunch"
	"github.com/ctrltick/ctrltick/internal/config"
	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/keystroke"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/pump"
	"github.com/ctrltick/ctrltick/internal/target"
	"github.com/ctrltick/ctrltick/internal/theme"
	"github.com/ctrltick/ctrltick/internal/tray"
	"github.com/ctrltick/ctrltick/internal/win32"
)

// Run starts the tray and the hotkey pump on the calling goroutine, which is
// locked to its OS thread, and returns once the pump has stopped and the tray
// worker has finished. Cancelling ctx behaves like choosing Exit in the menu.
func Run(ctx context.Context, opts config.Options, logger *logging.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := win32.EnablePerMonitorDPIAwareness(); err != nil {
		logger.Debug().Err(err).Msg("Per-monitor DPI awareness not enabled")
	}

	adapter, autoLaunchState := AutoLaunchSnapshot(func() (autolaunch.Adapter, error) {
		return autolaunch.New(constants.AppName, opts.ExePath)
	}, logger.Named("autolaunch"))

	router := events.NewRouter(constants.EventRouterBuffer)
	defer router.Close()

	source := theme.NewSystemSource(logger.Named("theme"))
	selector := SelectorFor(opts.IconPolicy)
	params := source.Params()

	handle, err := tray.New(tray.Options{
		Tooltip: constants.TrayTooltip,
		Icon:    selector.Select(params),
		Menu:    tray.BuildMenu(autoLaunchState),
		Sender:  router,
		Logger:  logger.Named("tray"),
	})
	if err != nil {
		return fmt.Errorf("failed to create tray icon: %w", err)
	}
	// Idempotent; only does work when the pump stopped without an Exit event.
	defer handle.Close()

	dispatcher := pump.NewDispatcher(
		constants.HotkeyID,
		target.NewFilter(target.SystemInspector{}, logger.Named("target")),
		keystroke.NewForwarder(keystroke.SystemPoster{}, logger.Named("keystroke")),
		router,
		logger.Named("pump"),
	)
	p := pump.New(pump.DefaultHotkey(), dispatcher, logger.Named("pump"))
	if err := p.RegisterHotkey(); err != nil {
		return err
	}

	controller := tray.NewController(tray.Config{
		Handle:        handle,
		AutoLaunch:    adapter,
		Theme:         source,
		Selector:      selector,
		InitialParams: params,
		Quit:          p.Quitter(),
		Logger:        logger.Named("worker"),
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		controller.Run(router.Events())
	}()
	go func() {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutdown requested")
			if !router.Send(events.Exit) {
				logger.Warn().Msg("Shutdown request not delivered, message pump already stopped")
			}
		case <-done:
		}
	}()

	logger.Info().
		Str("exe", opts.ExePath).
		Str("icon_policy", string(opts.IconPolicy)).
		Msg("ctrltick running")

	runErr := p.Run()
	// From here on the worker must not wait on this thread.
	handle.Detach()
	router.Close()
	awaitWorker(done)

	if dropped := router.DroppedEventCount(); dropped > 0 {
		logger.Warn().Int64("dropped", dropped).Msg("Theme notifications dropped while the worker was busy")
	}
	if runErr != nil {
		return fmt.Errorf("message pump failed: %w", runErr)
	}
	logger.Info().Msg("ctrltick stopped")
	return nil
}

// sentMessagePoll is how often the owner thread services sent messages while
// it waits for the worker.
const sentMessagePoll = 20 * time.Millisecond

// awaitWorker waits for the worker while still running window procedures for
// messages sent to this thread, so a teardown the worker sent just before the
// pump stopped cannot deadlock.
func awaitWorker(done <-chan struct{}) {
	ticker := time.NewTicker(sentMessagePoll)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			win32.ProcessSentMessages()
		}
	}
}

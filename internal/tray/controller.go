package tray

import (
	"os"
	"sync/atomic"

	"github.com/ctrltick/ctrltick/internal/autolaunch"
	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/icons"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/theme"
)

// Handle is the native tray icon. Close must run its teardown on the thread
// that owns the tray window while that thread is still pumping messages.
type Handle interface {
	SetIcon(asset icons.Asset) error
	SetChecked(item MenuItem, checked bool) error
	Close() error
}

// QuitSignaler asks the message pump thread to leave its loop.
type QuitSignaler interface {
	SignalQuit() error
}

// State is the lifecycle of a Controller.
type State int32

const (
	Running State = iota
	Exiting
	Terminated
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Exiting:
		return "exiting"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Config wires a Controller.
type Config struct {
	Handle Handle
	// AutoLaunch is nil when auto-launch is unavailable.
	AutoLaunch autolaunch.Adapter
	Theme      theme.Source
	Selector   icons.Selector
	// InitialParams are the parameters the tray icon was built with.
	InitialParams icons.Params
	Quit          QuitSignaler
	// Exit terminates the process. Defaults to os.Exit.
	Exit   func(code int)
	Logger *logging.Logger
}

// Controller is the tray worker. It is the only user of the Handle.
type Controller struct {
	handle     Handle
	autoLaunch autolaunch.Adapter
	theme      theme.Source
	selector   icons.Selector
	params     icons.Params
	quit       QuitSignaler
	exit       func(code int)
	logger     *logging.Logger
	state      atomic.Int32
}

// NewController creates a controller in the Running state.
func NewController(cfg Config) *Controller {
	exit := cfg.Exit
	if exit == nil {
		exit = os.Exit
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller{
		handle:     cfg.Handle,
		autoLaunch: cfg.AutoLaunch,
		theme:      cfg.Theme,
		selector:   cfg.Selector,
		params:     cfg.InitialParams,
		quit:       cfg.Quit,
		exit:       exit,
		logger:     logger,
	}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return State(c.state.Load())
}

// Run drains events until Exit has been handled or the channel is closed.
// Events queued behind Exit are never processed.
func (c *Controller) Run(ch <-chan events.Event) {
	for ev := range ch {
		if c.process(ev) {
			return
		}
	}
	// Channel closed without Exit: the pump is gone, so the handle cannot be
	// torn down from here.
	c.state.Store(int32(Terminated))
	c.logger.Debug().Msg("Event channel closed, tray worker stopping")
}

// process handles one event and reports whether the worker must stop.
func (c *Controller) process(ev events.Event) bool {
	c.logger.Debug().Stringer("event", ev).Msg("Tray event")

	switch ev {
	case events.Exit:
		c.shutdown()
		return true
	case events.ToggleAutoLaunch:
		c.toggleAutoLaunch()
	case events.SystemDpiChanged, events.SystemColorChanged:
		c.refreshIcon()
	default:
		c.logger.Warn().Int("event", int(ev)).Msg("Unknown tray event")
	}
	return false
}

// toggleAutoLaunch flips the external auto-launch state, then mirrors the
// new state in the menu. Failures leave the menu untouched.
func (c *Controller) toggleAutoLaunch() {
	if c.autoLaunch == nil {
		c.logger.Debug().Msg("Auto-launch unavailable, ignoring toggle")
		return
	}

	enabled, err := c.autoLaunch.IsEnabled()
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to query auto-launch state")
		return
	}

	if enabled {
		if err := c.autoLaunch.Disable(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to disable auto-launch")
			return
		}
	} else {
		if err := c.autoLaunch.Enable(); err != nil {
			c.logger.Warn().Err(err).Msg("Failed to enable auto-launch")
			return
		}
	}

	if err := c.handle.SetChecked(ItemAutoLaunch, !enabled); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to update Auto Launch check mark")
		return
	}
	c.logger.Info().Bool("enabled", !enabled).Msg("Auto-launch toggled")
}

// refreshIcon swaps the tray icon when theme or scale actually changed.
func (c *Controller) refreshIcon() {
	params := c.theme.Params()
	if params == c.params {
		return
	}

	asset := c.selector.Select(params)
	if err := c.handle.SetIcon(asset); err != nil {
		c.logger.Warn().Err(err).Str("asset", asset.Name).Msg("Failed to update tray icon")
		return
	}
	c.params = params
	c.logger.Info().
		Bool("light", params.LightMode).
		Float64("scale", params.ScalingFactor).
		Str("asset", asset.Name).
		Msg("Tray icon updated")
}

// shutdown destroys the tray, then tells the pump to quit. The order matters:
// destroying the tray needs the pump to still be running.
func (c *Controller) shutdown() {
	c.state.Store(int32(Exiting))

	if err := c.handle.Close(); err != nil {
		c.logger.Warn().Err(err).Msg("Failed to remove tray icon")
	}

	if err := c.quit.SignalQuit(); err != nil {
		c.logger.Error().Err(err).Msg("Failed to signal message pump, terminating process")
		c.exit(constants.ExitShutdownSignalFailure)
	}

	c.state.Store(int32(Terminated))
	c.logger.Info().Msg("Tray worker stopped")
}

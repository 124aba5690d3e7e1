package tray

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/events"
	"github.com/ctrltick/ctrltick/internal/icons"
	"github.com/ctrltick/ctrltick/internal/theme"
)

// fakeHandle records every call the controller makes, in order.
type fakeHandle struct {
	calls      *[]string
	checked    map[MenuItem]bool
	icons      []string
	setIconErr error
	closeErr   error
}

func newFakeHandle(calls *[]string) *fakeHandle {
	return &fakeHandle{calls: calls, checked: map[MenuItem]bool{}}
}

func (h *fakeHandle) SetIcon(asset icons.Asset) error {
	*h.calls = append(*h.calls, "set-icon")
	if h.setIconErr != nil {
		return h.setIconErr
	}
	h.icons = append(h.icons, asset.Name)
	return nil
}

func (h *fakeHandle) SetChecked(item MenuItem, checked bool) error {
	*h.calls = append(*h.calls, "set-checked")
	h.checked[item] = checked
	return nil
}

func (h *fakeHandle) Close() error {
	*h.calls = append(*h.calls, "close")
	return h.closeErr
}

type fakeQuit struct {
	calls *[]string
	err   error
}

func (q *fakeQuit) SignalQuit() error {
	*q.calls = append(*q.calls, "quit")
	return q.err
}

// fakeAutoLaunch stands in for the registry-backed adapter.
type fakeAutoLaunch struct {
	enabled    bool
	queryErr   error
	enableErr  error
	disableErr error
}

func (a *fakeAutoLaunch) IsEnabled() (bool, error) {
	return a.enabled, a.queryErr
}

func (a *fakeAutoLaunch) Enable() error {
	if a.enableErr != nil {
		return a.enableErr
	}
	a.enabled = true
	return nil
}

func (a *fakeAutoLaunch) Disable() error {
	if a.disableErr != nil {
		return a.disableErr
	}
	a.enabled = false
	return nil
}

// mutableSource lets a test change what the theme source reports.
type mutableSource struct {
	params icons.Params
}

func (s *mutableSource) Params() icons.Params {
	return s.params
}

type harness struct {
	calls  []string
	handle *fakeHandle
	quit   *fakeQuit
	exits  []int
}

func newHarness(t *testing.T, cfg Config) (*Controller, *harness) {
	t.Helper()
	h := &harness{}
	h.handle = newFakeHandle(&h.calls)
	h.quit = &fakeQuit{calls: &h.calls}

	cfg.Handle = h.handle
	cfg.Quit = h.quit
	cfg.Exit = func(code int) {
		h.calls = append(h.calls, "exit")
		h.exits = append(h.exits, code)
	}
	if cfg.Theme == nil {
		cfg.Theme = theme.Static{ScalingFactor: 1}
	}
	if cfg.Selector == nil {
		cfg.Selector = icons.NewMultiResolutionPolicy()
	}
	if cfg.InitialParams == (icons.Params{}) {
		cfg.InitialParams = cfg.Theme.Params()
	}
	return NewController(cfg), h
}

// feed runs the controller over evs and returns once Run has stopped.
func feed(c *Controller, evs ...events.Event) {
	ch := make(chan events.Event, len(evs))
	for _, ev := range evs {
		ch <- ev
	}
	close(ch)
	c.Run(ch)
}

func TestToggleAutoLaunchRoundTrip(t *testing.T) {
	al := &fakeAutoLaunch{}
	c, h := newHarness(t, Config{AutoLaunch: al})

	feed(c, events.ToggleAutoLaunch)
	assert.True(t, al.enabled)
	assert.True(t, h.handle.checked[ItemAutoLaunch])

	feed(c, events.ToggleAutoLaunch)
	assert.False(t, al.enabled)
	assert.False(t, h.handle.checked[ItemAutoLaunch])
}

func TestToggleAutoLaunchMirrorsExternalState(t *testing.T) {
	// Enabled behind our back, e.g. by the autolaunch subcommand.
	al := &fakeAutoLaunch{enabled: true}
	c, h := newHarness(t, Config{AutoLaunch: al})

	feed(c, events.ToggleAutoLaunch)
	assert.False(t, al.enabled)
	assert.False(t, h.handle.checked[ItemAutoLaunch])
}

func TestToggleAutoLaunchFailuresLeaveMenuUnchanged(t *testing.T) {
	tests := []struct {
		name string
		al   *fakeAutoLaunch
	}{
		{"query fails", &fakeAutoLaunch{queryErr: errors.New("access denied")}},
		{"enable fails", &fakeAutoLaunch{enableErr: errors.New("access denied")}},
		{"disable fails", &fakeAutoLaunch{enabled: true, disableErr: errors.New("access denied")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.al.enabled
			c, h := newHarness(t, Config{AutoLaunch: tt.al})

			feed(c, events.ToggleAutoLaunch)
			assert.Empty(t, h.calls)
			assert.Equal(t, before, tt.al.enabled)
		})
	}
}

func TestToggleAutoLaunchWithoutAdapterIsIgnored(t *testing.T) {
	c, h := newHarness(t, Config{})

	feed(c, events.ToggleAutoLaunch)
	assert.Empty(t, h.calls)
	assert.Equal(t, Terminated, c.State())
}

func TestExitClosesBeforeSignallingQuit(t *testing.T) {
	c, h := newHarness(t, Config{})

	feed(c, events.Exit)
	assert.Equal(t, []string{"close", "quit"}, h.calls)
	assert.Empty(t, h.exits)
	assert.Equal(t, Terminated, c.State())
}

func TestExitStopsDraining(t *testing.T) {
	al := &fakeAutoLaunch{}
	src := &mutableSource{params: icons.Params{ScalingFactor: 1}}
	c, h := newHarness(t, Config{AutoLaunch: al, Theme: src})
	src.params = icons.Params{LightMode: true, ScalingFactor: 2}

	ch := make(chan events.Event, 4)
	ch <- events.Exit
	ch <- events.ToggleAutoLaunch
	ch <- events.SystemDpiChanged
	ch <- events.Exit

	c.Run(ch)
	assert.Equal(t, []string{"close", "quit"}, h.calls)
	assert.False(t, al.enabled)
	assert.Len(t, ch, 3, "events queued behind Exit must stay unread")
}

func TestExitCloseFailureStillSignalsQuit(t *testing.T) {
	c, h := newHarness(t, Config{})
	h.handle.closeErr = errors.New("window gone")

	feed(c, events.Exit)
	assert.Equal(t, []string{"close", "quit"}, h.calls)
	assert.Empty(t, h.exits)
}

func TestExitSignalFailureTerminatesProcess(t *testing.T) {
	c, h := newHarness(t, Config{})
	h.quit.err = errors.New("invalid thread id")

	feed(c, events.Exit, events.ToggleAutoLaunch)
	assert.Equal(t, []string{"close", "quit", "exit"}, h.calls)
	require.Len(t, h.exits, 1)
	assert.Equal(t, constants.ExitShutdownSignalFailure, h.exits[0])
	assert.Equal(t, Terminated, c.State())
}

func TestThemeChangeUpdatesIcon(t *testing.T) {
	src := &mutableSource{params: icons.Params{ScalingFactor: 1}}
	c, h := newHarness(t, Config{Theme: src})

	src.params = icons.Params{LightMode: true, ScalingFactor: 1.5}
	feed(c, events.SystemColorChanged)
	assert.Equal(t, []string{"terminal_box_icon-light-24x24.ico"}, h.handle.icons)

	src.params = icons.Params{LightMode: true, ScalingFactor: 3}
	feed(c, events.SystemDpiChanged)
	assert.Equal(t, []string{
		"terminal_box_icon-light-24x24.ico",
		"terminal_box_icon-light-48x48.ico",
	}, h.handle.icons)
}

func TestUnchangedParamsSkipIconUpdate(t *testing.T) {
	src := &mutableSource{params: icons.Params{ScalingFactor: 1.25}}
	c, h := newHarness(t, Config{Theme: src})

	feed(c, events.SystemDpiChanged, events.SystemColorChanged)
	assert.Empty(t, h.calls)
}

func TestFailedIconUpdateIsRetriedOnNextEvent(t *testing.T) {
	src := &mutableSource{params: icons.Params{ScalingFactor: 1}}
	c, h := newHarness(t, Config{Theme: src})
	h.handle.setIconErr = errors.New("shell not ready")

	src.params = icons.Params{ScalingFactor: 2}
	feed(c, events.SystemDpiChanged)
	assert.Empty(t, h.handle.icons)

	h.handle.setIconErr = nil
	feed(c, events.SystemDpiChanged)
	assert.Equal(t, []string{"terminal_box_icon-dark-32x32.ico"}, h.handle.icons)
}

func TestClosedChannelStopsWithoutTouchingHandle(t *testing.T) {
	c, h := newHarness(t, Config{})

	feed(c)
	assert.Empty(t, h.calls)
	assert.Equal(t, Terminated, c.State())
}

func TestUnknownEventIsSkipped(t *testing.T) {
	c, h := newHarness(t, Config{})

	feed(c, events.Event(99), events.Exit)
	assert.Equal(t, []string{"close", "quit"}, h.calls)
}

func TestBuildMenu(t *testing.T) {
	enabled := true
	menu := BuildMenu(&enabled)
	require.Len(t, menu, 3)
	assert.Equal(t, ItemAutoLaunch, menu[0].Item)
	assert.True(t, menu[0].Checkable)
	assert.True(t, menu[0].Checked)
	assert.Equal(t, events.ToggleAutoLaunch, menu[0].Event)
	assert.True(t, menu[1].Separator)
	assert.Equal(t, ItemExit, menu[2].Item)
	assert.Equal(t, events.Exit, menu[2].Event)

	menu = BuildMenu(nil)
	require.Len(t, menu, 2)
	assert.True(t, menu[0].Separator)
	assert.Equal(t, "Exit", menu[1].Label)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", Running.String())
	assert.Equal(t, "exiting", Exiting.String())
	assert.Equal(t, "terminated", Terminated.String())
	assert.Equal(t, "unknown", State(7).String())
}

func TestIsColorSetting(t *testing.T) {
	assert.True(t, IsColorSetting("ImmersiveColorSet"))
	assert.False(t, IsColorSetting("Policy"))
	assert.False(t, IsColorSetting(""))
}

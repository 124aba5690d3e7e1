// Package tray owns the notification area icon: the worker-side controller
// that reacts to events, and the native handle it drives.
package tray

import "github.com/ctrltick/ctrltick/internal/events"

// MenuItem is the command id of a tray menu entry.
type MenuItem uint32

const (
	// ItemAutoLaunch is the checkable "Auto Launch" entry.
	ItemAutoLaunch MenuItem = iota + 1
	// ItemExit is the "Exit" entry.
	ItemExit
)

// MenuEntry describes one line of the tray menu.
type MenuEntry struct {
	Item      MenuItem
	Label     string
	Event     events.Event
	Checkable bool
	Checked   bool
	Separator bool
}

// BuildMenu returns the tray menu. autoLaunch is the auto-launch state read
// at startup, or nil when it could not be determined, in which case the
// "Auto Launch" entry is left out.
func BuildMenu(autoLaunch *bool) []MenuEntry {
	var menu []MenuEntry
	if autoLaunch != nil {
		menu = append(menu, MenuEntry{
			Item:      ItemAutoLaunch,
			Label:     "Auto Launch",
			Event:     events.ToggleAutoLaunch,
			Checkable: true,
			Checked:   *autoLaunch,
		})
	}
	menu = append(menu,
		MenuEntry{Separator: true},
		MenuEntry{Item: ItemExit, Label: "Exit", Event: events.Exit},
	)
	return menu
}

// IsColorSetting reports whether a WM_SETTINGCHANGE area names the
// light/dark theme switch.
func IsColorSetting(area string) bool {
	return area == "ImmersiveColorSet"
}

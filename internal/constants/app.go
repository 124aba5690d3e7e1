package constants

// Application identity
const (
	// AppName is used for the auto-launch registry value, the log file name
	// and the tray window class.
	AppName = "ctrltick"

	// TrayTooltip is shown when hovering the notification area icon.
	TrayTooltip = "Fixing the issue where 「Ctrl+`」 doesn't work with some CJK keyboards/IMEs in VSCode. "
)

// Hotkey
const (
	// HotkeyID identifies the Ctrl+` registration in WM_HOTKEY's wParam.
	// Any value works since only one hotkey is registered per process.
	HotkeyID = 2333
)

// Event routing
const (
	// EventRouterBuffer - pending events past which theme/DPI notifications
	// are dropped and counted. User commands are always queued.
	EventRouterBuffer = 64
)

// Process exit codes
const (
	// ExitOK - graceful exit via the Exit menu item or WM_QUIT.
	ExitOK = 0

	// ExitStartupFailure - hotkey registration, tray construction or logger setup failed.
	ExitStartupFailure = 1

	// ExitShutdownSignalFailure - the tray worker destroyed the tray but could not
	// post WM_QUIT to the pump thread.
	ExitShutdownSignalFailure = 3
)

// Icon handle cache
const (
	// IconHandleCacheSize - native icon handles kept alive at once.
	// Ten assets exist, so this never evicts in practice.
	IconHandleCacheSize = 10
)

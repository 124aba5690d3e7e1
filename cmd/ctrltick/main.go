// ctrltick - forwards Ctrl+` to Visual Studio Code on Windows when a CJK
// keyboard layout or IME swallows it.
//
// Build for Windows:
//
//	GOOS=windows go build -ldflags "-H=windowsgui -X github.com/ctrltick/ctrltick/internal/version.Version=v0.2.1" ./cmd/ctrltick
//
// Features:
//   - Global Ctrl+` hotkey, forwarded only while VS Code has focus
//   - Tray icon that follows the light/dark theme and display scale
//   - Tray menu: Auto Launch toggle, Exit
package main

import (
	"os"

	"github.com/ctrltick/ctrltick/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}

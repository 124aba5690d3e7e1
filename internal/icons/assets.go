// Package icons holds the embedded tray icon assets and the policies that
// pick one for the current theme and display scale.
package icons

import (
	"embed"
	"fmt"
)

//go:embed assets/*.ico
var assetFS embed.FS

// Theme is the colour of the glyph, not of the taskbar behind it.
type Theme string

const (
	// ThemeLight is a light glyph, for dark taskbars.
	ThemeLight Theme = "light"
	// ThemeDark is a dark glyph, for light taskbars.
	ThemeDark Theme = "dark"
)

// Sizes are the nominal pixel sizes baked for each theme, in selection order.
var Sizes = []int{16, 24, 32, 48, 256}

// BaseSize is the tray icon size at 100% scaling.
const BaseSize = 16

// Asset is one embedded .ico file.
type Asset struct {
	Name  string
	Theme Theme
	Size  int
	Data  []byte
}

// Key identifies the asset in caches and logs.
func (a Asset) Key() string {
	return a.Name
}

func assetName(theme Theme, size int) string {
	return fmt.Sprintf("terminal_box_icon-%s-%dx%d.ico", theme, size, size)
}

// mustAsset loads an embedded asset. A missing file is a build defect.
func mustAsset(theme Theme, size int) Asset {
	name := assetName(theme, size)
	data, err := assetFS.ReadFile("assets/" + name)
	if err != nil {
		panic(fmt.Sprintf("icons: embedded asset %s missing: %v", name, err))
	}
	return Asset{Name: name, Theme: theme, Size: size, Data: data}
}

// Set returns the assets of one theme ordered as Sizes.
func Set(theme Theme) []Asset {
	set := make([]Asset, 0, len(Sizes))
	for _, size := range Sizes {
		set = append(set, mustAsset(theme, size))
	}
	return set
}

// all returns every embedded asset, light set first.
func all() []Asset {
	return append(Set(ThemeLight), Set(ThemeDark)...)
}

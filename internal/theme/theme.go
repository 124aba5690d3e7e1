// Package theme reads the taskbar theme and display scale that drive the
// tray icon choice.
package theme

import "github.com/ctrltick/ctrltick/internal/icons"

// BaseDPI is the DPI at 100% scaling.
const BaseDPI = 96

// Source reports the current icon parameters.
type Source interface {
	Params() icons.Params
}

// ParamsFrom maps raw system values to icon parameters. usesLightTheme is the
// SystemUsesLightTheme registry value; ok is false when it could not be read.
// A dark taskbar (value 0) gets the light glyph; an unreadable value falls
// back to the dark glyph.
func ParamsFrom(usesLightTheme uint64, ok bool, dpi uint32) icons.Params {
	if dpi == 0 {
		dpi = BaseDPI
	}
	return icons.Params{
		LightMode:     ok && usesLightTheme == 0,
		ScalingFactor: float64(dpi) / BaseDPI,
	}
}

// Static is a Source returning fixed parameters.
type Static icons.Params

// Params implements Source.
func (s Static) Params() icons.Params {
	return icons.Params(s)
}

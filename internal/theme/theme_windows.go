//go:build windows

package theme

import (
	"golang.org/x/sys/windows/registry"

	"github.com/ctrltick/ctrltick/internal/icons"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/win32"
)

const (
	personalizeKey       = `Software\Microsoft\Windows\CurrentVersion\Themes\Personalize`
	systemUsesLightTheme = "SystemUsesLightTheme"
)

// SystemSource reads the theme from the registry and the scale from user32.
type SystemSource struct {
	logger *logging.Logger
}

// NewSystemSource creates a Source backed by the running system.
func NewSystemSource(logger *logging.Logger) *SystemSource {
	return &SystemSource{logger: logger}
}

// Params implements Source. Read failures are logged and fall back to defaults.
func (s *SystemSource) Params() icons.Params {
	value, ok := s.readLightTheme()
	return ParamsFrom(value, ok, win32.SystemDPI())
}

func (s *SystemSource) readLightTheme() (uint64, bool) {
	key, err := registry.OpenKey(registry.CURRENT_USER, personalizeKey, registry.QUERY_VALUE)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to open Personalize key")
		return 0, false
	}
	defer key.Close()

	value, _, err := key.GetIntegerValue(systemUsesLightTheme)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to read SystemUsesLightTheme")
		return 0, false
	}
	return value, true
}

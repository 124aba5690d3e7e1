// Package app wires the hotkey pump, the tray and its worker together.
package app

import (
	"github.com/ctrltick/ctrltick/internal/autolaunch"
	"github.com/ctrltick/ctrltick/internal/config"
	"github.com/ctrltick/ctrltick/internal/icons"
	"github.com/ctrltick/ctrltick/internal/logging"
)

// SelectorFor returns the icon selector for policy.
func SelectorFor(policy config.IconPolicy) icons.Selector {
	if policy == config.IconPolicyPair {
		return icons.NewPairPolicy()
	}
	return icons.NewMultiResolutionPolicy()
}

// AutoLaunchSnapshot opens the auto-launch adapter and reads its state once
// for the initial menu. When either step fails the feature is switched off
// for this run: both return values are nil.
func AutoLaunchSnapshot(open func() (autolaunch.Adapter, error), logger *logging.Logger) (autolaunch.Adapter, *bool) {
	adapter, err := open()
	if err != nil {
		logger.Warn().Err(err).Msg("Auto-launch unavailable")
		return nil, nil
	}

	enabled, err := adapter.IsEnabled()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read auto-launch state, hiding menu item")
		return nil, nil
	}
	logger.Debug().Bool("enabled", enabled).Msg("Auto-launch state")
	return adapter, &enabled
}

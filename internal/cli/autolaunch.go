package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctrltick/ctrltick/internal/autolaunch"
	"github.com/ctrltick/ctrltick/internal/constants"
)

// newAutoLaunchCmd manages the login entry without starting the tray, for
// installers and scripts.
func newAutoLaunchCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autolaunch",
		Short: "Show or change whether " + constants.AppName + " starts at login",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print whether auto-launch is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := e.autoLaunch()
			if err != nil {
				return err
			}
			enabled, err := adapter.IsEnabled()
			if err != nil {
				return fmt.Errorf("failed to read auto-launch state: %w", err)
			}
			if enabled {
				fmt.Fprintln(cmd.OutOrStdout(), "enabled")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "disabled")
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := e.autoLaunch()
			if err != nil {
				return err
			}
			if err := adapter.Enable(); err != nil {
				return fmt.Errorf("failed to enable auto-launch: %w", err)
			}
			e.logger.Info().Str("exe", e.opts.ExePath).Msg("Auto-launch enabled")
			fmt.Fprintln(cmd.OutOrStdout(), "enabled")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Do not start at login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := e.autoLaunch()
			if err != nil {
				return err
			}
			if err := adapter.Disable(); err != nil {
				return fmt.Errorf("failed to disable auto-launch: %w", err)
			}
			e.logger.Info().Msg("Auto-launch disabled")
			fmt.Fprintln(cmd.OutOrStdout(), "disabled")
			return nil
		},
	})

	return cmd
}

func (e *env) autoLaunch() (autolaunch.Adapter, error) {
	adapter, err := e.openAutoLaunch(constants.AppName, e.opts.ExePath)
	if err != nil {
		return nil, fmt.Errorf("auto-launch: %w", err)
	}
	return adapter, nil
}

// Package cli provides the command-line interface for ctrltick.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ctrltick/ctrltick/internal/app"
	"github.com/ctrltick/ctrltick/internal/autolaunch"
	"github.com/ctrltick/ctrltick/internal/config"
	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/version"
)

// Runner starts the tray application.
type Runner func(ctx context.Context, opts config.Options, logger *logging.Logger) error

// AutoLaunchOpener builds the auto-launch adapter for an executable.
type AutoLaunchOpener func(appName, appPath string) (autolaunch.Adapter, error)

// env holds what commands share once flags are parsed.
type env struct {
	opts    config.Options
	verbose bool
	logger  *logging.Logger

	run            Runner
	openAutoLaunch AutoLaunchOpener
	executable     func() (string, error)
}

// NewRootCmd creates the root command. Running it without a subcommand starts
// the tray.
func NewRootCmd() *cobra.Command {
	return newRootCmd(newEnv())
}

func newEnv() *env {
	return &env{
		opts:           config.DefaultOptions(),
		run:            app.Run,
		openAutoLaunch: autolaunch.New,
		executable:     os.Executable,
	}
}

func newRootCmd(e *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Forward Ctrl+` to VS Code when an IME swallows it",
		Long: constants.AppName + ` ` + version.Version + ` - Built: ` + version.BuildTime + `
Registers Ctrl+` + "`" + ` system-wide and, when Visual Studio Code has focus, sends it the
backtick key press some CJK keyboard layouts and IMEs swallow. Lives in the
notification area; right-click the icon for Auto Launch and Exit.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e.logger.Info().
				Str("version", version.Version).
				Str("log_level", e.opts.LogLevel).
				Msg("Starting")
			if err := e.run(cmd.Context(), e.opts, e.logger); err != nil {
				e.logger.Error().Err(err).Msg("ctrltick failed")
				return err
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&e.opts.LogLevel, "log-level", e.opts.LogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&e.opts.LogFile, "log-file", "", "Log file path (default: next to the executable)")
	flags.BoolVar(&e.opts.NoLogFile, "no-log-file", false, "Disable file logging")
	flags.StringVar((*string)(&e.opts.IconPolicy), "icon-policy", string(e.opts.IconPolicy), "Tray icon selection: multi (scale-aware) or pair (light/dark only)")
	flags.BoolVarP(&e.verbose, "verbose", "v", false, "Verbose output (same as --log-level debug)")

	rootCmd.Version = version.Version + " (" + version.BuildTime + ")"
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newAutoLaunchCmd(e))
	return rootCmd
}

// setup validates flags and creates the logger.
func (e *env) setup() error {
	if e.verbose {
		e.opts.LogLevel = zerolog.LevelDebugValue
	}
	if e.opts.ExePath == "" && e.executable != nil {
		if exe, err := e.executable(); err == nil {
			e.opts.ExePath = exe
		}
	}
	if err := e.opts.Validate(); err != nil {
		return err
	}

	e.logger = logging.NewLogger(e.logConfig())
	return nil
}

func (e *env) logConfig() logging.Config {
	return logging.Config{
		LogFile: e.opts.ResolvedLogFile(),
		Console: e.verbose,
		Level:   e.opts.Level(),
	}
}

// teardown closes the log file. Cobra skips post-run hooks when a command
// fails, so it runs from execute.
func (e *env) teardown() {
	if e.logger == nil {
		return
	}
	e.logger.Close()
	e.logger = nil
}

// Execute runs the CLI and returns the process exit code. SIGINT and SIGTERM
// shut the tray down the same way the Exit menu item does.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := newEnv()
	return execute(ctx, e, newRootCmd(e), os.Args[1:])
}

func execute(ctx context.Context, e *env, rootCmd *cobra.Command, args []string) int {
	defer e.teardown()

	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return constants.ExitStartupFailure
	}
	return constants.ExitOK
}

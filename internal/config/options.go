package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// IconPolicy selects how the tray icon asset is picked.
type IconPolicy string

const (
	// IconPolicyMulti picks the light/dark set by theme, then the size nearest
	// to 16px times the display scale.
	IconPolicyMulti IconPolicy = "multi"

	// IconPolicyPair only distinguishes light from dark.
	IconPolicyPair IconPolicy = "pair"
)

// Options holds everything the CLI hands to the tray application.
type Options struct {
	// LogLevel is a zerolog level name ("debug", "info", "warn", "error").
	LogLevel string

	// LogFile overrides the default log path. Empty means DefaultLogFile(exe).
	LogFile string

	// NoLogFile disables file logging entirely.
	NoLogFile bool

	// IconPolicy chooses the icon selection strategy.
	IconPolicy IconPolicy

	// ExePath is the running executable, used for auto-launch and log placement.
	ExePath string
}

// DefaultOptions returns options with info logging and the multi-resolution icon policy.
func DefaultOptions() Options {
	return Options{
		LogLevel:   "info",
		IconPolicy: IconPolicyMulti,
	}
}

// Validate normalises and checks the options.
func (o *Options) Validate() error {
	o.LogLevel = strings.ToLower(strings.TrimSpace(o.LogLevel))
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(o.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", o.LogLevel, err)
	}

	switch o.IconPolicy {
	case "":
		o.IconPolicy = IconPolicyMulti
	case IconPolicyMulti, IconPolicyPair:
	default:
		return fmt.Errorf("invalid icon policy %q (want %q or %q)", o.IconPolicy, IconPolicyMulti, IconPolicyPair)
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (o Options) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(o.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// ResolvedLogFile returns the log file to write, or "" when file logging is off.
func (o Options) ResolvedLogFile() string {
	if o.NoLogFile {
		return ""
	}
	if o.LogFile != "" {
		return o.LogFile
	}
	return DefaultLogFile(o.ExePath)
}

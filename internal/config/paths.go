// Package config provides runtime options and filesystem locations for ctrltick.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/ctrltick/ctrltick/internal/constants"
	"github.com/ctrltick/ctrltick/internal/version"
)

// LogDirectory returns the fallback log directory used when the executable's
// own directory cannot be determined.
//
// Locations:
//   - Windows: %LOCALAPPDATA%\ctrltick\logs
//   - Unix: ~/.config/ctrltick/logs
func LogDirectory() string {
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), "ctrltick-logs")
			}
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, constants.AppName, "logs")
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "ctrltick-logs")
	}
	return filepath.Join(configDir, constants.AppName, "logs")
}

// LogFileName returns the versioned log file name, e.g. "ctrltick-v0.2.1.log".
func LogFileName() string {
	return fmt.Sprintf("%s-%s.log", constants.AppName, version.Version)
}

// DefaultLogFile returns the log file path next to the executable. An empty
// exePath falls back to LogDirectory().
func DefaultLogFile(exePath string) string {
	if exePath == "" {
		return filepath.Join(LogDirectory(), LogFileName())
	}
	return filepath.Join(filepath.Dir(exePath), LogFileName())
}

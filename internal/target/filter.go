// Package target decides whether the foreground window is one that should
// receive the synthesized backtick.
package target

import (
	"strings"

	"github.com/ctrltick/ctrltick/internal/logging"
	"github.com/ctrltick/ctrltick/internal/win32"
)

// KnownNames are the trailing title segments of the editor windows we forward to.
var KnownNames = []string{"Visual Studio Code", "VS Code"}

// titleSeparators split "<document> - <application>" titles. The em dash form
// shows up in some localized builds.
var titleSeparators = []string{" - ", " — "}

// WindowInspector reads window properties from the OS.
type WindowInspector interface {
	ForegroundWindow() win32.HWND
	WindowTitle(hwnd win32.HWND) (string, error)
}

// Filter matches windows by title. It fails closed: any lookup failure means
// "not a target".
type Filter struct {
	inspector WindowInspector
	names     []string
	logger    *logging.Logger
}

// NewFilter returns a filter matching KnownNames.
func NewFilter(inspector WindowInspector, logger *logging.Logger) *Filter {
	return &Filter{
		inspector: inspector,
		names:     KnownNames,
		logger:    logger,
	}
}

// Foreground returns the current foreground window, or 0 when there is none.
func (f *Filter) Foreground() win32.HWND {
	return f.inspector.ForegroundWindow()
}

// IsTarget reports whether hwnd is an editor window we forward to.
func (f *Filter) IsTarget(hwnd win32.HWND) bool {
	if hwnd == 0 {
		return false
	}

	title, err := f.inspector.WindowTitle(hwnd)
	if err != nil {
		f.logger.Warn().Err(err).Uint64("hwnd", uint64(hwnd)).Msg("Failed to read window title")
		return false
	}

	return MatchesTitle(title, f.names)
}

// MatchesTitle reports whether the last separator-delimited segment of title,
// trimmed, equals one of names exactly.
func MatchesTitle(title string, names []string) bool {
	segment := strings.TrimSpace(trailingSegment(title))
	for _, name := range names {
		if segment == name {
			return true
		}
	}
	return false
}

func trailingSegment(title string) string {
	cut := -1
	sepLen := 0
	for _, sep := range titleSeparators {
		if i := strings.LastIndex(title, sep); i > cut {
			cut, sepLen = i, len(sep)
		}
	}
	if cut < 0 {
		return title
	}
	return title[cut+sepLen:]
}

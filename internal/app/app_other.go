//go:build !windows

package app

import (
	"context"
	"errors"

	"github.com/ctrltick/ctrltick/internal/config"
	"github.com/ctrltick/ctrltick/internal/logging"
)

// ErrUnsupported is returned by Run outside Windows.
var ErrUnsupported = errors.New("ctrltick only runs on Windows")

// Run refuses to start outside Windows.
func Run(context.Context, config.Options, *logging.Logger) error {
	return ErrUnsupported
}

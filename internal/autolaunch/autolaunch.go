// Package autolaunch toggles starting the application at user login.
package autolaunch

import (
	"errors"
	"fmt"
)

// ErrUnavailable is returned when auto-launch cannot be managed, e.g. the
// executable path is unknown or the platform has no implementation.
var ErrUnavailable = errors.New("auto-launch unavailable")

// Adapter is the boundary to the OS launch-on-login mechanism. The state it
// reports may change between calls behind our back.
type Adapter interface {
	IsEnabled() (bool, error)
	Enable() error
	Disable() error
}

const (
	// RunKey holds one value per program started at login.
	RunKey = `Software\Microsoft\Windows\CurrentVersion\Run`

	// ApprovedKey is where Task Manager records entries the user disabled.
	ApprovedKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\StartupApproved\Run`
)

// approvedEnabled is the StartupApproved payload Task Manager writes for an
// enabled entry. An odd first byte means disabled.
var approvedEnabled = []byte{0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

// Store is the subset of per-user registry access the adapter needs. Missing
// values are reported through the bool result, not as errors.
type Store interface {
	StringValue(key, name string) (string, bool, error)
	SetStringValue(key, name, value string) error
	BinaryValue(key, name string) ([]byte, bool, error)
	SetBinaryValue(key, name string, value []byte) error
	DeleteValue(key, name string) error
}

// Registry implements Adapter on the Run key.
type Registry struct {
	appName string
	appPath string
	store   Store
}

// NewRegistry creates an adapter registering appPath under appName.
func NewRegistry(appName, appPath string, store Store) (*Registry, error) {
	if appName == "" {
		return nil, fmt.Errorf("%w: empty application name", ErrUnavailable)
	}
	if appPath == "" {
		return nil, fmt.Errorf("%w: unknown executable path", ErrUnavailable)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: no registry store", ErrUnavailable)
	}
	return &Registry{appName: appName, appPath: appPath, store: store}, nil
}

// Command is the value written to the Run key.
func (r *Registry) Command() string {
	return `"` + r.appPath + `"`
}

// IsEnabled reports whether the Run entry exists and Task Manager has not
// disabled it.
func (r *Registry) IsEnabled() (bool, error) {
	_, exists, err := r.store.StringValue(RunKey, r.appName)
	if err != nil {
		return false, fmt.Errorf("read run entry: %w", err)
	}
	if !exists {
		return false, nil
	}

	approval, found, err := r.store.BinaryValue(ApprovedKey, r.appName)
	if err != nil {
		return false, fmt.Errorf("read startup approval: %w", err)
	}
	if found && len(approval) > 0 && approval[0]&1 == 1 {
		return false, nil
	}
	return true, nil
}

// Enable writes the Run entry and re-approves it if Task Manager disabled it.
func (r *Registry) Enable() error {
	if err := r.store.SetStringValue(RunKey, r.appName, r.Command()); err != nil {
		return fmt.Errorf("write run entry: %w", err)
	}

	_, found, err := r.store.BinaryValue(ApprovedKey, r.appName)
	if err != nil {
		return fmt.Errorf("read startup approval: %w", err)
	}
	if found {
		if err := r.store.SetBinaryValue(ApprovedKey, r.appName, approvedEnabled); err != nil {
			return fmt.Errorf("write startup approval: %w", err)
		}
	}
	return nil
}

// Disable removes the Run entry and any Task Manager approval record.
func (r *Registry) Disable() error {
	if err := r.store.DeleteValue(RunKey, r.appName); err != nil {
		return fmt.Errorf("delete run entry: %w", err)
	}
	if err := r.store.DeleteValue(ApprovedKey, r.appName); err != nil {
		return fmt.Errorf("delete startup approval: %w", err)
	}
	return nil
}

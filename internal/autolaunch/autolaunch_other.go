//go:build !windows

package autolaunch

// New reports ErrUnavailable: only the Windows Run key is supported.
func New(appName, appPath string) (Adapter, error) {
	return nil, ErrUnavailable
}

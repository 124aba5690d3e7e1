//go:build windows

package autolaunch

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

// RegistryStore reads and writes values under HKEY_CURRENT_USER.
type RegistryStore struct{}

// New returns the Run-key adapter for the current user.
func New(appName, appPath string) (Adapter, error) {
	return NewRegistry(appName, appPath, RegistryStore{})
}

func isNotExist(err error) bool {
	return errors.Is(err, registry.ErrNotExist)
}

// StringValue implements Store.
func (RegistryStore) StringValue(key, name string) (string, bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.QUERY_VALUE)
	if err != nil {
		if isNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	defer k.Close()

	value, _, err := k.GetStringValue(name)
	if err != nil {
		if isNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// SetStringValue implements Store.
func (RegistryStore) SetStringValue(key, name, value string) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, key, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	return k.SetStringValue(name, value)
}

// BinaryValue implements Store.
func (RegistryStore) BinaryValue(key, name string) ([]byte, bool, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.QUERY_VALUE)
	if err != nil {
		if isNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer k.Close()

	value, _, err := k.GetBinaryValue(name)
	if err != nil {
		if isNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// SetBinaryValue implements Store.
func (RegistryStore) SetBinaryValue(key, name string, value []byte) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()
	return k.SetBinaryValue(name, value)
}

// DeleteValue implements Store. A missing key or value is not an error.
func (RegistryStore) DeleteValue(key, name string) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, key, registry.SET_VALUE)
	if err != nil {
		if isNotExist(err) {
			return nil
		}
		return err
	}
	defer k.Close()

	if err := k.DeleteValue(name); err != nil && !isNotExist(err) {
		return err
	}
	return nil
}

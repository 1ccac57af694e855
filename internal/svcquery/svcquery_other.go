//go:build !windows

package svcquery

import "fmt"

// IsRunning is not supported off Windows.
func IsRunning(name string) (bool, error) {
	return false, fmt.Errorf("svcquery: not implemented on this platform")
}

// GetStatus is not supported off Windows.
func GetStatus(name string) (ServiceInfo, error) {
	return ServiceInfo{Name: name, Status: StatusUnknown}, fmt.Errorf("svcquery: not implemented on this platform")
}

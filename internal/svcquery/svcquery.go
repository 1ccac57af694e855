// Package svcquery reads the state of system services without changing it.
package svcquery

// ServiceStatus is the normalized run state of a service.
type ServiceStatus string

// ServiceStatus constants.
const (
	StatusRunning  ServiceStatus = "running"
	StatusStopped  ServiceStatus = "stopped"
	StatusDisabled ServiceStatus = "disabled"
	StatusUnknown  ServiceStatus = "unknown"
)

// UpdateServiceName is the Windows Update service.
const UpdateServiceName = "wuauserv"

// ServiceInfo describes a system service.
type ServiceInfo struct {
	Name        string        `json:"name"`
	DisplayName string        `json:"displayName,omitempty"`
	Status      ServiceStatus `json:"status"`
	StartType   string        `json:"startType,omitempty"`
}

// IsActive returns true if the service is currently running.
func (s ServiceInfo) IsActive() bool {
	return s.Status == StatusRunning
}

// IsDisabled returns true if the service cannot be started.
func (s ServiceInfo) IsDisabled() bool {
	return s.Status == StatusDisabled || s.StartType == "disabled"
}

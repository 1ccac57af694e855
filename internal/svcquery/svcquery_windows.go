//go:build windows

package svcquery

import (
	"fmt"
	"strings"

	"golang.org/x/sys/windows/svc"
	"golang.org/x/sys/windows/svc/mgr"
)

// IsRunning returns true if the named Windows service exists and is running.
func IsRunning(name string) (bool, error) {
	info, err := GetStatus(name)
	if err != nil {
		return false, err
	}
	return info.IsActive(), nil
}

// GetStatus queries a single Windows service by name. The service is only
// opened for query; it is never started or reconfigured.
func GetStatus(name string) (ServiceInfo, error) {
	m, err := mgr.Connect()
	if err != nil {
		return ServiceInfo{Name: name, Status: StatusUnknown}, fmt.Errorf("svcquery: connect to SCM: %w", err)
	}
	defer m.Disconnect()

	s, err := m.OpenService(name)
	if err != nil {
		return ServiceInfo{Name: name, Status: StatusUnknown}, fmt.Errorf("svcquery: open service %s: %w", name, err)
	}
	defer s.Close()

	status, err := s.Query()
	if err != nil {
		return ServiceInfo{Name: name, Status: StatusUnknown}, fmt.Errorf("svcquery: query %s: %w", name, err)
	}

	cfg, _ := s.Config()

	info := ServiceInfo{
		Name:        name,
		DisplayName: cfg.DisplayName,
		Status:      mapWindowsState(status.State),
		StartType:   mapWindowsStartType(cfg.StartType),
	}
	if info.StartType == "disabled" && info.Status == StatusStopped {
		info.Status = StatusDisabled
	}
	return info, nil
}

func mapWindowsState(state svc.State) ServiceStatus {
	switch state {
	case svc.Running, svc.StartPending, svc.ContinuePending:
		return StatusRunning
	case svc.Stopped, svc.Paused, svc.StopPending, svc.PausePending:
		return StatusStopped
	default:
		return StatusUnknown
	}
}

func mapWindowsStartType(startType uint32) string {
	switch startType {
	case mgr.StartAutomatic:
		return "automatic"
	case mgr.StartManual:
		return "manual"
	case mgr.StartDisabled:
		return "disabled"
	default:
		return strings.ToLower(fmt.Sprintf("type_%d", startType))
	}
}

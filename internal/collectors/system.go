package collectors

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// SystemInfo identifies the host a report was produced on.
type SystemInfo struct {
	Hostname     string `json:"hostname" yaml:"hostname"`
	OSType       string `json:"osType" yaml:"osType"`
	OSVersion    string `json:"osVersion" yaml:"osVersion"`
	Architecture string `json:"architecture" yaml:"architecture"`
	Manufacturer string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Model        string `json:"model,omitempty" yaml:"model,omitempty"`
	BIOSVersion  string `json:"biosVersion,omitempty" yaml:"biosVersion,omitempty"`
}

// SystemCollector gathers host identity for the report header.
type SystemCollector struct{}

func NewSystemCollector() *SystemCollector {
	return &SystemCollector{}
}

// Collect never fails; fields it cannot read stay empty.
func (c *SystemCollector) Collect() SystemInfo {
	info := SystemInfo{
		OSType:       normalizeOSType(runtime.GOOS),
		Architecture: runtime.GOARCH,
	}

	hostInfo, err := host.Info()
	if err == nil {
		info.Hostname = hostInfo.Hostname
		info.OSType = normalizeOSType(hostInfo.OS)
		info.OSVersion = hostInfo.Platform + " " + hostInfo.PlatformVersion
	} else {
		log.Debug("host info unavailable", "error", err)
	}

	// Platform-specific: manufacturer, model, BIOS
	collectPlatformFirmware(&info)

	return info
}

func normalizeOSType(os string) string {
	if os == "darwin" {
		return "macos"
	}
	return os
}

//go:build windows

package collectors

import (
	"context"
	"os/exec"
	"strings"
	"time"
)

const wmicTimeout = 15 * time.Second

// wmicGet runs a wmic query and returns the trimmed output value.
func wmicGet(args []string, property string) string {
	ctx, cancel := context.WithTimeout(context.Background(), wmicTimeout)
	defer cancel()

	cmdArgs := append(args, "get", property, "/format:list")
	out, err := exec.CommandContext(ctx, "wmic", cmdArgs...).Output()
	if err != nil {
		log.Debug("wmic query failed", "args", strings.Join(args, " "), "error", err)
		return ""
	}
	// Output format: "Property=Value\r\n"
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, property+"=") {
			return strings.TrimSpace(strings.TrimPrefix(line, property+"="))
		}
	}
	return ""
}

func collectPlatformFirmware(info *SystemInfo) {
	info.Manufacturer = wmicGet([]string{"computersystem"}, "Manufacturer")
	info.Model = wmicGet([]string{"computersystem"}, "Model")
	info.BIOSVersion = wmicGet([]string{"bios"}, "SMBIOSBIOSVersion")
}

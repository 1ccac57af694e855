package collectors

import (
	"os"
	"strings"
)

// dmiDir is a variable so tests can point it at a fixture tree.
var dmiDir = "/sys/class/dmi/id/"

// readDMI reads a value from /sys/class/dmi/id/
func readDMI(name string) string {
	data, err := os.ReadFile(dmiDir + name)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func collectPlatformFirmware(info *SystemInfo) {
	// DMI data (works on physical machines and most VMs)
	info.Manufacturer = readDMI("sys_vendor")
	info.Model = readDMI("product_name")
	info.BIOSVersion = readDMI("bios_version")
}

//go:build !windows && !linux

package collectors

func collectPlatformFirmware(_ *SystemInfo) {}

//go:build windows

package privilege

import "golang.org/x/sys/windows"

// isElevated checks the elevation flag on the process token.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

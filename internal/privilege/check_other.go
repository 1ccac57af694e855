//go:build !windows

package privilege

import "os"

// isElevated returns true if the process runs with UID 0 (root).
func isElevated() bool {
	return os.Getuid() == 0
}

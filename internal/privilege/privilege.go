// Package privilege reports whether the process runs with administrator or
// root rights. The update search needs them on most hosts.
package privilege

// IsElevated reports whether the current process is elevated.
func IsElevated() bool {
	return isElevated()
}

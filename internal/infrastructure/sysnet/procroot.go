//go:build linux

// Package sysnet enumerates kernel listening sockets by parsing the
// /proc/net/{tcp,tcp6,udp,udp6} tables, the same interface used by
// standard tools like ss and netstat.
package sysnet

import (
	"os"
	"path/filepath"
)

// candidateProcRoots is probed in order when the operator supplies no
// override: the host's proc mount as bind-mounted by common container
// runtimes, then the local container's own /proc.
var candidateProcRoots = []string{"/host/proc", "/hostproc", "/proc"}

// DetectProcRoot returns the first proc root that exposes a readable
// TCP listening-socket table, trying override first when set.
//
// Params:
//   - override: an operator-supplied proc root; takes priority when set.
//
// Returns:
//   - string: the selected proc root path.
//   - error: non-nil if no candidate exposes net/tcp.
func DetectProcRoot(override string) (string, error) {
	candidates := candidateProcRoots
	if override != "" {
		candidates = append([]string{override}, candidates...)
	}

	for _, root := range candidates {
		if procRootUsable(root) {
			return root, nil
		}
	}

	return "", errNoProcRoot
}

// procRootUsable reports whether root/net/tcp can be opened for reading.
//
// Params:
//   - root: candidate proc root path.
//
// Returns:
//   - bool: true if net/tcp under root is readable.
func procRootUsable(root string) bool {
	f, err := os.Open(filepath.Join(root, "net", "tcp"))
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

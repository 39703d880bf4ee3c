//go:build linux

// Package resolver attributes kernel listening sockets to their owning
// process, via an in-proc-tree inode scan with two fallback strategies.
package resolver

import (
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
)

// socketFDPattern matches the symlink target of a socket file descriptor,
// e.g. "socket:[123456]".
var socketFDPattern = regexp.MustCompile(`^socket:\[(\d+)\]$`)

// inodeOwner pairs a resolved inode with the process that held it open.
type inodeOwner struct {
	pid  int
	name string
}

// buildInodeMap scans every numeric pid directory under root and returns a
// map from socket inode to owning process. Per-pid errors (permission
// denied, pid exited mid-scan) are swallowed; the scan never fails outright.
//
// Params:
//   - root: a proc root, e.g. "/proc" or "/host/proc".
//
// Returns:
//   - map[uint64]inodeOwner: inode to owner, first writer per root wins.
func buildInodeMap(root string) map[uint64]inodeOwner {
	out := make(map[uint64]inodeOwner)

	entries, err := os.ReadDir(root)
	if err != nil {
		return out
	}

	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}

		name := processName(root, pid)
		scanPidFDs(root, pid, name, out)
	}

	return out
}

// scanPidFDs reads every fd symlink under root/<pid>/fd and records the
// inodes that belong to sockets.
//
// Params:
//   - root: the proc root.
//   - pid: the process id being scanned.
//   - name: the process's display name, already resolved.
//   - out: the inode map to populate.
func scanPidFDs(root string, pid int, name string, out map[uint64]inodeOwner) {
	fdDir := filepath.Join(root, strconv.Itoa(pid), "fd")
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		return
	}

	for _, fd := range entries {
		target, err := os.Readlink(filepath.Join(fdDir, fd.Name()))
		if err != nil {
			continue
		}

		m := socketFDPattern.FindStringSubmatch(target)
		if m == nil {
			continue
		}

		inode, err := strconv.ParseUint(m[1], 10, 64)
		if err != nil {
			continue
		}

		if _, exists := out[inode]; !exists {
			out[inode] = inodeOwner{pid: pid, name: name}
		}
	}
}

// processName resolves a process's display name: the comm file trimmed of
// its trailing newline, falling back to the last path component of argv[0]
// read from cmdline.
//
// Params:
//   - root: the proc root.
//   - pid: the process id.
//
// Returns:
//   - string: the resolved name, empty if neither file was readable.
func processName(root string, pid int) string {
	pidDir := filepath.Join(root, strconv.Itoa(pid))

	if data, err := os.ReadFile(filepath.Join(pidDir, "comm")); err == nil { // #nosec G304 - proc root is operator-controlled
		return strings.TrimSpace(string(data))
	}

	data, err := os.ReadFile(filepath.Join(pidDir, "cmdline")) // #nosec G304 - proc root is operator-controlled
	if err != nil {
		return ""
	}
	argv0, _, _ := strings.Cut(string(data), "\x00")
	if argv0 == "" {
		return ""
	}
	return filepath.Base(argv0)
}

// applyInodeMap attributes pid/owner to every listener whose inode is
// present in m, leaving unmatched listeners untouched.
//
// Params:
//   - listeners: the rows to enrich in place.
//   - m: the inode-to-owner map.
//
// Returns:
//   - int: the number of listeners newly attributed.
func applyInodeMap(listeners []socket.Listener, m map[uint64]inodeOwner) int {
	attributed := 0
	for i := range listeners {
		if listeners[i].PID != 0 {
			continue
		}
		owner, ok := m[listeners[i].Inode]
		if !ok {
			continue
		}
		listeners[i].PID = owner.pid
		listeners[i].Owner = owner.name
		attributed++
	}
	return attributed
}

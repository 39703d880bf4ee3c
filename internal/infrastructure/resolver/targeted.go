//go:build linux

package resolver

import (
	"os"
	"path/filepath"
	"strconv"
)

// targetedScan behaves like buildInodeMap but stops scanning further pids
// as soon as every inode in wanted has been found, trading completeness
// for speed when only a known subset of inodes remains unresolved.
//
// Params:
//   - root: a proc root.
//   - wanted: the set of inodes still needing attribution.
//
// Returns:
//   - map[uint64]inodeOwner: owners found for the subset of wanted inodes
//     matched before the scan short-circuited.
func targetedScan(root string, wanted map[uint64]struct{}) map[uint64]inodeOwner {
	out := make(map[uint64]inodeOwner, len(wanted))
	if len(wanted) == 0 {
		return out
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return out
	}

	remaining := len(wanted)
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil || !entry.IsDir() {
			continue
		}

		name := processName(root, pid)
		found := scanPidFDsFiltered(root, pid, name, wanted, out)
		remaining -= found
		if remaining <= 0 {
			break
		}
	}

	return out
}

// scanPidFDsFiltered is scanPidFDs restricted to inodes present in wanted,
// used by the targeted-scan fallback to avoid recording irrelevant sockets.
//
// Params:
//   - root: the proc root.
//   - pid: the process id being scanned.
//   - name: the process's display name.
//   - wanted: the inodes of interest.
//   - out: the map to populate; pre-existing entries are not overwritten.
//
// Returns:
//   - int: the number of previously-unfound wanted inodes matched by this call.
func scanPidFDsFiltered(root string, pid int, name string, wanted map[uint64]struct{}, out map[uint64]inodeOwner) int {
	fdDir := filepath.Join(root, strconv.Itoa(pid), "fd")
	entries, err := os.ReadDir(fdDir)
	if err != nil {
		return 0
	}

	newlyFound := 0
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

		if _, isWanted := wanted[inode]; !isWanted {
			continue
		}
		if _, already := out[inode]; already {
			continue
		}

		out[inode] = inodeOwner{pid: pid, name: name}
		newlyFound++
	}

	return newlyFound
}

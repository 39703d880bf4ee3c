//go:build linux

package resolver

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strconv"
)

// ssInodePattern matches ss's "ino:<n>" field.
var ssInodePattern = regexp.MustCompile(`ino:(\d+)`)

// ssUserPattern matches ss's `users:(("name",pid=N,fd=M))` field, capturing
// the process name and pid of the first listed user.
var ssUserPattern = regexp.MustCompile(`users:\(\("([^"]+)",pid=(\d+)`)

// runSS invokes the host's socket-listing utility and returns an
// inode-to-owner map parsed from its output, covering both TCP and UDP
// listeners.
//
// Params:
//   - ctx: bounds the external process's lifetime.
//
// Returns:
//   - map[uint64]inodeOwner: owners parsed from ss output.
//   - error: non-nil if neither invocation could run at all.
func runSS(ctx context.Context) (map[uint64]inodeOwner, error) {
	out := make(map[uint64]inodeOwner)

	tcpErr := runSSInto(ctx, []string{"-tinp"}, out)
	udpErr := runSSInto(ctx, []string{"-uinp"}, out)
	if tcpErr != nil && udpErr != nil {
		return out, tcpErr
	}

	return out, nil
}

// runSSInto runs "ss" with args and merges any inode/owner pairs it
// reports into out.
//
// Params:
//   - ctx: bounds the command's lifetime.
//   - args: the ss flags to pass.
//   - out: the map to merge results into.
//
// Returns:
//   - error: non-nil if the command could not be started or failed to run.
func runSSInto(ctx context.Context, args []string, out map[uint64]inodeOwner) error {
	cmd := exec.CommandContext(ctx, "ss", args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return err
	}

	for _, line := range splitLines(stdout.String()) {
		inodeMatch := ssInodePattern.FindStringSubmatch(line)
		if inodeMatch == nil {
			continue
		}
		userMatch := ssUserPattern.FindStringSubmatch(line)
		if userMatch == nil {
			continue
		}

		inode, err := strconv.ParseUint(inodeMatch[1], 10, 64)
		if err != nil {
			continue
		}
		pid, err := strconv.Atoi(userMatch[2])
		if err != nil {
			continue
		}

		if _, exists := out[inode]; !exists {
			out[inode] = inodeOwner{pid: pid, name: userMatch[1]}
		}
	}

	return nil
}

// splitLines splits s on newlines, discarding a trailing empty element.
//
// Params:
//   - s: the text to split.
//
// Returns:
//   - []string: the non-trailing lines of s.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Package selector scores candidate host profiles against the running
// system and picks the most specific one, per the platform > container >
// generic host priority.
package selector

import (
	"os"
	"strings"
)

// maxScore caps a candidate's cumulative score.
const maxScore int = 100

// fileExists reports whether path names a file or directory that is
// statable, without distinguishing the two; most of our markers are socket
// files or directories and callers don't need the difference.
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// fileContains reports whether path's content contains substr. Read
// failures (missing file, permission denied) are treated as no match, not
// an error, since absence of a marker is itself a valid signal.
func fileContains(path, substr string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), substr)
}

// addCapped adds delta to score, clamped to maxScore.
func addCapped(score, delta int) int {
	score += delta
	if score > maxScore {
		return maxScore
	}
	return score
}

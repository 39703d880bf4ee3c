//go:build linux

package collect

import (
	"bufio"
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/proc"
)

// clockTicksPerSecond is the kernel's USER_HZ value, used to convert a
// process's /proc/[pid]/stat starttime field (clock ticks since boot)
// into a wall-clock time. 100 is the value on every Linux platform this
// agent targets; a host with a non-standard USER_HZ would need this
// configurable, which spec.md does not call for.
const clockTicksPerSecond = 100

// bootTimePath is the kernel file carrying the "btime" line: seconds
// since the epoch at boot.
const bootTimePath = "/proc/stat"

// processStartTimes converts every visible process's /proc/[pid]/stat
// starttime into a wall-clock time, for the reconciler's system-port
// creation-time enrichment. A failure to read boot time degrades to an
// empty map; the reconciler simply has no start times to apply.
func processStartTimes(ctx context.Context) map[int]time.Time {
	boot, err := readBootTime(bootTimePath)
	if err != nil {
		return map[int]time.Time{}
	}

	all, err := proc.NewCPUCollector().CollectAllProcesses(ctx)
	if err != nil {
		return map[int]time.Time{}
	}

	out := make(map[int]time.Time, len(all))
	for _, p := range all {
		seconds := float64(p.StartTime) / clockTicksPerSecond
		out[p.PID] = boot.Add(time.Duration(seconds * float64(time.Second)))
	}
	return out
}

// readBootTime reads the "btime" line from /proc/stat.
func readBootTime(path string) (time.Time, error) {
	file, err := os.Open(path)
	if err != nil {
		return time.Time{}, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 || fields[0] != "btime" {
			continue
		}
		seconds, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(seconds, 0).UTC(), nil
	}
	return time.Time{}, scanner.Err()
}

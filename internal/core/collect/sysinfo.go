//go:build linux

package collect

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/collect"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/proc"
)

// uptimePath is the kernel file reporting seconds since boot as its first
// whitespace-separated field.
const uptimePath = "/proc/uptime"

// cpuInfoPath is the kernel file listing one "model name" line per logical
// CPU; every line carries the same string on a uniform system.
const cpuInfoPath = "/proc/cpuinfo"

// cpuModelField is the /proc/cpuinfo key holding the processor's marketing
// name.
const cpuModelField = "model name"

// HostFacts gathers host-level facts that never depend on the platform or
// container sources: kernel-file system info and process start times.
// Kept behind an interface, like every other source, so tests can
// substitute a fixture instead of reading the real host's /proc.
type HostFacts interface {
	SystemInfo(ctx context.Context) collect.SystemInfo
	ProcessStartTimes(ctx context.Context) map[int]time.Time
}

// kernelHostFacts is the real HostFacts implementation, reading the
// running host's /proc filesystem.
type kernelHostFacts struct{}

// SystemInfo implements HostFacts.
func (kernelHostFacts) SystemInfo(ctx context.Context) collect.SystemInfo {
	return hostSystemInfo(ctx)
}

// ProcessStartTimes implements HostFacts.
func (kernelHostFacts) ProcessStartTimes(ctx context.Context) map[int]time.Time {
	return processStartTimes(ctx)
}

// hostSystemInfo gathers basic, always-available host facts from kernel
// files, independent of the optional platform source: hostname, uptime,
// CPU model, and memory totals. Failures on any individual file are
// tolerated; the corresponding field is left zero-valued.
//
// Params:
//   - ctx: bounds the memory collector's context check.
//
// Returns:
//   - collect.SystemInfo: the best-effort host facts gathered.
func hostSystemInfo(ctx context.Context) collect.SystemInfo {
	info := collect.SystemInfo{}

	if hostname, err := os.Hostname(); err == nil {
		info.Hostname = hostname
	}

	if uptime, err := readUptime(uptimePath); err == nil {
		info.Uptime = uptime
	}

	if model, err := readCPUModel(cpuInfoPath); err == nil {
		info.CPUModel = model
	}

	mem, err := proc.NewMemoryCollector().CollectSystem(ctx)
	if err == nil {
		info.MemoryTotalBytes = mem.Total
		info.MemoryUsedBytes = mem.Used
	}

	return info
}

// readUptime reads the kernel uptime file's first field, the number of
// seconds since boot as a floating-point value.
func readUptime(path string) (time.Duration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return 0, fmt.Errorf("parse %s: no fields", path)
	}
	seconds, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// readCPUModel reads the first "model name" line from the kernel's
// CPU-info file.
func readCPUModel(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found || strings.TrimSpace(key) != cpuModelField {
			continue
		}
		return strings.TrimSpace(value), nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan %s: %w", path, err)
	}
	return "", fmt.Errorf("%s: no %q field", path, cpuModelField)
}

package metrics

import "time"

// ProcessMemory represents per-process memory usage collected from
// /proc/[pid]/status, in bytes.
type ProcessMemory struct {
	Timestamp    time.Time
	Name         string
	PID          int
	RSS          uint64
	VMS          uint64
	Shared       uint64
	Swap         uint64
	Data         uint64
	Stack        uint64
	UsagePercent float64
}

// TotalResident returns the total resident memory (RSS + Swap).
//
// Returns:
//   - uint64: total resident memory including swapped pages.
func (p ProcessMemory) TotalResident() uint64 {
	return p.RSS + p.Swap
}

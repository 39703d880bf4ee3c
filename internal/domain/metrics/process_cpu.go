package metrics

import "time"

// ProcessCPU represents per-process CPU time counters collected from
// /proc/[pid]/stat.
type ProcessCPU struct {
	Timestamp      time.Time
	Name           string
	PID            int
	User           uint64
	System         uint64
	ChildrenUser   uint64
	ChildrenSystem uint64
	StartTime      uint64
}

// Total returns the total CPU time used by this process.
//
// Returns:
//   - uint64: sum of user and system time in jiffies.
func (p ProcessCPU) Total() uint64 {
	return p.User + p.System
}

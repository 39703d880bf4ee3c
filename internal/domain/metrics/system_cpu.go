// Package metrics provides domain value objects for the small set of host
// metrics the sysinfo phase reports (CPU model/aggregate time, memory).
package metrics

import "time"

// SystemCPU represents system-wide CPU time counters collected from
// /proc/stat, in jiffies since boot.
type SystemCPU struct {
	User      uint64
	Nice      uint64
	System    uint64
	Idle      uint64
	IOWait    uint64
	IRQ       uint64
	SoftIRQ   uint64
	Steal     uint64
	Guest     uint64
	GuestNice uint64
	Timestamp time.Time
}

// Total returns the sum of all CPU time fields.
//
// Returns:
//   - uint64: total CPU time across all states in jiffies.
func (c SystemCPU) Total() uint64 {
	return c.User + c.Nice + c.System + c.Idle + c.IOWait + c.IRQ + c.SoftIRQ + c.Steal + c.Guest + c.GuestNice
}

// Active returns the sum of all non-idle CPU time fields.
//
// Returns:
//   - uint64: active CPU time excluding idle and iowait states.
func (c SystemCPU) Active() uint64 {
	return c.Total() - c.Idle - c.IOWait
}

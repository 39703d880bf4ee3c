package metrics

import "time"

// SystemMemory represents system-wide memory usage collected from
// /proc/meminfo, in bytes.
type SystemMemory struct {
	Total        uint64
	Available    uint64
	Used         uint64
	Free         uint64
	Cached       uint64
	Buffers      uint64
	SwapTotal    uint64
	SwapUsed     uint64
	SwapFree     uint64
	Shared       uint64
	UsagePercent float64
	Timestamp    time.Time
}

// SwapUsagePercent returns the swap usage percentage (0-100).
//
// Returns:
//   - float64: swap usage percentage, or 0 if SwapTotal is 0.
func (m SystemMemory) SwapUsagePercent() float64 {
	if m.SwapTotal == 0 {
		return 0
	}
	const percentMultiplier = 100
	return float64(m.SwapUsed) / float64(m.SwapTotal) * percentMultiplier
}

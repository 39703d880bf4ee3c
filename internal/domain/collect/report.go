// Package collect defines the document a single collection pass produces:
// the shape handed to the HTTP/JSON layer and to --once dry-run output.
package collect

import (
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// Application is a platform-native (non-container) application entry, as
// reported by the optional platform source.
type Application struct {
	// ID is the platform's stable application identifier.
	ID string
	// Name is the display name.
	Name string
	// State is the platform's lifecycle string for the application.
	State string
}

// VM is a virtualized instance entry, as reported by the optional platform
// source's virt.instance.query method.
type VM struct {
	// ID is the platform's stable instance identifier.
	ID string
	// Name is the display name.
	Name string
	// State is "running", "stopped", or another platform-defined value.
	State string
}

// SystemInfo carries host-level facts gathered once per collection pass,
// independent of any individual port or application.
type SystemInfo struct {
	// Hostname is the collecting host's name.
	Hostname string
	// Platform names the detected host platform (e.g. "linux", "unraid",
	// "truenas", "synology"), empty when generic Linux was detected.
	Platform string
	// Uptime is how long the host has been running.
	Uptime time.Duration
	// CPUModel is the processor model string, read from the kernel's
	// CPU-info file. Empty when unavailable (e.g. non-Linux, permission
	// denied).
	CPUModel string
	// MemoryTotalBytes is total installed RAM, read from the kernel's
	// memory-info file. Zero when unavailable.
	MemoryTotalBytes uint64
	// MemoryUsedBytes is currently used RAM, read from the kernel's
	// memory-info file. Zero when unavailable.
	MemoryUsedBytes uint64
}

// Report is the complete output of one Collect() invocation.
type Report struct {
	// Platform is the machine-readable platform identifier used by
	// collector selection (empty on generic Linux).
	Platform string
	// PlatformName is the human-readable platform name for display.
	PlatformName string
	// SystemInfo carries host-level facts.
	SystemInfo SystemInfo
	// Applications lists platform-native applications, empty when no
	// platform source is configured or reachable.
	Applications []Application
	// Ports is the reconciled, deduplicated, sorted list of listening
	// endpoints.
	Ports []port.Record
	// VMs lists virtualized instances, empty when no platform source is
	// configured or reachable.
	VMs []VM
	// Error carries a non-fatal collection note for display (e.g. "platform
	// source unreachable: degraded to system+container data"). It is set
	// only when the platform source ran and failed; a container-engine or
	// socket-table failure is logged but leaves Error empty.
	Error string
	// EnhancedFeaturesEnabled reports whether the platform source
	// contributed to this report.
	EnhancedFeaturesEnabled bool
}

// Degraded reports whether this report carries a non-fatal collection
// note, which the orchestrator sets only when the platform source failed.
//
// Returns:
//   - bool: true if Error is non-empty.
func (r Report) Degraded() bool {
	return r.Error != ""
}

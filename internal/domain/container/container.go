// Package container provides domain entities for container-engine workloads:
// containers, their declared port bindings, and health.
package container

import "time"

// defaultLabelCapacity preallocates label/binding maps for the common case
// of a handful of entries.
const defaultLabelCapacity int = 4

// PortBinding is a single published host-port mapping for a container port.
type PortBinding struct {
	// HostIP is the bound host address; defaults to "0.0.0.0" when the
	// engine omits it.
	HostIP string
	// HostPort is the host-visible port.
	HostPort int
}

// Container represents a container as reported by the container engine.
type Container struct {
	// ID is the full container id.
	ID string
	// Names are the container's declared names (engine-assigned, leading
	// "/" already stripped).
	Names []string
	// Image is the image reference the container was created from.
	Image string
	// Command is the container's entrypoint/command line.
	Command string
	// Created is the container creation timestamp.
	Created time.Time
	// State is the engine's lifecycle state string ("running", "exited", ...).
	State string
	// NetworkMode is the container's network mode ("bridge", "host", ...).
	NetworkMode string
	// PID is the container's PID-1 process id in the host PID namespace.
	PID int
	// PortBindings maps "container_port/proto" to its published host
	// bindings. A port with no entry here that appears in ExposedPorts is
	// internal-only.
	PortBindings map[string][]PortBinding
	// ExposedPorts is the set of "container_port/proto" strings the image
	// declares, whether or not they are published.
	ExposedPorts map[string]struct{}
	// Health is the engine-reported health status, or empty if the
	// container defines no healthcheck.
	Health string
}

// New creates a Container with its map fields initialized.
//
// Params:
//   - id: the full container id.
//
// Returns:
//   - *Container: a new container with empty bindings/exposed sets.
func New(id string) *Container {
	return &Container{
		ID:           id,
		Names:        make([]string, 0, 1),
		PortBindings: make(map[string][]PortBinding, defaultLabelCapacity),
		ExposedPorts: make(map[string]struct{}, defaultLabelCapacity),
	}
}

// ShortID truncates the container id to its 12-character display form, the
// convention used for owner attribution and synthetic internal-port targets.
//
// Returns:
//   - string: the first 12 characters of ID, or ID itself if shorter.
func (c *Container) ShortID() string {
	const shortLen = 12
	if len(c.ID) <= shortLen {
		return c.ID
	}
	return c.ID[:shortLen]
}

// DisplayName joins the container's names with commas for presentation,
// falling back to the short id when no name is set.
//
// Returns:
//   - string: the comma-joined display name.
func (c *Container) DisplayName() string {
	if len(c.Names) == 0 {
		return c.ShortID()
	}
	name := c.Names[0]
	for _, n := range c.Names[1:] {
		name += "," + n
	}
	return name
}

// IsHostNetworked reports whether the container shares the host's network
// namespace, meaning its listeners never appear in PortBindings and must be
// cross-referenced by PID instead.
//
// Returns:
//   - bool: true when NetworkMode is "host".
func (c *Container) IsHostNetworked() bool {
	return c.NetworkMode == "host"
}

// UnpublishedExposed returns the "container_port/proto" keys that are
// declared exposed but have no published host binding.
//
// Returns:
//   - []string: exposed-but-unpublished port/proto keys.
func (c *Container) UnpublishedExposed() []string {
	var out []string
	for key := range c.ExposedPorts {
		if _, bound := c.PortBindings[key]; !bound {
			out = append(out, key)
		}
	}
	return out
}

// Health represents a container's engine-reported health snapshot.
type Health struct {
	// Status is one of "healthy", "unhealthy", "starting", or "" when no
	// healthcheck is configured.
	Status string
	// FailingStreak counts consecutive failed health checks.
	FailingStreak int
}

// Stats is a single CPU/memory usage sample for a container, derived from
// two successive engine stats snapshots.
type Stats struct {
	// CPUPercent is nil when any input to the delta calculation was zero
	// or missing; it is never reported as zero in that case.
	CPUPercent *float64
	// MemPercent is nil when the container has no memory limit set.
	MemPercent *float64
	// MemUsageBytes is the current resident memory usage.
	MemUsageBytes uint64
	// MemLimitBytes is the configured memory limit, 0 if unlimited.
	MemLimitBytes uint64
}

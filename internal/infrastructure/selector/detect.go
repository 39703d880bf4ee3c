package selector

import (
	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
)

// osReleasePath and kernelVersionPath are the standard Linux locations for
// the signals the platform candidate reads through scorer.go's helpers.
// The candidates carry no path fields of their own; these constants are
// the only paths they probe.
const (
	osReleasePath     string = "/etc/os-release"
	kernelVersionPath string = "/proc/version"
)

// dockerSocketPath and middlewaredSocketPath are default marker paths for
// the container and platform candidates respectively, when configuration
// does not override them.
const (
	dockerSocketPath      string = "/var/run/docker.sock"
	middlewaredSocketPath string = "/var/run/middlewared/middlewared.sock"
)

// Collector is a host profile candidate. Detect scores every registered
// Collector and returns the most specific match.
type Collector interface {
	// Name identifies the candidate for logging and tie-break ordering.
	Name() string
	// PlatformID is the machine-readable identifier reported in
	// collect.Report.Platform, empty for a generic Linux host.
	PlatformID() string
	// PlatformName is the human-readable name reported in
	// collect.Report.PlatformName.
	PlatformName() string
	// IsCompatible scores this candidate's fit for the running host,
	// 0-100. A score of 0 means "not applicable here".
	IsCompatible(cfg *config.Config) int
}

// candidates lists every registered Collector in declaration order; ties in
// IsCompatible score break in this order, per spec.md §4.6.
func candidates() []Collector {
	return []Collector{
		platformCollector{},
		containerCollector{},
		systemCollector{},
	}
}

// Detect scores every candidate and returns the highest strictly-positive
// scorer. Ties break by declaration order. When every candidate scores 0,
// the generic host collector (systemCollector) is returned regardless of
// its own score.
//
// Params:
//   - cfg: the resolved configuration, used for credential/endpoint signals.
//
// Returns:
//   - Collector: the selected host profile.
func Detect(cfg *config.Config) Collector {
	var best Collector
	bestScore := 0

	for _, c := range candidates() {
		score := c.IsCompatible(cfg)
		if score > bestScore {
			bestScore = score
			best = c
		}
	}

	if best == nil {
		return systemCollector{}
	}
	return best
}

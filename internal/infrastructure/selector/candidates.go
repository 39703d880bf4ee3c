package selector

import (
	"strings"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
)

// platformCollector matches hosts with a reachable platform control plane
// (e.g. TrueNAS SCALE's middlewared).
type platformCollector struct{}

func (platformCollector) Name() string          { return "platform" }
func (platformCollector) PlatformID() string    { return "truenas" }
func (platformCollector) PlatformName() string  { return "TrueNAS SCALE" }

// IsCompatible scores credential presence highest since it is the surest
// signal an operator intentionally configured platform integration;
// kernel-release, os-release, and socket markers corroborate it.
func (platformCollector) IsCompatible(cfg *config.Config) int {
	score := 0
	if cfg != nil && cfg.PlatformEnabled() {
		score = addCapped(score, 50)
	}
	if fileContains(kernelVersionPath, "truenas") || fileContains(kernelVersionPath, "ix") {
		score = addCapped(score, 25)
	}
	if fileContains(osReleasePath, "TrueNAS") {
		score = addCapped(score, 25)
	}
	if fileExists(middlewaredSocketPath) {
		score = addCapped(score, 25)
	}
	return score
}

// containerCollector matches hosts running a reachable container engine.
type containerCollector struct{}

func (containerCollector) Name() string        { return "container" }
func (containerCollector) PlatformID() string  { return "" }
func (containerCollector) PlatformName() string { return "Docker Host" }

func (containerCollector) IsCompatible(cfg *config.Config) int {
	score := 0
	socket := dockerSocketPath
	if cfg != nil && strings.HasPrefix(cfg.ContainerEndpoint, "unix://") {
		socket = strings.TrimPrefix(cfg.ContainerEndpoint, "unix://")
	}
	if fileExists(socket) {
		score = addCapped(score, 60)
	}
	if cfg != nil && cfg.ContainerEndpoint != "" && !strings.HasPrefix(cfg.ContainerEndpoint, "unix://") {
		// A configured non-default (tcp/npipe) endpoint is itself a strong
		// signal, since it can't be confirmed by a local filesystem probe.
		score = addCapped(score, 40)
	}
	if fileExists("/sys/fs/cgroup/docker") || fileExists("/sys/fs/cgroup/system.slice/docker.service") {
		score = addCapped(score, 20)
	}
	return score
}

// systemCollector is the generic bare-host fallback: a plain Linux box with
// neither a platform control plane nor a container engine. It always wins
// when no other candidate scores higher, and Detect also returns it
// directly as the explicit fallback when every candidate scores 0.
type systemCollector struct{}

func (systemCollector) Name() string        { return "system" }
func (systemCollector) PlatformID() string  { return "" }
func (systemCollector) PlatformName() string { return "Linux" }

// IsCompatible returns a low baseline score when the kernel socket tables
// are readable, so it loses to any more specific candidate but still wins
// over two candidates that both score 0.
func (systemCollector) IsCompatible(_ *config.Config) int {
	if fileExists("/proc/net/tcp") {
		return 5
	}
	return 0
}

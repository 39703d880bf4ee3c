// Package config provides the domain value object for agent configuration.
package config

import "github.com/mostafa-wahied/portracker-core/internal/domain/shared"

// defaultCacheTimeoutSeconds is the global TTL cache duration when the
// operator supplies no override (60_000ms).
const defaultCacheTimeoutSeconds int = 60

// defaultListenPort is the agent's own HTTP port when unset.
const defaultListenPort int = 8120

// defaultCollectIntervalSeconds is the delay between refresh ticks when
// the operator supplies no override.
const defaultCollectIntervalSeconds int = 30

// knownUDPPorts is the fixed allow-list of "important" UDP ports kept when
// IncludeUDP is false: DNS, DHCP client/server, NTP, NetBIOS, SNMP, syslog,
// IKE, IKE-NAT-T, OpenVPN, WireGuard.
var knownUDPPorts = []int{53, 67, 68, 123, 137, 138, 161, 162, 500, 514, 1194, 1198, 4500, 51820, 51821, 51822}

// Config is the agent's complete runtime configuration, assembled by the
// YAML loader in internal/infrastructure/config/yaml and consumed by the
// bootstrap wiring.
type Config struct {
	// ProcRoot overrides the first candidate path probed for the kernel
	// socket tables. Empty means use the built-in candidate list.
	ProcRoot string

	// ContainerEndpoint is the container engine's connection URI:
	// "unix://...", "npipe://...", or "tcp://...". Empty means use the
	// OS-default local socket.
	ContainerEndpoint string
	// TLSVerify enables mutual TLS to the container engine when
	// ContainerEndpoint is a tcp:// URI.
	TLSVerify bool
	// CertPath is the directory containing ca.pem/cert.pem/key.pem for
	// mutual TLS. Required when TLSVerify is true.
	CertPath string

	// PlatformAPIKey enables the platform collection phase when non-empty.
	PlatformAPIKey string
	// PlatformEndpoint is the platform RPC endpoint, when the platform
	// phase is enabled.
	PlatformEndpoint string

	// IncludeUDP includes all listening UDP ports, not just KnownUDPPorts().
	IncludeUDP bool
	// IncludeSystemUDP additionally includes system-sourced (non-container)
	// UDP ports outside the known allow-list.
	IncludeSystemUDP bool

	// CacheTimeout is the global TTL for upper-layer caches.
	// Default: 60s.
	CacheTimeout shared.Duration
	// DisableCache bypasses the TTL cache entirely; every GetOrSet call
	// invokes fn.
	DisableCache bool

	// ListenPort is the agent's own HTTP port, used for self-attribution
	// so the agent does not report itself as an unidentified system port.
	// Default: 8120.
	ListenPort int
	// SelfContainerName is this agent's own container name or id, when it
	// runs containerized, used for the same self-attribution purpose.
	SelfContainerName string

	// LogLevel is the minimum severity written by any log writer:
	// "debug", "info", "warn", or "error". Default: "info".
	LogLevel string
	// LogFilePath additionally writes JSON log lines to this path when
	// non-empty. The console writer is always active regardless.
	LogFilePath string

	// CollectInterval is the delay between refresh ticks in the agent's
	// main loop. Default: 30s.
	CollectInterval shared.Duration
}

// defaultLogLevel is the minimum log severity when unset.
const defaultLogLevel string = "info"

// New creates a Config populated with its documented defaults.
//
// Returns:
//   - *Config: a new configuration with CacheTimeout, ListenPort,
//     LogLevel, and CollectInterval set to their defaults and every other
//     field zero-valued.
func New() *Config {
	return &Config{
		CacheTimeout:    shared.Seconds(defaultCacheTimeoutSeconds),
		ListenPort:      defaultListenPort,
		LogLevel:        defaultLogLevel,
		CollectInterval: shared.Seconds(defaultCollectIntervalSeconds),
	}
}

// PlatformEnabled reports whether the platform collection phase should run.
//
// Returns:
//   - bool: true if PlatformAPIKey is set.
func (c *Config) PlatformEnabled() bool {
	return c.PlatformAPIKey != ""
}

// MutualTLSEnabled reports whether the container engine connection should
// present client certificates.
//
// Returns:
//   - bool: true if TLSVerify is set and CertPath is non-empty.
func (c *Config) MutualTLSEnabled() bool {
	return c.TLSVerify && c.CertPath != ""
}

// KnownUDPPorts returns the fixed allow-list of UDP ports kept when
// IncludeUDP is false. The returned slice is a copy; callers may mutate it
// freely.
//
// Returns:
//   - []int: the known-UDP port numbers.
func KnownUDPPorts() []int {
	out := make([]int, len(knownUDPPorts))
	copy(out, knownUDPPorts)
	return out
}

// IsKnownUDPPort reports whether port appears in the known-UDP allow-list.
//
// Params:
//   - p: the port number to check.
//
// Returns:
//   - bool: true if p is a known UDP port.
func IsKnownUDPPort(p int) bool {
	for _, known := range knownUDPPorts {
		if known == p {
			return true
		}
	}
	return false
}

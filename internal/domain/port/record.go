// Package port provides the domain entity for a reconciled listening port.
package port

import "time"

// Source identifies the authoritative producer of a PortRecord after
// reconciliation.
type Source string

// Recognized sources, in the priority order the reconciler promotes them.
const (
	// SourceContainer means a container engine owns the port, either
	// published or exposed-but-internal.
	SourceContainer Source = "container"
	// SourceSystem means only the kernel socket table attributed the port,
	// with no container ownership established.
	SourceSystem Source = "system"
	// SourcePlatform means a platform-native application (not a container)
	// owns the port.
	SourcePlatform Source = "platform"
)

// Protocol is the transport protocol of a listening port.
type Protocol string

// Recognized protocols.
const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
)

// AnyIPv4 and AnyIPv6 are the normalized forms of the IPv4/IPv6 "any
// address" wildcards. The kernel tables and some upstream APIs spell the
// wildcard as "*"; Record never emits that literal.
const (
	AnyIPv4 string = "0.0.0.0"
	AnyIPv6 string = "::"
)

// Record is the canonical, reconciled representation of a single listening
// endpoint. It is the only entity this package's consumers (the HTTP/JSON
// layer, out of scope here) ever see.
type Record struct {
	// Source identifies the authoritative producer.
	Source Source
	// Protocol is "tcp" or "udp".
	Protocol Protocol
	// HostIP is the listening address in dotted-quad or normalized IPv6
	// form. Never the literal "*".
	HostIP string
	// HostPort is the host-visible port number, 1-65535.
	HostPort int
	// Target is the container-internal port, or a synthetic
	// "<cid>:<port>(internal)" string for unpublished ports. Empty for
	// host-only listeners.
	Target string
	// Owner is the display name: container name, process name, or
	// platform app name.
	Owner string
	// ContainerID is the short (12-char) container id, when attributable.
	ContainerID string
	// AppID mirrors ContainerID, or holds a platform app id.
	AppID string
	// PID is the OS pid of the listening process, when known. Zero means
	// unknown.
	PID int
	// Created is the owner's start time: container creation for
	// container-owned ports, process start ("lstart") for system-owned
	// ports. Zero value means unknown and must never be serialized.
	Created time.Time `json:",omitzero"`
	// Internal is true when the port is exposed by a container but not
	// published to the host.
	Internal bool
}

// HasContainer reports whether this record is attributed to a container.
//
// Returns:
//   - bool: true if ContainerID is set.
func (r Record) HasContainer() bool {
	return r.ContainerID != ""
}

// HasCreated reports whether a creation/start timestamp is known for this
// record's owner.
//
// Returns:
//   - bool: true if Created is a non-zero time.
func (r Record) HasCreated() bool {
	return !r.Created.IsZero()
}

// Valid reports whether the record satisfies the data-model invariants: a
// port number in range, a recognized protocol, and source/container-id
// consistency (a set ContainerID implies Source is container or platform).
//
// Returns:
//   - bool: true if the record is internally consistent.
func (r Record) Valid() bool {
	if r.HostPort < 1 || r.HostPort > 65535 {
		return false
	}
	if r.Protocol != ProtocolTCP && r.Protocol != ProtocolUDP {
		return false
	}
	if r.HasContainer() && r.Source != SourceContainer && r.Source != SourcePlatform {
		return false
	}
	if r.HostIP == "*" {
		return false
	}
	return true
}

// NormalizeHostIP maps the wildcard literal "*" to the IPv4 any-address
// form "0.0.0.0". Every other address is returned unchanged.
//
// Params:
//   - ip: the address as reported by a source.
//   - proto: the protocol; it does not affect the result.
//
// Returns:
//   - string: the normalized address.
func NormalizeHostIP(ip string, proto Protocol) string {
	if ip != "*" {
		return ip
	}
	// Default to the IPv4 wildcard; callers with IPv6-specific knowledge
	// should normalize before calling NormalizeHostIP, since "*" alone
	// carries no family information.
	_ = proto
	return AnyIPv4
}

//go:build linux

package collect

import (
	"strconv"
	"strings"

	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// expandContainerPorts flattens each container's declared port bindings
// and unpublished-but-exposed ports into one Record per entry, per
// spec.md's port-binding extraction rule: a missing host_ip defaults to
// the IPv4 wildcard, and an exposed port with no binding becomes an
// internal record carrying the synthetic "<short_id>:<port>(internal)"
// target.
func expandContainerPorts(containers []*container.Container) []port.Record {
	var out []port.Record
	for _, c := range containers {
		for key, bindings := range c.PortBindings {
			containerPort, proto := splitPortKey(key)
			if proto == "" {
				continue
			}
			for _, b := range bindings {
				hostIP := b.HostIP
				if hostIP == "" {
					hostIP = port.AnyIPv4
				}
				out = append(out, port.Record{
					Source:      port.SourceContainer,
					Protocol:    proto,
					HostIP:      hostIP,
					HostPort:    b.HostPort,
					Target:      containerPort,
					Owner:       c.DisplayName(),
					ContainerID: c.ShortID(),
					AppID:       c.ShortID(),
					Created:     c.Created,
				})
			}
		}

		for _, key := range c.UnpublishedExposed() {
			containerPort, proto := splitPortKey(key)
			if proto == "" {
				continue
			}
			portNum, err := strconv.Atoi(containerPort)
			if err != nil {
				continue
			}
			out = append(out, port.Record{
				Source:      port.SourceContainer,
				Protocol:    proto,
				HostPort:    portNum,
				Target:      c.ShortID() + ":" + containerPort + "(internal)",
				Owner:       c.DisplayName(),
				ContainerID: c.ShortID(),
				AppID:       c.ShortID(),
				Created:     c.Created,
				Internal:    true,
			})
		}
	}
	return out
}

// splitPortKey splits a "container_port/proto" key as used in
// container.Container's PortBindings/ExposedPorts maps.
//
// Returns:
//   - string: the container port, unparsed.
//   - port.Protocol: "tcp" or "udp", empty for an unrecognized key.
func splitPortKey(key string) (string, port.Protocol) {
	portStr, proto, found := strings.Cut(key, "/")
	if !found {
		return "", ""
	}
	switch proto {
	case string(port.ProtocolTCP):
		return portStr, port.ProtocolTCP
	case string(port.ProtocolUDP):
		return portStr, port.ProtocolUDP
	default:
		return "", ""
	}
}

package reconcile

import (
	"fmt"

	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// containerKey computes the dedup key for a container-sourced record:
// "<container_id>:<host_port>:<protocol>:internal" for unpublished-but-exposed
// ports, else "<host_ip>:<host_port>:<protocol>", per spec.md §4.7 step 1.
// Protocol is part of the key since a TCP and UDP record at the same address
// are distinct records, not duplicates.
func containerKey(containerID, hostIP string, hostPort int, proto port.Protocol, internal bool) string {
	if internal {
		return fmt.Sprintf("%s:%d:%s:internal", containerID, hostPort, proto)
	}
	return systemKey(hostIP, hostPort, proto)
}

// systemKey computes the dedup key used to merge system-sourced records
// against the container-seeded map, per spec.md §4.7 step 2.
func systemKey(hostIP string, hostPort int, proto port.Protocol) string {
	return fmt.Sprintf("%s:%d:%s", hostIP, hostPort, proto)
}

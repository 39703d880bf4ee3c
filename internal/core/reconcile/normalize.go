package reconcile

import (
	"sort"
	"strings"

	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// broadcastSuffix marks IPv4 directed-broadcast addresses, which the
// reconciler never reports since they are not genuine listening endpoints.
const broadcastSuffix = ".255"

// normalizeRecords maps the "*" wildcard to the IPv4 any-address form
// "0.0.0.0" and drops directed-broadcast host_ip entries, per spec.md §4.7
// step 6.
func normalizeRecords(records []port.Record) []port.Record {
	out := make([]port.Record, 0, len(records))
	for _, r := range records {
		r.HostIP = port.NormalizeHostIP(r.HostIP, r.Protocol)
		if strings.HasSuffix(r.HostIP, broadcastSuffix) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortRecords orders records by (host_ip, host_port, container_id,
// protocol) so output is stable across identical inputs, per spec.md §4.7
// step 7.
func sortRecords(records []port.Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.HostIP != b.HostIP {
			return a.HostIP < b.HostIP
		}
		if a.HostPort != b.HostPort {
			return a.HostPort < b.HostPort
		}
		if a.ContainerID != b.ContainerID {
			return a.ContainerID < b.ContainerID
		}
		return a.Protocol < b.Protocol
	})
}

//go:build linux

package collect

import (
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
)

// toSystemRecords converts resolver-attributed kernel listeners into
// system-sourced port Records, the shape the reconciler expects for its
// second input. Attribution (pid/owner) survives as-is; the reconciler
// re-attributes to a container where its PID maps allow it.
func toSystemRecords(listeners []socket.Listener) []port.Record {
	out := make([]port.Record, 0, len(listeners))
	for _, l := range listeners {
		out = append(out, port.Record{
			Source:   port.SourceSystem,
			Protocol: port.Protocol(l.Protocol),
			HostIP:   l.HostIP,
			HostPort: l.HostPort,
			Owner:    l.Owner,
			PID:      l.PID,
		})
	}
	return out
}

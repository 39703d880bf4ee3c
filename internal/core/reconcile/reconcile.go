// Package reconcile implements the central merge algorithm: it combines
// container-sourced, system-sourced, and (by the caller, after Reconcile
// returns) platform-sourced port observations into one deduplicated,
// correctly-attributed list.
package reconcile

import (
	"strconv"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/config"
	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/domain/port"
)

// ContainerRef identifies a container by id and display name, the minimum
// needed to promote a system-sourced record to container ownership.
type ContainerRef struct {
	ID   string
	Name string
}

// containerInfo is the subset of container.Container the known-service
// fuzzy matcher (step 4) and self-attribution (step 3) need.
type containerInfo struct {
	ID    string
	Name  string
	Image string
}

// FilterPolicy controls step 5's protocol filtering.
type FilterPolicy struct {
	// IncludeUDP keeps every UDP port regardless of source or registry
	// membership, bypassing the known-UDP allow-list entirely.
	IncludeUDP bool
	// IncludeSystemUDP keeps system-sourced UDP ports outside the
	// known-UDP allow-list, which are otherwise dropped.
	IncludeSystemUDP bool
}

// Input bundles every argument Reconcile needs, grouped for readability;
// its fields mirror spec.md §4.7's Reconcile(...) contract argument for
// argument, plus the container list step 3/4 require to resolve names.
type Input struct {
	// DockerPorts are the container-sourced records, already expanded one
	// per published binding and one per unpublished-but-exposed port.
	DockerPorts []port.Record
	// SystemPorts are the kernel-sourced, resolver-attributed records.
	SystemPorts []port.Record
	// Containers is the full current container list, used for
	// self-attribution and known-service fuzzy matching.
	Containers []*container.Container
	// PIDToContainer maps a container's PID-1 to its identity.
	PIDToContainer map[int]ContainerRef
	// HostProcToContainer maps any PID belonging to a host-networked
	// container to that container's identity.
	HostProcToContainer map[int]ContainerRef
	// ContainerCreations maps container id to its creation time.
	ContainerCreations map[string]time.Time
	// ProcessStartTimes maps PID to the owning process's start time.
	ProcessStartTimes map[int]time.Time
	// SelfPort is this agent's own listening port, for self-attribution.
	SelfPort int
	// SelfContainerName is this agent's own container name, when
	// containerized.
	SelfContainerName string
	// Filter controls UDP protocol filtering.
	Filter FilterPolicy
}

// Reconcile runs the seven-step merge algorithm and returns the
// deduplicated, attributed, filtered, normalized, stably-sorted port list.
//
// Params:
//   - in: every source's output plus the cross-reference maps and policy
//     knobs the algorithm needs.
//
// Returns:
//   - []port.Record: the reconciled port list.
func Reconcile(in Input) []port.Record {
	index := make(map[string]*port.Record, len(in.DockerPorts)+len(in.SystemPorts))
	order := make([]string, 0, len(in.DockerPorts)+len(in.SystemPorts))

	seedContainerPorts(in, index, &order)
	mergeSystemPorts(in, index, &order)

	records := materialize(index, order)
	records = selfAttribute(records, in)
	records = enrichKnownServices(records, in.Containers)
	records = filterProtocols(records, in.Filter)
	records = normalizeRecords(records)
	sortRecords(records)
	return records
}

// seedContainerPorts implements spec.md §4.7 step 1.
func seedContainerPorts(in Input, index map[string]*port.Record, order *[]string) {
	for _, r := range in.DockerPorts {
		r := r
		key := containerKey(r.ContainerID, r.HostIP, r.HostPort, r.Protocol, r.Internal)
		if _, exists := index[key]; exists {
			continue
		}
		if r.Created.IsZero() {
			if created, ok := in.ContainerCreations[r.ContainerID]; ok {
				r.Created = created
			}
		}
		index[key] = &r
		*order = append(*order, key)
	}
}

// mergeSystemPorts implements spec.md §4.7 step 2.
func mergeSystemPorts(in Input, index map[string]*port.Record, order *[]string) {
	for _, r := range in.SystemPorts {
		r := r
		key := systemKey(r.HostIP, r.HostPort, r.Protocol)

		if existing, ok := index[key]; ok {
			if existing.PID == 0 {
				existing.PID = r.PID
			}
			continue
		}

		promoted := false
		if ref, ok := in.PIDToContainer[r.PID]; ok {
			promote(&r, ref)
			promoted = true
		} else if ref, ok := in.HostProcToContainer[r.PID]; ok {
			promote(&r, ref)
			promoted = true
		}

		if start, ok := in.ProcessStartTimes[r.PID]; ok {
			r.Created = start
		} else if promoted {
			if created, ok := in.ContainerCreations[r.ContainerID]; ok {
				r.Created = created
			}
		}

		index[key] = &r
		*order = append(*order, key)
	}
}

// promote applies the "container outranks system" re-attribution, per
// spec.md §4.7 step 2's direct- and host-networked-PID branches.
func promote(r *port.Record, ref ContainerRef) {
	r.Source = port.SourceContainer
	r.ContainerID = ref.ID
	r.AppID = ref.ID
	r.Owner = ref.Name
	r.Target = strconv.Itoa(r.HostPort)
}

func materialize(index map[string]*port.Record, order []string) []port.Record {
	out := make([]port.Record, 0, len(order))
	for _, key := range order {
		out = append(out, *index[key])
	}
	return out
}

// selfAttribute implements spec.md §4.7 step 3: if an entry is this
// agent's own system-sourced listener, and a container matching
// SelfContainerName exists, promote it to that container.
func selfAttribute(records []port.Record, in Input) []port.Record {
	if in.SelfContainerName == "" || in.SelfPort == 0 {
		return records
	}
	var self *container.Container
	for _, c := range in.Containers {
		if c.DisplayName() == in.SelfContainerName || c.ShortID() == in.SelfContainerName {
			self = c
			break
		}
	}
	if self == nil {
		return records
	}
	for i := range records {
		r := &records[i]
		if r.Source == port.SourceSystem && r.HostPort == in.SelfPort {
			r.Source = port.SourceContainer
			r.ContainerID = self.ShortID()
			r.AppID = self.ShortID()
			r.Owner = self.DisplayName()
		}
	}
	return records
}

// enrichKnownServices implements spec.md §4.7 step 4.
func enrichKnownServices(records []port.Record, containers []*container.Container) []port.Record {
	candidates := toContainerInfo(containers)
	for i := range records {
		r := &records[i]
		if r.Source != port.SourceSystem {
			continue
		}
		svc, ok := lookupKnownService(r.HostPort)
		if !ok {
			continue
		}
		matches := matchingContainers(svc, candidates)
		winner, ok := preferredMatch(svc, matches)
		if !ok {
			continue
		}
		r.Source = port.SourceContainer
		r.ContainerID = winner.ID
		r.AppID = winner.ID
		r.Owner = winner.Name
	}
	return records
}

func toContainerInfo(containers []*container.Container) []containerInfo {
	out := make([]containerInfo, 0, len(containers))
	for _, c := range containers {
		out = append(out, containerInfo{ID: c.ShortID(), Name: c.DisplayName(), Image: c.Image})
	}
	return out
}

// filterProtocols implements spec.md §4.7 step 5: TCP always kept; UDP
// kept when container-sourced, known, or opted in.
func filterProtocols(records []port.Record, filter FilterPolicy) []port.Record {
	out := make([]port.Record, 0, len(records))
	for _, r := range records {
		if r.Protocol == port.ProtocolTCP {
			out = append(out, r)
			continue
		}
		if filter.IncludeUDP || r.Source == port.SourceContainer || config.IsKnownUDPPort(r.HostPort) || filter.IncludeSystemUDP {
			out = append(out, r)
		}
	}
	return out
}

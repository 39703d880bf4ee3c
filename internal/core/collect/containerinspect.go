//go:build linux

package collect

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/core/reconcile"
	"github.com/mostafa-wahied/portracker-core/internal/domain/collecterr"
	"github.com/mostafa-wahied/portracker-core/internal/domain/container"
	"github.com/mostafa-wahied/portracker-core/internal/domain/logging"
)

// maxInspectConcurrency caps the number of in-flight per-container inspect
// calls, bounded by host CPU count so a host with hundreds of containers
// cannot open hundreds of simultaneous engine requests.
const maxInspectConcurrency = 16

// inspectResult is one container's full inspection, plus the host-process
// pids to attribute when it runs network_mode=host.
type inspectResult struct {
	full      *container.Container
	hostProcs []int
}

// inspectAll fully inspects each summary container, bounded to
// min(maxInspectConcurrency, runtime.NumCPU()) concurrent calls via a
// buffered semaphore channel with one goroutine per container — the
// same goroutine-per-item, channel-bounded fan-out shape used elsewhere in
// this codebase for short-lived per-item work, sized here instead of left
// unbounded since the item count is attacker/operator controlled (the
// number of running containers). A container whose inspect call fails is
// logged and kept in its summary form, per collecterr.PerItemFailure's
// degrade rule.
//
// Params:
//   - ctx: bounds every inspect/processes call.
//   - engine: the container engine adapter.
//   - summaries: the containers as returned by ListContainers.
//   - logger: receives a PerItemFailure-kind warning per failed inspect.
//
// Returns:
//   - []*container.Container: one entry per summary, upgraded to the full
//     inspection where it succeeded.
//   - map[string][]int: container short id to host-namespace pids,
//     populated only for network_mode=host containers.
func inspectAll(ctx context.Context, engine ContainerEngine, summaries []*container.Container, logger logging.Logger) ([]*container.Container, map[string][]int) {
	limit := maxInspectConcurrency
	if n := runtime.NumCPU(); n < limit {
		limit = n
	}
	if limit < 1 {
		limit = 1
	}

	sem := make(chan struct{}, limit)
	var wg sync.WaitGroup
	results := make([]*container.Container, len(summaries))

	for i, summary := range summaries {
		i, summary := i, summary
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			full, err := engine.InspectContainer(ctx, summary.ID, false)
			if err != nil {
				logPerItemFailure(logger, summary.ID, err)
				results[i] = summary
				return
			}
			results[i] = full
		}()
	}
	wg.Wait()

	hostProcs := make(map[string][]int)
	var hostProcsMu sync.Mutex
	for _, c := range results {
		if c == nil || !c.IsHostNetworked() {
			continue
		}
		c := c
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			pids, err := engine.ContainerProcesses(ctx, c.ID)
			if err != nil {
				logPerItemFailure(logger, c.ID, err)
				return
			}
			hostProcsMu.Lock()
			hostProcs[c.ShortID()] = pids
			hostProcsMu.Unlock()
		}()
	}
	wg.Wait()

	return results, hostProcs
}

func logPerItemFailure(logger logging.Logger, containerID string, err error) {
	if logger == nil {
		return
	}
	cerr := collecterr.New(collecterr.PerItemFailure, "dockerengine", err)
	logger.Warn("collect", "container_inspect_failed", cerr.Error(), map[string]any{
		"container_id": containerID,
	})
}

// buildContainerMaps derives the reconciler's cross-reference maps from
// the fully inspected container list and the host-process pid map.
func buildContainerMaps(containers []*container.Container, hostProcs map[string][]int) (
	pidToContainer map[int]reconcile.ContainerRef,
	hostProcToContainer map[int]reconcile.ContainerRef,
	creations map[string]time.Time,
) {
	pidToContainer = make(map[int]reconcile.ContainerRef, len(containers))
	hostProcToContainer = make(map[int]reconcile.ContainerRef)
	creations = make(map[string]time.Time, len(containers))

	for _, c := range containers {
		if c == nil {
			continue
		}
		ref := reconcile.ContainerRef{ID: c.ShortID(), Name: c.DisplayName()}
		creations[c.ShortID()] = c.Created
		if c.PID != 0 {
			pidToContainer[c.PID] = ref
		}
		for _, pid := range hostProcs[c.ShortID()] {
			hostProcToContainer[pid] = ref
		}
	}

	return pidToContainer, hostProcToContainer, creations
}

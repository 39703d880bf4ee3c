//go:build linux

package resolver

import (
	"context"
	"time"

	"github.com/mostafa-wahied/portracker-core/internal/domain/socket"
	"github.com/mostafa-wahied/portracker-core/internal/infrastructure/ttlcache"
)

// inodeMapTTL amortizes inode-map scans across multiple calls within a
// single refresh.
const inodeMapTTL = 2 * time.Second

// targetedScanThreshold is the fraction of listeners the primary inode-map
// scan must attribute before the targeted-scan fallback is skipped.
const targetedScanThreshold = 0.5

// ssFallbackThreshold is the fraction of still-unmapped inodes the
// targeted scan must resolve before the ss fallback is skipped.
const ssFallbackThreshold = 0.25

// inodeMapCacheKey is the single ttlcache key the resolver uses; the cache
// is otherwise shared with the rest of the collector, so the key is
// namespaced to avoid collisions.
const inodeMapCacheKey = "resolver:inodemap"

// Resolver attributes kernel listeners to owning processes using the
// inode-map primary strategy with the targeted-scan and ss-tool fallbacks.
type Resolver struct {
	procRoots []string
	cache     *ttlcache.Cache
}

// New creates a Resolver scanning the given proc roots in order.
//
// Params:
//   - procRoots: one or more candidate proc roots to scan, in priority order.
//   - cache: the shared TTL cache used to amortize inode-map scans.
//
// Returns:
//   - *Resolver: ready to resolve listener ownership.
func New(procRoots []string, cache *ttlcache.Cache) *Resolver {
	return &Resolver{procRoots: procRoots, cache: cache}
}

// ResolveOwners enriches each listener with pid/owner where attribution
// succeeds. Listeners already carrying a PID (e.g. attributed earlier by
// the container source) are left untouched. Failures at every stage are
// swallowed; ResolveOwners always returns its best-effort result.
//
// Params:
//   - ctx: bounds the ss fallback's external process lifetime.
//   - listeners: the rows to enrich in place and return.
//
// Returns:
//   - []socket.Listener: the same slice, enriched where possible.
func (r *Resolver) ResolveOwners(ctx context.Context, listeners []socket.Listener) []socket.Listener {
	if len(listeners) == 0 {
		return listeners
	}

	m := r.cachedInodeMap()
	attributed := applyInodeMap(listeners, m)

	if float64(attributed) >= targetedScanThreshold*float64(len(listeners)) {
		return listeners
	}

	unmapped := unmappedInodes(listeners)
	targetedFound := 0
	for _, root := range r.procRoots {
		found := targetedScan(root, unmapped)
		targetedFound += applyFoundOwners(listeners, found)
		removeFoundFrom(unmapped, found)
		if len(unmapped) == 0 {
			break
		}
	}

	if len(unmapped) == 0 {
		return listeners
	}
	if float64(targetedFound) >= ssFallbackThreshold*float64(targetedFound+len(unmapped)) {
		return listeners
	}

	ssOwners, err := runSS(ctx)
	if err != nil {
		return listeners
	}
	applyFoundOwners(listeners, ssOwners)

	return listeners
}

// cachedInodeMap returns the merged inode map across every configured
// proc root, refreshed at most once per inodeMapTTL.
//
// Returns:
//   - map[uint64]inodeOwner: the cached or freshly scanned inode map.
func (r *Resolver) cachedInodeMap() map[uint64]inodeOwner {
	v, err := r.cache.GetOrSet(inodeMapCacheKey, inodeMapTTL, func() (any, error) {
		merged := make(map[uint64]inodeOwner)
		for _, root := range r.procRoots {
			for inode, owner := range buildInodeMap(root) {
				if _, exists := merged[inode]; !exists {
					merged[inode] = owner
				}
			}
		}
		return merged, nil
	})
	if err != nil {
		return nil
	}
	m, _ := v.(map[uint64]inodeOwner)
	return m
}

// unmappedInodes returns the set of inodes belonging to listeners still
// lacking a PID.
//
// Params:
//   - listeners: the rows to inspect.
//
// Returns:
//   - map[uint64]struct{}: the unresolved inode set.
func unmappedInodes(listeners []socket.Listener) map[uint64]struct{} {
	out := make(map[uint64]struct{})
	for _, l := range listeners {
		if l.PID == 0 {
			out[l.Inode] = struct{}{}
		}
	}
	return out
}

// applyFoundOwners attributes pid/owner to every listener whose inode is
// in found, leaving already-attributed listeners untouched.
//
// Params:
//   - listeners: the rows to enrich in place.
//   - found: inode-to-owner results from a fallback stage.
//
// Returns:
//   - int: the number of listeners newly attributed.
func applyFoundOwners(listeners []socket.Listener, found map[uint64]inodeOwner) int {
	attributed := 0
	for i := range listeners {
		if listeners[i].PID != 0 {
			continue
		}
		owner, ok := found[listeners[i].Inode]
		if !ok {
			continue
		}
		listeners[i].PID = owner.pid
		listeners[i].Owner = owner.name
		attributed++
	}
	return attributed
}

// removeFoundFrom deletes every inode of found from wanted, in place.
//
// Params:
//   - wanted: the unresolved inode set to shrink.
//   - found: the inodes just resolved.
func removeFoundFrom(wanted map[uint64]struct{}, found map[uint64]inodeOwner) {
	for inode := range found {
		delete(wanted, inode)
	}
}

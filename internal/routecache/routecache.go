// Package routecache memoises per-source routing tables behind a
// content-addressed fingerprint of the adjacency, fault tolerance f, and
// source node, and provides the two planners (`unreliable`, `pathfind`)
// that populate the cache.
package routecache

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/okdaichi/broadcastsim/internal/observability"
)

// Method names a planner implementation.
type Method string

const (
	Unreliable Method = "unreliable"
	Pathfind   Method = "pathfind"
)

// RoutingTable maps a node to the set of next-hop neighbours a message
// from a given source should be forwarded to when it arrives at that
// node.
type RoutingTable map[int]map[int]struct{}

type cacheEntry struct {
	table RoutingTable
	ok    bool
}

// RouteCache is a process-wide memo from fingerprint to routing table (or
// a cached infeasibility), guarded by a single mutex exactly like the
// teacher's internal/sdn.Client.entries map: planners run synchronously
// under the lock, serialising cache consumers in exchange for plans
// being computed at most once per fingerprint.
type RouteCache struct {
	mu       sync.Mutex
	method   Method
	memo     map[string]cacheEntry
	recorder *observability.Recorder

	hits   int
	misses int
}

// New constructs a RouteCache for the given planner method.
func New(method Method) (*RouteCache, error) {
	switch method {
	case Unreliable, Pathfind:
	default:
		return nil, fmt.Errorf("routecache: unknown method %q", method)
	}
	return &RouteCache{
		method:   method,
		memo:     make(map[string]cacheEntry),
		recorder: observability.NewRecorder(string(method)),
	}, nil
}

// Method reports which planner this cache runs.
func (rc *RouteCache) Method() Method { return rc.method }

// Stats returns the cumulative hit/miss counters, for the experiment
// runner's status endpoint.
func (rc *RouteCache) Stats() (hits, misses int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.hits, rc.misses
}

// GenRoutes computes the fingerprint of (adj, f, s), returns the cached
// entry if present (including a cached infeasibility), else runs the
// configured planner, caches the result — success or failure — and
// returns it. A cached infeasible result stays infeasible for the
// lifetime of the cache; a cached table is never mutated.
func (rc *RouteCache) GenRoutes(adj Adjacency, f, s int) (RoutingTable, bool) {
	fp := Fingerprint(adj, f, s)

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if entry, found := rc.memo[fp]; found {
		rc.hits++
		rc.recorder.CacheHit()
		return entry.table, entry.ok
	}
	rc.misses++
	rc.recorder.CacheMiss()

	start := time.Now()
	var table RoutingTable
	var ok bool
	switch rc.method {
	case Unreliable:
		table, ok = planUnreliable(adj, f, s)
	case Pathfind:
		table, ok = planPathfind(adj, f, s)
	}
	if obs := rc.recorder.LatencyObs("plan"); obs != nil {
		obs.Observe(time.Since(start).Seconds())
	}

	rc.memo[fp] = cacheEntry{table: table, ok: ok}
	if !ok {
		slog.Warn("route planning failed", "method", rc.method, "source", s, "f", f)
	}
	return table, ok
}

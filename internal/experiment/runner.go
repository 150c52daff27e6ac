// Package experiment drives broadcast.Graph runs against a loaded
// topology and exposes them over HTTP as a client of the simulation core.
package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/okdaichi/broadcastsim/internal/observability"
	"github.com/okdaichi/broadcastsim/internal/routecache"
	"github.com/okdaichi/broadcastsim/internal/topology"
)

// Result is the outcome of one RunOnce call.
type Result struct {
	Algorithm              string        `json:"algorithm"`
	Method                 string        `json:"method,omitempty"`
	Origin                 int           `json:"origin"`
	TotalMessages          uint64        `json:"total_messages"`
	DeliveredBroadcastsPct float64       `json:"delivered_broadcasts_pct"`
	SettleDuration         time.Duration `json:"settle_duration_ns"`
}

// Runner executes broadcast experiments against a fixed topology.
type Runner struct {
	topo     *topology.Topology
	recorder *observability.Recorder
}

// NewRunner builds a Runner bound to topo.
func NewRunner(topo *topology.Topology) *Runner {
	return &Runner{
		topo:     topo,
		recorder: observability.NewRecorder("experiment"),
	}
}

// RunOnce builds a broadcast.Graph for the given algorithm ("flooding" or
// "routed") and route-cache method, broadcasts a single message with id
// msgID from origin, waits for quiescence, and returns the outcome.
func (r *Runner) RunOnce(ctx context.Context, algorithm string, method routecache.Method, origin int, msgID string) (Result, error) {
	observability.IncExperiments()
	defer observability.DecExperiments()

	var cache *routecache.RouteCache
	if algorithm == "routed" {
		var err error
		cache, err = routecache.New(method)
		if err != nil {
			return Result{}, fmt.Errorf("experiment: %w", err)
		}
	}

	g, ok := buildGraph(r.topo, cache, algorithm)
	if !ok {
		return Result{}, fmt.Errorf("experiment: graph construction failed (algorithm=%s, method=%s unplannable under f=%d)", algorithm, method, len(r.topo.GetFaulty()))
	}
	defer g.Close()

	start := time.Now()
	g.Broadcast(origin, newMessage(origin, msgID))
	if err := g.WaitSettled(ctx); err != nil {
		return Result{}, fmt.Errorf("experiment: wait settled: %w", err)
	}
	elapsed := time.Since(start)

	r.recorder.SettleObserved(elapsed)

	return Result{
		Algorithm:              algorithm,
		Method:                 string(method),
		Origin:                 origin,
		TotalMessages:          g.TotalMessages(),
		DeliveredBroadcastsPct: g.DeliveredBroadcastsPct(),
		SettleDuration:         elapsed,
	}, nil
}

// RunBatch repeats RunOnce n times with fresh message ids, for
// statistical comparison between planner methods or algorithms.
func (r *Runner) RunBatch(ctx context.Context, algorithm string, method routecache.Method, origin, n int) ([]Result, error) {
	results := make([]Result, 0, n)
	for i := 0; i < n; i++ {
		res, err := r.RunOnce(ctx, algorithm, method, origin, fmt.Sprintf("batch-%d", i))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

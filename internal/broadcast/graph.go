package broadcast

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okdaichi/broadcastsim/internal/routecache"
	"github.com/okdaichi/broadcastsim/internal/topology"
)

// settlePoll is the interval Graph.WaitSettled polls the unresolved
// counter at, per spec's "≈42ms" quiescence-detection cadence.
const settlePoll = 42 * time.Millisecond

// Graph is the arena: it owns every Node and Edge and is the sole holder
// of the process-wide unresolved-work counter. Nodes and Edges refer to
// each other by pointer (not by index back into Graph), matching the
// "Graph owns, nothing owns Graph" ownership discipline.
type Graph struct {
	nodes []*Node
	edges []*Edge

	algorithm  Algorithm
	unresolved atomic.Int64

	faultCount     int
	broadcastCount atomic.Int64
}

// NewGraph builds a Graph over topo's edge set running the named
// algorithm, one of "flooding" or "routed". For "routed", every node is
// queried against cache as a potential broadcast source — the planner
// cache actually runs ("unreliable" or "pathfind") is a property of
// cache itself, set at routecache.New — and if any source is
// unplannable under topo's f, construction fails and (nil, false) is
// returned.
func NewGraph(topo *topology.Topology, cache *routecache.RouteCache, algorithm string) (*Graph, bool) {
	n := topo.GetN()
	g := &Graph{
		nodes:      make([]*Node, n),
		faultCount: len(topo.GetFaulty()),
	}
	for i := 0; i < n; i++ {
		g.nodes[i] = newNode(i)
	}
	for _, f := range topo.GetFaulty() {
		g.nodes[f].SetFaulty(true)
	}

	switch algorithm {
	case "flooding":
		g.algorithm = NewFloodingAlgorithm()
	case "routed":
		adj := adjacencyFromTopology(topo)
		labels := make([]int, n)
		for i := range labels {
			labels[i] = i
		}
		routed, ok := NewRoutedAlgorithm(adj, len(topo.GetFaulty()), labels, cache)
		if !ok {
			return nil, false
		}
		g.algorithm = routed
	default:
		return nil, false
	}

	var edgeID uint64
	for _, e := range topo.GetEdges() {
		g.connect(e.U, e.V, &edgeID)
		g.connect(e.V, e.U, &edgeID)
	}

	return g, true
}

func (g *Graph) connect(from, to int, edgeID *uint64) {
	e := newEdge(*edgeID, from, g.nodes[to], g.algorithm, &g.unresolved)
	*edgeID++
	g.nodes[from].addEdge(e)
	g.edges = append(g.edges, e)
}

func adjacencyFromTopology(topo *topology.Topology) routecache.Adjacency {
	adj := make(routecache.Adjacency, topo.GetN())
	for i := 0; i < topo.GetN(); i++ {
		adj[i] = make(map[int]struct{})
	}
	for _, e := range topo.GetEdges() {
		adj[e.U][e.V] = struct{}{}
		adj[e.V][e.U] = struct{}{}
	}
	return adj
}

// Broadcast originates msg at the node labelled origin.
func (g *Graph) Broadcast(origin int, msg Message) {
	g.broadcastCount.Add(1)
	g.nodes[origin].Broadcast(g.algorithm, msg)
}

// WaitSettled blocks until the unresolved-work counter observes zero (no
// message in flight, no algorithm still processing) or ctx is done.
func (g *Graph) WaitSettled(ctx context.Context) error {
	ticker := time.NewTicker(settlePoll)
	defer ticker.Stop()

	if g.unresolved.Load() == 0 {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if g.unresolved.Load() == 0 {
				return nil
			}
		}
	}
}

// TotalMessages returns the total number of sends issued across every
// edge in the graph.
func (g *Graph) TotalMessages() uint64 {
	var total uint64
	for _, e := range g.edges {
		total += e.SentCount()
	}
	return total
}

// DeliveredBroadcastsPct returns 100 * sum(|delivered|) /
// (#broadcasts * (N-f)). Returns 100 if no broadcast has been issued yet
// (vacuous).
func (g *Graph) DeliveredBroadcastsPct() float64 {
	broadcasts := g.broadcastCount.Load()
	denom := float64(broadcasts) * float64(len(g.nodes)-g.faultCount)
	if denom <= 0 {
		return 100
	}

	var delivered float64
	for _, node := range g.nodes {
		delivered += float64(len(node.Delivered()))
	}
	return 100 * delivered / denom
}

// Node returns the node with the given label, for test and driver
// inspection.
func (g *Graph) Node(label int) *Node { return g.nodes[label] }

// NodeCount returns N.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Close tears down every edge's pump goroutine. After Close returns, no
// further Broadcast calls are safe.
func (g *Graph) Close() {
	for _, e := range g.edges {
		e.close()
	}
}

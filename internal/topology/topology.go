// Package topology generates and persists random regular graphs used as
// the network substrate for broadcast simulations, and verifies their
// vertex connectivity via internal/flowgraph's max-flow oracle.
//
// A Topology is immutable once built: Generate, GenerateWithRand and Parse
// build populated topologies (Default returns an empty one, WithFaulty a
// modified copy), and callers are expected to treat the result as
// read-only for the lifetime of an experiment.
package topology

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/okdaichi/broadcastsim/internal/flowgraph"
)

// Topology is the tuple (N, C, E, F) from the simulator's data model: N
// nodes, vertex-connectivity C, edge set E, and a faulty set F with
// |F| = f and C > f.
type Topology struct {
	n      int
	c      int
	edges  []flowgraph.Edge
	faulty []int
}

// Default returns the zero-value Topology (no nodes, no edges). Safe to
// use as a placeholder before Generate or Parse populates it.
func Default() *Topology {
	return &Topology{}
}

// GetN returns the node count.
func (t *Topology) GetN() int { return t.n }

// GetC returns the verified vertex-connectivity.
func (t *Topology) GetC() int { return t.c }

// GetEdges returns the edge list. Callers must not mutate the returned
// slice's backing array.
func (t *Topology) GetEdges() []flowgraph.Edge { return t.edges }

// GetFaulty returns the faulty node id set. Callers must not mutate the
// returned slice's backing array.
func (t *Topology) GetFaulty() []int { return t.faulty }

// IsFaulty reports whether node n is in the faulty set.
func (t *Topology) IsFaulty(n int) bool {
	for _, f := range t.faulty {
		if f == n {
			return true
		}
	}
	return false
}

// FlowGraph builds the internal/flowgraph adjacency view of this
// Topology's edge set, for callers (e.g. the route planners) that need
// max-flow queries over it.
func (t *Topology) FlowGraph() *flowgraph.Graph {
	return flowgraph.New(t.edges)
}

// outerAttempts bounds Generate's retries, per spec.
const outerAttempts = 25000

var defaultRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// Generate builds a random c-regular graph on n nodes via the
// configuration model with backtracking, verifies its connectivity equals
// c, and samples a faulty set of size f. Returns (topology, true) on
// success or (nil, false) if the request is infeasible (c==0, n<=c,
// n*c odd) or no valid graph was found within the retry budget.
func Generate(n, c, f int) (*Topology, bool) {
	return GenerateWithRand(n, c, f, defaultRand)
}

// GenerateWithRand is Generate with an injectable random source, used by
// tests that need deterministic, reproducible topologies.
func GenerateWithRand(n, c, f int, rng *rand.Rand) (*Topology, bool) {
	if c == 0 || n <= c || (n*c)%2 != 0 {
		return nil, false
	}

	for attempt := 0; attempt < outerAttempts; attempt++ {
		edges, ok := configurationModelAttempt(n, c, rng)
		if !ok {
			continue
		}
		nodes := make([]int, n)
		for i := range nodes {
			nodes[i] = i
		}
		got := flowgraph.New(edges).ConnectivityOver(nodes)
		if got != c {
			continue
		}

		faulty := sampleFaulty(n, f, rng)
		return &Topology{n: n, c: c, edges: edges, faulty: faulty}, true
	}
	return nil, false
}

// configurationModelAttempt runs one attempt of the configuration-model
// stub-pairing procedure: each node starts with c stubs; stubs are
// repeatedly shuffled and paired adjacently until none remain. A pairing
// (a,b), a<b, is accepted if a != b and not already an accepted edge;
// otherwise both stubs are returned to the pool for the next round. If a
// round makes no progress at all (every pair it proposed was rejected),
// the attempt is abandoned so the caller can retry with a fresh shuffle
// from scratch.
func configurationModelAttempt(n, c int, rng *rand.Rand) ([]flowgraph.Edge, bool) {
	stubs := make([]int, 0, n*c)
	for node := 0; node < n; node++ {
		for k := 0; k < c; k++ {
			stubs = append(stubs, node)
		}
	}

	type pair struct{ a, b int }
	accepted := make(map[pair]struct{})

	for len(stubs) > 0 {
		rng.Shuffle(len(stubs), func(i, j int) {
			stubs[i], stubs[j] = stubs[j], stubs[i]
		})

		var leftover []int
		for i := 0; i+1 < len(stubs); i += 2 {
			a, b := stubs[i], stubs[i+1]
			if a > b {
				a, b = b, a
			}
			p := pair{a, b}
			if _, dup := accepted[p]; a != b && !dup {
				accepted[p] = struct{}{}
			} else {
				leftover = append(leftover, stubs[i], stubs[i+1])
			}
		}

		if len(leftover) == len(stubs) {
			// no progress this round (suitable_graph check failed): abandon.
			return nil, false
		}
		stubs = leftover
	}

	edges := make([]flowgraph.Edge, 0, len(accepted))
	for p := range accepted {
		edges = append(edges, flowgraph.Edge{U: p.a, V: p.b})
	}
	return edges, true
}

// sampleFaulty draws f distinct node indices from [0,n) uniformly without
// replacement.
func sampleFaulty(n, f int, rng *rand.Rand) []int {
	if f <= 0 {
		return nil
	}
	perm := rng.Perm(n)
	faulty := append([]int(nil), perm[:f]...)
	sort.Ints(faulty)
	return faulty
}

// errInfeasible documents why Parse refused a topology file.
type errInfeasible struct {
	c, f int
}

func (e *errInfeasible) Error() string {
	return fmt.Sprintf("topology connectivity %d does not tolerate f=%d faults", e.c, e.f)
}

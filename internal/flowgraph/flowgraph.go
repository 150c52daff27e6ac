// Package flowgraph builds an undirected adjacency graph from an edge list
// and answers max-flow / connectivity queries over it via unit-capacity
// Ford-Fulkerson with BFS augmentation.
package flowgraph

// Edge is an unordered node pair (u, v), u != v.
type Edge struct {
	U, V int
}

// Graph is an undirected adjacency-set graph derived from an edge list.
// Each endpoint of an edge appears in the other's neighbour set.
type Graph struct {
	adj map[int]map[int]struct{}
}

// New builds a Graph from an edge list. Self-loops are dropped; duplicate
// pairs are collapsed (the resulting adjacency sets are idempotent).
func New(edges []Edge) *Graph {
	g := &Graph{adj: make(map[int]map[int]struct{})}
	for _, e := range edges {
		if e.U == e.V {
			continue
		}
		g.addHalfEdge(e.U, e.V)
		g.addHalfEdge(e.V, e.U)
	}
	return g
}

func (g *Graph) addHalfEdge(u, v int) {
	set, ok := g.adj[u]
	if !ok {
		set = make(map[int]struct{})
		g.adj[u] = set
	}
	set[v] = struct{}{}
}

// Nodes returns the set of node ids with at least one incident edge.
func (g *Graph) Nodes() []int {
	nodes := make([]int, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	return nodes
}

// Degree returns the number of neighbours of n.
func (g *Graph) Degree(n int) int {
	return len(g.adj[n])
}

// Neighbours returns the neighbour set of n, or nil if n is absent.
func (g *Graph) Neighbours(n int) map[int]struct{} {
	return g.adj[n]
}

// MaxFlow returns the number of edge-disjoint paths from s to t, treating
// the undirected graph as a flow network where each undirected edge may
// carry one unit of flow in each direction simultaneously.
//
// Implementation: repeatedly BFS from s to t in the residual graph implied
// by a "flowing" set of directed unit edges. From node u the permitted next
// hops are neighbours v with (u,v) not already in flowing. When an
// augmenting path is found, for each hop (u,v) on it: if (v,u) is in
// flowing, cancel it (remove); otherwise insert (u,v). The final flow is
// the number of (s,*) entries in flowing minus the number of (*,s)
// entries.
func (g *Graph) MaxFlow(s, t int) int {
	if s == t {
		return 0
	}
	if _, ok := g.adj[s]; !ok {
		return 0
	}
	if _, ok := g.adj[t]; !ok {
		return 0
	}

	type dedge = struct{ u, v int }
	flowing := make(map[dedge]struct{})

	for {
		path, ok := g.bfsAugmentingPath(s, t, flowing)
		if !ok {
			break
		}
		for i := 0; i+1 < len(path); i++ {
			u, v := path[i], path[i+1]
			if _, reverse := flowing[dedge{v, u}]; reverse {
				delete(flowing, dedge{v, u})
			} else {
				flowing[dedge{u, v}] = struct{}{}
			}
		}
	}

	flow := 0
	for de := range flowing {
		if de.u == s {
			flow++
		}
		if de.v == s {
			flow--
		}
	}
	return flow
}

// bfsAugmentingPath finds a shortest s->t path in the residual graph
// implied by flowing: from u, v is reachable iff (u,v) is a graph edge and
// (u,v) is not already in flowing.
func (g *Graph) bfsAugmentingPath(s, t int, flowing map[struct{ u, v int }]struct{}) ([]int, bool) {
	type dedge = struct{ u, v int }

	prev := map[int]int{s: s}
	queue := []int{s}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == t {
			return reconstructPath(prev, s, t), true
		}
		for v := range g.adj[u] {
			if _, visited := prev[v]; visited {
				continue
			}
			if _, used := flowing[dedge{u, v}]; used {
				continue
			}
			prev[v] = u
			queue = append(queue, v)
		}
	}
	return nil, false
}

func reconstructPath(prev map[int]int, s, t int) []int {
	path := []int{t}
	for path[len(path)-1] != s {
		cur := path[len(path)-1]
		path = append(path, prev[cur])
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// Connectivity returns the vertex-connectivity of the graph: the minimum,
// over all pairs i<j among the given nodes, of MaxFlow(i, j) — capped by
// the minimum degree among those nodes, since no flow can exceed a node's
// own degree.
func Connectivity(edges []Edge, nodes []int) int {
	g := New(edges)
	return g.ConnectivityOver(nodes)
}

// ConnectivityOver computes the connectivity of g restricted to the given
// node set (used both for full-graph connectivity checks and for the
// pathfind planner's partial-connectivity look-ahead over a node subset).
func (g *Graph) ConnectivityOver(nodes []int) int {
	if len(nodes) < 2 {
		return 0
	}

	minDeg := -1
	for _, n := range nodes {
		d := g.Degree(n)
		if minDeg == -1 || d < minDeg {
			minDeg = d
		}
	}

	min := -1
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			f := g.MaxFlow(nodes[i], nodes[j])
			if min == -1 || f < min {
				min = f
			}
		}
	}
	if min == -1 {
		min = 0
	}
	if minDeg >= 0 && minDeg < min {
		return minDeg
	}
	return min
}

// Subgraph returns a new Graph containing only edges whose both endpoints
// are in keep. Used by the pathfind planner to compute partial
// connectivity after excluding a path's interior nodes.
func (g *Graph) Subgraph(keep map[int]struct{}) *Graph {
	sub := &Graph{adj: make(map[int]map[int]struct{})}
	for u := range keep {
		for v := range g.adj[u] {
			if _, ok := keep[v]; ok {
				sub.addHalfEdge(u, v)
			}
		}
	}
	return sub
}

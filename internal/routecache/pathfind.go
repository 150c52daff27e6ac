package routecache

import (
	"sort"

	"github.com/okdaichi/broadcastsim/internal/flowgraph"
)

// pathfindState tracks the greedy disjoint-path planner's running
// per-node bookkeeping across commit iterations.
type pathfindState struct {
	g        *flowgraph.Graph
	allNodes []int
	s, f     int

	routes   RoutingTable
	used     map[int]map[int]struct{}
	accepted map[int]int
}

// planPathfind implements the greedy disjoint-path planner scored by
// (partial connectivity, overlap, add). Returns ok=false if any target
// node never accumulates accepted > f (no candidate path exists at any
// depth up to N-1) — this poisons the cache slot, per spec.
func planPathfind(adj Adjacency, f, s int) (RoutingTable, bool) {
	edges := adjacencyToEdges(adj)
	g := flowgraph.New(edges)

	nodes := g.Nodes()
	if len(nodes) == 0 {
		return nil, false
	}

	st := &pathfindState{
		g:        g,
		allNodes: nodes,
		s:        s,
		f:        f,
		routes:   make(RoutingTable),
		used:     make(map[int]map[int]struct{}),
		accepted: make(map[int]int),
	}
	st.routes[s] = make(map[int]struct{})
	for v := range g.Neighbours(s) {
		st.routes[s][v] = struct{}{}
		st.accepted[v] = 1
		st.used[v] = map[int]struct{}{s: {}}
	}

	for {
		t, ok := st.selectTarget()
		if !ok {
			break
		}
		path, ok := st.selectPath(t)
		if !ok {
			return nil, false
		}
		st.commit(t, path)
	}

	return st.routes, true
}

// selectTarget runs a fresh BFS from s each call, colouring nodes as they
// are discovered; the first layer containing an uncoloured node with
// accepted <= f wins, breaking ties by smallest accepted then smallest
// node id.
func (st *pathfindState) selectTarget() (int, bool) {
	coloured := map[int]bool{st.s: true}
	frontier := []int{st.s}

	for len(frontier) > 0 {
		var nextFrontier []int
		var candidates []int

		for _, u := range frontier {
			for v := range st.g.Neighbours(u) {
				if coloured[v] {
					continue
				}
				coloured[v] = true
				nextFrontier = append(nextFrontier, v)
				if st.accepted[v] <= st.f {
					candidates = append(candidates, v)
				}
			}
		}

		if len(candidates) > 0 {
			sort.Slice(candidates, func(i, j int) bool {
				a, b := candidates[i], candidates[j]
				if st.accepted[a] != st.accepted[b] {
					return st.accepted[a] < st.accepted[b]
				}
				return a < b
			})
			return candidates[0], true
		}
		frontier = nextFrontier
	}
	return 0, false
}

// selectPath searches increasing depths d = 1..N-1 for simple paths
// s->t whose interior avoids used[t], scoring each by
// (partialConnectivity, overlap, add) and returning the best candidate
// at the first depth that yields any.
func (st *pathfindState) selectPath(t int) ([]int, bool) {
	n := len(st.allNodes)
	usedT := st.used[t]

	for d := 1; d <= n-1; d++ {
		candidates := enumerateSimplePaths(st.g, st.s, t, d, usedT)
		if len(candidates) == 0 {
			continue
		}

		type scored struct {
			path               []int
			conn, overlap, add int
		}
		scoredPaths := make([]scored, len(candidates))
		for i, p := range candidates {
			scoredPaths[i] = scored{
				path:    p,
				conn:    st.partialConnectivity(p, usedT),
				overlap: overlapWith(i, candidates),
				add:     st.addCount(p),
			}
		}

		sort.Slice(scoredPaths, func(i, j int) bool {
			a, b := scoredPaths[i], scoredPaths[j]
			if a.conn != b.conn {
				return a.conn > b.conn
			}
			if a.overlap != b.overlap {
				return a.overlap < b.overlap
			}
			return a.add > b.add
		})
		return scoredPaths[0].path, true
	}
	return nil, false
}

// commit installs the selected path's hops into routes[u], marks its
// interior as used against t, and increments accepted[t].
func (st *pathfindState) commit(t int, path []int) {
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		if st.routes[u] == nil {
			st.routes[u] = make(map[int]struct{})
		}
		st.routes[u][v] = struct{}{}
	}
	if st.used[t] == nil {
		st.used[t] = make(map[int]struct{})
	}
	for _, u := range path[1 : len(path)-1] {
		st.used[t][u] = struct{}{}
	}
	st.accepted[t]++
}

// partialConnectivity computes max_flow(s, t) on the subgraph obtained by
// removing the interior vertices of the proposed path and the nodes
// already used against t, while always keeping s and t themselves.
func (st *pathfindState) partialConnectivity(path []int, usedT map[int]struct{}) int {
	keep := make(map[int]struct{}, len(st.allNodes))
	for _, n := range st.allNodes {
		keep[n] = struct{}{}
	}
	for _, n := range path[1 : len(path)-1] {
		delete(keep, n)
	}
	for n := range usedT {
		delete(keep, n)
	}
	keep[st.s] = struct{}{}
	keep[path[len(path)-1]] = struct{}{}

	sub := st.g.Subgraph(keep)
	return sub.MaxFlow(st.s, path[len(path)-1])
}

func (st *pathfindState) addCount(path []int) int {
	add := 0
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		if _, already := st.routes[u][v]; !already {
			add++
		}
	}
	return add
}

// overlapWith sums, over every other candidate path, the size of the
// interior-vertex intersection with candidates[self].
func overlapWith(self int, all [][]int) int {
	pInterior := interiorSet(all[self])
	total := 0
	for i, other := range all {
		if i == self {
			continue
		}
		oInterior := interiorSet(other)
		for n := range pInterior {
			if _, ok := oInterior[n]; ok {
				total++
			}
		}
	}
	return total
}

func interiorSet(path []int) map[int]struct{} {
	set := make(map[int]struct{})
	if len(path) > 2 {
		for _, n := range path[1 : len(path)-1] {
			set[n] = struct{}{}
		}
	}
	return set
}

// enumerateSimplePaths returns every simple path from s to t of exactly
// d edges whose interior vertices avoid avoid. t itself is exempt from
// the avoid-set check (a path may legitimately terminate at t even if t
// is in used[t]'s key space, which it never is by construction).
func enumerateSimplePaths(g *flowgraph.Graph, s, t, d int, avoid map[int]struct{}) [][]int {
	var results [][]int
	visited := map[int]bool{s: true}
	path := []int{s}

	var dfs func(current int)
	dfs = func(current int) {
		if len(path) == d+1 {
			if current == t {
				results = append(results, append([]int(nil), path...))
			}
			return
		}
		for v := range g.Neighbours(current) {
			if visited[v] {
				continue
			}
			if v != t {
				if _, blocked := avoid[v]; blocked {
					continue
				}
			} else if len(path)+1 != d+1 {
				continue
			}
			visited[v] = true
			path = append(path, v)
			dfs(v)
			path = path[:len(path)-1]
			visited[v] = false
		}
	}
	dfs(s)
	return results
}

func adjacencyToEdges(adj Adjacency) []flowgraph.Edge {
	seen := make(map[flowgraph.Edge]struct{})
	var edges []flowgraph.Edge
	for u, neighbours := range adj {
		for v := range neighbours {
			a, b := u, v
			if a > b {
				a, b = b, a
			}
			e := flowgraph.Edge{U: a, V: b}
			if _, dup := seen[e]; dup {
				continue
			}
			seen[e] = struct{}{}
			edges = append(edges, e)
		}
	}
	return edges
}

package routecache

import "sort"

// planUnreliable implements the layered-BFS planner: for each node it
// collects up to f+1 mostly-disjoint paths from s, using a SHA-512 hash
// of each candidate path as a deterministic pseudo-random tie-break so
// the result does not depend on map iteration order. Returns ok=false
// only when s is absent from adj; otherwise ok=true, and the routing
// table may simply leave unreachable nodes with no paths.
func planUnreliable(adj Adjacency, f, s int) (RoutingTable, bool) {
	if _, present := adj[s]; !present {
		return nil, false
	}

	nodePaths := map[int][][]int{s: {{s}}}
	frontier := [][]int{{s}}

	for len(frontier) > 0 {
		changed := frontier
		frontier = nil

		candidates := make(map[int][][]int)
		for _, p := range changed {
			last := p[len(p)-1]
			for v := range adj[last] {
				if !isDisjointCandidate(p, v, nodePaths[v], s) {
					continue
				}
				cand := append(append([]int(nil), p...), v)
				candidates[v] = append(candidates[v], cand)
			}
		}

		for v, cands := range candidates {
			if len(nodePaths[v]) >= f+1 {
				continue
			}
			sort.Slice(cands, func(i, j int) bool {
				return hashPathHex(cands[i]) < hashPathHex(cands[j])
			})
			for i := len(cands) - 1; i >= 0 && len(nodePaths[v]) < f+1; i-- {
				nodePaths[v] = append(nodePaths[v], cands[i])
				frontier = append(frontier, cands[i])
			}
		}
	}

	return buildRoutingTable(nodePaths, s), true
}

// isDisjointCandidate reports whether appending v to path p yields a
// candidate that shares no vertex other than s with any path already
// stored for v.
func isDisjointCandidate(p []int, v int, existing [][]int, s int) bool {
	candidate := append(append([]int(nil), p...), v)
	for _, other := range existing {
		if sharesVertexOtherThan(candidate, other, s) {
			return false
		}
	}
	return true
}

func sharesVertexOtherThan(a, b []int, s int) bool {
	set := make(map[int]struct{}, len(a))
	for _, n := range a {
		if n != s {
			set[n] = struct{}{}
		}
	}
	for _, n := range b {
		if n == s {
			continue
		}
		if _, ok := set[n]; ok {
			return true
		}
	}
	return false
}

// buildRoutingTable distils the per-node stored path collections into a
// next-hop table: table[n] collects path[i+1] for every stored path
// (belonging to any target's collection) where path[i] == n.
func buildRoutingTable(nodePaths map[int][][]int, s int) RoutingTable {
	table := make(RoutingTable)
	for _, paths := range nodePaths {
		for _, path := range paths {
			for i := 0; i+1 < len(path); i++ {
				n, next := path[i], path[i+1]
				if next == s {
					continue
				}
				if table[n] == nil {
					table[n] = make(map[int]struct{})
				}
				table[n][next] = struct{}{}
			}
		}
	}
	return table
}

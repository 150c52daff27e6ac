package flowgraph

import "testing"

func nineNodeGraph() *Graph {
	// {0:{3,4,6,8}, 1:{2,4,5,6}, 2:{1,3,6,7}, 3:{0,2,5,8},
	//  4:{0,1,6,7}, 5:{1,3,7,8}, 6:{0,1,2,4}, 7:{2,4,5,8}, 8:{0,3,5,7}}
	edges := []Edge{
		{0, 3}, {0, 4}, {0, 6}, {0, 8},
		{1, 2}, {1, 4}, {1, 5}, {1, 6},
		{2, 3}, {2, 6}, {2, 7},
		{3, 5}, {3, 8},
		{4, 6}, {4, 7},
		{5, 7}, {5, 8},
		{7, 8},
	}
	return New(edges)
}

func TestMaxFlow_Triangle(t *testing.T) {
	g := New([]Edge{{0, 1}, {1, 2}, {0, 2}})
	if f := g.MaxFlow(0, 1); f != 2 {
		t.Errorf("MaxFlow(0,1) = %d, want 2", f)
	}
}

func TestMaxFlow_SameNode(t *testing.T) {
	g := New([]Edge{{0, 1}})
	if f := g.MaxFlow(0, 0); f != 0 {
		t.Errorf("MaxFlow(0,0) = %d, want 0", f)
	}
}

func TestMaxFlow_AbsentEndpoint(t *testing.T) {
	g := New([]Edge{{0, 1}})
	if f := g.MaxFlow(0, 99); f != 0 {
		t.Errorf("MaxFlow with absent endpoint = %d, want 0", f)
	}
}

func TestMaxFlow_NineNodeGraph(t *testing.T) {
	g := nineNodeGraph()
	if f := g.MaxFlow(3, 1); f != 4 {
		t.Errorf("MaxFlow(3,1) = %d, want 4 (min degree cap)", f)
	}
}

func TestConnectivity_Line(t *testing.T) {
	// a path 0-1-2-3 has vertex connectivity 1 (cut at any internal node)
	edges := []Edge{{0, 1}, {1, 2}, {2, 3}}
	c := Connectivity(edges, []int{0, 1, 2, 3})
	if c != 1 {
		t.Errorf("connectivity of line graph = %d, want 1", c)
	}
}

func TestConnectivity_Triangle(t *testing.T) {
	edges := []Edge{{0, 1}, {1, 2}, {0, 2}}
	c := Connectivity(edges, []int{0, 1, 2})
	if c != 2 {
		t.Errorf("connectivity of triangle = %d, want 2", c)
	}
}

func TestConnectivity_K4(t *testing.T) {
	edges := []Edge{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}
	c := Connectivity(edges, []int{0, 1, 2, 3})
	if c != 3 {
		t.Errorf("connectivity of K4 = %d, want 3", c)
	}
}

func TestConnectivity_NineNodeGraph(t *testing.T) {
	g := nineNodeGraph()
	nodes := g.Nodes()
	c := g.ConnectivityOver(nodes)
	if c != 4 {
		t.Errorf("connectivity of nine-node test graph = %d, want 4", c)
	}
}

func TestSubgraph_RestrictsEdges(t *testing.T) {
	g := nineNodeGraph()
	keep := map[int]struct{}{0: {}, 3: {}, 4: {}, 6: {}}
	sub := g.Subgraph(keep)
	if _, ok := sub.Neighbours(0)[8]; ok {
		t.Error("subgraph should not contain edge to node 8 (excluded)")
	}
	if _, ok := sub.Neighbours(0)[3]; !ok {
		t.Error("subgraph should retain edge 0-3 (both kept)")
	}
}

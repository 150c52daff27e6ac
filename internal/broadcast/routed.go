package broadcast

import "github.com/okdaichi/broadcastsim/internal/routecache"

// RoutedAlgorithm forwards a message only along the next hops its
// source's routing table names for the current node. The originator
// still floods on every edge; only subsequent hops are filtered.
type RoutedAlgorithm struct {
	// tables maps a source node label to the routing table the cache
	// produced for that source.
	tables map[int]routecache.RoutingTable
}

// NewRoutedAlgorithm queries cache for a routing table from every node in
// nodeLabels, treating each as a potential broadcast origin. If any
// source is unplannable under f (the cache returns ok=false), construction
// fails — this propagates as Graph construction failure, per spec.
func NewRoutedAlgorithm(adj routecache.Adjacency, f int, nodeLabels []int, cache *routecache.RouteCache) (*RoutedAlgorithm, bool) {
	tables := make(map[int]routecache.RoutingTable, len(nodeLabels))
	for _, s := range nodeLabels {
		table, ok := cache.GenRoutes(adj, f, s)
		if !ok {
			return nil, false
		}
		tables[s] = table
	}
	return &RoutedAlgorithm{tables: tables}, true
}

func (a *RoutedAlgorithm) OnMessage(n *Node, senderLabel int, msg Message) {
	if !n.markReceived(msg.ID) {
		return
	}
	n.Deliver(msg)

	nextHops := a.tables[msg.Sender][n.Label()]
	for _, e := range n.Edges() {
		if _, forward := nextHops[e.ToLabel()]; forward {
			e.Send(&msg)
		}
	}
}

func (a *RoutedAlgorithm) SendBroadcast(n *Node, msg Message) {
	if !n.markReceived(msg.ID) {
		return
	}
	n.Deliver(msg)
	for _, e := range n.Edges() {
		e.Send(&msg)
	}
}

package broadcast

// Algorithm is the forwarding policy shared by every Node in a Graph.
// Only two variants exist (FloodingAlgorithm, RoutedAlgorithm); both are
// stateless with respect to any single node — all per-node mutable state
// (the received-id set, the delivered log) lives on Node itself, so one
// Algorithm value is safely shared by every node in the graph.
type Algorithm interface {
	// OnMessage handles a message arriving at n from senderLabel.
	OnMessage(n *Node, senderLabel int, msg Message)
	// SendBroadcast originates msg at n.
	SendBroadcast(n *Node, msg Message)
}

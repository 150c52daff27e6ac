package broadcast

// FloodingAlgorithm forwards every freshly-seen message on every outgoing
// edge except back toward the immediate sender. Dedup is by message id,
// tracked on the receiving Node.
type FloodingAlgorithm struct{}

// NewFloodingAlgorithm returns the flooding algorithm. It carries no
// state of its own and can be shared by every node in a Graph.
func NewFloodingAlgorithm() *FloodingAlgorithm {
	return &FloodingAlgorithm{}
}

func (a *FloodingAlgorithm) OnMessage(n *Node, senderLabel int, msg Message) {
	if !n.markReceived(msg.ID) {
		return
	}
	n.Deliver(msg)
	for _, e := range n.Edges() {
		if e.ToLabel() == senderLabel {
			continue
		}
		e.Send(&msg)
	}
}

func (a *FloodingAlgorithm) SendBroadcast(n *Node, msg Message) {
	if !n.markReceived(msg.ID) {
		return
	}
	n.Deliver(msg)
	for _, e := range n.Edges() {
		e.Send(&msg)
	}
}

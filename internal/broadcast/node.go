package broadcast

import "sync"

// Node is one participant in the simulated network: a label, a faulty
// flag, a set of outgoing edges, the per-node dedup state shared by
// whichever Algorithm the enclosing Graph runs, and an append-only
// delivered log.
//
// Guarded by a single RWMutex. Readers (inspecting edges, faulty,
// delivered) may run concurrently; mutators (Deliver, markReceived,
// SetFaulty) take the write lock. The read lock is always released
// before iterating edges, so a Node lock is never held across an await
// that itself acquires a Node lock (Edge.Send does not touch Node
// state).
type Node struct {
	label int

	mu        sync.RWMutex
	faulty    bool
	edges     []*Edge
	received  map[string]struct{}
	delivered []Message
}

func newNode(label int) *Node {
	return &Node{
		label:    label,
		received: make(map[string]struct{}),
	}
}

// Label returns this node's integer id.
func (n *Node) Label() int { return n.label }

// Faulty reports whether this node silently drops received messages.
func (n *Node) Faulty() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.faulty
}

// SetFaulty marks the node as faulty or not.
func (n *Node) SetFaulty(faulty bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.faulty = faulty
}

// Edges returns a snapshot of the node's outgoing edges.
func (n *Node) Edges() []*Edge {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

func (n *Node) addEdge(e *Edge) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.edges = append(n.edges, e)
}

// Delivered returns a snapshot of the node's delivered log.
func (n *Node) Delivered() []Message {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]Message, len(n.delivered))
	copy(out, n.delivered)
	return out
}

// markReceived records msg.ID as seen, returning true the first time an
// id is seen and false on every subsequent duplicate (idempotent
// delivery).
func (n *Node) markReceived(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, seen := n.received[id]; seen {
		return false
	}
	n.received[id] = struct{}{}
	return true
}

// Deliver appends msg to the delivered log. Called by an Algorithm upon
// first receipt of a message.
func (n *Node) Deliver(msg Message) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, msg)
}

// Broadcast originates msg at this node via alg.
func (n *Node) Broadcast(alg Algorithm, msg Message) {
	alg.SendBroadcast(n, msg)
}

// Recv delivers an incoming message from sender (identified by its
// label) to alg, unless this node is faulty, in which case the message
// is dropped silently and neither the delivered log nor outgoing edges
// are touched. Node carries no reference to the Algorithm or the Graph
// that owns it — matching the arena ownership model — so the caller
// (Edge) supplies it.
func (n *Node) Recv(alg Algorithm, senderLabel int, msg Message) {
	if n.Faulty() {
		return
	}
	alg.OnMessage(n, senderLabel, msg)
}

package experiment

import (
	"github.com/okdaichi/broadcastsim/internal/broadcast"
	"github.com/okdaichi/broadcastsim/internal/routecache"
	"github.com/okdaichi/broadcastsim/internal/topology"
)

func buildGraph(topo *topology.Topology, cache *routecache.RouteCache, algorithm string) (*broadcast.Graph, bool) {
	return broadcast.NewGraph(topo, cache, algorithm)
}

func newMessage(sender int, id string) broadcast.Message {
	return broadcast.Message{Sender: sender, ID: id}
}

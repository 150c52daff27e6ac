// Package broadcast simulates asynchronous, lossy-by-fault message
// broadcast over a fixed topology: an arena of Nodes connected by
// per-direction Edges, each running an independent delivery pipeline with
// stochastic delay, driven by a pluggable forwarding Algorithm.
package broadcast

// Message is an immutable broadcast record. ID is the deduplication key;
// Sender selects which per-source routing table a RoutedAlgorithm
// consults.
type Message struct {
	Sender int
	ID     string
}

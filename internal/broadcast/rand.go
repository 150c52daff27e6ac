package broadcast

import "golang.org/x/exp/rand"

// newRandSource gives each Edge its own deterministic-per-id delay
// sampler seed, avoiding a shared RNG that would otherwise need locking
// across every edge in the graph (only per-edge draws are serialised, in
// delaySampler). distuv.Normal's Src field is golang.org/x/exp/rand.Source,
// not the standard library's math/rand.Source.
func newRandSource(seed uint64) rand.Source {
	return rand.NewSource(seed ^ 0x9E3779B97F4A7C15)
}

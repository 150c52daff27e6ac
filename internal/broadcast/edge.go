package broadcast

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okdaichi/broadcastsim/internal/observability"
	"gonum.org/v1/gonum/stat/distuv"
)

// delaySampler backs one Edge's stochastic delay. distuv.Normal
// is not safe for concurrent Rand() calls, and deliveries on an edge are
// deliberately independent concurrent goroutines, so the draw itself is
// serialised under a tiny mutex — the sleep and delivery that follow are
// not, preserving the overlap/reorder semantics the model requires.
type delaySampler struct {
	mu     sync.Mutex
	normal distuv.Normal
}

func newDelaySampler(seed uint64) *delaySampler {
	return &delaySampler{
		normal: distuv.Normal{Mu: 75, Sigma: 25, Src: newRandSource(seed)},
	}
}

func (d *delaySampler) sample() time.Duration {
	d.mu.Lock()
	v := d.normal.Rand()
	d.mu.Unlock()

	ms := math.Round(v)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// Edge is a directed half-edge: messages enqueued via Send flow one-way
// from the owning node to target. Each Edge runs one long-lived pump
// goroutine over an unbounded, lossless, order-preserving channel and
// spawns one short-lived delivery goroutine per dequeued message.
type Edge struct {
	id         uint64
	from       int
	toLabel    int
	target     *Node
	algorithm  Algorithm
	sampler    *delaySampler
	ch         chan *Message
	done       chan struct{}
	wg         sync.WaitGroup
	unresolved *atomic.Int64

	mu   sync.RWMutex
	sent uint64
}

func newEdge(id uint64, from int, target *Node, alg Algorithm, unresolved *atomic.Int64) *Edge {
	e := &Edge{
		id:         id,
		from:       from,
		toLabel:    target.Label(),
		target:     target,
		algorithm:  alg,
		sampler:    newDelaySampler(id),
		ch:         make(chan *Message, 256),
		done:       make(chan struct{}),
		unresolved: unresolved,
	}
	go e.pump()
	return e
}

// ToLabel returns the target node's label.
func (e *Edge) ToLabel() int { return e.toLabel }

// SentCount returns the number of messages enqueued on this edge so far.
func (e *Edge) SentCount() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.sent
}

// Send atomically increments the process-wide unresolved counter, bumps
// the per-edge sent counter, and enqueues msg for delivery.
func (e *Edge) Send(msg *Message) {
	e.unresolved.Add(1)

	e.mu.Lock()
	e.sent++
	e.mu.Unlock()

	e.ch <- msg
}

// close tears down the pump once all in-flight deliveries it spawned have
// completed. Safe to call once, typically from Graph.Close.
func (e *Edge) close() {
	close(e.ch)
	<-e.done
}

func (e *Edge) pump() {
	defer close(e.done)
	for msg := range e.ch {
		e.wg.Add(1)
		go e.deliver(msg)
	}
	e.wg.Wait()
}

func (e *Edge) deliver(msg *Message) {
	defer e.wg.Done()
	defer e.unresolved.Add(-1)

	time.Sleep(e.sampler.sample())
	e.target.Recv(e.algorithm, e.from, *msg)
	observability.RecordEdgeDelivery()
}

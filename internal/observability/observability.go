// Package observability provides the simulator's ambient metrics surface:
// a noop-by-default Config/Setup/Shutdown lifecycle and a per-component
// Recorder. Distributed tracing is out of scope for a single process, so
// only the Prometheus counters and histograms are kept.
package observability

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config controls whether metrics collection is active. The zero value
// disables everything (noop mode).
type Config struct {
	Service string
	Metrics bool
}

var (
	mu       sync.Mutex
	cfg      Config
	registry *prometheus.Registry

	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	plannerInvocations *prometheus.CounterVec
	settledRuns        *prometheus.CounterVec
	latency            *prometheus.HistogramVec
	experiments        prometheus.Gauge
	edgeDeliveries     prometheus.Counter
)

// Setup installs cfg as the active configuration and, if cfg.Metrics is
// set, registers the simulator's Prometheus collectors against a fresh
// registry. Safe to call repeatedly; a prior Setup's collectors are
// discarded.
func Setup(ctx context.Context, c Config) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = c
	if !c.Metrics {
		registry = nil
		return nil
	}

	registry = prometheus.NewRegistry()
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcastsim_route_cache_hits_total",
		Help: "Route cache lookups served from the memo.",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcastsim_route_cache_misses_total",
		Help: "Route cache lookups that invoked a planner.",
	})
	plannerInvocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcastsim_planner_invocations_total",
		Help: "Planner invocations by method.",
	}, []string{"method"})
	settledRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "broadcastsim_settled_runs_total",
		Help: "Experiment runs that reached quiescence, by algorithm.",
	}, []string{"algorithm"})
	latency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "broadcastsim_stage_latency_seconds",
		Help:    "Latency of a named stage, by component label.",
		Buckets: prometheus.DefBuckets,
	}, []string{"label", "stage"})
	experiments = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "broadcastsim_experiments_in_flight",
		Help: "Experiment runs currently executing.",
	})
	edgeDeliveries = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "broadcastsim_edge_deliveries_total",
		Help: "Messages delivered across any edge.",
	})

	registry.MustRegister(cacheHits, cacheMisses, plannerInvocations, settledRuns, latency, experiments, edgeDeliveries)
	return nil
}

// Shutdown resets the observability subsystem to its zero-value state.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	defer mu.Unlock()
	cfg = Config{}
	registry = nil
	cacheHits, cacheMisses, plannerInvocations, settledRuns, latency, experiments, edgeDeliveries = nil, nil, nil, nil, nil, nil, nil
	return nil
}

// Enabled reports whether the active Config names a Service, i.e. whether
// the observability subsystem is active at all, independent of Metrics.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return cfg.Service != ""
}

// MetricsEnabled reports whether the active configuration has metrics on.
func MetricsEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return cfg.Metrics
}

// Registry returns the active Prometheus registry, or nil if metrics are
// disabled. internal/cli's RunServe wires this into promhttp.HandlerFor
// for the /metrics endpoint.
func Registry() *prometheus.Registry {
	mu.Lock()
	defer mu.Unlock()
	return registry
}

// IncExperiments/DecExperiments track the number of experiment runs
// currently executing.
func IncExperiments() {
	mu.Lock()
	g := experiments
	mu.Unlock()
	if g != nil {
		g.Inc()
	}
}

func DecExperiments() {
	mu.Lock()
	g := experiments
	mu.Unlock()
	if g != nil {
		g.Dec()
	}
}

// RecordEdgeDelivery increments the total count of messages delivered
// across any edge, process-wide.
func RecordEdgeDelivery() {
	mu.Lock()
	c := edgeDeliveries
	mu.Unlock()
	if c != nil {
		c.Inc()
	}
}

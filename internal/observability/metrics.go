package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder records metrics for one labelled component (a route cache
// method, or an experiment runner). All methods are safe to call when
// metrics are disabled — they become no-ops rather than requiring
// callers to branch on MetricsEnabled() themselves.
type Recorder struct {
	label string
}

// NewRecorder returns a Recorder for the given component label.
func NewRecorder(label string) *Recorder {
	return &Recorder{label: label}
}

// CacheHit records a route cache memo hit.
func (r *Recorder) CacheHit() {
	if !MetricsEnabled() {
		return
	}
	cacheHits.Inc()
}

// CacheMiss records a route cache memo miss (planner invoked).
func (r *Recorder) CacheMiss() {
	if !MetricsEnabled() {
		return
	}
	cacheMisses.Inc()
	plannerInvocations.WithLabelValues(r.label).Inc()
}

// SettleObserved records that a run of this component's algorithm reached
// quiescence, and how long that took.
func (r *Recorder) SettleObserved(d time.Duration) {
	if !MetricsEnabled() {
		return
	}
	settledRuns.WithLabelValues(r.label).Inc()
	latency.WithLabelValues(r.label, "settle").Observe(d.Seconds())
}

// LatencyObs returns an Observer for the given named stage, or nil when
// metrics are disabled.
func (r *Recorder) LatencyObs(stage string) prometheus.Observer {
	if !MetricsEnabled() {
		return nil
	}
	return latency.WithLabelValues(r.label, stage)
}

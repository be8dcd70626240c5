// SPDX-License-Identifier: MIT

package search

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the Prometheus series shared by every Searcher of a process.
// Series are labelled by worker id; a nil *Metrics records nothing.
type Metrics struct {
	keysTested    *prometheus.CounterVec
	keysFailed    *prometheus.CounterVec
	forwarded     *prometheus.CounterVec
	keysPerSecond *prometheus.GaugeVec
	bestScore     *prometheus.GaugeVec
	runs          *prometheus.CounterVec
}

// NewMetrics registers the search series on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		keysTested: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trifid",
			Subsystem: "search",
			Name:      "keys_tested_total",
			Help:      "Keys evaluated, including failed ones",
		}, []string{"worker"}),
		keysFailed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trifid",
			Subsystem: "search",
			Name:      "keys_failed_total",
			Help:      "Keys whose evaluation panicked and was skipped",
		}, []string{"worker"}),
		forwarded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trifid",
			Subsystem: "search",
			Name:      "candidates_forwarded_total",
			Help:      "Candidates passed to the sink",
		}, []string{"worker"}),
		keysPerSecond: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "trifid",
			Subsystem: "search",
			Name:      "keys_per_second",
			Help:      "Throughput at the last flush",
		}, []string{"worker"}),
		bestScore: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "trifid",
			Subsystem: "search",
			Name:      "best_score",
			Help:      "Best valid candidate score so far",
		}, []string{"worker"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "trifid",
			Subsystem: "search",
			Name:      "runs_total",
			Help:      "Finished runs by terminal status",
		}, []string{"status"}),
	}
}

// flushed publishes the counters accumulated since the previous flush.
func (m *Metrics) flushed(worker int, tested, failed, forwarded uint64, st State) {
	if m == nil {
		return
	}
	w := strconv.Itoa(worker)
	m.keysTested.WithLabelValues(w).Add(float64(tested))
	m.keysFailed.WithLabelValues(w).Add(float64(failed))
	m.forwarded.WithLabelValues(w).Add(float64(forwarded))
	m.keysPerSecond.WithLabelValues(w).Set(st.KeysPerSecond)
	if st.BestKey != "" {
		m.bestScore.WithLabelValues(w).Set(st.BestScore)
	}
}

func (m *Metrics) finished(status Status) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(status.String()).Inc()
}

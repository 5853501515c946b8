package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeNetwork   = "network"
	OutcomeHTTP      = "http"
	OutcomeMalformed = "malformed"
)

var (
	// fetchTotal counts remote fetches by dataset and outcome.
	fetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "debtwatch",
		Subsystem: "fetch",
		Name:      "requests_total",
		Help:      "Remote dataset fetches by outcome",
	}, []string{"dataset", "outcome"})

	// fallbackTotal counts per-dataset fallback substitutions.
	fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "debtwatch",
		Subsystem: "fallback",
		Name:      "substitutions_total",
		Help:      "Datasets resolved from fallback data",
	}, []string{"dataset", "tier"})

	batchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "debtwatch",
		Subsystem: "load",
		Name:      "batch_failures_total",
		Help:      "Load cycles replaced by the full static snapshot",
	})

	loadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "debtwatch",
		Subsystem: "load",
		Name:      "duration_seconds",
		Help:      "Load cycle latency in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	lastLoad = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "debtwatch",
		Subsystem: "load",
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last published dataset",
	})

	degraded = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "debtwatch",
		Subsystem: "load",
		Name:      "degraded",
		Help:      "1 when the published dataset is the full static snapshot",
	})

	estimate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "debtwatch",
		Subsystem: "realtime",
		Name:      "estimate_euros",
		Help:      "Latest real-time debt estimate in euros",
	})

	subscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "debtwatch",
		Subsystem: "realtime",
		Name:      "subscribers",
		Help:      "Active real-time estimate subscribers",
	})
)

// RecordFetch counts one remote fetch.
func RecordFetch(dataset, outcome string) {
	fetchTotal.WithLabelValues(dataset, outcome).Inc()
}

// RecordFallback counts one fallback substitution. Tier is "memory" or "static".
func RecordFallback(dataset, tier string) {
	fallbackTotal.WithLabelValues(dataset, tier).Inc()
}

// RecordBatchFailure counts a whole-cycle static substitution.
func RecordBatchFailure() {
	batchFailures.Inc()
}

// RecordLoad observes a completed load cycle.
func RecordLoad(d time.Duration, at time.Time, isDegraded bool) {
	loadDuration.Observe(d.Seconds())
	lastLoad.Set(float64(at.Unix()))
	if isDegraded {
		degraded.Set(1)
	} else {
		degraded.Set(0)
	}
}

// SetEstimate records the latest emitted estimate.
func SetEstimate(v float64) {
	estimate.Set(v)
}

// SetSubscribers records the current subscriber count.
func SetSubscribers(n int) {
	subscribers.Set(float64(n))
}

// Package metrics constructs the metrics the application will track.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vrx"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Count of handled HTTP requests.",
	}, []string{"method", "route", "code"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of handled HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	panicsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Count of recovered handler panics.",
	})

	miningTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "mining_operations_total",
		Help:      "Count of mining operations by outcome.",
	}, []string{"status"})
	miningDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "mining_duration_seconds",
		Help:      "Duration of mining operations including the proof search.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	})
	chainLength = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "chain_length",
		Help:      "Number of blocks in the chain.",
	})
	transactionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "transactions_submitted_total",
		Help:      "Count of transactions accepted into the mempool.",
	})
)

// Mining outcome labels.
const (
	StatusSuccess = "success"
	StatusTimeout = "timeout"
	StatusError   = "error"
)

// ObserveRequest records a single HTTP request outcome and duration.
func ObserveRequest(method string, route string, code int, started time.Time) {
	requestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	requestDuration.WithLabelValues(method, route).Observe(time.Since(started).Seconds())
}

// AddPanic increments the panic count.
func AddPanic() {
	panicsTotal.Inc()
}

// ObserveMining records a single mining outcome and duration.
func ObserveMining(status string, started time.Time) {
	miningTotal.WithLabelValues(status).Inc()
	miningDuration.Observe(time.Since(started).Seconds())
}

// SetChainLength records the number of blocks in the chain.
func SetChainLength(n int) {
	chainLength.Set(float64(n))
}

// AddTransaction increments the submitted transaction count.
func AddTransaction() {
	transactionsTotal.Inc()
}

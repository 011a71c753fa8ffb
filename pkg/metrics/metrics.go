package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricPrefix = "iett_"

const (
	ResultOK        = "ok"
	ResultTransport = "transport"
	ResultTimeout   = "timeout"
	ResultCancelled = "cancelled"
	ResultCacheHit  = "cache_hit"
	ResultStale     = "stale"
)

var (
	upstreamCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "upstream_calls_total",
			Help: "Total SOAP calls to the upstream by method and result",
		},
		[]string{"method", "result"},
	)
	upstreamLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    metricPrefix + "upstream_latency_seconds",
			Help:    "Upstream SOAP call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	aggregateFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricPrefix + "route_detail_partial_failures_total",
			Help: "Route detail sub-calls that failed and were replaced by empty data",
		},
		[]string{"part"},
	)
	warmedLines = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: metricPrefix + "warmer_lines_total",
			Help: "Lines processed by the cache warmer",
		},
	)
)

func ObserveUpstreamCall(method string, result string, latency time.Duration) {
	upstreamCalls.WithLabelValues(method, result).Inc()

	if result != ResultCacheHit {
		upstreamLatency.WithLabelValues(method).Observe(latency.Seconds())
	}
}

func ObservePartialFailure(part string) {
	aggregateFailures.WithLabelValues(part).Inc()
}

func ObserveWarmedLine() {
	warmedLines.Inc()
}

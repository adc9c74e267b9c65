package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storefront"

type Metrics struct {
	CheckoutTotal    *prometheus.CounterVec
	CheckoutDuration prometheus.Histogram
	CheckoutAttempts prometheus.Histogram

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	OutboxPublished prometheus.Counter
	OutboxFailed    prometheus.Counter

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CheckoutTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "checkout_total",
			Help: "Checkouts by outcome (ok, rejected, failed).",
		}, []string{"outcome"}),
		CheckoutDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "checkout_duration_seconds",
			Help:    "Checkout latency including retries.",
			Buckets: prometheus.DefBuckets,
		}),
		CheckoutAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "checkout_attempts",
			Help:    "Transaction attempts per checkout.",
			Buckets: []float64{1, 2, 3, 5, 8},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		OutboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "outbox_published_total",
			Help: "Outbox events delivered to the broker.",
		}),
		OutboxFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "outbox_failed_total",
			Help: "Outbox events that failed to publish.",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "product_cache_hits_total",
			Help: "Product listing cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "product_cache_misses_total",
			Help: "Product listing cache misses.",
		}),
	}

	reg.MustRegister(
		m.CheckoutTotal,
		m.CheckoutDuration,
		m.CheckoutAttempts,
		m.HTTPRequests,
		m.HTTPDuration,
		m.OutboxPublished,
		m.OutboxFailed,
		m.CacheHits,
		m.CacheMisses,
	)

	return m
}

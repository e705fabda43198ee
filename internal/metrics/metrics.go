package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// Metrics holds the storefront's Prometheus collectors.
type Metrics struct {
	ReviewsSubmitted prometheus.Counter
	ReviewsRejected  prometheus.Counter
	CartAdditions    *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
	SessionsEvicted  prometheus.Counter
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReviewsSubmitted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_submitted_total",
			Help:      "Reviews accepted by the review form.",
		}),
		ReviewsRejected: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reviews_rejected_total",
			Help:      "Review submit attempts that failed validation.",
		}),
		CartAdditions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_additions_total",
			Help:      "Variants added to a cart, by source.",
		}, []string{"source"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Browser sessions currently held in memory.",
		}),
		SessionsEvicted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_evicted_total",
			Help:      "Sessions dropped by expiry or capacity.",
		}),
	}
}

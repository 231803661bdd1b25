// Package metrics exposes prometheus instrumentation for the engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	settlementTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_settlements_total",
			Help: "Settled bet requests by result and game variant",
		},
		[]string{"result", "variant"},
	)

	settlementDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "casino_settlement_duration_ms",
			Help:    "Place-bet pipeline duration in milliseconds",
			Buckets: prometheus.ExponentialBuckets(5, 2, 10),
		},
		[]string{"result", "variant"},
	)

	payoutTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casino_payout_units_total",
			Help: "Total payout credited, by game variant",
		},
		[]string{"variant"},
	)
)

// RecordSettlement records one place-bet call.
// result is one of "won", "lost", "rejected", "error".
func RecordSettlement(result, variant string, started time.Time) {
	settlementTotal.WithLabelValues(result, variant).Inc()
	settlementDuration.WithLabelValues(result, variant).
		Observe(float64(time.Since(started).Milliseconds()))
}

// RecordPayout tracks credited winnings per variant
func RecordPayout(variant string, payout int64) {
	if payout > 0 {
		payoutTotal.WithLabelValues(variant).Add(float64(payout))
	}
}

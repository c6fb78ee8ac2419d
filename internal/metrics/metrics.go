// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	PresencePolls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portfolio_presence_polls_total",
			Help: "Presence polls by outcome (live or fallback)",
		},
		[]string{"outcome"},
	)
	PresencePollDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portfolio_presence_poll_duration_seconds",
			Help:    "Time spent on one presence poll",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)
	DotsLive = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "portfolio_dots_live", Help: "Dots currently alive in the background field"},
	)
	LiveClients = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "portfolio_live_clients", Help: "Connected websocket clients"},
	)
)

var registerOnce sync.Once

// Register adds all collectors to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(PresencePolls, PresencePollDuration, DotsLive, LiveClients)
	})
}

// Package metrics prometheus collectors, registered on the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodpulse",
		Name:      "chat_responses_total",
		Help:      "Chatbot replies by resolution state.",
	}, []string{"state"})

	RemoteCompletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodpulse",
		Name:      "remote_completions_total",
		Help:      "Remote completion calls by outcome.",
	}, []string{"outcome"})

	RemoteLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "foodpulse",
		Name:      "remote_completion_seconds",
		Help:      "Latency of remote completion calls.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
	})

	ListingsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "foodpulse",
		Name:      "listings_created_total",
		Help:      "Food listings created, by source (form or import).",
	}, []string{"source"})
)

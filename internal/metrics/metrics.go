// Package metrics exposes the relay's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Connections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_connections",
		Help: "Live websocket connections.",
	})

	Rooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "signaling_rooms",
		Help: "Rooms with at least one member.",
	})

	Events = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signaling_events_total",
		Help: "Inbound signaling events processed, by event name.",
	}, []string{"event"})

	DroppedSends = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signaling_dropped_sends_total",
		Help: "Outbound frames dropped on backpressure or closed connections.",
	})

	DroppedChat = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signaling_dropped_chat_total",
		Help: "Chat messages dropped by the per-connection rate limit.",
	})
)

// Package metrics exposes Prometheus collectors for the relay.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	Connections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatz_connections_total",
		Help: "WebSocket connections accepted since start.",
	})

	Messages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatz_messages_relayed_total",
		Help: "Chat messages fanned out to rooms.",
	})

	DroppedDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatz_deliveries_dropped_total",
		Help: "Per-recipient deliveries dropped (closed endpoint or full buffer).",
	})
)

// RegisterActiveRooms wires a gauge to the live room count.
func RegisterActiveRooms(count func() float64) {
	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "chatz_active_rooms",
		Help: "Rooms with at least one member.",
	}, count)
}

// Handler exposes Prometheus metrics at /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

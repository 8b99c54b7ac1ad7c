package websocket

import "github.com/prometheus/client_golang/prometheus"

var (
	feedConnections = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "blackarrow_ws_connections",
		Help: "Open websocket connections per room.",
	}, []string{"room"})
	feedRooms = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "blackarrow_ws_rooms",
		Help: "Rooms the hub serves.",
	})
	feedDelivered = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blackarrow_ws_messages_delivered_total",
		Help: "Messages written to client queues per room.",
	}, []string{"room"})
	feedDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "blackarrow_ws_slow_clients_dropped_total",
		Help: "Clients disconnected because their queue was full.",
	}, []string{"room"})
)

func init() {
	prometheus.MustRegister(feedConnections, feedRooms, feedDelivered, feedDropped)
}

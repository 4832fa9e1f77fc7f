package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_active_sessions",
		Help: "Currently connected chat sessions.",
	})
	Rooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "chat_rooms",
		Help: "Rooms created since process start.",
	})
	MessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Chat messages broadcast to rooms.",
	})
	LoginsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chat_logins_total",
		Help: "Successful logins.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

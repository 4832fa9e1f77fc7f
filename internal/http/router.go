package httpx

import (
	"net/http"

	"github.com/phamchuong05/mangmaytinh/internal/app"
	"github.com/phamchuong05/mangmaytinh/internal/ws"
	"github.com/phamchuong05/mangmaytinh/pkg/metrics"
)

// NewRouter wires up the websocket endpoint, health probes, metrics, and the
// static browser client.
func NewRouter(cfg app.Config, wsh *ws.Handler) http.Handler {
	mw := NewMiddleware(cfg)

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	mux.Handle("/ws", http.HandlerFunc(wsh.ServeWS))

	// Static client assets, including /uploads avatars
	mux.Handle("/", http.FileServer(http.Dir(cfg.PublicDir)))

	return mw.Wrap(mux)
}

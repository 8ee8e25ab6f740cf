package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Diana2886/websockets-ui/internal/middleware"
)

// RouterConfig holds dependencies for the HTTP router
type RouterConfig struct {
	Logger      *slog.Logger
	Coordinator *Coordinator
}

// NewRouter creates the HTTP router exposing the WebSocket endpoint and a
// health check
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	r.Handle("/ws", NewWSHandler(cfg.Coordinator, cfg.Logger))
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	return r
}

package rest

import (
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/config"
	"github.com/rs/cors"
)

// NewServer builds the HTTP server for discovery endpoints and the websocket upgrade.
// The caller owns ListenAndServe and Shutdown.
func NewServer(conf *config.Config, handlers *Handlers, ws http.Handler) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", handlers.Root(ws))
	mux.Handle("GET /ws", ws)
	mux.HandleFunc("GET /ping", pingHandler)
	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /api/rooms", handlers.ListRooms)
	mux.HandleFunc("GET /api/rooms/{id}", handlers.GetRoom)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodHead, http.MethodGet},
		AllowedOrigins: conf.CORS.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	return &http.Server{
		Addr:              ":" + conf.HTTPPort,
		Handler:           c.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}
}

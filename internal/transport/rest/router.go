package rest

import (
	"bingolive/internal/game"
	"bingolive/internal/pool"
	"bingolive/internal/transport/rest/handler"
	"bingolive/internal/transport/ws"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	Registry  *game.Registry
	Pool      *pool.Pool
	WSHandler *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(c.Registry)
	optionsHandler := handler.NewOptionsHandler(c.Pool)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/options", optionsHandler.List).Methods("GET", "OPTIONS")
	v1.HandleFunc("/rooms/{key}", roomHandler.Get).Methods("GET", "OPTIONS")

	// WebSocket route: joining a room IS connecting
	v1.HandleFunc("/ws/rooms/{key}", c.WSHandler.ServeWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

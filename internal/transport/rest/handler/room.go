package handler

import (
	"bingolive/internal/game"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

// RoomHandler exposes read-only room inspection. Rooms are only ever
// created by joining over the WebSocket.
type RoomHandler struct {
	registry *game.Registry
}

// NewRoomHandler creates a new room handler.
func NewRoomHandler(registry *game.Registry) *RoomHandler {
	return &RoomHandler{registry: registry}
}

// RoomSnapshot is the response body for room inspection.
type RoomSnapshot struct {
	Key     string `json:"key"`
	Members int    `json:"members"`
	Marked  int    `json:"marked"`
}

// Get handles GET /v1/rooms/{key}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	room, ok := h.registry.Get(key)
	if !ok {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	writeJSON(w, http.StatusOK, RoomSnapshot{
		Key:     room.Key(),
		Members: room.MemberCount(),
		Marked:  room.MarkedCount(),
	})
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

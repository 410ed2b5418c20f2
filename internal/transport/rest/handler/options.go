package handler

import (
	"bingolive/internal/pool"
	"net/http"
)

// OptionsHandler serves the loaded option pool.
type OptionsHandler struct {
	pool *pool.Pool
}

// NewOptionsHandler creates a new options handler.
func NewOptionsHandler(p *pool.Pool) *OptionsHandler {
	return &OptionsHandler{pool: p}
}

// List handles GET /v1/options
func (h *OptionsHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"options": h.pool.Options(),
		"count":   h.pool.Size(),
	})
}

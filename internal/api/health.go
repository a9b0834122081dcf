package api

import (
	"net/http"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// HealthHandler reports service and store health.
type HealthHandler struct {
	backend docstore.Backend
}

func NewHealthHandler(b docstore.Backend) *HealthHandler {
	return &HealthHandler{backend: b}
}

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// CheckStoreHealth GET /api/health/db
func (h *HealthHandler) CheckStoreHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Ping(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "document store unreachable")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/app"
)

// ReactionHandler provides HTTP transport for reaction actions.
type ReactionHandler struct {
	app *app.App
}

func NewReactionHandler(a *app.App) *ReactionHandler {
	return &ReactionHandler{app: a}
}

// AddReaction POST /api/reactions
func (h *ReactionHandler) AddReaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
		Kind   string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	view, err := h.app.AddReaction(r.Context(), bearerToken(r), req.ItemID, req.Kind)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, view)
}

// RemoveReaction DELETE /api/reactions
func (h *ReactionHandler) RemoveReaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.app.RemoveReaction(r.Context(), bearerToken(r), req.ItemID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReactionCounts GET /api/reactions/{itemId}
func (h *ReactionHandler) ReactionCounts(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["itemId"]
	counts, err := h.app.ReactionCounts(r.Context(), itemID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"itemId": itemID, "counts": counts})
}

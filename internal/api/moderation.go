package api

import (
	"encoding/json"
	"net/http"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/app"
)

// ModerationHandler provides HTTP transport for content moderation actions.
type ModerationHandler struct {
	app *app.App
}

func NewModerationHandler(a *app.App) *ModerationHandler {
	return &ModerationHandler{app: a}
}

// FlagPost POST /api/reports
func (h *ModerationHandler) FlagPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ItemID string `json:"itemId"`
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.app.FlagPost(r.Context(), bearerToken(r), req.ItemID, req.Reason); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]string{"message": "item flagged for review"})
}

// ListFlagged GET /api/reports
func (h *ModerationHandler) ListFlagged(w http.ResponseWriter, r *http.Request) {
	flags, err := h.app.FlaggedItems(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"flaggedItems": flags})
}

// Review POST /api/reports/review
func (h *ModerationHandler) Review(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.app.ReviewFlaggedPosts(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

// ListReviewed GET /api/reports/reviewed
func (h *ModerationHandler) ListReviewed(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.app.ReviewedItems(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"reviewedItems": reviews})
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/app"
)

// FeedHandler provides HTTP transport for feed actions.
type FeedHandler struct {
	app *app.App
}

func NewFeedHandler(a *app.App) *FeedHandler {
	return &FeedHandler{app: a}
}

// CreateFeed POST /api/feeds
func (h *FeedHandler) CreateFeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	view, err := h.app.CreateFeed(r.Context(), req.Name, req.Description)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, view)
}

// ListFeeds GET /api/feeds
func (h *FeedHandler) ListFeeds(w http.ResponseWriter, r *http.Request) {
	views, err := h.app.ListFeeds(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"feeds": views, "count": len(views)})
}

// GetFeed GET /api/feeds/{name}
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	view, err := h.app.FeedByName(r.Context(), name)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view)
}

// RemovePostFromFeed PATCH /api/feeds/{name}/posts/remove
func (h *FeedHandler) RemovePostFromFeed(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	var req struct {
		PostID string `json:"postId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	view, err := h.app.RemovePostFromFeed(r.Context(), name, req.PostID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/app"
	"github.com/meshwork-social/meshwork/internal/posts"
)

// PostHandler provides HTTP transport for post actions.
type PostHandler struct {
	app *app.App
}

func NewPostHandler(a *app.App) *PostHandler {
	return &PostHandler{app: a}
}

// ListPosts GET /api/posts?author=&feedName=
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	author := r.URL.Query().Get("author")
	feedName := r.URL.Query().Get("feedName")
	views, err := h.app.ListPosts(r.Context(), author, feedName)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	if feedName == "" {
		feedName = "Home"
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": views, "feedName": feedName})
}

// CreatePost POST /api/posts
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content  string         `json:"content"`
		FeedName string         `json:"feedName"`
		Options  *posts.Options `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	result, err := h.app.CreatePostInFeed(r.Context(), bearerToken(r), req.Content, req.FeedName, req.Options)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	// The post exists even when the feed attach failed; the body carries the
	// partial-success detail.
	respond.WriteJSON(w, http.StatusCreated, result)
}

// UpdatePost PATCH /api/posts/{postId}
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	var req struct {
		Content *string        `json:"content,omitempty"`
		Options *posts.Options `json:"options,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	view, err := h.app.UpdatePost(r.Context(), bearerToken(r), postID, req.Content, req.Options)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, view)
}

// DeletePost DELETE /api/posts/{postId}
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	if err := h.app.DeletePost(r.Context(), bearerToken(r), postID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostContent GET /api/posts/{postId}/content
func (h *PostHandler) PostContent(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	content, err := h.app.PostContent(r.Context(), postID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"content": content})
}

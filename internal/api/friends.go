package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/app"
)

// FriendHandler provides HTTP transport for friendship actions.
type FriendHandler struct {
	app *app.App
}

func NewFriendHandler(a *app.App) *FriendHandler {
	return &FriendHandler{app: a}
}

// ListFriends GET /api/friends
func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	names, err := h.app.FriendsOf(r.Context(), bearerToken(r))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"friends": names})
}

// RemoveFriend DELETE /api/friends/{friend}
func (h *FriendHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	friend := mux.Vars(r)["friend"]
	if err := h.app.RemoveFriend(r.Context(), bearerToken(r), friend); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListRequests GET /api/friend/requests
func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	reqs, err := h.app.FriendRequestsOf(r.Context(), bearerToken(r))
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"requests": reqs})
}

// SendRequest POST /api/friend/requests/{to}
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	to := mux.Vars(r)["to"]
	if err := h.app.SendFriendRequest(r.Context(), bearerToken(r), to); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// RemoveRequest DELETE /api/friend/requests/{to}
func (h *FriendHandler) RemoveRequest(w http.ResponseWriter, r *http.Request) {
	to := mux.Vars(r)["to"]
	if err := h.app.RemoveFriendRequest(r.Context(), bearerToken(r), to); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AcceptRequest PUT /api/friend/accept/{from}
func (h *FriendHandler) AcceptRequest(w http.ResponseWriter, r *http.Request) {
	from := mux.Vars(r)["from"]
	if err := h.app.AcceptFriendRequest(r.Context(), bearerToken(r), from); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RejectRequest PUT /api/friend/reject/{from}
func (h *FriendHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	from := mux.Vars(r)["from"]
	if err := h.app.RejectFriendRequest(r.Context(), bearerToken(r), from); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/meshwork-social/meshwork/internal/api/respond"
	"github.com/meshwork-social/meshwork/internal/app"
)

// NotificationHandler provides HTTP transport for notification actions.
type NotificationHandler struct {
	app *app.App
}

func NewNotificationHandler(a *app.App) *NotificationHandler {
	return &NotificationHandler{app: a}
}

// CreateNotification POST /api/notifications
func (h *NotificationHandler) CreateNotification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Subject     string    `json:"subject"`
		ScheduledAt time.Time `json:"scheduledAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	view, err := h.app.CreateNotification(r.Context(), bearerToken(r), req.Subject, req.ScheduledAt)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, view)
}

// Deliver POST /api/notifications/deliver
func (h *NotificationHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	delivered, err := h.app.DeliverNotifications(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]int{"delivered": delivered})
}

// DeleteNotification DELETE /api/notifications/{notificationId}
func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["notificationId"]
	if err := h.app.DeleteNotification(r.Context(), id); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPending GET /api/notifications/pending
func (h *NotificationHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	views, err := h.app.PendingNotifications(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": views})
}

// ListDelivered GET /api/notifications/delivered
func (h *NotificationHandler) ListDelivered(w http.ResponseWriter, r *http.Request) {
	views, err := h.app.DeliveredNotifications(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"notifications": views})
}

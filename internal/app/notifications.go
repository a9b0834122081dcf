package app

import (
	"context"
	"time"

	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/notify"
)

// NotificationView is the public shape of a notification.
type NotificationView struct {
	ID          string    `json:"id"`
	User        string    `json:"user"`
	Subject     string    `json:"subject"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Content     string    `json:"content"`
}

func notificationView(rec *docstore.Record[notify.Notification]) NotificationView {
	return NotificationView{
		ID:          rec.ID,
		User:        rec.Doc.User,
		Subject:     rec.Doc.Subject,
		ScheduledAt: rec.Doc.ScheduledAt,
		Status:      rec.Doc.Status,
		Content:     rec.Doc.Content,
	}
}

func notificationViews(recs []*docstore.Record[notify.Notification]) []NotificationView {
	out := make([]NotificationView, 0, len(recs))
	for _, rec := range recs {
		out = append(out, notificationView(rec))
	}
	return out
}

// CreateNotification schedules a notification for the logged-in user.
func (a *App) CreateNotification(ctx context.Context, token, subject string, scheduledAt time.Time) (NotificationView, error) {
	userID, err := a.Sessions.CurrentUser(ctx, token)
	if err != nil {
		return NotificationView{}, err
	}
	rec, err := a.Notify.Create(ctx, userID, subject, scheduledAt)
	if err != nil {
		return NotificationView{}, err
	}
	return notificationView(rec), nil
}

// DeliverNotifications runs the on-demand delivery sweep and returns how many
// notifications were delivered.
func (a *App) DeliverNotifications(ctx context.Context) (int, error) {
	return a.Notify.DeliverPending(ctx)
}

// DeleteNotification removes a notification.
func (a *App) DeleteNotification(ctx context.Context, id string) error {
	return a.Notify.Delete(ctx, id)
}

// PendingNotifications lists pending notifications.
func (a *App) PendingNotifications(ctx context.Context) ([]NotificationView, error) {
	recs, err := a.Notify.Pending(ctx)
	if err != nil {
		return nil, err
	}
	return notificationViews(recs), nil
}

// DeliveredNotifications lists delivered notifications.
func (a *App) DeliveredNotifications(ctx context.Context) ([]NotificationView, error) {
	recs, err := a.Notify.Delivered(ctx)
	if err != nil {
		return nil, err
	}
	return notificationViews(recs), nil
}

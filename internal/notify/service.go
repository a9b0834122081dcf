// Package notify owns scheduled notifications and their delivery sweep.
package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/genai"
)

// Notification statuses. Delivered is terminal.
const (
	StatusPending   = "pending"
	StatusDelivered = "delivered"
)

// Notification is the persisted document. Content is generated once at
// creation; Subject is the raw text it was generated from.
type Notification struct {
	User        string    `json:"user"`
	Subject     string    `json:"subject"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	Content     string    `json:"content"`
}

type Service struct {
	col *docstore.Collection[Notification]
	gen genai.Generator
	now func() time.Time
}

// NewService wires the collection and the injected text generator. gen may be
// nil, in which case content always falls back to the raw subject.
func NewService(b docstore.Backend, gen genai.Generator) *Service {
	return &Service{
		col: docstore.NewCollection[Notification](b, "notifications"),
		gen: gen,
		now: time.Now,
	}
}

// Create schedules a notification. The scheduled time must be strictly in
// the future; "now" or earlier is a validation error.
func (s *Service) Create(ctx context.Context, user, subject string, scheduledAt time.Time) (*docstore.Record[Notification], error) {
	if subject == "" {
		return nil, apperr.NewValidation("subject", "notification subject must be non-empty")
	}
	if !scheduledAt.After(s.now()) {
		return nil, apperr.NewValidation("scheduledAt", "notification time must be in the future")
	}

	content := s.composeContent(ctx, subject)
	return s.col.CreateOne(ctx, Notification{
		User:        user,
		Subject:     subject,
		ScheduledAt: scheduledAt.UTC(),
		Status:      StatusPending,
		Content:     content,
	})
}

// composeContent asks the generator for a friendly text and falls back to the
// raw subject when the call fails or comes back empty.
func (s *Service) composeContent(ctx context.Context, subject string) string {
	if s.gen == nil {
		return subject
	}
	content, err := s.gen.Generate(ctx, "Notify the user in a positive and warm manner about: "+subject)
	if err != nil {
		log.Warn().Err(err).Msg("notification content generation failed, using raw subject")
		return subject
	}
	if content == "" {
		return subject
	}
	return content
}

// DeliverPending transitions every pending notification whose scheduled time
// has elapsed to delivered. The sweep is idempotent: running it again with no
// time elapsed changes nothing.
func (s *Service) DeliverPending(ctx context.Context) (int, error) {
	now := s.now()
	pending, err := s.col.ReadMany(ctx, docstore.Filter{"status": StatusPending})
	if err != nil {
		return 0, err
	}
	delivered := 0
	for _, rec := range pending {
		if rec.Doc.ScheduledAt.After(now) {
			continue
		}
		if _, err := s.col.PartialUpdateOne(ctx, docstore.Filter{"id": rec.ID}, docstore.Fields{"status": StatusDelivered}); err != nil {
			// Per-item isolation: one bad record must not block the sweep.
			log.Warn().Err(err).Str("notificationID", rec.ID).Msg("failed to mark notification delivered")
			continue
		}
		delivered++
	}
	return delivered, nil
}

// Delete removes a notification.
func (s *Service) Delete(ctx context.Context, id string) error {
	removed, err := s.col.DeleteOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NewNotFound("notification", id)
	}
	return nil
}

// Pending returns all pending notifications.
func (s *Service) Pending(ctx context.Context) ([]*docstore.Record[Notification], error) {
	return s.col.ReadMany(ctx, docstore.Filter{"status": StatusPending})
}

// Delivered returns all delivered notifications.
func (s *Service) Delivered(ctx context.Context) ([]*docstore.Record[Notification], error) {
	return s.col.ReadMany(ctx, docstore.Filter{"status": StatusDelivered})
}

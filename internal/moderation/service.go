// Package moderation owns flag reports and review outcomes for opaque items.
// It stores a content snapshot at flag time and never resolves item ids.
package moderation

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
	"github.com/meshwork-social/meshwork/internal/genai"
)

// Review outcomes. A reviewed flag is terminal; re-flagging the same item
// afterwards starts a fresh cycle.
const (
	OutcomeRemove  = "remove"
	OutcomeApprove = "approve"
)

// Flag accumulates every report against one item: reporters are deduplicated,
// reasons are not.
type Flag struct {
	Item      string   `json:"item"`
	Reporters []string `json:"reporters"`
	Reasons   []string `json:"reasons"`
	Content   string   `json:"content"`
}

// Review records the classifier's verdict on a previously flagged item.
type Review struct {
	Item    string `json:"item"`
	Outcome string `json:"outcome"`
}

type Service struct {
	flags   *docstore.Collection[Flag]
	reviews *docstore.Collection[Review]
	cls     genai.Classifier
}

// NewService wires the two collections and the injected classifier.
func NewService(b docstore.Backend, cls genai.Classifier) *Service {
	return &Service{
		flags:   docstore.NewCollection[Flag](b, "flagged_items"),
		reviews: docstore.NewCollection[Review](b, "reviewed_items"),
		cls:     cls,
	}
}

// FlagItem reports an item. Flagging an already-flagged item appends the
// reporter (deduplicated) and the reason (kept verbatim) to the existing
// record instead of creating a second one.
func (s *Service) FlagItem(ctx context.Context, item, reporter, content, reason string) error {
	if reason == "" {
		return apperr.NewValidation("reason", "flagging reason must be non-empty")
	}
	existing, err := s.flags.ReadOne(ctx, docstore.Filter{"item": item})
	if err != nil {
		return err
	}
	if existing == nil {
		_, err := s.flags.CreateOne(ctx, Flag{
			Item:      item,
			Reporters: []string{reporter},
			Reasons:   []string{reason},
			Content:   content,
		})
		return err
	}

	reporters := existing.Doc.Reporters
	if !contains(reporters, reporter) {
		reporters = append(reporters, reporter)
	}
	reasons := append(existing.Doc.Reasons, reason)
	_, err = s.flags.PartialUpdateOne(ctx, docstore.Filter{"id": existing.ID}, docstore.Fields{
		"reporters": reporters,
		"reasons":   reasons,
	})
	return err
}

// ReviewFlagged classifies every currently flagged item exactly once,
// records a remove/approve outcome and clears the flag. A classifier failure
// on one item leaves that item flagged and does not abort the rest of the
// sweep. Returns the ids of reviews produced.
func (s *Service) ReviewFlagged(ctx context.Context) ([]*docstore.Record[Review], error) {
	flagged, err := s.flags.ReadMany(ctx, docstore.Filter{})
	if err != nil {
		return nil, err
	}

	var produced []*docstore.Record[Review]
	for _, flag := range flagged {
		outcome, err := s.classify(ctx, flag.Doc.Content)
		if err != nil {
			log.Warn().Err(err).Str("item", flag.Doc.Item).Msg("review classification failed, item stays flagged")
			continue
		}
		review, err := s.reviews.CreateOne(ctx, Review{Item: flag.Doc.Item, Outcome: outcome})
		if err != nil {
			log.Error().Err(err).Str("item", flag.Doc.Item).Msg("failed to record review outcome")
			continue
		}
		// Clear the flag only after the outcome is durable, so an item is
		// never neither flagged nor reviewed.
		if _, err := s.flags.DeleteOne(ctx, docstore.Filter{"id": flag.ID}); err != nil {
			log.Error().Err(err).Str("item", flag.Doc.Item).Msg("failed to clear reviewed flag")
		}
		produced = append(produced, review)
	}
	return produced, nil
}

func (s *Service) classify(ctx context.Context, content string) (string, error) {
	if s.cls == nil {
		return OutcomeApprove, nil
	}
	flagged, err := s.cls.Classify(ctx, content)
	if err != nil {
		return "", err
	}
	if flagged {
		return OutcomeRemove, nil
	}
	return OutcomeApprove, nil
}

// Flagged returns all currently flagged items.
func (s *Service) Flagged(ctx context.Context) ([]*docstore.Record[Flag], error) {
	return s.flags.ReadMany(ctx, docstore.Filter{})
}

// Reviewed returns all recorded review outcomes.
func (s *Service) Reviewed(ctx context.Context) ([]*docstore.Record[Review], error) {
	return s.reviews.ReadMany(ctx, docstore.Filter{})
}

func contains(ss []string, s string) bool {
	for _, cur := range ss {
		if cur == s {
			return true
		}
	}
	return false
}

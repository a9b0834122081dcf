// Package reactions owns per-user reactions to items. Items are opaque ids;
// this package does not know whether they are posts.
package reactions

import (
	"context"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Reaction is the persisted document. At most one exists per (user, item).
type Reaction struct {
	User string `json:"user"`
	Item string `json:"item"`
	Kind string `json:"kind"`
}

type Service struct {
	col *docstore.Collection[Reaction]
}

func NewService(b docstore.Backend) *Service {
	return &Service{col: docstore.NewCollection[Reaction](b, "reactions")}
}

// Add records a reaction. A second reaction by the same user on the same item
// replaces the first instead of duplicating it.
func (s *Service) Add(ctx context.Context, user, item, kind string) (*docstore.Record[Reaction], error) {
	if kind == "" {
		return nil, apperr.NewValidation("kind", "reaction kind must be non-empty")
	}
	existing, err := s.col.ReadOne(ctx, docstore.Filter{"user": user, "item": item})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.col.PartialUpdateOne(ctx, docstore.Filter{"id": existing.ID}, docstore.Fields{"kind": kind})
	}
	return s.col.CreateOne(ctx, Reaction{User: user, Item: item, Kind: kind})
}

// Remove deletes the user's reaction on an item.
func (s *Service) Remove(ctx context.Context, user, item string) error {
	removed, err := s.col.DeleteOne(ctx, docstore.Filter{"user": user, "item": item})
	if err != nil {
		return err
	}
	if !removed {
		return apperr.NewNotFound("reaction", "no reaction by user on item "+item)
	}
	return nil
}

// Counts tallies reactions on an item by kind.
func (s *Service) Counts(ctx context.Context, item string) (map[string]int, error) {
	recs, err := s.col.ReadMany(ctx, docstore.Filter{"item": item})
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, rec := range recs {
		counts[rec.Doc.Kind]++
	}
	return counts, nil
}

// RemoveAllForItem purges reactions on an item, called by orchestration when
// the item itself goes away.
func (s *Service) RemoveAllForItem(ctx context.Context, item string) error {
	recs, err := s.col.ReadMany(ctx, docstore.Filter{"item": item})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err := s.col.DeleteOne(ctx, docstore.Filter{"id": rec.ID}); err != nil {
			return err
		}
	}
	return nil
}

// Package feeds owns named feeds and their ordered post-id membership.
// Post ids are opaque; this package never resolves them.
package feeds

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/meshwork-social/meshwork/internal/apperr"
	"github.com/meshwork-social/meshwork/internal/docstore"
)

// Feed is the persisted document. PostIDs is an ordered set: a post id
// appears at most once per feed.
type Feed struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PostIDs     []string `json:"postIds"`
}

type Service struct {
	col *docstore.Collection[Feed]
}

func NewService(b docstore.Backend) *Service {
	return &Service{col: docstore.NewCollection[Feed](b, "feeds")}
}

// Create makes a new empty feed with a unique name.
func (s *Service) Create(ctx context.Context, name, description string) (*docstore.Record[Feed], error) {
	if name == "" {
		return nil, apperr.NewValidation("name", "feed name must be non-empty")
	}
	if err := s.assertNameUnique(ctx, name); err != nil {
		return nil, err
	}
	rec, err := s.col.CreateOne(ctx, Feed{Name: name, Description: description, PostIDs: []string{}})
	if err != nil {
		return nil, err
	}
	log.Info().Str("feedID", rec.ID).Str("name", name).Msg("Feed created")
	return rec, nil
}

// Get returns a feed by id.
func (s *Service) Get(ctx context.Context, id string) (*docstore.Record[Feed], error) {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"id": id})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperr.NewNotFound("feed", id)
	}
	return rec, nil
}

// IDByName resolves a feed name to its id.
func (s *Service) IDByName(ctx context.Context, name string) (string, error) {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"name": name})
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", apperr.NewNotFound("feed", name)
	}
	return rec.ID, nil
}

// List returns all feeds.
func (s *Service) List(ctx context.Context) ([]*docstore.Record[Feed], error) {
	return s.col.ReadMany(ctx, docstore.Filter{})
}

// AddPost appends a post id to a feed. Adding an id already present fails
// with NotAllowed.
func (s *Service) AddPost(ctx context.Context, feedID, postID string) error {
	rec, err := s.Get(ctx, feedID)
	if err != nil {
		return err
	}
	for _, id := range rec.Doc.PostIDs {
		if id == postID {
			return apperr.NewNotAllowed("post " + postID + " is already in feed " + feedID)
		}
	}
	updated := append(rec.Doc.PostIDs, postID)
	_, err = s.col.PartialUpdateOne(ctx, docstore.Filter{"id": feedID}, docstore.Fields{"postIds": updated})
	return err
}

// RemovePost removes a post id from a feed. Removing an id not in the feed
// fails with NotFound.
func (s *Service) RemovePost(ctx context.Context, feedID, postID string) (*docstore.Record[Feed], error) {
	rec, err := s.Get(ctx, feedID)
	if err != nil {
		return nil, err
	}
	updated, removed := without(rec.Doc.PostIDs, postID)
	if !removed {
		return nil, apperr.NewNotFound("post", postID+" is not in feed "+feedID)
	}
	return s.col.PartialUpdateOne(ctx, docstore.Filter{"id": feedID}, docstore.Fields{"postIds": updated})
}

// RemovePostFromAll purges a post id from every feed that contains it. This
// is the one operation designed to be called by orchestration on behalf of
// whoever owns the post.
func (s *Service) RemovePostFromAll(ctx context.Context, postID string) error {
	recs, err := s.col.ReadMany(ctx, docstore.Filter{})
	if err != nil {
		return err
	}
	for _, rec := range recs {
		updated, removed := without(rec.Doc.PostIDs, postID)
		if !removed {
			continue
		}
		if _, err := s.col.PartialUpdateOne(ctx, docstore.Filter{"id": rec.ID}, docstore.Fields{"postIds": updated}); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) assertNameUnique(ctx context.Context, name string) error {
	rec, err := s.col.ReadOne(ctx, docstore.Filter{"name": name})
	if err != nil {
		return err
	}
	if rec != nil {
		return apperr.NewNotAllowed("feed with name " + name + " already exists")
	}
	return nil
}

func without(ids []string, id string) ([]string, bool) {
	out := make([]string, 0, len(ids))
	removed := false
	for _, cur := range ids {
		if cur == id {
			removed = true
			continue
		}
		out = append(out, cur)
	}
	return out, removed
}
